package repository

import (
	"context"

	"wallpaper-unlock/internal/domain/model"
)

// EntitlementRepository holds the premium flag per user.
//
// Grant must be idempotent and monotone: granting an already-premium user
// leaves the flag raised (the later/longer expiry wins); nothing downgrades.
type EntitlementRepository interface {
	Grant(ctx context.Context, ent *model.Entitlement) error
	Find(ctx context.Context, userID string) (*model.Entitlement, error)
}
