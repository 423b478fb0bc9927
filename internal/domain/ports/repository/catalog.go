package repository

import (
	"context"

	"wallpaper-unlock/internal/domain/model"
)

// PlanRepository serves the immutable plan catalog. Loaded once at startup,
// read by many attempts concurrently, never mutated by the core.
type PlanRepository interface {
	FindByID(ctx context.Context, id string) (*model.Plan, error)
	ListAll(ctx context.Context) ([]*model.Plan, error)
}

// MethodRepository serves the closed set of payment methods and their
// receiving accounts.
type MethodRepository interface {
	FindByID(ctx context.Context, id string) (*model.PaymentMethod, error)
	ListAll(ctx context.Context) ([]*model.PaymentMethod, error)
}

// WallpaperRepository serves the wallpaper catalog.
type WallpaperRepository interface {
	ListAll(ctx context.Context) ([]*model.Wallpaper, error)
	ListByCategory(ctx context.Context, category string) ([]*model.Wallpaper, error)
}
