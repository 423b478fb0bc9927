// File: internal/usecase/entitlement_uc.go
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"wallpaper-unlock/internal/domain"
	"wallpaper-unlock/internal/domain/model"
	"wallpaper-unlock/internal/domain/ports/repository"
	"wallpaper-unlock/internal/infra/metrics"
)

// Compile-time check
var _ EntitlementUseCase = (*entitlementUC)(nil)

// EntitlementUseCase is the single mutator of the premium flag. Grant is
// idempotent: granting an already-premium user is a no-op apart from a
// possibly extended expiry.
type EntitlementUseCase interface {
	Grant(ctx context.Context, userID string, plan *model.Plan) error
	IsPremium(ctx context.Context, userID string) (bool, error)
	Get(ctx context.Context, userID string) (*model.Entitlement, error)
}

type entitlementUC struct {
	repo repository.EntitlementRepository
	log  *zerolog.Logger
}

func NewEntitlementUseCase(repo repository.EntitlementRepository, logger *zerolog.Logger) *entitlementUC {
	return &entitlementUC{repo: repo, log: logger}
}

func (u *entitlementUC) Grant(ctx context.Context, userID string, plan *model.Plan) error {
	if userID == "" || plan.IsZero() {
		return domain.ErrInvalidArgument
	}
	now := time.Now()
	ent := &model.Entitlement{
		UserID:    userID,
		Premium:   true,
		PlanID:    plan.ID,
		GrantedAt: now,
	}
	if !plan.Lifetime() {
		exp := now.Add(time.Duration(plan.DurationDays) * 24 * time.Hour)
		ent.ExpiresAt = &exp
	}
	if err := u.repo.Grant(ctx, ent); err != nil {
		return err
	}
	metrics.IncEntitlementGrant(plan.ID)
	u.log.Info().Str("user_id", userID).Str("plan_id", plan.ID).Msg("entitlement granted")
	return nil
}

func (u *entitlementUC) IsPremium(ctx context.Context, userID string) (bool, error) {
	ent, err := u.repo.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return ent.Premium, nil
}

func (u *entitlementUC) Get(ctx context.Context, userID string) (*model.Entitlement, error) {
	ent, err := u.repo.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Session baseline: everyone starts out non-premium.
			return &model.Entitlement{UserID: userID, Premium: false}, nil
		}
		return nil, err
	}
	return ent, nil
}
