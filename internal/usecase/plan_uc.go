package usecase

import (
	"context"

	"wallpaper-unlock/internal/domain/model"
	"wallpaper-unlock/internal/domain/ports/repository"
)

// PlanUseCase serves the purchase options: plans and payment methods.
type PlanUseCase struct {
	plans   repository.PlanRepository
	methods repository.MethodRepository
}

// NewPlanUseCase constructs a PlanUseCase.
func NewPlanUseCase(plans repository.PlanRepository, methods repository.MethodRepository) *PlanUseCase {
	return &PlanUseCase{plans: plans, methods: methods}
}

// Get retrieves a plan by ID.
func (uc *PlanUseCase) Get(ctx context.Context, id string) (*model.Plan, error) {
	return uc.plans.FindByID(ctx, id)
}

// List returns all plans.
func (uc *PlanUseCase) List(ctx context.Context) ([]*model.Plan, error) {
	return uc.plans.ListAll(ctx)
}

// Methods returns the closed set of payment methods.
func (uc *PlanUseCase) Methods(ctx context.Context) ([]*model.PaymentMethod, error) {
	return uc.methods.ListAll(ctx)
}
