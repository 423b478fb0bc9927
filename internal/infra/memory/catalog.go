// Package memory holds the in-process repository implementations used when
// no database is configured (demo/dev deployments and the seed-free default).
package memory

import (
	"context"
	"sync"

	"wallpaper-unlock/internal/domain"
	"wallpaper-unlock/internal/domain/model"
	"wallpaper-unlock/internal/domain/ports/repository"
)

var (
	_ repository.PlanRepository      = (*PlanRepo)(nil)
	_ repository.MethodRepository    = (*MethodRepo)(nil)
	_ repository.WallpaperRepository = (*WallpaperRepo)(nil)
)

// PlanRepo is an immutable in-memory plan catalog.
type PlanRepo struct {
	byID  map[string]*model.Plan
	order []*model.Plan
}

func NewPlanRepo(plans []*model.Plan) *PlanRepo {
	r := &PlanRepo{byID: make(map[string]*model.Plan, len(plans))}
	for _, p := range plans {
		cp := *p
		r.byID[p.ID] = &cp
		r.order = append(r.order, &cp)
	}
	return r
}

func (r *PlanRepo) FindByID(ctx context.Context, id string) (*model.Plan, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *PlanRepo) ListAll(ctx context.Context) ([]*model.Plan, error) {
	out := make([]*model.Plan, 0, len(r.order))
	for _, p := range r.order {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// MethodRepo is an immutable in-memory method registry.
type MethodRepo struct {
	byID  map[string]*model.PaymentMethod
	order []*model.PaymentMethod
}

func NewMethodRepo(methods []*model.PaymentMethod) *MethodRepo {
	r := &MethodRepo{byID: make(map[string]*model.PaymentMethod, len(methods))}
	for _, m := range methods {
		cp := *m
		r.byID[m.ID] = &cp
		r.order = append(r.order, &cp)
	}
	return r
}

func (r *MethodRepo) FindByID(ctx context.Context, id string) (*model.PaymentMethod, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *MethodRepo) ListAll(ctx context.Context) ([]*model.PaymentMethod, error) {
	out := make([]*model.PaymentMethod, 0, len(r.order))
	for _, m := range r.order {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

// WallpaperRepo is an in-memory wallpaper catalog.
type WallpaperRepo struct {
	mu    sync.RWMutex
	walls []*model.Wallpaper
}

func NewWallpaperRepo(walls []*model.Wallpaper) *WallpaperRepo {
	r := &WallpaperRepo{}
	for _, w := range walls {
		cp := *w
		r.walls = append(r.walls, &cp)
	}
	return r
}

func (r *WallpaperRepo) ListAll(ctx context.Context) ([]*model.Wallpaper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Wallpaper, 0, len(r.walls))
	for _, w := range r.walls {
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

func (r *WallpaperRepo) ListByCategory(ctx context.Context, category string) ([]*model.Wallpaper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*model.Wallpaper
	for _, w := range r.walls {
		if w.Category == category {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}
