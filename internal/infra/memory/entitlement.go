package memory

import (
	"context"
	"sync"

	"wallpaper-unlock/internal/domain"
	"wallpaper-unlock/internal/domain/model"
	"wallpaper-unlock/internal/domain/ports/repository"
)

var _ repository.EntitlementRepository = (*EntitlementRepo)(nil)

// EntitlementRepo holds the premium flags for the lifetime of the process.
type EntitlementRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Entitlement
}

func NewEntitlementRepo() *EntitlementRepo {
	return &EntitlementRepo{store: make(map[string]*model.Entitlement)}
}

// Grant is idempotent and monotone: a second grant never lowers the flag and
// only moves the expiry forward (lifetime, i.e. nil, wins over any date).
func (r *EntitlementRepo) Grant(ctx context.Context, ent *model.Entitlement) error {
	if ent == nil || ent.UserID == "" {
		return domain.ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.store[ent.UserID]
	if !ok || !cur.Premium {
		cp := *ent
		r.store[ent.UserID] = &cp
		return nil
	}
	if cur.ExpiresAt == nil {
		return nil // already lifetime
	}
	if ent.ExpiresAt == nil || ent.ExpiresAt.After(*cur.ExpiresAt) {
		cp := *ent
		r.store[ent.UserID] = &cp
	}
	return nil
}

func (r *EntitlementRepo) Find(ctx context.Context, userID string) (*model.Entitlement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ent, ok := r.store[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ent
	return &cp, nil
}
