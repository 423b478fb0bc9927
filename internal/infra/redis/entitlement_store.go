package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"wallpaper-unlock/internal/domain"
	"wallpaper-unlock/internal/domain/model"
	"wallpaper-unlock/internal/domain/ports/repository"
)

var _ repository.EntitlementRepository = (*EntitlementStore)(nil)

// EntitlementStore keeps premium flags in Redis so entitlement survives
// restarts. Records never expire from Redis; ExpiresAt is informational and
// enforced elsewhere.
type EntitlementStore struct {
	client RedisClient
}

func NewEntitlementStore(client RedisClient) *EntitlementStore {
	return &EntitlementStore{client: client}
}

func (s *EntitlementStore) key(userID string) string {
	return fmt.Sprintf("entitlement:%s", userID)
}

// Grant is idempotent: an existing premium record is only replaced when the
// new grant extends it (nil expiry means lifetime and always wins).
func (s *EntitlementStore) Grant(ctx context.Context, ent *model.Entitlement) error {
	if ent == nil || ent.UserID == "" {
		return domain.ErrInvalidArgument
	}
	cur, err := s.Find(ctx, ent.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if cur != nil && cur.Premium {
		if cur.ExpiresAt == nil {
			return nil
		}
		if ent.ExpiresAt != nil && !ent.ExpiresAt.After(*cur.ExpiresAt) {
			return nil
		}
	}
	data, err := json.Marshal(ent)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(ent.UserID), data, 0)
}

func (s *EntitlementStore) Find(ctx context.Context, userID string) (*model.Entitlement, error) {
	data, err := s.client.Get(ctx, s.key(userID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var ent model.Entitlement
	if err := json.Unmarshal([]byte(data), &ent); err != nil {
		return nil, err
	}
	return &ent, nil
}
