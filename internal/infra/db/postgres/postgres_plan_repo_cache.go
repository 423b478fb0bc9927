package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wallpaper-unlock/internal/domain/model"
	"wallpaper-unlock/internal/domain/ports/repository"
	"wallpaper-unlock/internal/infra/metrics"
	red "wallpaper-unlock/internal/infra/redis"
)

var _ repository.PlanRepository = (*planRepoCacheDecorator)(nil)

// planRepoCacheDecorator caches the immutable plan catalog in Redis in front
// of the database repo. Plans change only via reseeding, so a modest TTL is
// plenty.
type planRepoCacheDecorator struct {
	inner repository.PlanRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewPlanRepoCacheDecorator(inner repository.PlanRepository, cache red.RedisClient, ttl time.Duration) repository.PlanRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &planRepoCacheDecorator{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

func (d *planRepoCacheDecorator) FindByID(ctx context.Context, id string) (*model.Plan, error) {
	key := fmt.Sprintf("plan:%s", id)
	if val, err := d.cache.Get(ctx, key); err == nil {
		var plan model.Plan
		if json.Unmarshal([]byte(val), &plan) == nil {
			metrics.IncCacheRequest("plan", "hit")
			return &plan, nil
		}
	}

	metrics.IncCacheRequest("plan", "miss")
	plan, err := d.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(plan); err == nil {
		_ = d.cache.Set(ctx, key, data, d.ttl)
	}
	return plan, nil
}

func (d *planRepoCacheDecorator) ListAll(ctx context.Context) ([]*model.Plan, error) {
	const key = "plans:all"
	if val, err := d.cache.Get(ctx, key); err == nil {
		var plans []*model.Plan
		if json.Unmarshal([]byte(val), &plans) == nil {
			metrics.IncCacheRequest("plan", "hit")
			return plans, nil
		}
	}

	metrics.IncCacheRequest("plan", "miss")
	plans, err := d.inner.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(plans); err == nil {
		_ = d.cache.Set(ctx, key, data, d.ttl)
	}
	return plans, nil
}
