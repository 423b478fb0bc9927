//go:build !integration

package postgres

import (
	"context"
	"time"

	"wallpaper-unlock/internal/domain/model"
	red "wallpaper-unlock/internal/infra/redis"
)

// --- Mocks for Cache Decorator Tests ---

// mockInnerPlanRepo mocks the database repository that the plan decorator wraps.
type mockInnerPlanRepo struct {
	FindByIDFunc func(ctx context.Context, id string) (*model.Plan, error)
	ListAllFunc  func(ctx context.Context) ([]*model.Plan, error)
}

func (m *mockInnerPlanRepo) FindByID(ctx context.Context, id string) (*model.Plan, error) {
	return m.FindByIDFunc(ctx, id)
}
func (m *mockInnerPlanRepo) ListAll(ctx context.Context) ([]*model.Plan, error) {
	return m.ListAllFunc(ctx)
}

// mockRedisClient mocks our Redis client wrapper.
type mockRedisClient struct {
	GetFunc  func(ctx context.Context, key string) (string, error)
	SetFunc  func(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	DelFunc  func(ctx context.Context, keys ...string) error
	PingFunc func(ctx context.Context) error
}

var _ red.RedisClient = &mockRedisClient{}

func (m *mockRedisClient) Get(ctx context.Context, key string) (string, error) {
	return m.GetFunc(ctx, key)
}
func (m *mockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.SetFunc(ctx, key, value, expiration)
}
func (m *mockRedisClient) Del(ctx context.Context, keys ...string) error {
	return m.DelFunc(ctx, keys...)
}
func (m *mockRedisClient) Ping(ctx context.Context) error { return m.PingFunc(ctx) }
func (m *mockRedisClient) Close() error                   { return nil }
