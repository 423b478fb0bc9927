// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"wallpaper-unlock/internal/domain"
	"wallpaper-unlock/internal/domain/model"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// memPlanRepo is a small in-memory implementation used by unit tests.
type memPlanRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Plan
}

func newMemPlanRepo(plans ...*model.Plan) *memPlanRepo {
	if len(plans) == 0 {
		plans = model.DefaultPlans()
	}
	r := &memPlanRepo{store: make(map[string]*model.Plan, len(plans))}
	for _, p := range plans {
		cp := *p
		r.store[p.ID] = &cp
	}
	return r
}

func (m *memPlanRepo) FindByID(ctx context.Context, id string) (*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPlanRepo) ListAll(ctx context.Context) ([]*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Plan, 0, len(m.store))
	for _, p := range m.store {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type memMethodRepo struct {
	mu    sync.RWMutex
	store map[string]*model.PaymentMethod
}

func newMemMethodRepo() *memMethodRepo {
	r := &memMethodRepo{store: make(map[string]*model.PaymentMethod)}
	for _, m := range model.DefaultMethods() {
		cp := *m
		r.store[m.ID] = &cp
	}
	return r
}

func (m *memMethodRepo) FindByID(ctx context.Context, id string) (*model.PaymentMethod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pm, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *pm
	return &cp, nil
}

func (m *memMethodRepo) ListAll(ctx context.Context) ([]*model.PaymentMethod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.PaymentMethod, 0, len(m.store))
	for _, pm := range m.store {
		cp := *pm
		out = append(out, &cp)
	}
	return out, nil
}

type memWallpaperRepo struct {
	walls []*model.Wallpaper
}

func newMemWallpaperRepo() *memWallpaperRepo {
	return &memWallpaperRepo{walls: model.DefaultWallpapers()}
}

func (m *memWallpaperRepo) ListAll(ctx context.Context) ([]*model.Wallpaper, error) {
	return append([]*model.Wallpaper(nil), m.walls...), nil
}

func (m *memWallpaperRepo) ListByCategory(ctx context.Context, category string) ([]*model.Wallpaper, error) {
	var out []*model.Wallpaper
	for _, w := range m.walls {
		if w.Category == category {
			out = append(out, w)
		}
	}
	return out, nil
}

// memEntitlementRepo counts grants so tests can assert exactly-once semantics.
// grantDelay simulates a store round trip that honors context cancellation.
type memEntitlementRepo struct {
	mu         sync.RWMutex
	store      map[string]*model.Entitlement
	grants     int
	grantErr   error
	grantDelay time.Duration
}

func newMemEntitlementRepo() *memEntitlementRepo {
	return &memEntitlementRepo{store: make(map[string]*model.Entitlement)}
}

func (m *memEntitlementRepo) Grant(ctx context.Context, ent *model.Entitlement) error {
	if d := m.grantDelay; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grants++
	if m.grantErr != nil {
		return m.grantErr
	}
	cur, ok := m.store[ent.UserID]
	if ok && cur.Premium {
		if cur.ExpiresAt == nil {
			return nil
		}
		if ent.ExpiresAt != nil && !ent.ExpiresAt.After(*cur.ExpiresAt) {
			return nil
		}
	}
	cp := *ent
	m.store[ent.UserID] = &cp
	return nil
}

func (m *memEntitlementRepo) Find(ctx context.Context, userID string) (*model.Entitlement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ent, ok := m.store[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ent
	return &cp, nil
}

func (m *memEntitlementRepo) grantCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.grants
}

// stubClassifier lets a test script the judgment, force an error, block the
// call until released, delay it for a fixed time, and count invocations.
type stubClassifier struct {
	mu       sync.Mutex
	judgment model.ClassifierJudgment
	err      error
	block    chan struct{} // when set, Classify waits on it (or ctx)
	delay    time.Duration // when set, Classify sleeps this long (or ctx)
	calls    int
	lastAmt  int64
	lastImg  []byte
}

func (s *stubClassifier) Name() string { return "stub" }

func (s *stubClassifier) Classify(ctx context.Context, image []byte, expectedAmount int64) (model.ClassifierJudgment, error) {
	s.mu.Lock()
	s.calls++
	s.lastAmt = expectedAmount
	s.lastImg = append([]byte(nil), image...)
	block := s.block
	delay := s.delay
	j, err := s.judgment, s.err
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return model.ClassifierJudgment{}, ctx.Err()
		}
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return model.ClassifierJudgment{}, ctx.Err()
		}
	}
	if err != nil {
		return model.ClassifierJudgment{}, err
	}
	return j, nil
}

func (s *stubClassifier) set(j model.ClassifierJudgment, err error) {
	s.mu.Lock()
	s.judgment, s.err = j, err
	s.mu.Unlock()
}

func (s *stubClassifier) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// waitForState polls until the attempt leaves Verifying or the deadline hits.
func waitForState(t testingT, uc PurchaseUseCase, attemptID string, want model.AttemptState, within time.Duration) model.AttemptSnapshot {
	t.Helper()
	deadline := time.Now().Add(within)
	for {
		snap, err := uc.Get(context.Background(), attemptID)
		if err != nil {
			t.Fatalf("Get(%s): %v", attemptID, err)
		}
		if snap.State == want {
			return snap
		}
		if time.Now().After(deadline) {
			t.Fatalf("attempt %s stuck in %s, want %s", attemptID, snap.State, want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// testingT is the slice of *testing.T the helpers need.
type testingT interface {
	Helper()
	Fatalf(format string, args ...any)
}
