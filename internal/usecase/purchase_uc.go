// File: internal/usecase/purchase_uc.go
package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"wallpaper-unlock/internal/domain"
	"wallpaper-unlock/internal/domain/model"
	"wallpaper-unlock/internal/domain/ports/adapter"
	"wallpaper-unlock/internal/domain/ports/repository"
	"wallpaper-unlock/internal/infra/metrics"
	"wallpaper-unlock/internal/infra/worker"
)

// GenericFailureReason is the only text surfaced when the classifier itself
// fails; raw error detail never reaches the user.
const GenericFailureReason = "Could not analyze screenshot. Please try again or contact support."

// Compile-time check
var _ PurchaseUseCase = (*purchaseUC)(nil)

// PurchaseUseCase drives purchase attempts through their state machine.
// Attempts are per-process and ephemeral; the only durable outcome is the
// entitlement granted on success.
type PurchaseUseCase interface {
	// Start opens an attempt for a plan, in SelectingMethod.
	Start(ctx context.Context, userID, planID string) (model.AttemptSnapshot, error)
	// SelectMethod picks the payment channel; the snapshot then carries the
	// destination account the user must transfer to.
	SelectMethod(ctx context.Context, attemptID, methodID string) (model.AttemptSnapshot, error)
	// ChangeMethod returns to method selection, clearing method and failure.
	ChangeMethod(ctx context.Context, attemptID string) (model.AttemptSnapshot, error)
	// SubmitEvidence hands a receipt screenshot to the classifier. Returns
	// with state=Verifying; the resolution lands asynchronously. While a
	// verification is in flight it fails with ErrVerificationInFlight.
	SubmitEvidence(ctx context.Context, attemptID string, image []byte) (model.AttemptSnapshot, error)
	// Cancel discards the attempt. Refused while Verifying.
	Cancel(ctx context.Context, attemptID string) error
	Get(ctx context.Context, attemptID string) (model.AttemptSnapshot, error)
	// ListOpen returns snapshots of every live attempt (admin surface).
	ListOpen(ctx context.Context) []model.AttemptSnapshot
}

type purchaseUC struct {
	plans        repository.PlanRepository
	methods      repository.MethodRepository
	entitlements EntitlementUseCase
	classifier   adapter.ReceiptClassifier
	pool         *worker.Pool
	timeout      time.Duration
	retention    time.Duration
	log          *zerolog.Logger

	mu       sync.RWMutex
	attempts map[string]*model.PurchaseAttempt
}

func NewPurchaseUseCase(
	plans repository.PlanRepository,
	methods repository.MethodRepository,
	entitlements EntitlementUseCase,
	classifier adapter.ReceiptClassifier,
	pool *worker.Pool,
	classifyTimeout time.Duration,
	logger *zerolog.Logger,
) *purchaseUC {
	if classifyTimeout <= 0 {
		classifyTimeout = 30 * time.Second
	}
	return &purchaseUC{
		plans:        plans,
		methods:      methods,
		entitlements: entitlements,
		classifier:   classifier,
		pool:         pool,
		timeout:      classifyTimeout,
		retention:    30 * time.Minute,
		log:          logger,
		attempts:     make(map[string]*model.PurchaseAttempt),
	}
}

// sweep drops attempts that stopped moving: anything not Verifying whose last
// transition is older than the retention window. Verified attempts linger for
// the window so a polling client still sees the final state, then go away.
// Verifying attempts are never swept; the in-flight resolution owns them.
func (u *purchaseUC) sweep() {
	cutoff := time.Now().Add(-u.retention)
	u.mu.Lock()
	defer u.mu.Unlock()
	for id, a := range u.attempts {
		snap := a.Snapshot()
		if snap.State == model.AttemptVerifying {
			continue
		}
		if snap.UpdatedAt.Before(cutoff) {
			delete(u.attempts, id)
			metrics.IncAttempt("swept")
		}
	}
}

func (u *purchaseUC) Start(ctx context.Context, userID, planID string) (model.AttemptSnapshot, error) {
	u.sweep()
	plan, err := u.plans.FindByID(ctx, planID)
	if err != nil {
		return model.AttemptSnapshot{}, err
	}
	attempt, err := model.NewPurchaseAttempt(uuid.NewString(), userID, plan)
	if err != nil {
		return model.AttemptSnapshot{}, err
	}
	u.mu.Lock()
	u.attempts[attempt.ID()] = attempt
	u.mu.Unlock()

	metrics.IncAttempt("started")
	u.log.Debug().Str("attempt_id", attempt.ID()).Str("plan_id", planID).Msg("attempt started")
	return attempt.Snapshot(), nil
}

func (u *purchaseUC) SelectMethod(ctx context.Context, attemptID, methodID string) (model.AttemptSnapshot, error) {
	attempt, err := u.find(attemptID)
	if err != nil {
		return model.AttemptSnapshot{}, err
	}
	m, err := u.methods.FindByID(ctx, methodID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return model.AttemptSnapshot{}, domain.ErrUnknownMethod
		}
		return model.AttemptSnapshot{}, err
	}
	if err := attempt.SelectMethod(m); err != nil {
		return model.AttemptSnapshot{}, err
	}
	metrics.IncAttempt("method_selected")
	return attempt.Snapshot(), nil
}

func (u *purchaseUC) ChangeMethod(ctx context.Context, attemptID string) (model.AttemptSnapshot, error) {
	attempt, err := u.find(attemptID)
	if err != nil {
		return model.AttemptSnapshot{}, err
	}
	if err := attempt.ChangeMethod(); err != nil {
		return model.AttemptSnapshot{}, err
	}
	return attempt.Snapshot(), nil
}

func (u *purchaseUC) SubmitEvidence(ctx context.Context, attemptID string, image []byte) (model.AttemptSnapshot, error) {
	attempt, err := u.find(attemptID)
	if err != nil {
		return model.AttemptSnapshot{}, err
	}
	if len(image) == 0 {
		return model.AttemptSnapshot{}, domain.ErrInvalidArgument
	}

	// Own a copy: the classifier must see exactly the submitted bytes, and
	// the caller's buffer may be reused once we return.
	evidence := append([]byte(nil), image...)
	ref := ulid.Make().String()

	seq, err := attempt.BeginVerification(ref)
	if err != nil {
		return model.AttemptSnapshot{}, err
	}

	plan := attempt.Plan()
	submitted := time.Now()
	task := func(context.Context) error {
		u.runVerification(attempt, seq, evidence, plan, submitted)
		return nil
	}
	if err := u.pool.Submit(task); err != nil {
		// Could not even schedule the classification; same user-facing
		// outcome as a classifier failure.
		attempt.Resolve(seq, false, GenericFailureReason)
		u.log.Error().Err(err).Str("attempt_id", attemptID).Msg("verification dispatch failed")
		metrics.ObserveVerify("error", "dispatch", time.Since(submitted))
	}
	return attempt.Snapshot(), nil
}

// runVerification is the single suspension point of an attempt: one bounded
// classifier round trip, then the policy decision, then the transition. It is
// deliberately detached from the caller's context so that dismissing the UI
// does not abandon an in-flight resolution.
func (u *purchaseUC) runVerification(attempt *model.PurchaseAttempt, seq uint64, evidence []byte, plan *model.Plan, submitted time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), u.timeout)
	defer cancel()

	logger := u.log.With().Str("attempt_id", attempt.ID()).Uint64("seq", seq).Logger()

	start := time.Now()
	judgment, err := u.classifier.Classify(ctx, evidence, plan.PricePKR)
	metrics.ObserveClassifierCall(u.classifier.Name(), err == nil, time.Since(start))

	if err != nil {
		reason := "classifier_error"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "timeout"
		}
		if attempt.Resolve(seq, false, GenericFailureReason) {
			metrics.IncAttempt("failed")
			metrics.ObserveVerify("error", reason, time.Since(submitted))
			logger.Warn().Err(err).Msg("classification failed")
		} else {
			metrics.ObserveVerify("error", "superseded", time.Since(submitted))
		}
		return
	}

	accepted, rejectReason := model.DecideVerification(judgment, plan.PricePKR)
	if !accepted {
		if attempt.Resolve(seq, false, rejectReason) {
			metrics.IncAttempt("failed")
			metrics.ObserveVerify("rejected", "policy_reject", time.Since(submitted))
			logger.Info().
				Int64("detected", judgment.DetectedAmount).
				Int64("expected", plan.PricePKR).
				Msg("evidence rejected")
		} else {
			metrics.ObserveVerify("rejected", "superseded", time.Since(submitted))
		}
		return
	}

	if !attempt.Resolve(seq, true, "") {
		metrics.ObserveVerify("accepted", "superseded", time.Since(submitted))
		return
	}
	metrics.IncAttempt("verified")
	metrics.ObserveVerify("accepted", "", time.Since(submitted))

	// Grant strictly after the Verified transition committed, on its own
	// deadline: a classify that finishes near the timeout must not starve
	// the grant of budget.
	gctx, gcancel := context.WithTimeout(context.Background(), u.timeout)
	defer gcancel()
	if err := u.entitlements.Grant(gctx, attempt.UserID(), plan); err != nil {
		logger.Error().Err(err).Msg("entitlement grant failed after verification")
		return
	}
	logger.Info().Str("provider", judgment.Provider).Msg("purchase verified")
}

func (u *purchaseUC) Cancel(ctx context.Context, attemptID string) error {
	attempt, err := u.find(attemptID)
	if err != nil {
		return err
	}
	if err := attempt.Cancel(); err != nil {
		return err
	}
	u.mu.Lock()
	delete(u.attempts, attemptID)
	u.mu.Unlock()
	metrics.IncAttempt("cancelled")
	return nil
}

func (u *purchaseUC) Get(ctx context.Context, attemptID string) (model.AttemptSnapshot, error) {
	attempt, err := u.find(attemptID)
	if err != nil {
		return model.AttemptSnapshot{}, err
	}
	return attempt.Snapshot(), nil
}

func (u *purchaseUC) ListOpen(ctx context.Context) []model.AttemptSnapshot {
	u.sweep()
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]model.AttemptSnapshot, 0, len(u.attempts))
	for _, a := range u.attempts {
		out = append(out, a.Snapshot())
	}
	return out
}

func (u *purchaseUC) find(attemptID string) (*model.PurchaseAttempt, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	a, ok := u.attempts[attemptID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}
