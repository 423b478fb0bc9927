package model

import (
	"sync"
	"time"

	"wallpaper-unlock/internal/domain"
)

type AttemptState string

const (
	AttemptSelectingMethod  AttemptState = "selecting_method"
	AttemptAwaitingEvidence AttemptState = "awaiting_evidence"
	AttemptVerifying        AttemptState = "verifying"
	AttemptVerified         AttemptState = "verified" // terminal
	AttemptFailed           AttemptState = "failed"   // retryable
	AttemptCancelled        AttemptState = "cancelled"
)

// PurchaseAttempt owns the lifecycle of one unlock flow for one plan.
//
// All transitions go through the methods below under the attempt's own lock,
// so concurrent callers can never interleave a transition. Invariants held:
//   - method is set iff the attempt has moved past SelectingMethod;
//   - at most one verification is in flight (BeginVerification refuses while
//     Verifying);
//   - a resolution only applies when its sequence number matches the
//     submission that started it, so a superseded resolution is discarded.
type PurchaseAttempt struct {
	mu sync.Mutex

	id                string
	userID            string
	plan              *Plan
	method            *PaymentMethod
	state             AttemptState
	lastFailureReason string
	evidenceRef       string // opaque handle to the latest submitted image
	seq               uint64 // submission counter; tags in-flight verification
	createdAt         time.Time
	updatedAt         time.Time
}

// AttemptSnapshot is an immutable copy handed to transports and tests.
type AttemptSnapshot struct {
	ID                string
	UserID            string
	Plan              *Plan
	Method            *PaymentMethod
	State             AttemptState
	LastFailureReason string
	EvidenceRef       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewPurchaseAttempt starts an attempt in SelectingMethod.
func NewPurchaseAttempt(id, userID string, plan *Plan) (*PurchaseAttempt, error) {
	if id == "" || userID == "" || plan.IsZero() {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &PurchaseAttempt{
		id:        id,
		userID:    userID,
		plan:      plan,
		state:     AttemptSelectingMethod,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// SelectMethod moves SelectingMethod -> AwaitingEvidence.
func (a *PurchaseAttempt) SelectMethod(m *PaymentMethod) error {
	if m.IsZero() {
		return domain.ErrInvalidArgument
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != AttemptSelectingMethod {
		return a.transitionErr()
	}
	a.method = m
	a.state = AttemptAwaitingEvidence
	a.updatedAt = time.Now()
	return nil
}

// ChangeMethod moves AwaitingEvidence|Failed -> SelectingMethod, clearing the
// chosen method and any failure reason.
func (a *PurchaseAttempt) ChangeMethod() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != AttemptAwaitingEvidence && a.state != AttemptFailed {
		return a.transitionErr()
	}
	a.method = nil
	a.lastFailureReason = ""
	a.state = AttemptSelectingMethod
	a.updatedAt = time.Now()
	return nil
}

// BeginVerification moves AwaitingEvidence|Failed -> Verifying and returns the
// sequence number the eventual resolution must present. While Verifying it
// returns ErrVerificationInFlight so a second submission can never start a
// second classification.
func (a *PurchaseAttempt) BeginVerification(evidenceRef string) (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch a.state {
	case AttemptVerifying:
		return 0, domain.ErrVerificationInFlight
	case AttemptAwaitingEvidence, AttemptFailed:
	default:
		return 0, a.transitionErr()
	}
	a.seq++
	a.evidenceRef = evidenceRef
	a.lastFailureReason = ""
	a.state = AttemptVerifying
	a.updatedAt = time.Now()
	return a.seq, nil
}

// Resolve applies a verification outcome for the submission tagged seq.
// It reports whether the outcome was applied; a stale seq or a non-Verifying
// state (e.g. the attempt was discarded meanwhile) yields false and no change.
func (a *PurchaseAttempt) Resolve(seq uint64, accepted bool, reason string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != AttemptVerifying || seq != a.seq {
		return false
	}
	if accepted {
		a.state = AttemptVerified
		a.evidenceRef = "" // evidence is not retained past success
	} else {
		a.state = AttemptFailed
		a.lastFailureReason = reason
	}
	a.updatedAt = time.Now()
	return true
}

// Cancel discards the attempt. Not offered from Verifying: an in-flight
// classification is allowed to resolve and will still be applied.
func (a *PurchaseAttempt) Cancel() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch a.state {
	case AttemptVerifying:
		return domain.ErrVerificationInFlight
	case AttemptVerified:
		return domain.ErrAttemptFinished
	case AttemptCancelled:
		return domain.ErrAttemptCancelled
	}
	a.state = AttemptCancelled
	a.updatedAt = time.Now()
	return nil
}

func (a *PurchaseAttempt) transitionErr() error {
	switch a.state {
	case AttemptVerified:
		return domain.ErrAttemptFinished
	case AttemptCancelled:
		return domain.ErrAttemptCancelled
	default:
		return domain.ErrInvalidTransition
	}
}

func (a *PurchaseAttempt) ID() string     { return a.id }
func (a *PurchaseAttempt) UserID() string { return a.userID }
func (a *PurchaseAttempt) Plan() *Plan    { return a.plan }

func (a *PurchaseAttempt) State() AttemptState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *PurchaseAttempt) Snapshot() AttemptSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return AttemptSnapshot{
		ID:                a.id,
		UserID:            a.userID,
		Plan:              a.plan,
		Method:            a.method,
		State:             a.state,
		LastFailureReason: a.lastFailureReason,
		EvidenceRef:       a.evidenceRef,
		CreatedAt:         a.createdAt,
		UpdatedAt:         a.updatedAt,
	}
}
