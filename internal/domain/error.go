package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound             = errors.New("entity not found")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrUnknownMethod        = errors.New("unknown payment method")
	ErrInvalidTransition    = errors.New("invalid attempt transition")
	ErrVerificationInFlight = errors.New("verification already in progress")
	ErrAttemptFinished      = errors.New("attempt already finished")
	ErrAttemptCancelled     = errors.New("attempt cancelled")
)
