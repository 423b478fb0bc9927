package model

import "fmt"

// ClassifierJudgment is the structured opinion a receipt classifier returns
// for one evidence submission. It is ephemeral: consumed by the verification
// policy and never persisted.
//
// The classifier is an untrusted oracle. Its Verified flag alone never grants
// anything; DecideVerification is the sole authority.
type ClassifierJudgment struct {
	Verified       bool   `json:"verified"`
	DetectedAmount int64  `json:"detectedAmount"`
	Provider       string `json:"provider"`
	Reason         string `json:"reason"`
}

// DecideVerification maps a judgment and the expected plan price to a binary
// accept/reject. Pure; no side effects.
//
// Accept requires both the classifier's verified claim AND a detected amount
// covering the expected price. The comparison is >= on purpose: overpayment
// is not penalized. A verified claim with a missing/zero amount rejects.
func DecideVerification(j ClassifierJudgment, expectedAmount int64) (accepted bool, reason string) {
	if j.Verified && j.DetectedAmount >= expectedAmount {
		return true, ""
	}
	if j.Reason != "" {
		return false, j.Reason
	}
	return false, fmt.Sprintf("Amount mismatch. Detected %d, expected %d.", j.DetectedAmount, expectedAmount)
}
