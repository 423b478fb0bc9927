package model

import "time"

// Entitlement is the premium-access flag for one user. It starts false and is
// only ever raised by a grant; nothing in this service downgrades it (expiry
// enforcement is an external concern, ExpiresAt is informational).
type Entitlement struct {
	UserID    string     `json:"user_id"`
	Premium   bool       `json:"premium"`
	PlanID    string     `json:"plan_id,omitempty"`
	GrantedAt time.Time  `json:"granted_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"` // nil for lifetime plans
}
