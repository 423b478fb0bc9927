package model

import (
	"time"

	"wallpaper-unlock/internal/domain"
)

// Plan represents a purchasable premium tier with a fixed price in PKR,
// a human-readable duration label, and a feature list.
type Plan struct {
	ID           string
	Name         string
	PricePKR     int64
	Duration     string // display label, e.g. "1 Month"
	DurationDays int    // 0 means lifetime
	Features     []string
	Recommended  bool
	CreatedAt    time.Time
}

func (p *Plan) IsZero() bool { return p == nil || p.ID == "" }

// Lifetime reports whether the plan never expires.
func (p *Plan) Lifetime() bool { return p.DurationDays <= 0 }

// NewPlan validates and constructs a plan.
func NewPlan(id, name string, pricePKR int64, duration string, durationDays int, features []string, recommended bool) (*Plan, error) {
	if id == "" || name == "" || pricePKR <= 0 || durationDays < 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &Plan{
		ID:           id,
		Name:         name,
		PricePKR:     pricePKR,
		Duration:     duration,
		DurationDays: durationDays,
		Features:     features,
		Recommended:  recommended,
		CreatedAt:    time.Now(),
	}, nil
}
