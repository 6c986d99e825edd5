package domain

import (
	"context"
	"time"
)

// Plan is a subscription tier.
type Plan string

const (
	PlanFree    Plan = "FREE"
	PlanPremium Plan = "PREMIUM"
)

// Subscription is a user's current plan. A nil ExpiresAt never expires.
type Subscription struct {
	UserID    int64      `json:"userId"`
	Plan      Plan       `json:"plan"`
	ExpiresAt *time.Time `json:"expiresAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// PremiumAt reports whether the subscription grants premium features at t.
func (s *Subscription) PremiumAt(t time.Time) bool {
	if s == nil || s.Plan != PlanPremium {
		return false
	}
	return s.ExpiresAt == nil || s.ExpiresAt.After(t)
}

// SubscriptionRepository is the port for subscription persistence.
type SubscriptionRepository interface {
	GetSubscription(ctx context.Context, userID int64) (*Subscription, error)
	UpsertSubscription(ctx context.Context, s *Subscription) error
}
