package app

import (
	"context"
	"log/slog"
	"time"

	"bodydry/internal/domain"
)

const maxSubscriptionMonths = 24

// SubscriptionService answers plan questions and records plan changes.
// Payment processing happens elsewhere.
type SubscriptionService struct {
	repo domain.SubscriptionRepository
	now  func() time.Time
}

// NewSubscriptionService creates a SubscriptionService.
func NewSubscriptionService(repo domain.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{repo: repo, now: time.Now}
}

// SubscriptionStatus is the effective plan of a user.
type SubscriptionStatus struct {
	Plan      domain.Plan `json:"plan"`
	Premium   bool        `json:"premium"`
	ExpiresAt *time.Time  `json:"expiresAt"`
	Expired   bool        `json:"expired"`
}

// Status returns the effective plan. Users without a subscription row are
// on FREE; lapsed premium plans report FREE with Expired set.
func (s *SubscriptionService) Status(ctx context.Context, userID int64) (*SubscriptionStatus, error) {
	sub, err := s.repo.GetSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.statusOf(sub), nil
}

// IsPremium reports whether the user currently has premium features.
func (s *SubscriptionService) IsPremium(ctx context.Context, userID int64) (bool, error) {
	sub, err := s.repo.GetSubscription(ctx, userID)
	if err != nil {
		return false, err
	}
	return sub.PremiumAt(s.now()), nil
}

// Activate puts the user on plan. Premium time is added on top of any
// remaining premium time.
func (s *SubscriptionService) Activate(ctx context.Context, userID int64, plan domain.Plan, months int) (*SubscriptionStatus, error) {
	switch plan {
	case domain.PlanFree:
		if err := s.Cancel(ctx, userID); err != nil {
			return nil, err
		}
		return s.Status(ctx, userID)
	case domain.PlanPremium:
	default:
		return nil, invalid("plan must be FREE or PREMIUM")
	}
	if months < 1 || months > maxSubscriptionMonths {
		return nil, invalid("months must be within [1, %d]", maxSubscriptionMonths)
	}

	now := s.now()
	current, err := s.repo.GetSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}

	start := now
	if current.PremiumAt(now) {
		if current.ExpiresAt == nil {
			return s.statusOf(current), nil
		}
		start = *current.ExpiresAt
	}
	expires := start.AddDate(0, months, 0).UTC()

	sub := &domain.Subscription{UserID: userID, Plan: domain.PlanPremium, ExpiresAt: &expires, UpdatedAt: now.UTC()}
	if err := s.repo.UpsertSubscription(ctx, sub); err != nil {
		return nil, err
	}
	slog.Info("subscription_event", "event", "premium_activated", "user_id", userID, "months", months, "expires_at", expires)
	return s.statusOf(sub), nil
}

// Cancel moves the user back to FREE.
func (s *SubscriptionService) Cancel(ctx context.Context, userID int64) error {
	sub := &domain.Subscription{UserID: userID, Plan: domain.PlanFree, UpdatedAt: s.now().UTC()}
	if err := s.repo.UpsertSubscription(ctx, sub); err != nil {
		return err
	}
	slog.Info("subscription_event", "event", "subscription_cancelled", "user_id", userID)
	return nil
}

func (s *SubscriptionService) statusOf(sub *domain.Subscription) *SubscriptionStatus {
	if sub == nil {
		return &SubscriptionStatus{Plan: domain.PlanFree}
	}
	if sub.PremiumAt(s.now()) {
		return &SubscriptionStatus{Plan: domain.PlanPremium, Premium: true, ExpiresAt: sub.ExpiresAt}
	}
	return &SubscriptionStatus{
		Plan:      domain.PlanFree,
		ExpiresAt: sub.ExpiresAt,
		Expired:   sub.Plan == domain.PlanPremium,
	}
}
