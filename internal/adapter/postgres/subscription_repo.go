package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bodydry/internal/domain"
)

// GetSubscription returns the user's subscription, or nil when none exists.
func (d *DB) GetSubscription(ctx context.Context, userID int64) (*domain.Subscription, error) {
	var (
		s   domain.Subscription
		exp sql.NullTime
	)
	err := d.sql.QueryRowContext(ctx,
		"SELECT user_id, plan, expires_at, updated_at FROM subscriptions WHERE user_id = $1;", userID,
	).Scan(&s.UserID, &s.Plan, &exp, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if exp.Valid {
		t := exp.Time
		s.ExpiresAt = &t
	}
	return &s, nil
}

// UpsertSubscription creates or replaces the user's subscription.
func (d *DB) UpsertSubscription(ctx context.Context, s *domain.Subscription) error {
	var exp sql.NullTime
	if s.ExpiresAt != nil {
		exp = sql.NullTime{Time: s.ExpiresAt.UTC(), Valid: true}
	}
	updated := s.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO subscriptions (user_id, plan, expires_at, updated_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET plan = EXCLUDED.plan, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at;`,
		s.UserID, string(s.Plan), exp, updated.UTC())
	return err
}
