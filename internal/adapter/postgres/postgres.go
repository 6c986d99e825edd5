// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bodydry/internal/domain"

	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique index conflict.
const uniqueViolation = pq.ErrorCode("23505")

// mapWriteError turns unique index conflicts into domain.ErrDuplicate.
func mapWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, pqErr.Constraint)
	}
	return err
}

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Ensure interfaces are met.
var (
	_ domain.WeightRepository       = (*DB)(nil)
	_ domain.WaterRepository        = (*DB)(nil)
	_ domain.UserRepository         = (*DB)(nil)
	_ domain.ProfileRepository      = (*DB)(nil)
	_ domain.FoodRepository         = (*DB)(nil)
	_ domain.DiaryRepository        = (*DB)(nil)
	_ domain.SubscriptionRepository = (*DB)(nil)
	_ domain.SessionRepository      = (*SessionRepo)(nil)
)

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := NewFromDB(s)
	if err := d.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// NewFromDB wraps an existing connection without migrating it.
func NewFromDB(s *sql.DB) *DB {
	return &DB{sql: s}
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Ping checks that the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

var schema = []string{
	"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, email TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL DEFAULT '', created_at TIMESTAMPTZ NOT NULL);",
	"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, user_agent TEXT NOT NULL DEFAULT '', ip TEXT NOT NULL DEFAULT '', expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
	"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
	"CREATE TABLE IF NOT EXISTS weight_events (id BIGSERIAL PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, value DOUBLE PRECISION NOT NULL, unit TEXT NOT NULL CHECK(unit IN ('kg','lb')), created_at TIMESTAMPTZ NOT NULL);",
	"CREATE INDEX IF NOT EXISTS idx_weight_events_user_created ON weight_events(user_id, created_at);",
	"CREATE TABLE IF NOT EXISTS water_events (id BIGSERIAL PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, delta_ml INTEGER NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
	"CREATE INDEX IF NOT EXISTS idx_water_events_user_created ON water_events(user_id, created_at);",
	"CREATE TABLE IF NOT EXISTS profiles (user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE, display_name TEXT NOT NULL DEFAULT '', weight_kg DOUBLE PRECISION NOT NULL DEFAULT 0, height_cm DOUBLE PRECISION NOT NULL DEFAULT 0, birth_date DATE, gender TEXT NOT NULL DEFAULT '', activity_level TEXT NOT NULL DEFAULT '', goal TEXT NOT NULL DEFAULT '', calories INTEGER NOT NULL, protein INTEGER NOT NULL, carbs INTEGER NOT NULL, fats INTEGER NOT NULL, water INTEGER NOT NULL, updated_at TIMESTAMPTZ NOT NULL);",
	"CREATE TABLE IF NOT EXISTS foods (id BIGSERIAL PRIMARY KEY, name TEXT NOT NULL, brand TEXT NOT NULL DEFAULT '', barcode TEXT, calories DOUBLE PRECISION NOT NULL, protein DOUBLE PRECISION NOT NULL, carbs DOUBLE PRECISION NOT NULL, fats DOUBLE PRECISION NOT NULL, created_by BIGINT REFERENCES users(id) ON DELETE SET NULL, created_at TIMESTAMPTZ NOT NULL);",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_foods_barcode ON foods(barcode) WHERE barcode IS NOT NULL;",
	"CREATE INDEX IF NOT EXISTS idx_foods_name ON foods(lower(name));",
	"CREATE TABLE IF NOT EXISTS diary_entries (id BIGSERIAL PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, food_id BIGINT NOT NULL REFERENCES foods(id), food_name TEXT NOT NULL, day DATE NOT NULL, meal TEXT NOT NULL CHECK(meal IN ('BREAKFAST','LUNCH','DINNER','SNACK')), grams DOUBLE PRECISION NOT NULL, calories DOUBLE PRECISION NOT NULL, protein DOUBLE PRECISION NOT NULL, carbs DOUBLE PRECISION NOT NULL, fats DOUBLE PRECISION NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
	"CREATE INDEX IF NOT EXISTS idx_diary_entries_user_day ON diary_entries(user_id, day);",
	"CREATE TABLE IF NOT EXISTS subscriptions (user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE, plan TEXT NOT NULL CHECK(plan IN ('FREE','PREMIUM')), expires_at TIMESTAMPTZ, updated_at TIMESTAMPTZ NOT NULL);",
}

// Migrate creates the schema if needed and seeds the food catalogue when it
// is empty. Every statement is idempotent.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	var foodCount int
	if err := d.sql.QueryRowContext(ctx, "SELECT COUNT(1) FROM foods;").Scan(&foodCount); err != nil {
		return fmt.Errorf("migrate: count foods: %w", err)
	}
	if foodCount == 0 {
		for _, f := range domain.StarterFoods {
			if _, err := d.CreateFood(ctx, &f); err != nil {
				return fmt.Errorf("migrate: seed foods: %w", err)
			}
		}
	}
	return nil
}
