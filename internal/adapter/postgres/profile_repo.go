package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bodydry/internal/domain"
)

// GetProfile returns the user's profile, or nil when none was saved.
func (d *DB) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	var (
		p     domain.Profile
		birth sql.NullTime
	)
	err := d.sql.QueryRowContext(ctx,
		`SELECT user_id, display_name, weight_kg, height_cm, birth_date, gender, activity_level, goal,
		        calories, protein, carbs, fats, water, updated_at
		   FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.DisplayName, &p.WeightKg, &p.HeightCm, &birth, &p.Gender, &p.ActivityLevel, &p.Goal,
		&p.Goals.Calories, &p.Goals.Protein, &p.Goals.Carbs, &p.Goals.Fats, &p.Goals.Water, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if birth.Valid {
		p.BirthDate = birth.Time
	}
	return &p, nil
}

// UpsertProfile creates or replaces the user's profile.
func (d *DB) UpsertProfile(ctx context.Context, p *domain.Profile) error {
	birth := sql.NullTime{Time: p.BirthDate, Valid: !p.BirthDate.IsZero()}
	updated := p.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO profiles (user_id, display_name, weight_kg, height_cm, birth_date, gender, activity_level, goal,
		                       calories, protein, carbs, fats, water, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (user_id) DO UPDATE SET
		   display_name = EXCLUDED.display_name,
		   weight_kg = EXCLUDED.weight_kg,
		   height_cm = EXCLUDED.height_cm,
		   birth_date = EXCLUDED.birth_date,
		   gender = EXCLUDED.gender,
		   activity_level = EXCLUDED.activity_level,
		   goal = EXCLUDED.goal,
		   calories = EXCLUDED.calories,
		   protein = EXCLUDED.protein,
		   carbs = EXCLUDED.carbs,
		   fats = EXCLUDED.fats,
		   water = EXCLUDED.water,
		   updated_at = EXCLUDED.updated_at`,
		p.UserID, p.DisplayName, p.WeightKg, p.HeightCm, birth, string(p.Gender), string(p.ActivityLevel), string(p.Goal),
		p.Goals.Calories, p.Goals.Protein, p.Goals.Carbs, p.Goals.Fats, p.Goals.Water, updated.UTC(),
	)
	return err
}
