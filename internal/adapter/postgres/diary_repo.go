package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bodydry/internal/domain"
)

const diaryColumns = "id, user_id, food_id, food_name, to_char(day, 'YYYY-MM-DD'), meal, grams, calories, protein, carbs, fats, created_at"

func scanDiaryEntry(row rowScanner) (*domain.DiaryEntry, error) {
	var e domain.DiaryEntry
	err := row.Scan(&e.ID, &e.UserID, &e.FoodID, &e.FoodName, &e.Day, &e.Meal, &e.Grams,
		&e.Nutrition.Calories, &e.Nutrition.Protein, &e.Nutrition.Carbs, &e.Nutrition.Fats, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// AddDiaryEntry inserts a diary entry and returns its ID.
func (d *DB) AddDiaryEntry(ctx context.Context, e *domain.DiaryEntry) (int64, error) {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO diary_entries (user_id, food_id, food_name, day, meal, grams, calories, protein, carbs, fats, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id;`,
		e.UserID, e.FoodID, e.FoodName, e.Day, string(e.Meal), e.Grams,
		e.Nutrition.Calories, e.Nutrition.Protein, e.Nutrition.Carbs, e.Nutrition.Fats, createdAt.UTC(),
	).Scan(&id)
	return id, err
}

// GetDiaryEntry retrieves one of the user's entries.
func (d *DB) GetDiaryEntry(ctx context.Context, userID, id int64) (*domain.DiaryEntry, error) {
	e, err := scanDiaryEntry(d.sql.QueryRowContext(ctx,
		"SELECT "+diaryColumns+" FROM diary_entries WHERE id = $1 AND user_id = $2;", id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

// UpdateDiaryEntry replaces the portion and nutrition of an entry.
func (d *DB) UpdateDiaryEntry(ctx context.Context, e *domain.DiaryEntry) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE diary_entries SET grams = $1, calories = $2, protein = $3, carbs = $4, fats = $5 WHERE id = $6 AND user_id = $7;",
		e.Grams, e.Nutrition.Calories, e.Nutrition.Protein, e.Nutrition.Carbs, e.Nutrition.Fats, e.ID, e.UserID)
	return err
}

// DeleteDiaryEntry removes one of the user's entries.
func (d *DB) DeleteDiaryEntry(ctx context.Context, userID, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM diary_entries WHERE id = $1 AND user_id = $2;", id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListDiaryEntries returns the user's entries for a day in insertion order.
func (d *DB) ListDiaryEntries(ctx context.Context, userID int64, day string) ([]domain.DiaryEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+diaryColumns+" FROM diary_entries WHERE user_id = $1 AND day = $2 ORDER BY id;", userID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.DiaryEntry, 0)
	for rows.Next() {
		e, err := scanDiaryEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}
