package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"bodydry/internal/domain"
)

const foodColumns = "id, name, brand, barcode, calories, protein, carbs, fats, created_by, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFood(row rowScanner) (*domain.Food, error) {
	var (
		f         domain.Food
		barcode   sql.NullString
		createdBy sql.NullInt64
	)
	err := row.Scan(&f.ID, &f.Name, &f.Brand, &barcode,
		&f.CaloriesPer100g, &f.ProteinPer100g, &f.CarbsPer100g, &f.FatsPer100g,
		&createdBy, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	f.Barcode = barcode.String
	if createdBy.Valid {
		id := createdBy.Int64
		f.CreatedBy = &id
	}
	return &f, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// SearchFoods matches query case-insensitively against name and brand.
func (d *DB) SearchFoods(ctx context.Context, query string, limit int) ([]domain.Food, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+foodColumns+" FROM foods WHERE lower(name) LIKE $1 OR lower(brand) LIKE $1 ORDER BY name, id LIMIT $2;",
		pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Food, 0, limit)
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

func (d *DB) getFoodWhere(ctx context.Context, where string, arg any) (*domain.Food, error) {
	f, err := scanFood(d.sql.QueryRowContext(ctx, "SELECT "+foodColumns+" FROM foods WHERE "+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return f, err
}

// GetFood retrieves a food by ID.
func (d *DB) GetFood(ctx context.Context, id int64) (*domain.Food, error) {
	return d.getFoodWhere(ctx, "id = $1", id)
}

// GetFoodByBarcode retrieves a food by barcode.
func (d *DB) GetFoodByBarcode(ctx context.Context, barcode string) (*domain.Food, error) {
	if barcode == "" {
		return nil, nil
	}
	return d.getFoodWhere(ctx, "barcode = $1", barcode)
}

// CreateFood inserts a food and returns its ID.
func (d *DB) CreateFood(ctx context.Context, f *domain.Food) (int64, error) {
	barcode := sql.NullString{String: f.Barcode, Valid: f.Barcode != ""}
	var createdBy sql.NullInt64
	if f.CreatedBy != nil {
		createdBy = sql.NullInt64{Int64: *f.CreatedBy, Valid: true}
	}
	createdAt := f.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO foods (name, brand, barcode, calories, protein, carbs, fats, created_by, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id;",
		f.Name, f.Brand, barcode, f.CaloriesPer100g, f.ProteinPer100g, f.CarbsPer100g, f.FatsPer100g, createdBy, createdAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, mapWriteError(err)
	}
	return id, nil
}
