package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"bodydry/internal/domain"
)

const (
	defaultFoodSearchLimit = 20
	maxFoodSearchLimit     = 50
)

// FoodService serves the food database.
type FoodService struct {
	repo domain.FoodRepository
}

// NewFoodService creates a FoodService backed by the given repository.
func NewFoodService(repo domain.FoodRepository) *FoodService {
	return &FoodService{repo: repo}
}

// FoodInput describes a user-created food.
type FoodInput struct {
	Name            string  `json:"name"`
	Brand           string  `json:"brand"`
	Barcode         string  `json:"barcode"`
	CaloriesPer100g float64 `json:"caloriesPer100g"`
	ProteinPer100g  float64 `json:"proteinPer100g"`
	CarbsPer100g    float64 `json:"carbsPer100g"`
	FatsPer100g     float64 `json:"fatsPer100g"`
}

// Search finds foods whose name or brand contains query.
func (s *FoodService) Search(ctx context.Context, query string, limit int) ([]domain.Food, error) {
	if limit <= 0 {
		limit = defaultFoodSearchLimit
	}
	if limit > maxFoodSearchLimit {
		limit = maxFoodSearchLimit
	}
	return s.repo.SearchFoods(ctx, strings.TrimSpace(query), limit)
}

// Get returns a food by ID or ErrFoodNotFound.
func (s *FoodService) Get(ctx context.Context, id int64) (*domain.Food, error) {
	f, err := s.repo.GetFood(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFoodNotFound
	}
	return f, nil
}

// ByBarcode returns a food by barcode or ErrFoodNotFound.
func (s *FoodService) ByBarcode(ctx context.Context, barcode string) (*domain.Food, error) {
	f, err := s.repo.GetFoodByBarcode(ctx, strings.TrimSpace(barcode))
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFoodNotFound
	}
	return f, nil
}

// Create validates and stores a custom food owned by userID.
func (s *FoodService) Create(ctx context.Context, userID int64, in FoodInput) (*domain.Food, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if in.CaloriesPer100g < 0 || in.ProteinPer100g < 0 || in.CarbsPer100g < 0 || in.FatsPer100g < 0 {
		return nil, invalid("nutrient values must not be negative")
	}
	if in.ProteinPer100g+in.CarbsPer100g+in.FatsPer100g > 100 {
		return nil, invalid("macros exceed 100 g per 100 g")
	}
	macroKcal := 4*in.ProteinPer100g + 4*in.CarbsPer100g + 9*in.FatsPer100g
	if macroKcal > in.CaloriesPer100g*1.2+5 {
		return nil, invalid("calories are inconsistent with macros")
	}

	barcode := strings.TrimSpace(in.Barcode)
	if barcode != "" {
		existing, err := s.repo.GetFoodByBarcode(ctx, barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, invalid("barcode already exists")
		}
	}

	owner := userID
	f := &domain.Food{
		Name:            name,
		Brand:           strings.TrimSpace(in.Brand),
		Barcode:         barcode,
		CaloriesPer100g: in.CaloriesPer100g,
		ProteinPer100g:  in.ProteinPer100g,
		CarbsPer100g:    in.CarbsPer100g,
		FatsPer100g:     in.FatsPer100g,
		CreatedBy:       &owner,
		CreatedAt:       time.Now().UTC(),
	}
	id, err := s.repo.CreateFood(ctx, f)
	if errors.Is(err, domain.ErrDuplicate) {
		return nil, invalid("barcode already exists")
	}
	if err != nil {
		return nil, err
	}
	f.ID = id
	return f, nil
}
