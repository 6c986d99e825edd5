package domain

import (
	"context"
	"time"
)

// Food is a food database item with nutrient values per 100 g.
type Food struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Brand           string    `json:"brand,omitempty"`
	Barcode         string    `json:"barcode,omitempty"`
	CaloriesPer100g float64   `json:"caloriesPer100g"`
	ProteinPer100g  float64   `json:"proteinPer100g"`
	CarbsPer100g    float64   `json:"carbsPer100g"`
	FatsPer100g     float64   `json:"fatsPer100g"`
	CreatedBy       *int64    `json:"createdBy,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Nutrition is an absolute amount of energy (kcal) and macronutrients (g).
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// NutrientsFor scales the per-100 g values to a portion.
func (f Food) NutrientsFor(grams float64) Nutrition {
	k := grams / 100
	return Nutrition{
		Calories: f.CaloriesPer100g * k,
		Protein:  f.ProteinPer100g * k,
		Carbs:    f.CarbsPer100g * k,
		Fats:     f.FatsPer100g * k,
	}
}

// Add returns the sum of n and o.
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fats:     n.Fats + o.Fats,
	}
}

// FoodRepository is the port for the food database.
type FoodRepository interface {
	SearchFoods(ctx context.Context, query string, limit int) ([]Food, error)
	GetFood(ctx context.Context, id int64) (*Food, error)
	GetFoodByBarcode(ctx context.Context, barcode string) (*Food, error)
	CreateFood(ctx context.Context, f *Food) (int64, error)
}
