package domain

import (
	"context"
	"time"
)

// MealType is the meal slot a diary entry belongs to.
type MealType string

const (
	MealBreakfast MealType = "BREAKFAST"
	MealLunch     MealType = "LUNCH"
	MealDinner    MealType = "DINNER"
	MealSnack     MealType = "SNACK"
)

// MealTypes lists meal slots in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// ValidMealType reports whether m is a known meal slot.
func ValidMealType(m MealType) bool {
	for _, t := range MealTypes {
		if t == m {
			return true
		}
	}
	return false
}

// DiaryEntry is one food logged against a meal on a local day. The food name
// and nutrition are snapshotted at write time.
type DiaryEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	FoodID    int64     `json:"foodId"`
	FoodName  string    `json:"foodName"`
	Day       string    `json:"day"`
	Meal      MealType  `json:"meal"`
	Grams     float64   `json:"grams"`
	Nutrition Nutrition `json:"nutrition"`
	CreatedAt time.Time `json:"createdAt"`
}

// DiaryRepository is the port for diary persistence.
type DiaryRepository interface {
	AddDiaryEntry(ctx context.Context, e *DiaryEntry) (int64, error)
	GetDiaryEntry(ctx context.Context, userID, id int64) (*DiaryEntry, error)
	UpdateDiaryEntry(ctx context.Context, e *DiaryEntry) error
	DeleteDiaryEntry(ctx context.Context, userID, id int64) (bool, error)
	ListDiaryEntries(ctx context.Context, userID int64, day string) ([]DiaryEntry, error)
}
