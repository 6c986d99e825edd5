package app

import (
	"context"
	"fmt"
	"time"

	"bodydry/internal/domain"
)

const maxEntryGrams = 5000

// DiaryService manages the per-day meal diary.
type DiaryService struct {
	entries domain.DiaryRepository
	foods   domain.FoodRepository
	goals   GoalsProvider
}

// NewDiaryService creates a DiaryService.
func NewDiaryService(entries domain.DiaryRepository, foods domain.FoodRepository, goals GoalsProvider) *DiaryService {
	return &DiaryService{entries: entries, foods: foods, goals: goals}
}

// AddEntryInput is a request to log a food.
type AddEntryInput struct {
	Day    string          `json:"day"`
	Meal   domain.MealType `json:"meal"`
	FoodID int64           `json:"foodId"`
	Grams  float64         `json:"grams"`
}

// MealGroup is the entries of one meal slot with their totals.
type MealGroup struct {
	Meal    domain.MealType     `json:"meal"`
	Entries []domain.DiaryEntry `json:"entries"`
	Totals  domain.Nutrition    `json:"totals"`
}

// GoalPercent is consumption as an integer percentage of each goal.
type GoalPercent struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
}

// DaySummary is the diary view for one local day.
type DaySummary struct {
	Day       string           `json:"day"`
	Meals     []MealGroup      `json:"meals"`
	Totals    domain.Nutrition `json:"totals"`
	Goals     domain.Goals     `json:"goals"`
	Remaining domain.Nutrition `json:"remaining"`
	Percent   GoalPercent      `json:"percent"`
}

// AddEntry logs grams of a food against a meal and snapshots its nutrition.
func (s *DiaryService) AddEntry(ctx context.Context, userID int64, in AddEntryInput) (*domain.DiaryEntry, error) {
	if !validDay(in.Day) {
		return nil, invalid("day must be YYYY-MM-DD")
	}
	if !domain.ValidMealType(in.Meal) {
		return nil, invalid("meal must be one of BREAKFAST, LUNCH, DINNER, SNACK")
	}
	if err := validateGrams(in.Grams); err != nil {
		return nil, err
	}
	food, err := s.food(ctx, in.FoodID)
	if err != nil {
		return nil, err
	}

	e := &domain.DiaryEntry{
		UserID:    userID,
		FoodID:    food.ID,
		FoodName:  food.Name,
		Day:       in.Day,
		Meal:      in.Meal,
		Grams:     in.Grams,
		Nutrition: food.NutrientsFor(in.Grams),
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.entries.AddDiaryEntry(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("add diary entry: %w", err)
	}
	e.ID = id
	return e, nil
}

// UpdateEntryGrams changes the portion size of an entry and recomputes its
// nutrition from the current food values.
func (s *DiaryService) UpdateEntryGrams(ctx context.Context, userID, id int64, grams float64) (*domain.DiaryEntry, error) {
	if err := validateGrams(grams); err != nil {
		return nil, err
	}
	e, err := s.entries.GetDiaryEntry(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrEntryNotFound
	}
	food, err := s.food(ctx, e.FoodID)
	if err != nil {
		return nil, err
	}

	e.Grams = grams
	e.Nutrition = food.NutrientsFor(grams)
	if err := s.entries.UpdateDiaryEntry(ctx, e); err != nil {
		return nil, fmt.Errorf("update diary entry: %w", err)
	}
	return e, nil
}

// DeleteEntry removes one of the user's entries.
func (s *DiaryService) DeleteEntry(ctx context.Context, userID, id int64) error {
	deleted, err := s.entries.DeleteDiaryEntry(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEntryNotFound
	}
	return nil
}

// Day builds the diary summary for a local day: entries grouped by meal,
// totals against the user's goals, what remains and percentages.
func (s *DiaryService) Day(ctx context.Context, userID int64, day string) (*DaySummary, error) {
	if !validDay(day) {
		return nil, invalid("day must be YYYY-MM-DD")
	}
	entries, err := s.entries.ListDiaryEntries(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.Goals(ctx, userID)
	if err != nil {
		return nil, err
	}

	byMeal := make(map[domain.MealType]*MealGroup, len(domain.MealTypes))
	meals := make([]MealGroup, len(domain.MealTypes))
	for i, m := range domain.MealTypes {
		meals[i] = MealGroup{Meal: m, Entries: []domain.DiaryEntry{}}
		byMeal[m] = &meals[i]
	}

	var totals domain.Nutrition
	for _, e := range entries {
		g, ok := byMeal[e.Meal]
		if !ok {
			continue
		}
		g.Entries = append(g.Entries, e)
		g.Totals = g.Totals.Add(e.Nutrition)
		totals = totals.Add(e.Nutrition)
	}

	return &DaySummary{
		Day:    day,
		Meals:  meals,
		Totals: totals,
		Goals:  goals,
		Remaining: domain.Nutrition{
			Calories: float64(goals.Calories) - totals.Calories,
			Protein:  float64(goals.Protein) - totals.Protein,
			Carbs:    float64(goals.Carbs) - totals.Carbs,
			Fats:     float64(goals.Fats) - totals.Fats,
		},
		Percent: GoalPercent{
			Calories: percentOf(totals.Calories, float64(goals.Calories)),
			Protein:  percentOf(totals.Protein, float64(goals.Protein)),
			Carbs:    percentOf(totals.Carbs, float64(goals.Carbs)),
			Fats:     percentOf(totals.Fats, float64(goals.Fats)),
		},
	}, nil
}

// CaloriesForDay returns total calories logged on a local day.
func (s *DiaryService) CaloriesForDay(ctx context.Context, userID int64, day string) (float64, error) {
	entries, err := s.entries.ListDiaryEntries(ctx, userID, day)
	if err != nil {
		return 0, err
	}
	var kcal float64
	for _, e := range entries {
		kcal += e.Nutrition.Calories
	}
	return kcal, nil
}

func (s *DiaryService) food(ctx context.Context, id int64) (*domain.Food, error) {
	f, err := s.foods.GetFood(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFoodNotFound
	}
	return f, nil
}

func validateGrams(g float64) error {
	if g <= 0 || g > maxEntryGrams {
		return invalid("grams must be within (0, %d]", maxEntryGrams)
	}
	return nil
}
