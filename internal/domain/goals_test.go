package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bodydry/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// yearsAgo returns a birth date whose birthday has already passed this year.
func yearsAgo(n int) time.Time {
	return time.Now().AddDate(-n, 0, -1)
}

func TestAgeOn(t *testing.T) {
	tests := []struct {
		name  string
		birth time.Time
		today time.Time
		want  int
	}{
		{"birthday passed", date(2000, 3, 10), date(2025, 6, 1), 25},
		{"birthday today", date(2000, 6, 15), date(2025, 6, 15), 25},
		{"birthday tomorrow", date(2000, 6, 15), date(2025, 6, 14), 24},
		{"later month", date(2000, 12, 1), date(2025, 6, 14), 24},
		{"zero birth date", time.Time{}, date(2025, 6, 14), 25},
		{"born this year", date(2025, 1, 1), date(2025, 6, 1), 25},
		{"born in the future", date(2030, 1, 1), date(2025, 6, 1), 25},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.AgeOn(tc.birth, tc.today))
		})
	}
}

func TestDeriveAge_BirthdayNotYetOccurred(t *testing.T) {
	birth := time.Now().AddDate(-25, 0, 1)
	assert.Equal(t, 24, domain.DeriveAge(birth))
}

func TestComputeBMR(t *testing.T) {
	assert.InDelta(t, 1648.75, domain.ComputeBMR(70, 175, 30, domain.GenderMale), 1e-9)
	assert.InDelta(t, 1482.75, domain.ComputeBMR(70, 175, 30, domain.GenderFemale), 1e-9)

	for _, tc := range []struct {
		name           string
		weight, height float64
		age            int
	}{
		{"no weight", 0, 175, 30},
		{"no height", 70, 0, 30},
		{"no age", 70, 175, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, 2000.0, domain.ComputeBMR(tc.weight, tc.height, tc.age, domain.GenderMale))
		})
	}
}

func TestComputeDailyCalories(t *testing.T) {
	base := domain.BodyParams{
		WeightKg:      70,
		HeightCm:      175,
		BirthDate:     yearsAgo(30),
		Gender:        domain.GenderMale,
		ActivityLevel: domain.ActivityModerate,
		Goal:          domain.GoalMaintain,
	}
	assert.Equal(t, 2556, domain.ComputeDailyCalories(base))

	female := base
	female.Gender = domain.GenderFemale
	assert.Equal(t, 2298, domain.ComputeDailyCalories(female))

	unknown := base
	unknown.ActivityLevel = "COUCH"
	unknown.Goal = "WHATEVER"
	assert.Equal(t, 2556, domain.ComputeDailyCalories(unknown), "unknown categories fall back to moderate/maintain")

	noWeight := base
	noWeight.WeightKg = 0
	assert.Equal(t, 3100, domain.ComputeDailyCalories(noWeight))
}

func TestComputeDailyCalories_Floors(t *testing.T) {
	small := domain.BodyParams{
		WeightKg:      40,
		HeightCm:      150,
		BirthDate:     yearsAgo(60),
		Gender:        domain.GenderFemale,
		ActivityLevel: domain.ActivitySedentary,
		Goal:          domain.GoalAggressiveCut,
	}
	assert.Equal(t, 1200, domain.ComputeDailyCalories(small))

	small.Gender = domain.GenderMale
	assert.Equal(t, 1500, domain.ComputeDailyCalories(small))
}

func TestComputeMacros(t *testing.T) {
	tests := []struct {
		name     string
		calories int
		goal     domain.Goal
		weight   float64
		want     domain.Macros
	}{
		{"maintain ratio wins", 2000, domain.GoalMaintain, 70, domain.Macros{Protein: 125, Carbs: 250, Fats: 56}},
		{"reduce", 1800, domain.GoalReduce, 70, domain.Macros{Protein: 158, Carbs: 158, Fats: 60}},
		{"build", 3000, domain.GoalBuild, 80, domain.Macros{Protein: 225, Carbs: 375, Fats: 67}},
		{"aggressive cut floor wins", 1500, domain.GoalAggressiveCut, 120, domain.Macros{Protein: 240, Carbs: 113, Fats: 50}},
		{"maintain floor wins", 1200, domain.GoalMaintain, 100, domain.Macros{Protein: 160, Carbs: 150, Fats: 33}},
		{"unknown goal uses maintain", 2000, "BULK", 70, domain.Macros{Protein: 125, Carbs: 250, Fats: 56}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.ComputeMacros(tc.calories, tc.goal, tc.weight))
		})
	}
}

func TestComputeWaterGoal(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		level  domain.ActivityLevel
		goal   domain.Goal
		want   int
	}{
		{"moderate maintain", 70, domain.ActivityModerate, domain.GoalMaintain, 2541},
		{"sedentary reduce", 70, domain.ActivitySedentary, domain.GoalReduce, 2287},
		{"unknown level", 70, "", domain.GoalMaintain, 2310},
		{"clamped low", 30, domain.ActivitySedentary, domain.GoalBuild, 1500},
		{"clamped high", 200, domain.ActivityVeryActive, domain.GoalAggressiveCut, 5000},
		{"no weight", 0, domain.ActivityActive, domain.GoalReduce, 2500},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.ComputeWaterGoal(tc.weight, tc.level, tc.goal))
		})
	}
}

func TestNaNMeasurementsFallBack(t *testing.T) {
	nan := math.NaN()
	assert.Equal(t, 2500, domain.ComputeWaterGoal(nan, domain.ActivityActive, domain.GoalReduce))
	assert.InDelta(t, 2000, domain.ComputeBMR(nan, 180, 30, domain.GenderMale), 0)
	assert.InDelta(t, 2000, domain.ComputeBMR(80, nan, 30, domain.GenderFemale), 0)

	g := domain.ComputeAllGoals(&domain.BodyParams{
		WeightKg:      nan,
		HeightCm:      180,
		BirthDate:     yearsAgo(30),
		Gender:        domain.GenderMale,
		ActivityLevel: domain.ActivityModerate,
		Goal:          domain.GoalMaintain,
	})
	assert.Equal(t, 2500, g.Water)
	assert.Equal(t, 3100, g.Calories)
	assert.Equal(t, 194, g.Protein)
}

func TestComputeAllGoals(t *testing.T) {
	assert.Equal(t, domain.Goals{Calories: 2000, Protein: 150, Carbs: 200, Fats: 65, Water: 2500}, domain.ComputeAllGoals(nil))

	p := &domain.BodyParams{
		WeightKg:      70,
		HeightCm:      175,
		BirthDate:     yearsAgo(30),
		Gender:        domain.GenderMale,
		ActivityLevel: domain.ActivityModerate,
		Goal:          domain.GoalMaintain,
	}
	got := domain.ComputeAllGoals(p)
	assert.Equal(t, domain.Goals{Calories: 2556, Protein: 160, Carbs: 320, Fats: 71, Water: 2541}, got)
	assert.Equal(t, got, domain.ComputeAllGoals(p), "same inputs give the same outputs")
}

func TestComputeAllGoals_Bounds(t *testing.T) {
	genders := []domain.Gender{domain.GenderMale, domain.GenderFemale}
	levels := []domain.ActivityLevel{
		domain.ActivitySedentary, domain.ActivityLight, domain.ActivityModerate,
		domain.ActivityActive, domain.ActivityVeryActive,
	}
	goals := []domain.Goal{domain.GoalReduce, domain.GoalMaintain, domain.GoalBuild, domain.GoalAggressiveCut}

	for _, g := range genders {
		for _, l := range levels {
			for _, goal := range goals {
				for _, w := range []float64{35, 60, 95, 180} {
					for _, age := range []int{18, 45, 90} {
						p := &domain.BodyParams{
							WeightKg: w, HeightCm: 165, BirthDate: yearsAgo(age),
							Gender: g, ActivityLevel: l, Goal: goal,
						}
						got := domain.ComputeAllGoals(p)
						floor := 1200
						if g == domain.GenderMale {
							floor = 1500
						}
						require.GreaterOrEqual(t, got.Calories, floor)
						require.GreaterOrEqual(t, got.Water, 1500)
						require.LessOrEqual(t, got.Water, 5000)
						require.GreaterOrEqual(t, got.Carbs, 0)
						require.GreaterOrEqual(t, got.Fats, 0)
					}
				}
			}
		}
	}
}

func TestCategoryValidation(t *testing.T) {
	assert.True(t, domain.ValidGender(domain.GenderFemale))
	assert.False(t, domain.ValidGender("OTHER"))
	assert.True(t, domain.ValidActivityLevel(domain.ActivityVeryActive))
	assert.False(t, domain.ValidActivityLevel("EXTREME"))
	assert.True(t, domain.ValidGoal(domain.GoalAggressiveCut))
	assert.False(t, domain.ValidGoal(""))
}
