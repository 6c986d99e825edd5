package domain

import (
	"math"
	"time"
)

const (
	defaultAge   = 25
	defaultBMR   = 2000.0
	defaultWater = 2500

	minCaloriesMale  = 1500.0
	minCaloriesOther = 1200.0

	minWater = 1500.0
	maxWater = 5000.0

	waterPerKg = 33.0

	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramFat     = 9.0
)

// Goals are the daily nutrition and hydration targets for a user.
type Goals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
	Water    int `json:"water"`
}

// DefaultGoals is returned when no profile is available.
var DefaultGoals = Goals{Calories: 2000, Protein: 150, Carbs: 200, Fats: 65, Water: 2500}

// Macros holds daily macronutrient targets in grams.
type Macros struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fats    int `json:"fats"`
}

type macroRatio struct {
	protein, carbs, fats float64
}

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.20,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.90,
}

var goalMultipliers = map[Goal]float64{
	GoalReduce:        0.80,
	GoalMaintain:      1.00,
	GoalBuild:         1.15,
	GoalAggressiveCut: 0.75,
}

var macroRatios = map[Goal]macroRatio{
	GoalReduce:        {protein: 0.35, carbs: 0.35, fats: 0.30},
	GoalMaintain:      {protein: 0.25, carbs: 0.50, fats: 0.25},
	GoalBuild:         {protein: 0.30, carbs: 0.50, fats: 0.20},
	GoalAggressiveCut: {protein: 0.40, carbs: 0.30, fats: 0.30},
}

// waterActivityFactors has no entry for unknown levels; those get x1.
var waterActivityFactors = map[ActivityLevel]float64{
	ActivitySedentary:  0.9,
	ActivityLight:      1.0,
	ActivityModerate:   1.1,
	ActivityActive:     1.2,
	ActivityVeryActive: 1.3,
}

// DeriveAge returns the age in whole years as of today.
func DeriveAge(birthDate time.Time) int {
	return AgeOn(birthDate, time.Now())
}

// AgeOn returns the age in whole years on the given day. A zero birth date,
// or one that yields an age of zero or less, gives the default age of 25.
func AgeOn(birthDate, today time.Time) int {
	if birthDate.IsZero() {
		return defaultAge
	}
	age := today.Year() - birthDate.Year()
	if today.Month() < birthDate.Month() ||
		(today.Month() == birthDate.Month() && today.Day() < birthDate.Day()) {
		age--
	}
	if age <= 0 {
		return defaultAge
	}
	return age
}

// ComputeBMR estimates basal metabolic rate in kcal/day with the
// Mifflin-St Jeor equation. Missing weight, height or age gives 2000.
func ComputeBMR(weightKg, heightCm float64, age int, gender Gender) float64 {
	if missing(weightKg) || missing(heightCm) || age == 0 {
		return defaultBMR
	}
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == GenderMale {
		return base + 5
	}
	return base - 161
}

// ComputeDailyCalories returns the daily calorie target: BMR scaled by the
// activity and goal multipliers, floored at 1500 for men and 1200 otherwise.
func ComputeDailyCalories(p BodyParams) int {
	age := DeriveAge(p.BirthDate)
	bmr := ComputeBMR(p.WeightKg, p.HeightCm, age, p.Gender)

	tdee := bmr * activityMultiplier(p.ActivityLevel)
	target := tdee * goalMultiplier(p.Goal)

	floor := minCaloriesOther
	if p.Gender == GenderMale {
		floor = minCaloriesMale
	}
	return int(math.Round(math.Max(target, floor)))
}

// ComputeMacros splits calories into protein, carbs and fats by the goal's
// ratio table. Protein never drops below a per-kilogram minimum, even when
// that pushes macro energy past the calorie target.
func ComputeMacros(calories int, goal Goal, weightKg float64) Macros {
	r, ok := macroRatios[goal]
	if !ok {
		r = macroRatios[GoalMaintain]
	}
	cal := float64(calories)
	protein := int(math.Round(cal * r.protein / kcalPerGramProtein))
	carbs := int(math.Round(cal * r.carbs / kcalPerGramCarbs))
	fats := int(math.Round(cal * r.fats / kcalPerGramFat))

	perKg := 1.6
	if goal == GoalBuild || goal == GoalAggressiveCut {
		perKg = 2.0
	}
	if !missing(weightKg) {
		protein = max(protein, int(math.Round(weightKg*perKg)))
	}

	return Macros{Protein: protein, Carbs: carbs, Fats: fats}
}

// ComputeWaterGoal returns the daily water target in mL, clamped to
// [1500, 5000]. Missing weight gives 2500.
func ComputeWaterGoal(weightKg float64, level ActivityLevel, goal Goal) int {
	if missing(weightKg) {
		return defaultWater
	}
	water := weightKg * waterPerKg
	if f, ok := waterActivityFactors[level]; ok {
		water *= f
	}
	if goal == GoalAggressiveCut || goal == GoalReduce {
		water *= 1.1
	}
	return int(math.Round(math.Min(math.Max(water, minWater), maxWater)))
}

// ComputeAllGoals derives the full set of daily goals from a profile. A nil
// profile gives DefaultGoals.
func ComputeAllGoals(p *BodyParams) Goals {
	if p == nil {
		return DefaultGoals
	}
	calories := ComputeDailyCalories(*p)
	m := ComputeMacros(calories, p.Goal, p.WeightKg)
	return Goals{
		Calories: calories,
		Protein:  m.Protein,
		Carbs:    m.Carbs,
		Fats:     m.Fats,
		Water:    ComputeWaterGoal(p.WeightKg, p.ActivityLevel, p.Goal),
	}
}

// missing reports whether a measurement was not provided. NaN counts as
// missing.
func missing(v float64) bool {
	return v == 0 || math.IsNaN(v)
}

func activityMultiplier(level ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return activityMultipliers[ActivityModerate]
}

func goalMultiplier(goal Goal) float64 {
	if m, ok := goalMultipliers[goal]; ok {
		return m
	}
	return goalMultipliers[GoalMaintain]
}
