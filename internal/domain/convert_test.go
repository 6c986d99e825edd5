package domain_test

import (
	"math"
	"testing"
	"time"

	"bodydry/internal/domain"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestConvertWeight(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		from, to string
		want     float64
	}{
		{"kg to lb", 100.0, "kg", "lb", 220.46226218},
		{"lb to kg", 220.46226218, "lb", "kg", 100.0},
		{"same unit kg", 80.0, "kg", "kg", 80.0},
		{"same unit lb", 180.0, "lb", "lb", 180.0},
		{"unknown units", 50.0, "st", "kg", 50.0},
		{"zero value", 0, "kg", "lb", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.ConvertWeight(tc.value, tc.from, tc.to)
			if !almostEqual(got, tc.want, 0.001) {
				t.Errorf("ConvertWeight(%v, %q, %q) = %v; want %v",
					tc.value, tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestFoodNutrientsFor(t *testing.T) {
	f := domain.Food{CaloriesPer100g: 250, ProteinPer100g: 10, CarbsPer100g: 30, FatsPer100g: 8}
	got := f.NutrientsFor(150)
	want := domain.Nutrition{Calories: 375, Protein: 15, Carbs: 45, Fats: 12}
	if !almostEqual(got.Calories, want.Calories, 1e-9) || !almostEqual(got.Protein, want.Protein, 1e-9) ||
		!almostEqual(got.Carbs, want.Carbs, 1e-9) || !almostEqual(got.Fats, want.Fats, 1e-9) {
		t.Fatalf("NutrientsFor(150) = %+v; want %+v", got, want)
	}

	sum := got.Add(f.NutrientsFor(50))
	if !almostEqual(sum.Calories, 500, 1e-9) {
		t.Fatalf("Add calories = %v; want 500", sum.Calories)
	}
}

func TestWeightEntryKg(t *testing.T) {
	e := domain.WeightEntry{Value: 176.37, Unit: domain.UnitLb}
	if !almostEqual(e.Kg(), 80, 0.01) {
		t.Fatalf("Kg() = %v; want ~80", e.Kg())
	}
	if !domain.ValidWeightUnit("kg") || !domain.ValidWeightUnit("lb") || domain.ValidWeightUnit("KG") {
		t.Fatal("unexpected ValidWeightUnit result")
	}
}

func TestSubscriptionPremiumAt(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Hour)

	tests := []struct {
		name string
		sub  *domain.Subscription
		want bool
	}{
		{"no subscription", nil, false},
		{"free plan", &domain.Subscription{Plan: domain.PlanFree}, false},
		{"premium without expiry", &domain.Subscription{Plan: domain.PlanPremium}, true},
		{"premium active", &domain.Subscription{Plan: domain.PlanPremium, ExpiresAt: &later}, true},
		{"premium lapsed", &domain.Subscription{Plan: domain.PlanPremium, ExpiresAt: &earlier}, false},
		{"premium expiring now", &domain.Subscription{Plan: domain.PlanPremium, ExpiresAt: &now}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.sub.PremiumAt(now); got != tc.want {
				t.Errorf("PremiumAt() = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestValidMealType(t *testing.T) {
	for _, m := range domain.MealTypes {
		if !domain.ValidMealType(m) {
			t.Errorf("ValidMealType(%q) = false", m)
		}
	}
	if domain.ValidMealType("BRUNCH") {
		t.Error("ValidMealType(BRUNCH) = true")
	}
}
