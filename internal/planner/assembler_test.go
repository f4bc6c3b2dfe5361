package planner

import (
	"testing"
	"time"

	"meal-planner/internal/dates"
)

func TestAssemblePlan(t *testing.T) {
	now := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC) // Wednesday
	req := MealPlanRequest{Preferences: DefaultPreferences()}

	plan := AssemblePlan(req, now)

	if plan.ID != "1741770000000" {
		t.Errorf("ID = %q, want millisecond timestamp 1741770000000", plan.ID)
	}
	if plan.WeekOf.Weekday() != time.Wednesday {
		t.Errorf("WeekOf starts on %s, want Wednesday", plan.WeekOf.Weekday())
	}
	if !plan.WeekOf.Equal(now) {
		t.Errorf("WeekOf = %v, want the generation time %v", plan.WeekOf, now)
	}
	if plan.MealTimes != DefaultMealTimes() {
		t.Errorf("MealTimes = %+v, want defaults", plan.MealTimes)
	}

	weekDays := dates.WeekDaysFrom(now)
	if len(plan.Meals) != 7 {
		t.Fatalf("plan has %d days, want 7", len(plan.Meals))
	}
	for _, day := range weekDays {
		dayMeals, ok := plan.Meals[day]
		if !ok {
			t.Errorf("missing day %q", day)
			continue
		}
		for _, slot := range Slots() {
			if dayMeals.Meal(slot).Name == "" {
				t.Errorf("%s %s is empty", day, slot)
			}
		}
	}
}

func TestAssemblePlanDeterministic(t *testing.T) {
	now := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	req := MealPlanRequest{Preferences: DefaultPreferences()}

	a := AssemblePlan(req, now)
	b := AssemblePlan(req, now)

	for day, dayMeals := range a.Meals {
		for _, slot := range Slots() {
			if got, want := b.Meals[day].Meal(slot).Name, dayMeals.Meal(slot).Name; got != want {
				t.Errorf("%s %s differs between runs: %q vs %q", day, slot, got, want)
			}
		}
	}
}

func TestAssemblePlanConsecutiveDaysVary(t *testing.T) {
	now := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	req := MealPlanRequest{Preferences: DefaultPreferences()}

	plan := AssemblePlan(req, now)
	weekDays := dates.WeekDaysFrom(now)

	first := plan.Meals[weekDays[0]].Breakfast.Name
	second := plan.Meals[weekDays[1]].Breakfast.Name
	if first == second {
		t.Errorf("day 0 and day 1 both got %q for breakfast", first)
	}
}

func TestAssemblePlanAvailableIngredients(t *testing.T) {
	now := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	req := MealPlanRequest{
		Preferences:          DefaultPreferences(),
		AvailableIngredients: []string{"salmon"},
	}

	plan := AssemblePlan(req, now)
	for day, dayMeals := range plan.Meals {
		if dayMeals.Dinner.Name != "Herb-Crusted Salmon" {
			t.Errorf("%s dinner = %q, want Herb-Crusted Salmon", day, dayMeals.Dinner.Name)
		}
	}
}

func TestNewPlanID(t *testing.T) {
	now := time.UnixMilli(1741770000123)
	if got := NewPlanID(now); got != "1741770000123" {
		t.Errorf("NewPlanID = %q, want 1741770000123", got)
	}
}
