package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"meal-planner/internal/database"
	"meal-planner/internal/planner"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db.SQL)
}

func testPlan(id string) planner.MealPlan {
	var day planner.DayMeals
	day = day.WithMeal(planner.SlotDinner, planner.Meal{Name: "Vegetable Curry", Ingredients: []string{"coconut milk"}})
	return planner.MealPlan{
		ID:        id,
		WeekOf:    time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
		MealTimes: planner.DefaultMealTimes(),
		Meals:     map[string]planner.DayMeals{"Wednesday": day},
	}
}

func TestCurrentPlanEmpty(t *testing.T) {
	s := newTestStore(t)

	plan, err := s.CurrentPlan(context.Background(), "alice")
	if err != nil {
		t.Fatalf("CurrentPlan failed: %v", err)
	}
	if plan != nil {
		t.Errorf("expected nil plan for new user, got %+v", plan)
	}
}

func TestSaveAndLoadPlan(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SavePlan(ctx, "alice", testPlan("plan-1")); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}

	got, err := s.CurrentPlan(ctx, "alice")
	if err != nil {
		t.Fatalf("CurrentPlan failed: %v", err)
	}
	if got == nil || got.ID != "plan-1" {
		t.Fatalf("got %+v, want plan-1", got)
	}
	if got.Meals["Wednesday"].Dinner.Name != "Vegetable Curry" {
		t.Errorf("dinner = %q", got.Meals["Wednesday"].Dinner.Name)
	}
}

func TestSavePlanExclusiveCurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SavePlan(ctx, "alice", testPlan("plan-1")); err != nil {
		t.Fatal(err)
	}
	if err := s.SavePlan(ctx, "alice", testPlan("plan-2")); err != nil {
		t.Fatal(err)
	}

	current, err := s.CurrentPlan(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if current == nil || current.ID != "plan-2" {
		t.Fatalf("current = %+v, want plan-2", current)
	}

	history, err := s.History(ctx, "alice")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history has %d entries, want 2", len(history))
	}
	currentCount := 0
	for _, h := range history {
		if h.Current {
			currentCount++
		}
	}
	if currentCount != 1 {
		t.Errorf("%d entries marked current, want exactly 1", currentCount)
	}
}

func TestSavePlanDeduplicatesByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SavePlan(ctx, "alice", testPlan("plan-1")); err != nil {
		t.Fatal(err)
	}

	// A swap keeps the plan's ID and saves it again.
	swapped := testPlan("plan-1")
	day := swapped.Meals["Wednesday"].WithMeal(planner.SlotDinner, planner.Meal{Name: "Zucchini Noodles with Pesto"})
	swapped.Meals["Wednesday"] = day
	if err := s.SavePlan(ctx, "alice", swapped); err != nil {
		t.Fatalf("re-saving an existing plan ID failed: %v", err)
	}

	history, err := s.History(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 {
		t.Fatalf("history has %d entries, want 1", len(history))
	}

	current, err := s.CurrentPlan(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if current == nil || current.Meals["Wednesday"].Dinner.Name != "Zucchini Noodles with Pesto" {
		t.Errorf("current plan did not pick up the swapped meal: %+v", current)
	}
}

func TestHistoryOrderedNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.SavePlan(ctx, "alice", testPlan(fmt.Sprintf("plan-%d", i))); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	history, err := s.History(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Fatalf("history has %d entries, want 3", len(history))
	}
	if history[0].ID != "plan-2" {
		t.Errorf("newest entry is %q, want plan-2", history[0].ID)
	}
}

func TestDeletePlan(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SavePlan(ctx, "alice", testPlan("plan-1")); err != nil {
		t.Fatal(err)
	}

	if err := s.DeletePlan(ctx, "alice", "plan-1"); err != nil {
		t.Fatalf("DeletePlan failed: %v", err)
	}

	history, err := s.History(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 0 {
		t.Errorf("history = %+v, want empty", history)
	}
}

func TestDeletePlanScopedToUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SavePlan(ctx, "alice", testPlan("plan-1")); err != nil {
		t.Fatal(err)
	}

	// Bob deleting alice's plan ID must not touch it.
	if err := s.DeletePlan(ctx, "bob", "plan-1"); err != nil {
		t.Fatalf("DeletePlan failed: %v", err)
	}

	current, err := s.CurrentPlan(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if current == nil {
		t.Error("alice's plan was deleted by another user")
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	prefs, err := s.Preferences(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if prefs != nil {
		t.Errorf("expected nil preferences for new user, got %+v", prefs)
	}

	want := planner.DietaryPreferences{
		DietType:    planner.DietKeto,
		Dislikes:    []string{"cilantro"},
		ServingSize: 1,
		BudgetRange: planner.BudgetHigh,
	}
	if err := s.SavePreferences(ctx, "alice", want); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}

	// Upsert replaces the previous row.
	want.ServingSize = 3
	if err := s.SavePreferences(ctx, "alice", want); err != nil {
		t.Fatalf("SavePreferences upsert failed: %v", err)
	}

	got, err := s.Preferences(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.DietType != planner.DietKeto || got.ServingSize != 3 {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
