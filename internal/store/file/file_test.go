package file

import (
	"context"
	"fmt"
	"testing"
	"time"

	"meal-planner/internal/planner"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return s
}

func testPlan(id string) planner.MealPlan {
	var day planner.DayMeals
	day = day.WithMeal(planner.SlotBreakfast, planner.Meal{Name: "Overnight Oats"})
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

	saved := testPlan("plan-1")
	if err := s.SavePlan(ctx, "alice", saved); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}

	got, err := s.CurrentPlan(ctx, "alice")
	if err != nil {
		t.Fatalf("CurrentPlan failed: %v", err)
	}
	if got == nil || got.ID != "plan-1" {
		t.Fatalf("got %+v, want plan-1", got)
	}
	if got.Meals["Wednesday"].Breakfast.Name != "Overnight Oats" {
		t.Errorf("breakfast = %q", got.Meals["Wednesday"].Breakfast.Name)
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
			if h.ID != "plan-2" {
				t.Errorf("current entry is %q, want plan-2", h.ID)
			}
		}
	}
	if currentCount != 1 {
		t.Errorf("%d entries marked current, want exactly 1", currentCount)
	}
	if history[0].ID != "plan-2" {
		t.Errorf("newest entry is %q, want plan-2 first", history[0].ID)
	}
}

func TestSavePlanDeduplicatesByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SavePlan(ctx, "alice", testPlan("plan-1")); err != nil {
		t.Fatal(err)
	}
	if err := s.SavePlan(ctx, "alice", testPlan("plan-1")); err != nil {
		t.Fatal(err)
	}

	history, _ := s.History(ctx, "alice")
	if len(history) != 1 {
		t.Errorf("history has %d entries, want 1 after re-saving same ID", len(history))
	}
}

func TestSavePlanTrimsHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 13; i++ {
		if err := s.SavePlan(ctx, "alice", testPlan(fmt.Sprintf("plan-%d", i))); err != nil {
			t.Fatal(err)
		}
	}

	history, _ := s.History(ctx, "alice")
	if len(history) != historyLimit {
		t.Errorf("history has %d entries, want %d", len(history), historyLimit)
	}
	if history[0].ID != "plan-12" {
		t.Errorf("newest entry is %q, want plan-12", history[0].ID)
	}
}

func TestDeletePlan(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SavePlan(ctx, "alice", testPlan("plan-1")); err != nil {
		t.Fatal(err)
	}
	if err := s.SavePlan(ctx, "alice", testPlan("plan-2")); err != nil {
		t.Fatal(err)
	}

	t.Run("removes history entry", func(t *testing.T) {
		if err := s.DeletePlan(ctx, "alice", "plan-1"); err != nil {
			t.Fatalf("DeletePlan failed: %v", err)
		}
		history, _ := s.History(ctx, "alice")
		if len(history) != 1 || history[0].ID != "plan-2" {
			t.Errorf("history = %+v, want only plan-2", history)
		}
	})

	t.Run("clears current plan when deleted", func(t *testing.T) {
		if err := s.DeletePlan(ctx, "alice", "plan-2"); err != nil {
			t.Fatalf("DeletePlan failed: %v", err)
		}
		current, err := s.CurrentPlan(ctx, "alice")
		if err != nil {
			t.Fatal(err)
		}
		if current != nil {
			t.Errorf("current plan still %+v after deleting it", current)
		}
	})
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
		DietType:    planner.DietVegan,
		Allergies:   []string{"peanuts"},
		ServingSize: 4,
		BudgetRange: planner.BudgetLow,
	}
	if err := s.SavePreferences(ctx, "alice", want); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}

	got, err := s.Preferences(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.DietType != planner.DietVegan || got.ServingSize != 4 {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SavePlan(ctx, "alice", testPlan("plan-1")); err != nil {
		t.Fatal(err)
	}

	plan, err := s.CurrentPlan(ctx, "bob")
	if err != nil {
		t.Fatal(err)
	}
	if plan != nil {
		t.Errorf("bob sees alice's plan: %+v", plan)
	}
}

func TestSanitizeUserID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "anonymous"},
		{"alice", "alice"},
		{"../etc/passwd", "--etc-passwd"},
		{"a/b\\c:d", "a-b-c-d"},
	}
	for _, tt := range tests {
		if got := sanitizeUserID(tt.in); got != tt.want {
			t.Errorf("sanitizeUserID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
