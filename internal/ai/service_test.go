package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"meal-planner/internal/dates"
	"meal-planner/internal/llm"
	"meal-planner/internal/planner"
)

type mockTextGen struct {
	res   string
	err   error
	calls int
}

func (m *mockTextGen) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.calls++
	return llm.ContentResponse{Content: m.res, Model: "mock"}, m.err
}

// validPlanJSON builds an AI-shaped response covering every rotated day.
func validPlanJSON(t *testing.T, now time.Time) string {
	t.Helper()
	meals := make(map[string]map[string]planner.Meal)
	for _, day := range dates.WeekDaysFrom(now) {
		meals[day] = map[string]planner.Meal{
			"breakfast": {Name: day + " breakfast", Ingredients: []string{"2 cups milk"}},
			"lunch":     {Name: day + " lunch", Ingredients: []string{"bread"}},
			"dinner":    {Name: day + " dinner", Ingredients: []string{"rice"}},
		}
	}
	data, err := json.Marshal(map[string]interface{}{"meals": meals})
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestGeneratePlanWithoutClient(t *testing.T) {
	svc := NewService(nil)
	now := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)

	plan, source := svc.GeneratePlan(context.Background(), planner.MealPlanRequest{Preferences: planner.DefaultPreferences()}, now)
	if source != SourceFallback {
		t.Errorf("source = %q, want fallback", source)
	}
	if len(plan.Meals) != 7 {
		t.Errorf("plan has %d days, want 7", len(plan.Meals))
	}
}

func TestGeneratePlanAcceptsValidAIResponse(t *testing.T) {
	now := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	gen := &mockTextGen{res: validPlanJSON(t, now)}
	svc := NewService(gen)

	plan, source := svc.GeneratePlan(context.Background(), planner.MealPlanRequest{Preferences: planner.DefaultPreferences()}, now)
	if source != SourceAI {
		t.Fatalf("source = %q, want ai", source)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
	if plan.Meals["Wednesday"].Breakfast.Name != "Wednesday breakfast" {
		t.Errorf("unexpected Wednesday breakfast: %q", plan.Meals["Wednesday"].Breakfast.Name)
	}
	// Fields the model omitted are filled in.
	if plan.ID == "" {
		t.Error("plan ID not filled")
	}
	if plan.WeekOf.IsZero() {
		t.Error("WeekOf not filled")
	}
	if plan.MealTimes != planner.DefaultMealTimes() {
		t.Errorf("MealTimes = %+v, want defaults", plan.MealTimes)
	}
}

func TestGeneratePlanStripsCodeFences(t *testing.T) {
	now := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	gen := &mockTextGen{res: "```json\n" + validPlanJSON(t, now) + "\n```"}
	svc := NewService(gen)

	_, source := svc.GeneratePlan(context.Background(), planner.MealPlanRequest{Preferences: planner.DefaultPreferences()}, now)
	if source != SourceAI {
		t.Errorf("source = %q, want ai for fenced but valid JSON", source)
	}
}

func TestGeneratePlanFallsBack(t *testing.T) {
	now := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)

	incomplete := func() string {
		meals := map[string]map[string]planner.Meal{
			"Wednesday": {
				"breakfast": {Name: "Oats"},
				"lunch":     {Name: "Bowl"},
				"dinner":    {Name: "Curry"},
			},
		}
		data, _ := json.Marshal(map[string]interface{}{"meals": meals})
		return string(data)
	}

	missingSlot := func() string {
		meals := make(map[string]map[string]planner.Meal)
		for _, day := range dates.WeekDaysFrom(now) {
			meals[day] = map[string]planner.Meal{
				"breakfast": {Name: "Oats"},
				"lunch":     {Name: "Bowl"},
				// dinner name left empty
				"dinner": {},
			}
		}
		data, _ := json.Marshal(map[string]interface{}{"meals": meals})
		return string(data)
	}

	tests := []struct {
		name string
		gen  *mockTextGen
	}{
		{"llm error", &mockTextGen{err: errors.New("rate limited")}},
		{"garbage response", &mockTextGen{res: "I can't help with that."}},
		{"not a plan", &mockTextGen{res: `{"hello": "world"}`}},
		{"missing days", &mockTextGen{res: incomplete()}},
		{"empty meal name", &mockTextGen{res: missingSlot()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.gen)
			plan, source := svc.GeneratePlan(context.Background(), planner.MealPlanRequest{Preferences: planner.DefaultPreferences()}, now)
			if source != SourceFallback {
				t.Errorf("source = %q, want fallback", source)
			}
			if len(plan.Meals) != 7 {
				t.Errorf("fallback plan has %d days, want 7", len(plan.Meals))
			}
			for _, day := range dates.WeekDaysFrom(now) {
				for _, slot := range planner.Slots() {
					if plan.Meals[day].Meal(slot).Name == "" {
						t.Errorf("fallback left %s %s empty", day, slot)
					}
				}
			}
		})
	}
}

func TestGenerateAlternatives(t *testing.T) {
	current := planner.Meal{Name: "Vegetable Curry"}

	t.Run("without client uses templates", func(t *testing.T) {
		svc := NewService(nil)
		alts := svc.GenerateAlternatives(context.Background(), current, "")
		if len(alts) != 3 {
			t.Fatalf("got %d alternatives, want 3", len(alts))
		}
		if alts[0].Name != "Quick Vegetable Curry Alternative" {
			t.Errorf("first template = %q", alts[0].Name)
		}
	})

	t.Run("accepts non-empty AI array", func(t *testing.T) {
		gen := &mockTextGen{res: `[{"name": "Thai Green Curry", "ingredients": ["coconut milk"]}]`}
		svc := NewService(gen)
		alts := svc.GenerateAlternatives(context.Background(), current, "thai")
		if len(alts) != 1 || alts[0].Name != "Thai Green Curry" {
			t.Errorf("alts = %+v, want the single AI suggestion", alts)
		}
	})

	t.Run("empty AI array falls back", func(t *testing.T) {
		gen := &mockTextGen{res: `[]`}
		svc := NewService(gen)
		alts := svc.GenerateAlternatives(context.Background(), current, "")
		if len(alts) != 3 {
			t.Errorf("got %d alternatives, want 3 templated fallbacks", len(alts))
		}
	})

	t.Run("llm failure falls back", func(t *testing.T) {
		gen := &mockTextGen{err: fmt.Errorf("timeout")}
		svc := NewService(gen)
		alts := svc.GenerateAlternatives(context.Background(), current, "")
		if len(alts) != 3 {
			t.Errorf("got %d alternatives, want 3 templated fallbacks", len(alts))
		}
	})
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n[1]\n```", "[1]"},
		{`{"a":1}`, `{"a":1}`},
	}
	for _, tt := range tests {
		if got := stripFences(tt.in); got != tt.want {
			t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
