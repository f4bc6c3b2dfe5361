package planner

import "testing"

func testCandidates() []Meal {
	return []Meal{
		{Name: "Oatmeal", Ingredients: []string{"1/2 cup rolled oats", "1 cup milk"}},
		{Name: "Eggs", Ingredients: []string{"3 eggs", "butter"}},
		{Name: "Smoothie", Ingredients: []string{"1 frozen banana", "berries"}},
	}
}

func TestSelectMealRoundRobin(t *testing.T) {
	candidates := testCandidates()

	for day := 0; day < 7; day++ {
		got := SelectMeal(candidates, day, nil)
		want := candidates[day%len(candidates)]
		if got.Name != want.Name {
			t.Errorf("day %d: got %q, want %q", day, got.Name, want.Name)
		}
	}
}

func TestSelectMealAvailableIngredientsOverride(t *testing.T) {
	candidates := testCandidates()

	t.Run("first match in authored order wins", func(t *testing.T) {
		got := SelectMeal(candidates, 5, []string{"banana", "eggs"})
		// Eggs comes before Smoothie in the candidate list.
		if got.Name != "Eggs" {
			t.Errorf("got %q, want Eggs", got.Name)
		}
	})

	t.Run("override ignores day index", func(t *testing.T) {
		for day := 0; day < 7; day++ {
			got := SelectMeal(candidates, day, []string{"banana"})
			if got.Name != "Smoothie" {
				t.Errorf("day %d: got %q, want Smoothie", day, got.Name)
			}
		}
	})

	t.Run("no match falls back to round-robin", func(t *testing.T) {
		got := SelectMeal(candidates, 1, []string{"caviar"})
		if got.Name != "Eggs" {
			t.Errorf("got %q, want Eggs", got.Name)
		}
	})
}

func TestSelectMealEmptyCandidatesPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for empty candidate list")
		}
	}()
	SelectMeal(nil, 0, nil)
}
