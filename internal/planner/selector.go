package planner

// SelectMeal picks one meal for a (day, slot) pair from a slot's candidate
// list.
//
// The default pick is a deterministic round-robin over the candidates by day
// index, so consecutive days cycle through the catalog before repeating. When
// the user declared available ingredients, the first candidate (in authored
// order) whose ingredient list matches any of them wins instead; that override
// ignores the day index entirely, so several days may receive the same meal.
//
// candidates must be non-empty. The catalog guarantees that for every
// supported diet; an empty list here is a configuration defect, not a
// recoverable condition.
func SelectMeal(candidates []Meal, dayIndex int, availableIngredients []string) Meal {
	if len(candidates) == 0 {
		panic("planner: empty candidate list, catalog invariant violated")
	}

	if len(availableIngredients) > 0 {
		for _, meal := range candidates {
			if mealUsesAny(meal, availableIngredients) {
				return meal
			}
		}
	}

	return candidates[dayIndex%len(candidates)]
}

func mealUsesAny(meal Meal, available []string) bool {
	for _, ingredient := range meal.Ingredients {
		for _, item := range available {
			if MatchesIngredient(ingredient, item) {
				return true
			}
		}
	}
	return false
}
