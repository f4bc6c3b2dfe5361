package planner

import "fmt"

// FallbackAlternatives returns exactly three templated alternatives for a
// meal. Used when the AI adapter is unavailable or returns garbage, so the
// swap dialog always has something to offer.
func FallbackAlternatives(current Meal) []Meal {
	return []Meal{
		{
			Name:         fmt.Sprintf("Quick %s Alternative", current.Name),
			Description:  fmt.Sprintf("A faster version of %s with simplified ingredients", current.Name),
			Ingredients:  []string{"simplified ingredients", "pantry staples", "quick-cooking items"},
			Instructions: []string{"Quick preparation method", "Minimal cooking time", "Easy assembly"},
			PrepTime:     current.PrepTime,
			Servings:     current.Servings,
			Difficulty:   DifficultyEasy,
			MealPrepTips: "Perfect for busy weeknights when time is limited",
		},
		{
			Name:         fmt.Sprintf("Healthy %s Swap", current.Name),
			Description:  fmt.Sprintf("A nutritious twist on %s with added vegetables", current.Name),
			Ingredients:  []string{"lean proteins", "fresh vegetables", "whole grains", "healthy fats"},
			Instructions: []string{"Healthy cooking method", "Add extra vegetables", "Use whole grain options"},
			PrepTime:     current.PrepTime,
			Servings:     current.Servings,
			Difficulty:   current.Difficulty,
			MealPrepTips: "Great for meal prep and portion control",
		},
		{
			Name:         fmt.Sprintf("Comfort %s Version", current.Name),
			Description:  fmt.Sprintf("A satisfying comfort food take on %s", current.Name),
			Ingredients:  []string{"hearty ingredients", "warming spices", "comfort food elements"},
			Instructions: []string{"Traditional cooking method", "Add warming spices", "Create satisfying portions"},
			PrepTime:     current.PrepTime,
			Servings:     current.Servings,
			Difficulty:   current.Difficulty,
			MealPrepTips: "Perfect for family dinners and special occasions",
		},
	}
}
