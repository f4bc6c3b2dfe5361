package ai

import (
	"fmt"
	"strings"
	"time"

	"meal-planner/internal/dates"
	"meal-planner/internal/planner"
)

func orNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func buildPlanPrompt(req planner.MealPlanRequest, window dates.WeekWindow, weekDays []string, now time.Time) string {
	mealTimes := planner.DefaultMealTimes()
	prefs := req.Preferences

	return fmt.Sprintf(`You are a professional nutritionist and meal planning expert. Create a detailed 7-day meal plan as a JSON object.

IMPORTANT: This meal plan is for the week starting TODAY (%s) and ending on %s.

The days should be in this EXACT order: %s

Requirements:
- Diet Type: %s
- Serving Size: %d people
- Budget: %s
- Allergies to avoid: %s
- Foods to avoid: %s
- Available ingredients: %s
- Special requests: %s

Meal Times:
- Breakfast: %s
- Lunch: %s
- Dinner: %s

Return ONLY a valid JSON object with this exact structure (no markdown formatting):
{
  "id": "%s",
  "weekOf": "%s",
  "mealTimes": {
    "breakfast": "%s",
    "lunch": "%s",
    "dinner": "%s"
  },
  "meals": {
    "%s": {
      "breakfast": {
        "name": "Healthy Breakfast Name",
        "description": "Brief appetizing description",
        "ingredients": ["ingredient1 with quantity", "ingredient2 with quantity"],
        "instructions": ["Clear step 1", "Clear step 2", "Clear step 3"],
        "prepTime": "15 minutes",
        "servings": %d,
        "difficulty": "Easy",
        "mealPrepTips": "Helpful preparation tip"
      },
      "lunch": { "same structure": "..." },
      "dinner": { "same structure": "..." }
    }
  }
}

Make sure to:
- Include all 7 days with complete breakfast, lunch, and dinner for each day
- Use the EXACT day names provided: %s
- Make meals varied and interesting throughout the week
- Respect all dietary restrictions and preferences
- Include specific quantities in ingredients
- Provide clear, actionable cooking instructions
- Make meals nutritionally balanced and appropriate for the diet type
- Use available ingredients when possible
- Consider the current season and time of year for ingredient availability`,
		window.StartDate.Format("1/2/2006"),
		window.EndDate.Format("1/2/2006"),
		strings.Join(weekDays, ", "),
		prefs.DietType,
		prefs.ServingSize,
		prefs.BudgetRange,
		orNone(prefs.Allergies),
		orNone(prefs.Dislikes),
		orDefault(strings.Join(req.AvailableIngredients, ", "), "None specified"),
		orDefault(req.SpecialRequests, "None"),
		mealTimes.Breakfast,
		mealTimes.Lunch,
		mealTimes.Dinner,
		planner.NewPlanID(now),
		window.StartDate.Format(time.RFC3339),
		mealTimes.Breakfast,
		mealTimes.Lunch,
		mealTimes.Dinner,
		weekDays[0],
		prefs.ServingSize,
		strings.Join(weekDays, ", "),
	)
}

func buildAlternativesPrompt(current planner.Meal, searchHint string) string {
	return fmt.Sprintf(`Create 3 alternative meals similar to "%s".

Current meal details:
- Name: %s
- Description: %s
- Prep time: %s
- Difficulty: %s
- Search preference: %s

Return ONLY a valid JSON array with 3 meal objects (no markdown formatting):
[
  {
    "name": "Alternative Meal Name",
    "description": "Brief appetizing description",
    "ingredients": ["ingredient1 with quantity", "ingredient2 with quantity"],
    "instructions": ["Clear step 1", "Clear step 2", "Clear step 3"],
    "prepTime": "%s",
    "servings": %d,
    "difficulty": "%s",
    "mealPrepTips": "Helpful prep tip"
  }
]`,
		current.Name,
		current.Name,
		current.Description,
		current.PrepTime,
		current.Difficulty,
		orDefault(searchHint, "Similar style and difficulty"),
		current.PrepTime,
		current.Servings,
		current.Difficulty,
	)
}
