package planner

import (
	"time"

	"meal-planner/internal/dates"
)

// AssemblePlan deterministically builds a complete 7-day plan for the request.
// The plan covers the rolling week starting at now, with day names rotated so
// the first key is now's weekday. Special requests are accepted for interface
// parity with the AI path but have no effect here.
//
// Given the catalog completeness invariant this cannot fail: the result always
// has all 7 day keys with all 3 slots populated.
func AssemblePlan(req MealPlanRequest, now time.Time) MealPlan {
	weekDays := dates.WeekDaysFrom(now)
	window := dates.Window(now)
	cat := BuildCatalog(req.Preferences)

	meals := make(map[string]DayMeals, len(weekDays))
	for dayIndex, day := range weekDays {
		var dm DayMeals
		for _, slot := range Slots() {
			picked := SelectMeal(cat.Candidates(slot), dayIndex, req.AvailableIngredients)
			dm = dm.WithMeal(slot, picked)
		}
		meals[day] = dm
	}

	return MealPlan{
		ID:        NewPlanID(now),
		WeekOf:    window.StartDate,
		MealTimes: DefaultMealTimes(),
		Meals:     meals,
	}
}
