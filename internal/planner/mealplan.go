package planner

import (
	"strconv"
	"time"
)

// Difficulty rates how demanding a meal is to prepare.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Slot identifies one of the three daily meal slots.
type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotDinner    Slot = "dinner"
)

// Slots returns the meal slots in their fixed daily order.
func Slots() []Slot {
	return []Slot{SlotBreakfast, SlotLunch, SlotDinner}
}

// Meal is one cookable recipe instance. Meals are immutable once created: a
// swap produces a new Meal value in the plan, never an in-place edit.
type Meal struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
	PrepTime     string     `json:"prepTime"`
	Servings     int        `json:"servings"`
	Difficulty   Difficulty `json:"difficulty"`
	MealPrepTips string     `json:"mealPrepTips,omitempty"`
}

// DayMeals holds the three required meals of a single day.
type DayMeals struct {
	Breakfast Meal `json:"breakfast"`
	Lunch     Meal `json:"lunch"`
	Dinner    Meal `json:"dinner"`
}

// Meal returns the meal occupying the given slot.
func (d DayMeals) Meal(slot Slot) Meal {
	switch slot {
	case SlotLunch:
		return d.Lunch
	case SlotDinner:
		return d.Dinner
	default:
		return d.Breakfast
	}
}

// WithMeal returns a copy of the day with the given slot replaced.
func (d DayMeals) WithMeal(slot Slot, m Meal) DayMeals {
	switch slot {
	case SlotBreakfast:
		d.Breakfast = m
	case SlotLunch:
		d.Lunch = m
	case SlotDinner:
		d.Dinner = m
	}
	return d
}

// MealTimes holds the free-text time-of-day strings shared by all seven days.
type MealTimes struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

// DefaultMealTimes returns the fixed meal times used by every generated plan.
func DefaultMealTimes() MealTimes {
	return MealTimes{
		Breakfast: "7:30 AM",
		Lunch:     "12:30 PM",
		Dinner:    "6:30 PM",
	}
}

// MealPlan is a full 7-day plan. Meals always contains exactly the seven
// weekday names of the rolling window the plan was generated for, starting
// with the generation day.
type MealPlan struct {
	ID        string              `json:"id"`
	WeekOf    time.Time           `json:"weekOf"`
	MealTimes MealTimes           `json:"mealTimes"`
	Meals     map[string]DayMeals `json:"meals"`
}

// NewPlanID derives an opaque plan token from the generation time. Uniqueness
// is the caller's responsibility.
func NewPlanID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// BudgetRange is the user's grocery budget tier.
type BudgetRange string

const (
	BudgetLow    BudgetRange = "low"
	BudgetMedium BudgetRange = "medium"
	BudgetHigh   BudgetRange = "high"
)

// DietaryPreferences are the user-edited filter inputs for plan generation.
// They are persisted independently of any plan.
type DietaryPreferences struct {
	DietType    Diet        `json:"dietType"`
	Allergies   []string    `json:"allergies"`
	Dislikes    []string    `json:"dislikes"`
	ServingSize int         `json:"servingSize"`
	BudgetRange BudgetRange `json:"budgetRange"`
}

// DefaultPreferences returns the preferences used before a user saves any.
func DefaultPreferences() DietaryPreferences {
	return DietaryPreferences{
		DietType:    DietBalanced,
		Allergies:   []string{},
		Dislikes:    []string{},
		ServingSize: 2,
		BudgetRange: BudgetMedium,
	}
}

// MealPlanRequest bundles everything a generation run needs.
type MealPlanRequest struct {
	Preferences          DietaryPreferences `json:"preferences"`
	AvailableIngredients []string           `json:"availableIngredients"`
	SpecialRequests      string             `json:"specialRequests"`
}
