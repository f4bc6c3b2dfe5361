// Package export renders meal plans into their interchange formats: the
// obfuscated .mp file, the shareable link payload, and the human-readable
// text/CSV reports.
package export

import (
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"meal-planner/internal/planner"
)

// ErrCorruptedPlan is returned when a .mp payload fails to decode.
var ErrCorruptedPlan = errors.New("invalid or corrupted meal plan file")

// ErrInvalidShareLink is returned when a shared-link payload decodes but is
// not a plan.
var ErrInvalidShareLink = errors.New("invalid share link")

// caesarShift is the per-character offset applied on top of base64 in the
// .mp format. Obfuscation, not security.
const caesarShift = 3

// reportDays is the fixed day order used by the text and CSV reports,
// independent of the plan's rotated week.
var reportDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// EncodeMP serializes a plan into the .mp file format: JSON, base64, then a
// +3 Caesar shift over every character.
func EncodeMP(plan planner.MealPlan) (string, error) {
	data, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("failed to marshal plan: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	return shift(encoded, caesarShift), nil
}

// DecodeMP reverses EncodeMP. Any failure along the way reports
// ErrCorruptedPlan; a partial plan is never returned.
func DecodeMP(payload string) (planner.MealPlan, error) {
	decoded, err := base64.StdEncoding.DecodeString(shift(payload, -caesarShift))
	if err != nil {
		return planner.MealPlan{}, fmt.Errorf("%w: %v", ErrCorruptedPlan, err)
	}
	var plan planner.MealPlan
	if err := json.Unmarshal(decoded, &plan); err != nil {
		return planner.MealPlan{}, fmt.Errorf("%w: %v", ErrCorruptedPlan, err)
	}
	return plan, nil
}

// MPFileName returns the conventional download name for a plan's .mp file.
func MPFileName(plan planner.MealPlan) string {
	return "meal-plan-" + plan.WeekOf.Format("1-2-2006") + ".mp"
}

func shift(s string, offset int) string {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = r + rune(offset)
	}
	return string(runes)
}

// SharePath returns the link path for a plan: /shared/{base64(JSON(plan))}.
func SharePath(plan planner.MealPlan) (string, error) {
	data, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("failed to marshal plan: %w", err)
	}
	return "/shared/" + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeShared decodes a share-link payload. The decoded object must carry
// both a meals field and a weekOf field before it is accepted as a plan;
// anything else reports ErrInvalidShareLink.
func DecodeShared(encoded string) (planner.MealPlan, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return planner.MealPlan{}, fmt.Errorf("%w: %v", ErrInvalidShareLink, err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return planner.MealPlan{}, fmt.Errorf("%w: %v", ErrInvalidShareLink, err)
	}
	if _, ok := probe["meals"]; !ok {
		return planner.MealPlan{}, fmt.Errorf("%w: missing meals", ErrInvalidShareLink)
	}
	if _, ok := probe["weekOf"]; !ok {
		return planner.MealPlan{}, fmt.Errorf("%w: missing weekOf", ErrInvalidShareLink)
	}

	var plan planner.MealPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return planner.MealPlan{}, fmt.Errorf("%w: %v", ErrInvalidShareLink, err)
	}
	return plan, nil
}

// PlanText renders the full plan as a plain-text report with meal times,
// descriptions and ingredients.
func PlanText(plan planner.MealPlan) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "MEAL PLAN - Week of %s\n", plan.WeekOf.Format("1/2/2006"))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	sb.WriteString("MEAL TIMES:\n")
	fmt.Fprintf(&sb, "🌅 Breakfast: %s\n", plan.MealTimes.Breakfast)
	fmt.Fprintf(&sb, "🌞 Lunch: %s\n", plan.MealTimes.Lunch)
	fmt.Fprintf(&sb, "🌙 Dinner: %s\n\n", plan.MealTimes.Dinner)

	for _, day := range reportDays {
		dayMeals, ok := plan.Meals[day]
		if !ok {
			continue
		}
		sb.WriteString(strings.ToUpper(day) + "\n")
		sb.WriteString(strings.Repeat("-", len(day)) + "\n")
		writeMealSection(&sb, "🌅 BREAKFAST", plan.MealTimes.Breakfast, dayMeals.Breakfast)
		writeMealSection(&sb, "🌞 LUNCH", plan.MealTimes.Lunch, dayMeals.Lunch)
		writeMealSection(&sb, "🌙 DINNER", plan.MealTimes.Dinner, dayMeals.Dinner)
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeMealSection(sb *strings.Builder, label, mealTime string, meal planner.Meal) {
	fmt.Fprintf(sb, "%s (%s): %s\n", label, mealTime, meal.Name)
	fmt.Fprintf(sb, "   %s\n", meal.Description)
	fmt.Fprintf(sb, "   Prep Time: %s | Difficulty: %s\n", meal.PrepTime, meal.Difficulty)
	fmt.Fprintf(sb, "   Ingredients: %s\n\n", strings.Join(meal.Ingredients, ", "))
}

// PlanCSV renders the plan as CSV, one row per meal.
func PlanCSV(plan planner.MealPlan) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"Day", "Meal Type", "Meal Time", "Name", "Description", "Prep Time", "Difficulty", "Ingredients"}); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	mealTimes := map[planner.Slot]string{
		planner.SlotBreakfast: plan.MealTimes.Breakfast,
		planner.SlotLunch:     plan.MealTimes.Lunch,
		planner.SlotDinner:    plan.MealTimes.Dinner,
	}
	labels := map[planner.Slot]string{
		planner.SlotBreakfast: "Breakfast",
		planner.SlotLunch:     "Lunch",
		planner.SlotDinner:    "Dinner",
	}

	for _, day := range reportDays {
		dayMeals, ok := plan.Meals[day]
		if !ok {
			continue
		}
		for _, slot := range planner.Slots() {
			meal := dayMeals.Meal(slot)
			record := []string{
				day,
				labels[slot],
				mealTimes[slot],
				meal.Name,
				meal.Description,
				meal.PrepTime,
				string(meal.Difficulty),
				strings.Join(meal.Ingredients, "; "),
			}
			if err := w.Write(record); err != nil {
				return "", fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	return sb.String(), nil
}

// Summary renders a short shareable overview of the plan.
func Summary(plan planner.MealPlan) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🍽️ Meal Plan for Week of %s\n\n", plan.WeekOf.Format("1/2/2006"))
	sb.WriteString("⏰ Meal Times:\n")
	fmt.Fprintf(&sb, "🌅 Breakfast: %s\n", plan.MealTimes.Breakfast)
	fmt.Fprintf(&sb, "🌞 Lunch: %s\n", plan.MealTimes.Lunch)
	fmt.Fprintf(&sb, "🌙 Dinner: %s\n\n", plan.MealTimes.Dinner)

	for _, day := range reportDays {
		dayMeals, ok := plan.Meals[day]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%s:\n", day)
		fmt.Fprintf(&sb, "• Breakfast: %s\n", dayMeals.Breakfast.Name)
		fmt.Fprintf(&sb, "• Lunch: %s\n", dayMeals.Lunch.Name)
		fmt.Fprintf(&sb, "• Dinner: %s\n\n", dayMeals.Dinner.Name)
	}

	sb.WriteString("Generated with AI Meal Planning Assistant")
	return sb.String()
}
