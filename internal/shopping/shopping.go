// Package shopping aggregates a meal plan's 21 meals into a deduplicated,
// categorized shopping list.
package shopping

import (
	"sort"
	"strings"

	"meal-planner/internal/dates"
	"meal-planner/internal/planner"
)

// Category is a shopping list section.
type Category string

const (
	CategoryProduce Category = "Produce"
	CategoryMeat    Category = "Meat & Seafood"
	CategoryDairy   Category = "Dairy & Eggs"
	CategoryPantry  Category = "Pantry"
	CategoryFrozen  Category = "Frozen"
	CategoryBakery  Category = "Bakery"
	CategoryOther   Category = "Other"
)

// CategoryOrder is the fixed display and sort order for list sections.
var CategoryOrder = []Category{
	CategoryProduce, CategoryMeat, CategoryDairy,
	CategoryPantry, CategoryFrozen, CategoryBakery, CategoryOther,
}

// classificationOrder is the priority order for keyword matching. It differs
// from the display order on purpose: "chicken broth" must land in
// Meat & Seafood before Pantry gets a chance at it. Keep this order stable;
// changing it silently reshuffles everyone's lists.
var classificationOrder = []struct {
	category Category
	keywords []string
}{
	{CategoryMeat, []string{"chicken", "beef", "pork", "fish", "salmon", "shrimp"}},
	{CategoryDairy, []string{"milk", "cheese", "yogurt", "butter", "egg"}},
	{CategoryBakery, []string{"bread", "bagel", "roll"}},
	{CategoryFrozen, []string{"frozen", "ice cream"}},
	{CategoryProduce, []string{"tomato", "onion", "lettuce", "carrot", "apple", "banana"}},
	{CategoryPantry, []string{"rice", "pasta", "flour", "oil", "salt", "pepper"}},
}

// Item is one deduplicated shopping list entry. Name is the normalized
// ingredient string and the dedup key; "2 cups milk" and "1 cup milk" are
// distinct items since quantities are never parsed. Checked is session state
// layered on by the UI, never derived from the plan.
type Item struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Meals    []string `json:"meals"`
	Checked  bool     `json:"checked"`
}

// BuildList walks every meal of the plan and produces the categorized list,
// one item per distinct normalized ingredient, sorted by category position
// then name. The result is fully regenerated on every call; calling it twice
// on the same plan yields identical output.
func BuildList(plan planner.MealPlan) []Item {
	type entry struct {
		category Category
		meals    map[string]struct{}
	}
	byName := make(map[string]*entry)

	for _, day := range dates.WeekDaysFrom(plan.WeekOf) {
		dayMeals, ok := plan.Meals[day]
		if !ok {
			continue
		}
		for _, slot := range planner.Slots() {
			meal := dayMeals.Meal(slot)
			for _, ingredient := range meal.Ingredients {
				name := Normalize(ingredient)
				e, ok := byName[name]
				if !ok {
					e = &entry{
						category: Categorize(ingredient),
						meals:    make(map[string]struct{}),
					}
					byName[name] = e
				}
				e.meals[day+" "+string(slot)+": "+meal.Name] = struct{}{}
			}
		}
	}

	items := make([]Item, 0, len(byName))
	for name, e := range byName {
		meals := make([]string, 0, len(e.meals))
		for m := range e.meals {
			meals = append(meals, m)
		}
		sort.Strings(meals)
		items = append(items, Item{Name: name, Category: e.category, Meals: meals})
	}

	sort.Slice(items, func(i, j int) bool {
		ci, cj := categoryRank(items[i].Category), categoryRank(items[j].Category)
		if ci != cj {
			return ci < cj
		}
		return items[i].Name < items[j].Name
	})
	return items
}

// Normalize lowercases and trims an ingredient string to its dedup key.
// Punctuation and plurals are left alone: "tomato" and "tomatoes" are
// distinct keys.
func Normalize(ingredient string) string {
	return strings.TrimSpace(strings.ToLower(ingredient))
}

// Categorize assigns an ingredient to the first category in the fixed
// priority order with a keyword substring match, or Other.
func Categorize(ingredient string) Category {
	lower := strings.ToLower(ingredient)
	for _, c := range classificationOrder {
		for _, keyword := range c.keywords {
			if strings.Contains(lower, keyword) {
				return c.category
			}
		}
	}
	return CategoryOther
}

func categoryRank(c Category) int {
	for i, candidate := range CategoryOrder {
		if candidate == c {
			return i
		}
	}
	return len(CategoryOrder)
}

// ListText renders the list as plain text grouped by category, for export.
func ListText(items []Item) string {
	var sb strings.Builder
	for _, category := range CategoryOrder {
		var section []Item
		for _, item := range items {
			if item.Category == category {
				section = append(section, item)
			}
		}
		if len(section) == 0 {
			continue
		}
		sb.WriteString(string(category) + ":\n")
		for _, item := range section {
			sb.WriteString("- " + item.Name + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
