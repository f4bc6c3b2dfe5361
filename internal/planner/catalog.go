package planner

import "strings"

// Diet is one of the supported diet types. The set is closed for suitability
// filtering; unrecognized values behave like an unrestricted diet.
type Diet string

const (
	DietBalanced      Diet = "balanced"
	DietVegetarian    Diet = "vegetarian"
	DietVegan         Diet = "vegan"
	DietKeto          Diet = "keto"
	DietPaleo         Diet = "paleo"
	DietMediterranean Diet = "mediterranean"
	DietLowCarb       Diet = "low-carb"
	DietHighProtein   Diet = "high-protein"
)

// Diets returns every supported diet type.
func Diets() []Diet {
	return []Diet{
		DietBalanced, DietVegetarian, DietVegan, DietKeto,
		DietPaleo, DietMediterranean, DietLowCarb, DietHighProtein,
	}
}

// Ingredient is a structured catalog ingredient. Quantity is free text and may
// be empty for staples like salt.
type Ingredient struct {
	Quantity string
	Name     string
}

// String renders the ingredient in the "quantity + item" form used throughout
// plans and shopping lists.
func (i Ingredient) String() string {
	if i.Quantity == "" {
		return i.Name
	}
	return i.Quantity + " " + i.Name
}

// CatalogEntry is one hand-authored candidate meal. Suitability is expressed
// as explicit diet tags: requires lists diets the entry is reserved for (empty
// means any), excludes lists diets it must never be served to.
type CatalogEntry struct {
	Name         string
	Description  string
	Ingredients  []Ingredient
	Instructions []string
	PrepTime     string
	Difficulty   Difficulty
	MealPrepTips string

	requires []Diet
	excludes []Diet
}

// SuitableFor reports whether the entry may be served under the given diet.
func (e CatalogEntry) SuitableFor(diet Diet) bool {
	for _, d := range e.excludes {
		if d == diet {
			return false
		}
	}
	if len(e.requires) == 0 {
		return true
	}
	for _, d := range e.requires {
		if d == diet {
			return true
		}
	}
	return false
}

// Meal renders the entry as a concrete Meal for the given serving size.
func (e CatalogEntry) Meal(servings int) Meal {
	ingredients := make([]string, len(e.Ingredients))
	for i, ing := range e.Ingredients {
		ingredients[i] = ing.String()
	}
	return Meal{
		Name:         e.Name,
		Description:  e.Description,
		Ingredients:  ingredients,
		Instructions: append([]string(nil), e.Instructions...),
		PrepTime:     e.PrepTime,
		Servings:     servings,
		Difficulty:   e.Difficulty,
		MealPrepTips: e.MealPrepTips,
	}
}

// Catalog holds the per-slot candidate meals after diet filtering.
type Catalog struct {
	Breakfast []Meal
	Lunch     []Meal
	Dinner    []Meal
}

// Candidates returns the candidate list for a slot.
func (c Catalog) Candidates(slot Slot) []Meal {
	switch slot {
	case SlotLunch:
		return c.Lunch
	case SlotDinner:
		return c.Dinner
	default:
		return c.Breakfast
	}
}

// BuildCatalog filters the authored entries by the preferences' diet type and
// renders them at the requested serving size. Every supported diet keeps at
// least one entry per slot; new entries must preserve that invariant.
func BuildCatalog(prefs DietaryPreferences) Catalog {
	filter := func(entries []CatalogEntry) []Meal {
		var meals []Meal
		for _, e := range entries {
			if e.SuitableFor(prefs.DietType) {
				meals = append(meals, e.Meal(prefs.ServingSize))
			}
		}
		return meals
	}
	return Catalog{
		Breakfast: filter(breakfastEntries),
		Lunch:     filter(lunchEntries),
		Dinner:    filter(dinnerEntries),
	}
}

// MatchesIngredient reports whether an ingredient string and a pantry item
// match. Matching is deliberately fuzzy: case-insensitive containment in
// either direction, so "2 cups milk" matches "milk" and "egg" matches "eggs".
func MatchesIngredient(ingredient, available string) bool {
	ing := strings.ToLower(ingredient)
	avail := strings.ToLower(available)
	return strings.Contains(ing, avail) || strings.Contains(avail, ing)
}

var breakfastEntries = []CatalogEntry{
	{
		Name:        "Greek Yogurt Parfait",
		Description: "Creamy yogurt layered with berries and granola",
		Ingredients: []Ingredient{
			{"1 cup", "Greek yogurt"},
			{"1/2 cup", "mixed berries"},
			{"1/4 cup", "granola"},
			{"1 tbsp", "honey"},
			{"", "chopped nuts"},
		},
		Instructions: []string{
			"Layer yogurt in a bowl or glass",
			"Add berries and granola",
			"Drizzle with honey",
			"Top with chopped nuts",
		},
		PrepTime:     "5 minutes",
		Difficulty:   DifficultyEasy,
		MealPrepTips: "Prepare parfaits in mason jars for grab-and-go breakfasts",
		excludes:     []Diet{DietVegan},
	},
	{
		Name:        "Avocado Toast with Eggs",
		Description: "Whole grain toast topped with mashed avocado and eggs",
		Ingredients: []Ingredient{
			{"2 slices", "whole grain bread"},
			{"1", "ripe avocado"},
			{"2", "eggs"},
			{"", "salt"},
			{"", "pepper"},
			{"", "red pepper flakes"},
		},
		Instructions: []string{
			"Toast bread slices until golden",
			"Mash avocado with salt and pepper",
			"Cook eggs to preference",
			"Spread avocado on toast and top with eggs",
		},
		PrepTime:     "10 minutes",
		Difficulty:   DifficultyEasy,
		MealPrepTips: "Prepare avocado mixture fresh to prevent browning",
		excludes:     []Diet{DietVegan},
	},
	{
		Name:        "Overnight Oats",
		Description: "No-cook oats soaked overnight with your favorite toppings",
		Ingredients: []Ingredient{
			{"1/2 cup", "rolled oats"},
			{"1/2 cup", "plant milk"},
			{"1 tbsp", "chia seeds"},
			{"1 tbsp", "maple syrup"},
			{"", "fresh fruit"},
		},
		Instructions: []string{
			"Mix oats, milk, chia seeds, and maple syrup",
			"Refrigerate overnight",
			"Top with fresh fruit before serving",
			"Add nuts or seeds for extra protein",
		},
		PrepTime:     "5 minutes",
		Difficulty:   DifficultyEasy,
		MealPrepTips: "Make 5 jars at once for the whole work week",
	},
	{
		Name:        "Smoothie Bowl",
		Description: "Thick smoothie topped with fresh fruits and seeds",
		Ingredients: []Ingredient{
			{"1", "frozen banana"},
			{"1/2 cup", "berries"},
			{"1/2 cup", "plant milk"},
			{"1 tbsp", "almond butter"},
			{"", "toppings of choice"},
		},
		Instructions: []string{
			"Blend frozen fruit with minimal liquid until thick",
			"Pour into bowl",
			"Arrange toppings artfully",
			"Serve immediately",
		},
		PrepTime:     "8 minutes",
		Difficulty:   DifficultyEasy,
		MealPrepTips: "Pre-portion frozen fruit in bags for quick blending",
	},
	{
		Name:        "Keto Scrambled Eggs",
		Description: "Fluffy scrambled eggs with cheese and herbs",
		Ingredients: []Ingredient{
			{"3", "eggs"},
			{"2 tbsp", "butter"},
			{"1/4 cup", "cheese"},
			{"", "fresh herbs"},
			{"", "salt"},
			{"", "pepper"},
		},
		Instructions: []string{
			"Beat eggs with salt and pepper",
			"Heat butter in non-stick pan",
			"Add eggs and scramble gently",
			"Fold in cheese and herbs",
		},
		PrepTime:     "8 minutes",
		Difficulty:   DifficultyEasy,
		MealPrepTips: "Use room temperature eggs for fluffier results",
		requires:     []Diet{DietKeto, DietLowCarb},
	},
}

var lunchEntries = []CatalogEntry{
	{
		Name:        "Mediterranean Quinoa Bowl",
		Description: "Protein-rich quinoa with Mediterranean vegetables and feta",
		Ingredients: []Ingredient{
			{"1 cup", "cooked quinoa"},
			{"1/2 cup", "chickpeas"},
			{"", "cucumber"},
			{"", "tomatoes"},
			{"", "olives"},
			{"", "feta cheese"},
			{"", "olive oil"},
		},
		Instructions: []string{
			"Cook quinoa according to package directions",
			"Dice cucumber and tomatoes",
			"Combine quinoa with vegetables",
			"Top with feta and drizzle with olive oil",
		},
		PrepTime:     "20 minutes",
		Difficulty:   DifficultyMedium,
		MealPrepTips: "Cook quinoa in batches and store for quick assembly",
		requires:     []Diet{DietMediterranean, DietBalanced},
		excludes:     []Diet{DietVegan},
	},
	{
		Name:        "Asian Lettuce Wraps",
		Description: "Fresh lettuce cups filled with seasoned protein and vegetables",
		Ingredients: []Ingredient{
			{"", "butter lettuce"},
			{"", "ground turkey or tofu"},
			{"", "water chestnuts"},
			{"", "green onions"},
			{"", "soy sauce"},
			{"", "sesame oil"},
		},
		Instructions: []string{
			"Cook protein with seasonings",
			"Add diced water chestnuts",
			"Wash and separate lettuce leaves",
			"Fill lettuce cups with mixture",
		},
		PrepTime:     "15 minutes",
		Difficulty:   DifficultyMedium,
		MealPrepTips: "Prepare filling ahead and assemble just before eating",
	},
	{
		Name:        "Caprese Salad",
		Description: "Fresh mozzarella, tomatoes, and basil with balsamic glaze",
		Ingredients: []Ingredient{
			{"", "fresh mozzarella"},
			{"", "ripe tomatoes"},
			{"", "fresh basil"},
			{"", "balsamic vinegar"},
			{"", "olive oil"},
			{"", "salt"},
			{"", "pepper"},
		},
		Instructions: []string{
			"Slice tomatoes and mozzarella",
			"Arrange alternating with basil leaves",
			"Drizzle with olive oil and balsamic",
			"Season with salt and pepper",
		},
		PrepTime:     "10 minutes",
		Difficulty:   DifficultyEasy,
		MealPrepTips: "Use room temperature ingredients for best flavor",
		requires:     []Diet{DietMediterranean},
		excludes:     []Diet{DietVegan},
	},
	{
		Name:        "Buddha Bowl",
		Description: "Colorful bowl with grains, vegetables, and protein",
		Ingredients: []Ingredient{
			{"", "brown rice"},
			{"", "roasted vegetables"},
			{"", "protein of choice"},
			{"", "leafy greens"},
			{"", "tahini dressing"},
			{"", "seeds"},
		},
		Instructions: []string{
			"Cook rice and roast vegetables",
			"Prepare protein (tofu, chicken, or beans)",
			"Arrange components in bowl",
			"Drizzle with tahini dressing",
		},
		PrepTime:     "25 minutes",
		Difficulty:   DifficultyMedium,
		MealPrepTips: "Prep components separately and assemble fresh",
	},
}

var dinnerEntries = []CatalogEntry{
	{
		Name:        "Herb-Crusted Salmon",
		Description: "Flaky salmon with a crispy herb crust and roasted vegetables",
		Ingredients: []Ingredient{
			{"", "salmon fillets"},
			{"", "fresh herbs"},
			{"", "breadcrumbs"},
			{"", "lemon"},
			{"", "olive oil"},
			{"", "seasonal vegetables"},
		},
		Instructions: []string{
			"Preheat oven to 400°F",
			"Mix herbs with breadcrumbs and oil",
			"Top salmon with herb mixture",
			"Roast with vegetables for 15-20 minutes",
		},
		PrepTime:     "25 minutes",
		Difficulty:   DifficultyMedium,
		MealPrepTips: "Marinate salmon earlier in the day for enhanced flavor",
		excludes:     []Diet{DietVegetarian, DietVegan},
	},
	{
		Name:        "Vegetable Curry",
		Description: "Aromatic curry with seasonal vegetables and coconut milk",
		Ingredients: []Ingredient{
			{"", "mixed vegetables"},
			{"", "coconut milk"},
			{"", "curry spices"},
			{"", "onion"},
			{"", "garlic"},
			{"", "ginger"},
			{"", "basmati rice"},
		},
		Instructions: []string{
			"Sauté onion, garlic, and ginger",
			"Add curry spices and cook until fragrant",
			"Add vegetables and coconut milk",
			"Simmer until vegetables are tender",
		},
		PrepTime:     "30 minutes",
		Difficulty:   DifficultyMedium,
		MealPrepTips: "Curry tastes better the next day - make extra for leftovers",
		requires:     []Diet{DietVegetarian, DietVegan},
	},
	{
		Name:        "Grilled Chicken with Quinoa",
		Description: "Lean grilled chicken breast with fluffy quinoa and steamed broccoli",
		Ingredients: []Ingredient{
			{"", "chicken breast"},
			{"", "quinoa"},
			{"", "broccoli"},
			{"", "olive oil"},
			{"", "lemon"},
			{"", "herbs"},
			{"", "garlic"},
		},
		Instructions: []string{
			"Marinate chicken with herbs and lemon",
			"Cook quinoa according to package directions",
			"Grill chicken until cooked through",
			"Steam broccoli until tender-crisp",
		},
		PrepTime:     "25 minutes",
		Difficulty:   DifficultyMedium,
		MealPrepTips: "Grill extra chicken for easy meal prep throughout the week",
		excludes:     []Diet{DietVegetarian, DietVegan},
	},
	{
		Name:        "Stuffed Bell Peppers",
		Description: "Colorful bell peppers stuffed with quinoa, vegetables, and cheese",
		Ingredients: []Ingredient{
			{"", "bell peppers"},
			{"", "quinoa"},
			{"", "black beans"},
			{"", "corn"},
			{"", "tomatoes"},
			{"", "cheese"},
			{"", "spices"},
		},
		Instructions: []string{
			"Cut tops off peppers and remove seeds",
			"Mix quinoa with beans, corn, and tomatoes",
			"Stuff peppers with mixture",
			"Bake until peppers are tender",
		},
		PrepTime:     "35 minutes",
		Difficulty:   DifficultyMedium,
		MealPrepTips: "Prepare filling ahead and stuff peppers when ready to cook",
		excludes:     []Diet{DietVegan},
	},
	{
		Name:        "Zucchini Noodles with Pesto",
		Description: "Light zucchini noodles tossed with fresh basil pesto",
		Ingredients: []Ingredient{
			{"", "zucchini"},
			{"", "fresh basil"},
			{"", "pine nuts"},
			{"", "parmesan"},
			{"", "garlic"},
			{"", "olive oil"},
			{"", "cherry tomatoes"},
		},
		Instructions: []string{
			"Spiralize zucchini into noodles",
			"Make pesto with basil, nuts, cheese, and oil",
			"Lightly sauté zucchini noodles",
			"Toss with pesto and cherry tomatoes",
		},
		PrepTime:     "20 minutes",
		Difficulty:   DifficultyMedium,
		MealPrepTips: "Make pesto in advance and store in refrigerator",
		requires:     []Diet{DietLowCarb, DietKeto},
	},
}
