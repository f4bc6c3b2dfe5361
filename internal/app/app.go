// Package app wires the planner, stores, and AI service into the operations
// the CLI and Telegram bot expose.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"meal-planner/internal/ai"
	"meal-planner/internal/clipper"
	"meal-planner/internal/config"
	"meal-planner/internal/export"
	"meal-planner/internal/metrics"
	"meal-planner/internal/planner"
	"meal-planner/internal/shopping"
	"meal-planner/internal/store"
)

// App holds the application's dependencies.
type App struct {
	cfg           *config.Config
	store         store.Store
	aiService     *ai.Service
	metricsStore  *metrics.Store // nil when the file backend is active
	recipeClipper *clipper.Clipper
	modelName     string
}

// NewApp creates and initializes a new App instance. metricsStore and
// recipeClipper may be nil; the related operations then report that the
// feature is unavailable.
func NewApp(
	cfg *config.Config,
	planStore store.Store,
	aiService *ai.Service,
	metricsStore *metrics.Store,
	recipeClipper *clipper.Clipper,
	modelName string,
) *App {
	return &App{
		cfg:           cfg,
		store:         planStore,
		aiService:     aiService,
		metricsStore:  metricsStore,
		recipeClipper: recipeClipper,
		modelName:     modelName,
	}
}

// GeneratePlan builds a new weekly plan for the user and stores it as their
// current plan. A storage failure does not discard the generated plan; the
// plan is still returned so the caller can show it.
func (a *App) GeneratePlan(ctx context.Context, userID string, req planner.MealPlanRequest) (planner.MealPlan, ai.Source, error) {
	if req.Preferences.ServingSize == 0 {
		prefs, err := a.store.Preferences(ctx, userID)
		if err != nil {
			log.Printf("Warning: failed to load preferences for %s: %v", userID, err)
		}
		if prefs != nil {
			req.Preferences = *prefs
		} else {
			req.Preferences = planner.DefaultPreferences()
		}
	}

	start := time.Now()
	plan, source := a.aiService.GeneratePlan(ctx, req, time.Now())
	a.recordGeneration(userID, source, time.Since(start))

	if err := a.store.SavePlan(ctx, userID, plan); err != nil {
		log.Printf("Warning: failed to save plan for %s: %v", userID, err)
	}
	return plan, source, nil
}

// CurrentPlan returns the user's current plan, or nil when none exists.
func (a *App) CurrentPlan(ctx context.Context, userID string) (*planner.MealPlan, error) {
	return a.store.CurrentPlan(ctx, userID)
}

// Alternatives returns replacement suggestions for one meal of the current plan.
func (a *App) Alternatives(ctx context.Context, userID, day string, slot planner.Slot, searchHint string) ([]planner.Meal, error) {
	plan, err := a.store.CurrentPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("no current plan for user %s", userID)
	}

	dayMeals, ok := plan.Meals[day]
	if !ok {
		return nil, fmt.Errorf("day %q is not part of the current plan", day)
	}
	return a.aiService.GenerateAlternatives(ctx, dayMeals.Meal(slot), searchHint), nil
}

// SwapMeal replaces one meal of the current plan with the chosen alternative
// and saves the updated plan.
func (a *App) SwapMeal(ctx context.Context, userID, day string, slot planner.Slot, replacement planner.Meal) (planner.MealPlan, error) {
	plan, err := a.store.CurrentPlan(ctx, userID)
	if err != nil {
		return planner.MealPlan{}, err
	}
	if plan == nil {
		return planner.MealPlan{}, fmt.Errorf("no current plan for user %s", userID)
	}

	dayMeals, ok := plan.Meals[day]
	if !ok {
		return planner.MealPlan{}, fmt.Errorf("day %q is not part of the current plan", day)
	}

	updated := *plan
	updated.Meals = make(map[string]planner.DayMeals, len(plan.Meals))
	for d, m := range plan.Meals {
		updated.Meals[d] = m
	}
	updated.Meals[day] = dayMeals.WithMeal(slot, replacement)

	if err := a.store.SavePlan(ctx, userID, updated); err != nil {
		return planner.MealPlan{}, fmt.Errorf("failed to save swapped plan: %w", err)
	}
	return updated, nil
}

// SwapFromURL clips a recipe from the web and swaps it into the current plan.
func (a *App) SwapFromURL(ctx context.Context, userID, day string, slot planner.Slot, url string) (planner.MealPlan, error) {
	if a.recipeClipper == nil {
		return planner.MealPlan{}, fmt.Errorf("recipe clipping requires an AI provider")
	}
	meal, err := a.recipeClipper.ClipURL(ctx, url)
	if err != nil {
		return planner.MealPlan{}, err
	}
	return a.SwapMeal(ctx, userID, day, slot, *meal)
}

// ClipRecipe fetches and extracts a recipe without touching any plan.
func (a *App) ClipRecipe(ctx context.Context, url string) (*planner.Meal, error) {
	if a.recipeClipper == nil {
		return nil, fmt.Errorf("recipe clipping requires an AI provider")
	}
	return a.recipeClipper.ClipURL(ctx, url)
}

// ShoppingList aggregates the current plan's ingredients.
func (a *App) ShoppingList(ctx context.Context, userID string) ([]shopping.Item, error) {
	plan, err := a.store.CurrentPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("no current plan for user %s", userID)
	}
	return shopping.BuildList(*plan), nil
}

// ExportPlan serializes the current plan in the portable file format and
// returns the payload with its suggested filename.
func (a *App) ExportPlan(ctx context.Context, userID string) (payload, filename string, err error) {
	plan, err := a.store.CurrentPlan(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if plan == nil {
		return "", "", fmt.Errorf("no current plan for user %s", userID)
	}

	payload, err = export.EncodeMP(*plan)
	if err != nil {
		return "", "", err
	}
	return payload, export.MPFileName(*plan), nil
}

// ImportPlan decodes an exported plan file and stores it as the user's
// current plan.
func (a *App) ImportPlan(ctx context.Context, userID, payload string) (planner.MealPlan, error) {
	plan, err := export.DecodeMP(payload)
	if err != nil {
		return planner.MealPlan{}, err
	}
	if err := a.store.SavePlan(ctx, userID, plan); err != nil {
		return planner.MealPlan{}, fmt.Errorf("failed to save imported plan: %w", err)
	}
	return plan, nil
}

// ImportShared decodes a share link payload and stores the plan.
func (a *App) ImportShared(ctx context.Context, userID, encoded string) (planner.MealPlan, error) {
	plan, err := export.DecodeShared(encoded)
	if err != nil {
		return planner.MealPlan{}, err
	}
	if err := a.store.SavePlan(ctx, userID, plan); err != nil {
		return planner.MealPlan{}, fmt.Errorf("failed to save shared plan: %w", err)
	}
	return plan, nil
}

// History lists the user's stored plans, most recent first.
func (a *App) History(ctx context.Context, userID string) ([]store.HistoryEntry, error) {
	return a.store.History(ctx, userID)
}

// DeletePlan removes a stored plan.
func (a *App) DeletePlan(ctx context.Context, userID, planID string) error {
	return a.store.DeletePlan(ctx, userID, planID)
}

// Preferences returns the user's saved preferences, falling back to defaults.
func (a *App) Preferences(ctx context.Context, userID string) (planner.DietaryPreferences, error) {
	prefs, err := a.store.Preferences(ctx, userID)
	if err != nil {
		return planner.DietaryPreferences{}, err
	}
	if prefs == nil {
		return planner.DefaultPreferences(), nil
	}
	return *prefs, nil
}

// SavePreferences persists the user's preferences.
func (a *App) SavePreferences(ctx context.Context, userID string, prefs planner.DietaryPreferences) error {
	return a.store.SavePreferences(ctx, userID, prefs)
}

// UsageReport summarizes recent generation activity and process health.
func (a *App) UsageReport(days int) ([]metrics.DailyUsage, metrics.SysHealth, error) {
	health := metrics.CollectSysHealth(a.cfg.DataDir)
	if a.metricsStore == nil {
		return nil, health, nil
	}
	usage, err := a.metricsStore.GetDailyUsage(days)
	if err != nil {
		return nil, health, err
	}
	return usage, health, nil
}

// CleanupMetrics removes generation records older than the given age.
func (a *App) CleanupMetrics(olderThanDays int) error {
	if a.metricsStore == nil {
		return nil
	}
	return a.metricsStore.Cleanup(olderThanDays)
}

func (a *App) recordGeneration(userID string, source ai.Source, elapsed time.Duration) {
	if a.metricsStore == nil {
		return
	}
	model := "catalog"
	if source == ai.SourceAI {
		model = a.modelName
	}
	if err := a.metricsStore.Record(metrics.GenerationMetric{
		UserID:    userID,
		Source:    string(source),
		Model:     model,
		LatencyMS: elapsed.Milliseconds(),
	}); err != nil {
		log.Printf("Warning: failed to record generation metric: %v", err)
	}
}
