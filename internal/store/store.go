// Package store defines the persistence contract for plans and preferences.
// Implementations are interchangeable deployment choices selected by config,
// not layered fallbacks.
package store

import (
	"context"
	"time"

	"meal-planner/internal/planner"
)

// HistoryEntry is a stored plan with its bookkeeping fields.
type HistoryEntry struct {
	ID        string           `json:"id"`
	Plan      planner.MealPlan `json:"meal_plan"`
	WeekOf    time.Time        `json:"week_of"`
	CreatedAt time.Time        `json:"created_at"`
	Current   bool             `json:"current"`
}

// Store persists plans and preferences per user. "Current" is exclusive:
// saving a plan demotes whatever plan was current before it. Lookups return
// (nil, nil) when nothing is stored.
type Store interface {
	CurrentPlan(ctx context.Context, userID string) (*planner.MealPlan, error)
	History(ctx context.Context, userID string) ([]HistoryEntry, error)
	SavePlan(ctx context.Context, userID string, plan planner.MealPlan) error
	DeletePlan(ctx context.Context, userID, id string) error
	Preferences(ctx context.Context, userID string) (*planner.DietaryPreferences, error)
	SavePreferences(ctx context.Context, userID string, prefs planner.DietaryPreferences) error
}
