// Package sqlite is the database-backed Store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"meal-planner/internal/planner"
	"meal-planner/internal/store"
	"meal-planner/internal/store/sqlite/plandb"
)

// Store persists plans and preferences in SQLite.
type Store struct {
	queries *plandb.Queries
	db      *sql.DB
}

var _ store.Store = (*Store)(nil)

// NewStore creates a Store on an existing database connection. The schema
// must already be migrated (see the database package).
func NewStore(d *sql.DB) *Store {
	return &Store{
		queries: plandb.New(d),
		db:      d,
	}
}

// CurrentPlan returns the user's current plan, or (nil, nil) when none exists.
func (s *Store) CurrentPlan(ctx context.Context, userID string) (*planner.MealPlan, error) {
	row, err := s.queries.GetCurrentMealPlan(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get current plan for user %s: %w", userID, err)
	}

	var plan planner.MealPlan
	if err := json.Unmarshal([]byte(row.PlanData), &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan %s: %w", row.ID, err)
	}
	return &plan, nil
}

// History returns the user's stored plans, most recent first.
func (s *Store) History(ctx context.Context, userID string) ([]store.HistoryEntry, error) {
	rows, err := s.queries.ListMealPlansByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans for user %s: %w", userID, err)
	}

	var history []store.HistoryEntry
	for _, row := range rows {
		var plan planner.MealPlan
		if err := json.Unmarshal([]byte(row.PlanData), &plan); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan %s: %w", row.ID, err)
		}
		history = append(history, store.HistoryEntry{
			ID:        row.ID,
			Plan:      plan,
			WeekOf:    row.WeekOf,
			CreatedAt: row.CreatedAt,
			Current:   row.IsCurrent,
		})
	}
	return history, nil
}

// SavePlan upserts the plan as the user's current plan. Saving an ID that
// already exists (a swap, or re-importing the same file) overwrites that
// row instead of failing. The demotion of the previous current plan and the
// upsert happen in one transaction, so "current" stays exclusive even if
// the process dies mid-save.
func (s *Store) SavePlan(ctx context.Context, userID string, plan planner.MealPlan) error {
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)
	if err := qtx.UnsetCurrentMealPlans(ctx, userID); err != nil {
		return fmt.Errorf("failed to unset current plans: %w", err)
	}
	if err := qtx.UpsertMealPlan(ctx, plandb.UpsertMealPlanParams{
		ID:        plan.ID,
		UserID:    userID,
		WeekOf:    plan.WeekOf,
		PlanData:  string(planJSON),
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit plan save: %w", err)
	}
	return nil
}

// DeletePlan removes a stored plan.
func (s *Store) DeletePlan(ctx context.Context, userID, id string) error {
	if err := s.queries.DeleteMealPlan(ctx, plandb.DeleteMealPlanParams{ID: id, UserID: userID}); err != nil {
		return fmt.Errorf("failed to delete plan %s: %w", id, err)
	}
	return nil
}

// Preferences returns the user's preferences, or (nil, nil) when none are saved.
func (s *Store) Preferences(ctx context.Context, userID string) (*planner.DietaryPreferences, error) {
	row, err := s.queries.GetPreferences(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get preferences for user %s: %w", userID, err)
	}

	var prefs planner.DietaryPreferences
	if err := json.Unmarshal([]byte(row.PrefsData), &prefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	return &prefs, nil
}

// SavePreferences upserts the user's preferences.
func (s *Store) SavePreferences(ctx context.Context, userID string, prefs planner.DietaryPreferences) error {
	prefsJSON, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := s.queries.UpsertPreferences(ctx, plandb.UpsertPreferencesParams{
		UserID:    userID,
		PrefsData: string(prefsJSON),
		UpdatedAt: time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
