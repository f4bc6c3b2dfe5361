// Package file is a JSON-file Store for single-machine deployments with no
// database.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"meal-planner/internal/planner"
	"meal-planner/internal/store"
)

// historyLimit caps how many past plans are kept per user.
const historyLimit = 10

const (
	currentPlanFile = "current_plan.json"
	historyFile     = "history.json"
	preferencesFile = "preferences.json"
)

// Store keeps each user's data as JSON files under basePath/<user>/.
type Store struct {
	basePath string
}

var _ store.Store = (*Store)(nil)

// NewStore creates a Store and ensures the base directory exists.
func NewStore(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &Store{basePath: basePath}, nil
}

// sanitizeUserID makes a user ID safe for use as a directory name.
func sanitizeUserID(userID string) string {
	if userID == "" {
		return "anonymous"
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", "..", "-")
	return replacer.Replace(userID)
}

func (s *Store) userPath(userID, filename string) string {
	return filepath.Join(s.basePath, sanitizeUserID(userID), filename)
}

func (s *Store) readJSON(path string, v interface{}) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return true, nil
}

func (s *Store) writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create user directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// CurrentPlan loads the user's current plan, or (nil, nil) when none exists.
func (s *Store) CurrentPlan(_ context.Context, userID string) (*planner.MealPlan, error) {
	var plan planner.MealPlan
	found, err := s.readJSON(s.userPath(userID, currentPlanFile), &plan)
	if err != nil || !found {
		return nil, err
	}
	return &plan, nil
}

// History returns the user's stored plans, most recent first.
func (s *Store) History(_ context.Context, userID string) ([]store.HistoryEntry, error) {
	var history []store.HistoryEntry
	if _, err := s.readJSON(s.userPath(userID, historyFile), &history); err != nil {
		return nil, err
	}
	return history, nil
}

// SavePlan stores plan as the user's current plan and prepends it to the
// history, demoting every previous entry and trimming to the history limit.
func (s *Store) SavePlan(ctx context.Context, userID string, plan planner.MealPlan) error {
	if err := s.writeJSON(s.userPath(userID, currentPlanFile), plan); err != nil {
		return err
	}

	history, err := s.History(ctx, userID)
	if err != nil {
		return err
	}

	entry := store.HistoryEntry{
		ID:        plan.ID,
		Plan:      plan,
		WeekOf:    plan.WeekOf,
		CreatedAt: time.Now().UTC(),
		Current:   true,
	}

	updated := []store.HistoryEntry{entry}
	for _, h := range history {
		if h.ID == plan.ID {
			continue
		}
		h.Current = false
		updated = append(updated, h)
	}
	if len(updated) > historyLimit {
		updated = updated[:historyLimit]
	}

	return s.writeJSON(s.userPath(userID, historyFile), updated)
}

// DeletePlan removes a plan from the history and clears the current plan if
// it was the one deleted.
func (s *Store) DeletePlan(ctx context.Context, userID, id string) error {
	history, err := s.History(ctx, userID)
	if err != nil {
		return err
	}

	var updated []store.HistoryEntry
	for _, h := range history {
		if h.ID != id {
			updated = append(updated, h)
		}
	}
	if updated == nil {
		updated = []store.HistoryEntry{}
	}
	if err := s.writeJSON(s.userPath(userID, historyFile), updated); err != nil {
		return err
	}

	current, err := s.CurrentPlan(ctx, userID)
	if err != nil {
		return err
	}
	if current != nil && current.ID == id {
		if err := os.Remove(s.userPath(userID, currentPlanFile)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove current plan: %w", err)
		}
	}
	return nil
}

// Preferences loads the user's preferences, or (nil, nil) when none are saved.
func (s *Store) Preferences(_ context.Context, userID string) (*planner.DietaryPreferences, error) {
	var prefs planner.DietaryPreferences
	found, err := s.readJSON(s.userPath(userID, preferencesFile), &prefs)
	if err != nil || !found {
		return nil, err
	}
	return &prefs, nil
}

// SavePreferences upserts the user's preferences.
func (s *Store) SavePreferences(_ context.Context, userID string, prefs planner.DietaryPreferences) error {
	return s.writeJSON(s.userPath(userID, preferencesFile), prefs)
}
