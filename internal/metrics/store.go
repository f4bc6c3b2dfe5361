// Package metrics records plan-generation events and exposes simple
// usage and health reporting.
package metrics

import (
	"context"
	"database/sql"
	"time"

	"meal-planner/internal/metrics/metricsdb"
)

// GenerationMetric records metadata for a single plan generation.
type GenerationMetric struct {
	UserID    string
	Source    string
	Model     string
	LatencyMS int64
	Timestamp time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	queries *metricsdb.Queries
	db      *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		queries: metricsdb.New(db),
		db:      db,
	}
}

// Record saves a metric to the database.
func (s *Store) Record(m GenerationMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	return s.queries.InsertGenerationMetric(context.Background(), metricsdb.InsertGenerationMetricParams{
		UserID:    m.UserID,
		Source:    m.Source,
		Model:     m.Model,
		LatencyMs: m.LatencyMS,
		Timestamp: ts,
	})
}

// DailyUsage represents generation totals for a single day.
type DailyUsage struct {
	Date         string
	Generations  int
	AIGenerated  int
	AvgLatencyMS int
}

// GetDailyUsage retrieves usage for the last N days.
func (s *Store) GetDailyUsage(days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.queries.GetDailyGenerations(context.Background(), since)
	if err != nil {
		return nil, err
	}

	var results []DailyUsage
	for _, r := range rows {
		u := DailyUsage{
			Generations: int(r.Count),
		}

		if day, ok := r.Day.(string); ok {
			u.Date = day
		} else {
			u.Date = "Unknown"
		}

		if r.AiCount.Valid {
			u.AIGenerated = int(r.AiCount.Float64)
		}
		if r.AvgLatency.Valid {
			u.AvgLatencyMS = int(r.AvgLatency.Float64)
		}

		results = append(results, u)
	}
	return results, nil
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(olderThanDays int) error {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	return s.queries.CleanupGenerationMetrics(context.Background(), threshold)
}
