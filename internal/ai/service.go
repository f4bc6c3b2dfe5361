// Package ai asks an external model for a meal plan matching the same
// structure the deterministic assembler produces. Every failure mode (no
// client, timeout, malformed JSON, missing days or slots) falls back to the
// assembler transparently, so generation itself never fails.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"meal-planner/internal/dates"
	"meal-planner/internal/llm"
	"meal-planner/internal/planner"
)

// Source records which path produced a plan.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Service generates plans and meal alternatives, preferring the AI path when
// a text generator is configured.
type Service struct {
	textGen llm.TextGenerator
}

// NewService creates a Service. A nil textGen disables the AI path entirely;
// every call then uses the deterministic generator.
func NewService(textGen llm.TextGenerator) *Service {
	return &Service{textGen: textGen}
}

// GeneratePlan returns a complete 7-day plan for the request. The AI result
// is validated against the rotated week before being accepted; anything less
// than a fully populated plan is discarded in favor of the assembler.
func (s *Service) GeneratePlan(ctx context.Context, req planner.MealPlanRequest, now time.Time) (planner.MealPlan, Source) {
	if s.textGen == nil {
		return planner.AssemblePlan(req, now), SourceFallback
	}

	plan, err := s.generateViaAI(ctx, req, now)
	if err != nil {
		log.Printf("AI plan generation failed, using deterministic generator: %v", err)
		return planner.AssemblePlan(req, now), SourceFallback
	}
	return plan, SourceAI
}

func (s *Service) generateViaAI(ctx context.Context, req planner.MealPlanRequest, now time.Time) (planner.MealPlan, error) {
	weekDays := dates.WeekDaysFrom(now)
	window := dates.Window(now)

	prompt := buildPlanPrompt(req, window, weekDays, now)

	resp, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return planner.MealPlan{}, fmt.Errorf("llm call failed: %w", err)
	}

	cleaned, err := extractJSONObject(resp.Content)
	if err != nil {
		return planner.MealPlan{}, err
	}

	var plan planner.MealPlan
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		return planner.MealPlan{}, fmt.Errorf("failed to parse plan JSON: %w", err)
	}

	if plan.Meals == nil {
		return planner.MealPlan{}, fmt.Errorf("invalid plan structure: missing meals object")
	}
	for _, day := range weekDays {
		dayMeals, ok := plan.Meals[day]
		if !ok {
			return planner.MealPlan{}, fmt.Errorf("invalid plan structure: missing day %s", day)
		}
		for _, slot := range planner.Slots() {
			if dayMeals.Meal(slot).Name == "" {
				return planner.MealPlan{}, fmt.Errorf("invalid plan structure: missing %s for %s", slot, day)
			}
		}
	}

	if plan.ID == "" {
		plan.ID = planner.NewPlanID(now)
	}
	if plan.WeekOf.IsZero() {
		plan.WeekOf = window.StartDate
	}
	if plan.MealTimes == (planner.MealTimes{}) {
		plan.MealTimes = planner.DefaultMealTimes()
	}
	return plan, nil
}

// GenerateAlternatives returns alternatives for a meal, from the AI when
// available, otherwise the three templated fallbacks.
func (s *Service) GenerateAlternatives(ctx context.Context, current planner.Meal, searchHint string) []planner.Meal {
	if s.textGen == nil {
		return planner.FallbackAlternatives(current)
	}

	alternatives, err := s.alternativesViaAI(ctx, current, searchHint)
	if err != nil {
		log.Printf("AI alternatives failed, using templated fallbacks: %v", err)
		return planner.FallbackAlternatives(current)
	}
	return alternatives
}

func (s *Service) alternativesViaAI(ctx context.Context, current planner.Meal, searchHint string) ([]planner.Meal, error) {
	prompt := buildAlternativesPrompt(current, searchHint)

	resp, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("llm call failed: %w", err)
	}

	cleaned, err := extractJSONArray(resp.Content)
	if err != nil {
		return nil, err
	}

	var alternatives []planner.Meal
	if err := json.Unmarshal([]byte(cleaned), &alternatives); err != nil {
		return nil, fmt.Errorf("failed to parse alternatives JSON: %w", err)
	}
	if len(alternatives) == 0 {
		return nil, fmt.Errorf("invalid alternatives format: empty array")
	}
	return alternatives, nil
}

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extractJSONObject isolates the outermost {...} in a model response.
func extractJSONObject(s string) (string, error) {
	s = stripFences(s)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}

// extractJSONArray isolates the outermost [...] in a model response.
func extractJSONArray(s string) (string, error) {
	s = stripFences(s)
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON array found in response")
	}
	return s[start : end+1], nil
}
