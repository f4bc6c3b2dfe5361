// Package dates implements the rolling seven-day planning window. A plan
// always starts on the day it is generated, so the week's day names rotate
// with the start weekday.
package dates

import (
	"fmt"
	"time"
)

// PlanDays is the length of every plan.
const PlanDays = 7

// WeekWindow describes the date range a plan covers.
type WeekWindow struct {
	StartDate    time.Time
	EndDate      time.Time
	StartDayName string
	TotalDays    int
}

// Window returns the planning window starting at now. StartDate keeps now's
// time of day, and EndDate lands on the same weekday one week later, so the
// displayed range spans eight calendar days inclusive.
func Window(now time.Time) WeekWindow {
	return WeekWindow{
		StartDate:    now,
		EndDate:      now.AddDate(0, 0, PlanDays),
		StartDayName: now.Weekday().String(),
		TotalDays:    PlanDays,
	}
}

// WeekDaysFrom returns the seven day names of the window, beginning with
// now's weekday.
func WeekDaysFrom(now time.Time) []string {
	start := int(now.Weekday())
	days := make([]string, PlanDays)
	for i := 0; i < PlanDays; i++ {
		days[i] = time.Weekday((start + i) % 7).String()
	}
	return days
}

// DateForDay returns the calendar date of the i-th day of a window that
// starts at weekOf.
func DateForDay(weekOf time.Time, dayIndex int) time.Time {
	return startOfDay(weekOf).AddDate(0, 0, dayIndex)
}

// IsCurrentWeek reports whether now still falls inside the window that
// starts at weekOf.
func IsCurrentWeek(weekOf, now time.Time) bool {
	start := startOfDay(weekOf)
	if now.Before(start) {
		return false
	}
	return !now.After(endOfWeek(weekOf))
}

// DaysUntilExpiry returns how many whole or partial days remain before the
// window ends, never negative.
func DaysUntilExpiry(weekOf, now time.Time) int {
	end := endOfWeek(weekOf)
	if now.After(end) {
		return 0
	}
	remaining := end.Sub(now)
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// FormatRange renders the window as a human-readable date range.
func FormatRange(w WeekWindow) string {
	return fmt.Sprintf("%s - %s", w.StartDate.Format("January 2, 2006"), w.EndDate.Format("January 2, 2006"))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfWeek(weekOf time.Time) time.Time {
	start := startOfDay(weekOf)
	lastDay := start.AddDate(0, 0, PlanDays-1)
	return time.Date(lastDay.Year(), lastDay.Month(), lastDay.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), lastDay.Location())
}
