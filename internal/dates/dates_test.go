package dates

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWindow(t *testing.T) {
	// A Wednesday afternoon. The time of day is kept, and the window ends on
	// the same weekday one week later.
	now := time.Date(2025, time.March, 12, 14, 30, 0, 0, time.UTC)
	w := Window(now)

	if !w.StartDate.Equal(now) {
		t.Errorf("StartDate = %v, want %v", w.StartDate, now)
	}
	if !w.EndDate.Equal(time.Date(2025, time.March, 19, 14, 30, 0, 0, time.UTC)) {
		t.Errorf("EndDate = %v, want 2025-03-19 14:30", w.EndDate)
	}
	if w.EndDate.Weekday() != w.StartDate.Weekday() {
		t.Errorf("EndDate weekday = %v, want %v", w.EndDate.Weekday(), w.StartDate.Weekday())
	}
	if w.StartDayName != "Wednesday" {
		t.Errorf("StartDayName = %q, want Wednesday", w.StartDayName)
	}
	if w.TotalDays != 7 {
		t.Errorf("TotalDays = %d, want 7", w.TotalDays)
	}
}

func TestWeekDaysFrom(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want []string
	}{
		{
			name: "starts on Wednesday",
			now:  date(2025, time.March, 12),
			want: []string{"Wednesday", "Thursday", "Friday", "Saturday", "Sunday", "Monday", "Tuesday"},
		},
		{
			name: "starts on Sunday",
			now:  date(2025, time.March, 16),
			want: []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekDaysFrom(tt.now)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d days, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("day[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDateForDay(t *testing.T) {
	weekOf := date(2025, time.March, 12)
	got := DateForDay(weekOf, 3)
	if !got.Equal(date(2025, time.March, 15)) {
		t.Errorf("DateForDay = %v, want 2025-03-15", got)
	}
}

func TestIsCurrentWeek(t *testing.T) {
	weekOf := date(2025, time.March, 12)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"same day", weekOf, true},
		{"last day late evening", time.Date(2025, time.March, 18, 23, 0, 0, 0, time.UTC), true},
		{"day after window", date(2025, time.March, 19), false},
		{"eight days later", date(2025, time.March, 20), false},
		{"day before window", date(2025, time.March, 11), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCurrentWeek(weekOf, tt.now); got != tt.want {
				t.Errorf("IsCurrentWeek(%v, %v) = %v, want %v", weekOf, tt.now, got, tt.want)
			}
		})
	}
}

func TestDaysUntilExpiry(t *testing.T) {
	weekOf := date(2025, time.March, 12)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"start of window", weekOf, 7},
		{"midweek", date(2025, time.March, 15), 4},
		{"after window", date(2025, time.March, 25), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntilExpiry(weekOf, tt.now); got != tt.want {
				t.Errorf("DaysUntilExpiry = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatRange(t *testing.T) {
	w := Window(date(2025, time.March, 12))
	want := "March 12, 2025 - March 19, 2025"
	if got := FormatRange(w); got != want {
		t.Errorf("FormatRange = %q, want %q", got, want)
	}
}
