package timecalc_test

import (
	"testing"
	"time"

	"github.com/balkashynov/horas/internal/models"
	"github.com/balkashynov/horas/internal/timecalc"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{-5, "0s"},
		{0, "0s"},
		{45, "45s"},
		{60, "1min"},
		{90, "1min"},
		{3600, "1h 0min"},
		{3661, "1h 1min"},
		{5400, "1h 30min"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDuration(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatDurationHHMMSS(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00:00"},
		{61, "00:01:01"},
		{3661, "01:01:01"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDurationHHMMSS(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDurationHHMMSS(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestElapsed(t *testing.T) {
	start := time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		now  time.Time
		want int64
	}{
		{"same instant", start, 0},
		{"floors sub-second", start.Add(1999 * time.Millisecond), 1},
		{"one hour", start.Add(time.Hour), 3600},
		{"clock skew clamps", start.Add(-time.Minute), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timecalc.Elapsed(start, tt.now); got != tt.want {
				t.Errorf("Elapsed = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestElapsedMonotonic(t *testing.T) {
	start := time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)
	var prev int64
	for i := 0; i < 500; i++ {
		now := start.Add(time.Duration(i*337) * time.Millisecond)
		got := timecalc.Elapsed(start, now)
		if got < 0 || got < prev {
			t.Fatalf("Elapsed at step %d = %d, previous %d", i, got, prev)
		}
		prev = got
	}
}

func TestSessionSeconds(t *testing.T) {
	start := time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)
	now := start.Add(10 * time.Minute)
	acc := int64(120)

	active := &models.Session{Status: models.SessionActive, StartedAt: start}
	if got := timecalc.SessionSeconds(active, now); got != 600 {
		t.Errorf("active = %d, want 600", got)
	}

	paused := &models.Session{Status: models.SessionPaused, StartedAt: start, AccumulatedSeconds: &acc}
	if got := timecalc.SessionSeconds(paused, now); got != 120 {
		t.Errorf("paused = %d, want 120", got)
	}

	finished := &models.Session{Status: models.SessionFinished, StartedAt: start}
	if got := timecalc.SessionSeconds(finished, now); got != 0 {
		t.Errorf("finished without accumulated = %d, want 0", got)
	}
}

func TestRebaseStart(t *testing.T) {
	now := time.Date(2026, 2, 27, 12, 0, 0, 0, time.UTC)
	start := timecalc.RebaseStart(100, now)
	if got := timecalc.Elapsed(start, now.Add(150*time.Second)); got != 250 {
		t.Errorf("elapsed after rebase = %d, want 250", got)
	}
}

func TestWeekRange(t *testing.T) {
	// 2026-02-27 is a Friday.
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	sunday, saturday := timecalc.WeekRange(fri)

	wantSunday := time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC)
	wantSaturday := time.Date(2026, 2, 28, 23, 59, 59, 999_999_999, time.UTC)

	if !sunday.Equal(wantSunday) {
		t.Errorf("WeekRange start = %v, want %v", sunday, wantSunday)
	}
	if !saturday.Equal(wantSaturday) {
		t.Errorf("WeekRange end = %v, want %v", saturday, wantSaturday)
	}

	// A Sunday is the first day of its own week.
	sun := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	start, _ := timecalc.WeekRange(sun)
	if !start.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("WeekRange(sunday) start = %v", start)
	}
}

func TestMonthRange(t *testing.T) {
	first, last := timecalc.MonthRange(time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC))
	if !first.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("MonthRange first = %v", first)
	}
	if !last.Equal(time.Date(2024, 2, 29, 23, 59, 59, 999_999_999, time.UTC)) {
		t.Errorf("MonthRange last = %v (leap year)", last)
	}
}

func TestAddMonths(t *testing.T) {
	jan31 := time.Date(2026, 1, 31, 15, 0, 0, 0, time.UTC)
	if got := timecalc.AddMonths(jan31, 1); got.Month() != time.February {
		t.Errorf("AddMonths(jan31, 1) month = %v, want February", got.Month())
	}
	if got := timecalc.AddMonths(jan31, -1); got.Year() != 2025 || got.Month() != time.December {
		t.Errorf("AddMonths(jan31, -1) = %v, want December 2025", got)
	}
}

func TestHours(t *testing.T) {
	tests := []struct {
		seconds int64
		want    float64
	}{
		{0, 0},
		{3661, 1.02},
		{7200, 2},
		{450, 0.13},
		{522, 0.15},
		{17, 0},
		{18, 0.01},
		{-522, -0.15},
	}
	for _, tt := range tests {
		if got := timecalc.Hours(tt.seconds); got != tt.want {
			t.Errorf("Hours(%d) = %v, want %v", tt.seconds, got, tt.want)
		}
	}
}

func TestHoursHundredthsTies(t *testing.T) {
	// every 18s step past a whole hundredth is an exact .xx5 tie
	for h := int64(0); h < 2000; h++ {
		seconds := h*36 + 18
		if got := timecalc.HoursHundredths(seconds); got != h+1 {
			t.Fatalf("HoursHundredths(%d) = %d, want %d", seconds, got, h+1)
		}
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		seconds int64
		rate    float64
		want    float64
	}{
		{0, 100, 0},
		{7200, 100, 200},
		{5400, 100, 150},
		{108, 100.5, 3.02},
		{3661, 33.33, 33.89},
		{108, -100.5, -3.02},
	}
	for _, tt := range tests {
		if got := timecalc.Value(tt.seconds, tt.rate); got != tt.want {
			t.Errorf("Value(%d, %v) = %v, want %v", tt.seconds, tt.rate, got, tt.want)
		}
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	b := time.Date(2026, 2, 27, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	if !timecalc.SameDay(a, b) {
		t.Error("SameDay: expected same day for a and b")
	}
	if timecalc.SameDay(a, c) {
		t.Error("SameDay: expected different day for a and c")
	}
}
