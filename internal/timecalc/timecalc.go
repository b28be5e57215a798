package timecalc

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
)

// FormatDuration formats seconds as a human-readable string like "1h 1min", "45min" or "30s".
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dmin", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dmin", m)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatDurationHHMMSS formats seconds as HH:MM:SS.
func FormatDurationHHMMSS(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// HoursHundredths converts seconds to hundredths of an hour, rounding half
// away from zero. 522s is exactly 0.145h and yields 15.
func HoursHundredths(seconds int64) int64 {
	if seconds < 0 {
		return -HoursHundredths(-seconds)
	}
	return (seconds*100 + 1800) / 3600
}

// Hours converts seconds to decimal hours rounded to two places.
func Hours(seconds int64) float64 {
	return decimal.New(HoursHundredths(seconds), -2).InexactFloat64()
}

// Value prices seconds at an hourly rate, rounded half away from zero to
// two decimal places.
func Value(seconds int64, rate float64) float64 {
	return decimal.NewFromInt(seconds).
		Mul(decimal.NewFromFloat(rate)).
		Div(decimal.NewFromInt(3600)).
		Round(2).
		InexactFloat64()
}

// Weeks start on Sunday.
var calendar = &now.Config{WeekStartDay: time.Sunday}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return calendar.With(t).BeginningOfDay()
}

// EndOfDay returns the last nanosecond of the same day.
func EndOfDay(t time.Time) time.Time {
	return calendar.With(t).EndOfDay()
}

// WeekRange returns the first and last instants of the Sunday-to-Saturday
// week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	n := calendar.With(t)
	return n.BeginningOfWeek(), n.EndOfWeek()
}

// MonthRange returns the first and last instants of the month containing t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	n := calendar.With(t)
	return n.BeginningOfMonth(), n.EndOfMonth()
}

// AddMonths shifts t by n calendar months, clamping to the first of the
// month so that e.g. Jan 31 + 1 lands in February.
func AddMonths(t time.Time, n int) time.Time {
	return calendar.With(t).BeginningOfMonth().AddDate(0, n, 0)
}

// DateKey returns the ISO calendar date of t, e.g. "2026-02-27".
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
