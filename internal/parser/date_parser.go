package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	slashDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})(?:\s+(\d{1,2}):(\d{2}))?$`)
	daysAgoRegex   = regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks)\s+ago$`)
)

// ParseReferenceDate parses the date a work item is attributed to.
// Supported formats:
// - RFC 3339 (e.g., "2026-02-27T14:00:00-03:00")
// - yyyy-mm-dd, optionally followed by HH:MM (e.g., "2026-02-27 14:00")
// - dd/mm/yyyy, optionally followed by HH:MM (e.g., "27/02/2026")
// - today, yesterday (also hoje, ontem)
// - X days ago, X weeks ago
//
// Dates without a time of day resolve to the current time of day, so that
// items logged "today" keep their natural order.
func ParseReferenceDate(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return now, nil
	}
	loc := now.Location()

	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", input, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", input, loc); err == nil {
		return withClock(t, now), nil
	}
	if t, err := parseSlashDate(input, now); err == nil {
		return t, nil
	}
	if t, err := parseRelativeDay(input, now); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid date %q. Use: yyyy-mm-dd, dd/mm/yyyy, today, yesterday or X days ago", input)
}

// parseSlashDate parses dd/mm/yyyy [HH:MM]
func parseSlashDate(input string, now time.Time) (time.Time, error) {
	matches := slashDateRegex.FindStringSubmatch(input)
	if matches == nil {
		return time.Time{}, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())

	// Check if date is valid (handles leap years, etc.)
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date")
	}

	if matches[4] == "" {
		return withClock(t, now), nil
	}
	hour, _ := strconv.Atoi(matches[4])
	minute, _ := strconv.Atoi(matches[5])
	if hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid time of day")
	}
	return t.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), nil
}

// parseRelativeDay parses today, yesterday and "X days ago"
func parseRelativeDay(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(input)

	switch input {
	case "today", "hoje", "now":
		return now, nil
	case "yesterday", "ontem":
		return now.AddDate(0, 0, -1), nil
	}

	matches := daysAgoRegex.FindStringSubmatch(input)
	if matches == nil {
		return time.Time{}, fmt.Errorf("invalid relative date format")
	}
	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid number")
	}
	if amount > 3650 {
		return time.Time{}, fmt.Errorf("too far in the past")
	}

	switch matches[2] {
	case "week", "weeks":
		return now.AddDate(0, 0, -7*amount), nil
	default:
		return now.AddDate(0, 0, -amount), nil
	}
}

// withClock puts now's time of day on date
func withClock(date, now time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), now.Hour(), now.Minute(), now.Second(), 0, date.Location())
}

// FormatReferenceDate formats a reference date for display
func FormatReferenceDate(t, now time.Time) string {
	t = t.In(now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
	daysDiff := int(today.Sub(day).Hours() / 24)

	dateStr := t.Format("02/01/2006")
	switch {
	case daysDiff == 0:
		return fmt.Sprintf("today (%s)", dateStr)
	case daysDiff == 1:
		return fmt.Sprintf("yesterday (%s)", dateStr)
	case daysDiff > 1 && daysDiff <= 6:
		return fmt.Sprintf("%s (%s)", t.Weekday(), dateStr)
	default:
		return dateStr
	}
}
