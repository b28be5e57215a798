package report

import (
	"strings"
	"time"

	"github.com/balkashynov/horas/internal/models"
	"github.com/balkashynov/horas/internal/timecalc"
)

// Kind selects the length of a reporting period
type Kind string

const (
	KindDay   Kind = "day"
	KindWeek  Kind = "week"
	KindMonth Kind = "month"
)

// ParseKind accepts day/week/month and the Portuguese dia/semana/mes.
// An empty string means week.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "week", "semana":
		return KindWeek, nil
	case "month", "mes", "mês":
		return KindMonth, nil
	case "day", "dia":
		return KindDay, nil
	}
	return "", models.NewValidationError("period", "unknown period %q, use day, week or month", s)
}

// Period is a resolved, inclusive time range
type Period struct {
	Kind   Kind      `json:"kind"`
	Offset int       `json:"offset"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// Resolve computes the boundaries of the period of the given kind that is
// offset periods away from ref (0 = the period containing ref, -1 = the one
// before). Boundaries are in ref's location.
func Resolve(kind Kind, offset int, ref time.Time) Period {
	p := Period{Kind: kind, Offset: offset}
	switch kind {
	case KindDay:
		day := ref.AddDate(0, 0, offset)
		p.Start, p.End = timecalc.StartOfDay(day), timecalc.EndOfDay(day)
	case KindMonth:
		p.Start, p.End = timecalc.MonthRange(timecalc.AddMonths(ref, offset))
	default:
		p.Kind = KindWeek
		p.Start, p.End = timecalc.WeekRange(ref.AddDate(0, 0, offset*7))
	}
	return p
}

// Last is the final instant of the period
func (p Period) Last() time.Time {
	return p.End
}

// Contains reports whether t falls within the period, bounds included.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.Last())
}
