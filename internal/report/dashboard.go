// Package report derives read-only views from work items and their sessions:
// per-item totals and history, and the day/week/month dashboard.
package report

import (
	"sort"
	"time"

	"github.com/balkashynov/horas/internal/models"
	"github.com/balkashynov/horas/internal/timecalc"
)

// Summary holds the headline metrics of a period
type Summary struct {
	WorkedHours    float64 `json:"worked_hours"`
	TotalSeconds   int64   `json:"total_seconds"`
	BilledSeconds  int64   `json:"billed_seconds"`
	ActiveCount    int     `json:"active_count"`
	CompletedCount int     `json:"completed_count"`
	BilledCount    int     `json:"billed_count"`
	EstimatedValue float64 `json:"estimated_value"`
	HourlyRate     float64 `json:"hourly_rate"`
}

// WeekdayHours is the worked time attributed to one weekday
type WeekdayHours struct {
	Day     string  `json:"day"`
	Seconds int64   `json:"seconds"`
	Hours   float64 `json:"hours"`
}

// WeekdayCount is a number of work items attributed to one weekday
type WeekdayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// DateCount is a number of work items on one calendar date
type DateCount struct {
	Date  string `json:"date"`
	Total int    `json:"total"`
}

// Dashboard is the aggregated view of one period
type Dashboard struct {
	Period            Period         `json:"period"`
	Summary           Summary        `json:"summary"`
	HoursByWeekday    []WeekdayHours `json:"hours_by_weekday"`
	BilledByWeekday   []WeekdayCount `json:"billed_by_weekday"`
	UnbilledByWeekday []WeekdayCount `json:"unbilled_by_weekday"`
	ItemsByDate       []DateCount    `json:"items_by_date"`
}

// Build aggregates the work items whose reference date falls in p.
// Every weekday and date bucket uses the work item's reference date (in
// p's location), never the dates of its sessions. Items outside p are
// ignored, so callers may pass a superset.
func Build(p Period, items []models.WorkItem, hourlyRate float64, now time.Time) Dashboard {
	loc := p.Start.Location()

	var weekdaySeconds [7]int64
	var billedDone, unbilledDone [7]int
	byDate := map[string]int{}

	var sum Summary
	sum.HourlyRate = hourlyRate

	for i := range items {
		item := &items[i]
		if !p.Contains(item.ReferenceAt) {
			continue
		}
		ref := item.ReferenceAt.In(loc)
		wd := ref.Weekday()

		seconds := sumSessions(item.Sessions, now)
		sum.TotalSeconds += seconds
		weekdaySeconds[wd] += seconds
		byDate[timecalc.DateKey(ref)]++

		if item.Billed {
			sum.BilledCount++
			sum.BilledSeconds += seconds
		}
		switch item.Status {
		case models.WorkItemInProgress:
			sum.ActiveCount++
		case models.WorkItemDone:
			sum.CompletedCount++
			if item.Billed {
				billedDone[wd]++
			} else {
				unbilledDone[wd]++
			}
		}
	}

	sum.WorkedHours = timecalc.Hours(sum.TotalSeconds)
	sum.EstimatedValue = timecalc.Value(sum.BilledSeconds, hourlyRate)

	d := Dashboard{
		Period:            p,
		Summary:           sum,
		HoursByWeekday:    make([]WeekdayHours, 7),
		BilledByWeekday:   make([]WeekdayCount, 7),
		UnbilledByWeekday: make([]WeekdayCount, 7),
		ItemsByDate:       make([]DateCount, 0, len(byDate)),
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := wd.String()[:3]
		d.HoursByWeekday[wd] = WeekdayHours{
			Day:     name,
			Seconds: weekdaySeconds[wd],
			Hours:   timecalc.Hours(weekdaySeconds[wd]),
		}
		d.BilledByWeekday[wd] = WeekdayCount{Day: name, Count: billedDone[wd]}
		d.UnbilledByWeekday[wd] = WeekdayCount{Day: name, Count: unbilledDone[wd]}
	}
	for date, total := range byDate {
		d.ItemsByDate = append(d.ItemsByDate, DateCount{Date: date, Total: total})
	}
	sort.Slice(d.ItemsByDate, func(i, j int) bool {
		return d.ItemsByDate[i].Date < d.ItemsByDate[j].Date
	})
	return d
}
