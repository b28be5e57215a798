package report

import (
	"sort"
	"time"

	"github.com/balkashynov/horas/internal/models"
	"github.com/balkashynov/horas/internal/timecalc"
)

// HistoryEntry is one session as shown in a work item's history
type HistoryEntry struct {
	ID         string               `json:"id"`
	Status     models.SessionStatus `json:"status"`
	StartedAt  time.Time            `json:"started_at"`
	FinishedAt *time.Time           `json:"finished_at,omitempty"`
	Seconds    int64                `json:"seconds"`
}

// TotalTime sums the seconds of every session of the item as of now.
// Active sessions contribute their live value.
func TotalTime(item *models.WorkItem, now time.Time) int64 {
	return sumSessions(item.Sessions, now)
}

// History returns the item's sessions ordered by start, most recent first.
func History(item *models.WorkItem, now time.Time) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(item.Sessions))
	for i := range item.Sessions {
		s := &item.Sessions[i]
		entries = append(entries, HistoryEntry{
			ID:         s.ID,
			Status:     s.Status,
			StartedAt:  s.StartedAt,
			FinishedAt: s.FinishedAt,
			Seconds:    timecalc.SessionSeconds(s, now),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartedAt.After(entries[j].StartedAt)
	})
	return entries
}

func sumSessions(sessions []models.Session, now time.Time) int64 {
	var total int64
	for i := range sessions {
		total += timecalc.SessionSeconds(&sessions[i], now)
	}
	return total
}
