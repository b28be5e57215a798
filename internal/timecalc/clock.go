package timecalc

import (
	"time"

	"github.com/balkashynov/horas/internal/models"
)

// Elapsed returns the whole seconds between start and now, floored.
// A start in the future (clock skew) yields zero.
func Elapsed(start, now time.Time) int64 {
	if now.Before(start) {
		return 0
	}
	return int64(now.Sub(start) / time.Second)
}

// SessionSeconds returns the seconds a session has accumulated as of now.
// ACTIVE sessions are computed live from StartedAt; PAUSED and FINISHED
// sessions report their frozen AccumulatedSeconds.
func SessionSeconds(s *models.Session, now time.Time) int64 {
	if s.Status == models.SessionActive {
		return Elapsed(s.StartedAt, now)
	}
	if acc := s.Accumulated(); acc > 0 {
		return acc
	}
	return 0
}

// RebaseStart returns the start timestamp a resumed session must carry so
// that Elapsed(start, now) continues from accumulated seconds.
func RebaseStart(accumulated int64, now time.Time) time.Time {
	return now.Add(-time.Duration(accumulated) * time.Second)
}
