package tracker

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/balkashynov/horas/internal/auth"
	"github.com/balkashynov/horas/internal/models"
	"github.com/balkashynov/horas/internal/timecalc"
)

// SessionView is a session together with its duration as of the read
type SessionView struct {
	models.Session
	Seconds int64 `json:"seconds"`
}

// Start opens a new ACTIVE session on the work item. An OPEN work item
// moves to IN_PROGRESS in the same transaction.
func (t *Tracker) Start(ctx context.Context, owner auth.Owner, workItemID string) (*models.Session, error) {
	if err := owner.Verify(); err != nil {
		return nil, err
	}

	var session *models.Session
	err := t.store.Atomic(ctx, func(tx Store) error {
		item, err := tx.FindWorkItem(ctx, workItemID, owner.ID())
		if err != nil {
			return err
		}

		active, err := tx.FindActiveSession(ctx, item.ID)
		if err != nil {
			return err
		}
		if active != nil {
			return fmt.Errorf("%w: work item %s already has active session %s", models.ErrConflict, item.ID, active.ID)
		}

		now := t.Now()
		session = &models.Session{
			WorkItemID: item.ID,
			StartedAt:  now,
			Status:     models.SessionActive,
		}
		if err := tx.CreateSession(ctx, session); err != nil {
			return err
		}

		if item.Status == models.WorkItemOpen {
			item.SetStatus(models.WorkItemInProgress, now)
			return tx.UpdateWorkItemStatus(ctx, item.ID, item.Status, item.CompletedAt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.log.WithFields(logrus.Fields{
		"owner":     owner.ID(),
		"work_item": workItemID,
		"session":   session.ID,
	}).Info("session started")
	return session, nil
}

// Pause freezes an ACTIVE session's elapsed time
func (t *Tracker) Pause(ctx context.Context, owner auth.Owner, sessionID string) (*models.Session, error) {
	return t.transition(ctx, owner, sessionID, "pause", func(tx Store, s *models.Session) error {
		if s.Status != models.SessionActive {
			return &models.TransitionError{From: s.Status, Event: "pause"}
		}
		acc := timecalc.Elapsed(s.StartedAt, t.Now())
		s.AccumulatedSeconds = &acc
		s.Status = models.SessionPaused
		return nil
	})
}

// Resume puts a PAUSED session back to ACTIVE. The start timestamp is moved
// back by the accumulated seconds so the live clock continues from there.
func (t *Tracker) Resume(ctx context.Context, owner auth.Owner, sessionID string) (*models.Session, error) {
	return t.transition(ctx, owner, sessionID, "resume", func(tx Store, s *models.Session) error {
		if s.Status != models.SessionPaused {
			return &models.TransitionError{From: s.Status, Event: "resume"}
		}

		active, err := tx.FindActiveSession(ctx, s.WorkItemID)
		if err != nil {
			return err
		}
		if active != nil && active.ID != s.ID {
			return fmt.Errorf("%w: work item %s already has active session %s", models.ErrConflict, s.WorkItemID, active.ID)
		}

		s.StartedAt = timecalc.RebaseStart(s.Accumulated(), t.Now())
		s.AccumulatedSeconds = nil
		s.Status = models.SessionActive
		return nil
	})
}

// Finish closes an ACTIVE or PAUSED session. FINISHED is terminal.
func (t *Tracker) Finish(ctx context.Context, owner auth.Owner, sessionID string) (*models.Session, error) {
	session, err := t.transition(ctx, owner, sessionID, "finish", func(tx Store, s *models.Session) error {
		now := t.Now()
		switch s.Status {
		case models.SessionActive:
			acc := timecalc.Elapsed(s.StartedAt, now)
			s.AccumulatedSeconds = &acc
		case models.SessionPaused:
			acc := s.Accumulated()
			s.AccumulatedSeconds = &acc
		default:
			return &models.TransitionError{From: s.Status, Event: "finish"}
		}
		s.FinishedAt = &now
		s.Status = models.SessionFinished
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, hook := range t.onFinish {
		hook(session.WorkItem, session)
	}
	return session, nil
}

// Transition moves a session to the requested status through the matching
// event: ACTIVE resumes, PAUSED pauses and FINISHED finishes.
func (t *Tracker) Transition(ctx context.Context, owner auth.Owner, sessionID string, to models.SessionStatus) (*models.Session, error) {
	switch to {
	case models.SessionActive:
		return t.Resume(ctx, owner, sessionID)
	case models.SessionPaused:
		return t.Pause(ctx, owner, sessionID)
	case models.SessionFinished:
		return t.Finish(ctx, owner, sessionID)
	}
	return nil, models.NewValidationError("status", "unknown session status %q", to)
}

// LogManual records durationSeconds of work that ended now as a FINISHED
// session. It does not look at, or touch, any running session.
func (t *Tracker) LogManual(ctx context.Context, owner auth.Owner, workItemID string, durationSeconds int64) (*models.Session, error) {
	if err := owner.Verify(); err != nil {
		return nil, err
	}
	if durationSeconds < 1 {
		return nil, models.NewValidationError("duration_seconds", "must be at least 1 second, got %d", durationSeconds)
	}

	item, err := t.store.FindWorkItem(ctx, workItemID, owner.ID())
	if err != nil {
		return nil, err
	}

	end := t.Now()
	acc := durationSeconds
	session := &models.Session{
		WorkItemID:         item.ID,
		StartedAt:          timecalc.RebaseStart(durationSeconds, end),
		FinishedAt:         &end,
		AccumulatedSeconds: &acc,
		Status:             models.SessionFinished,
	}
	if err := t.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	t.log.WithFields(logrus.Fields{
		"owner":     owner.ID(),
		"work_item": item.ID,
		"seconds":   durationSeconds,
	}).Info("manual time logged")
	return session, nil
}

// DeleteSession removes a session in any status
func (t *Tracker) DeleteSession(ctx context.Context, owner auth.Owner, sessionID string) error {
	if err := owner.Verify(); err != nil {
		return err
	}
	return t.store.Atomic(ctx, func(tx Store) error {
		s, err := tx.FindSession(ctx, sessionID, owner.ID())
		if err != nil {
			return err
		}
		if err := tx.DeleteSession(ctx, s.ID); err != nil {
			return err
		}
		t.log.WithFields(logrus.Fields{
			"owner":   owner.ID(),
			"session": s.ID,
			"status":  s.Status,
		}).Info("session deleted")
		return nil
	})
}

// GetSession returns one session with its live duration
func (t *Tracker) GetSession(ctx context.Context, owner auth.Owner, sessionID string) (*SessionView, error) {
	if err := owner.Verify(); err != nil {
		return nil, err
	}
	s, err := t.store.FindSession(ctx, sessionID, owner.ID())
	if err != nil {
		return nil, err
	}
	return &SessionView{Session: *s, Seconds: timecalc.SessionSeconds(s, t.Now())}, nil
}

// ListActiveSessions returns every running session of the owner, each with
// its work item loaded.
func (t *Tracker) ListActiveSessions(ctx context.Context, owner auth.Owner) ([]SessionView, error) {
	if err := owner.Verify(); err != nil {
		return nil, err
	}
	sessions, err := t.store.ListActiveSessions(ctx, owner.ID())
	if err != nil {
		return nil, err
	}

	now := t.Now()
	views := make([]SessionView, 0, len(sessions))
	for i := range sessions {
		views = append(views, SessionView{
			Session: sessions[i],
			Seconds: timecalc.SessionSeconds(&sessions[i], now),
		})
	}
	return views, nil
}

// transition loads a session, lets apply mutate it and stores the result,
// all in one transaction. Nothing is written when apply fails.
func (t *Tracker) transition(ctx context.Context, owner auth.Owner, sessionID, event string, apply func(tx Store, s *models.Session) error) (*models.Session, error) {
	if err := owner.Verify(); err != nil {
		return nil, err
	}

	var session *models.Session
	err := t.store.Atomic(ctx, func(tx Store) error {
		s, err := tx.FindSession(ctx, sessionID, owner.ID())
		if err != nil {
			return err
		}
		if err := apply(tx, s); err != nil {
			return err
		}
		if err := tx.UpdateSession(ctx, s); err != nil {
			return err
		}
		session = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.log.WithFields(logrus.Fields{
		"owner":   owner.ID(),
		"session": session.ID,
		"event":   event,
		"status":  session.Status,
	}).Info("session updated")
	return session, nil
}
