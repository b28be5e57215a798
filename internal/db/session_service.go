package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/horas/internal/models"
)

// FindSession loads a session owned, through its work item, by ownerID
func (s *Store) FindSession(ctx context.Context, id, ownerID string) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).
		Joins("JOIN work_items ON work_items.id = sessions.work_item_id").
		Where("sessions.id = ? AND work_items.owner_id = ?", id, ownerID).
		Preload("WorkItem").
		First(&session).Error
	if err != nil {
		return nil, translate(err, fmt.Sprintf("session %s", id))
	}
	return &session, nil
}

// FindActiveSession returns the ACTIVE session of a work item, if any
func (s *Store) FindActiveSession(ctx context.Context, workItemID string) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).
		Where("work_item_id = ? AND status = ?", workItemID, models.SessionActive).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // No active session is not an error
	}
	if err != nil {
		return nil, translate(err, "find active session")
	}
	return &session, nil
}

// CreateSession inserts a new session
func (s *Store) CreateSession(ctx context.Context, session *models.Session) error {
	session.StartedAt = session.StartedAt.UTC()
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(session).Error
	return translate(err, "create session")
}

// UpdateSession writes the mutable session fields, nulls included
func (s *Store) UpdateSession(ctx context.Context, session *models.Session) error {
	session.StartedAt = session.StartedAt.UTC()
	if session.FinishedAt != nil {
		finished := session.FinishedAt.UTC()
		session.FinishedAt = &finished
	}

	res := s.db.WithContext(ctx).
		Model(session).
		Omit(clause.Associations).
		Select("started_at", "finished_at", "accumulated_seconds", "status", "updated_at").
		Updates(session)
	if res.Error != nil {
		return translate(res.Error, fmt.Sprintf("update session %s", session.ID))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("session %s: %w", session.ID, models.ErrNotFound)
	}
	return nil
}

// DeleteSession removes a session by id
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Session{})
	if res.Error != nil {
		return translate(res.Error, fmt.Sprintf("delete session %s", id))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("session %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// ListSessionsForWorkItem returns a work item's sessions, most recent first
func (s *Store) ListSessionsForWorkItem(ctx context.Context, workItemID string) ([]models.Session, error) {
	var sessions []models.Session
	err := s.db.WithContext(ctx).
		Where("work_item_id = ?", workItemID).
		Order("started_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, translate(err, "list sessions")
	}
	return sessions, nil
}

// ListActiveSessions returns the owner's ACTIVE sessions with their work items
func (s *Store) ListActiveSessions(ctx context.Context, ownerID string) ([]models.Session, error) {
	var sessions []models.Session
	err := s.db.WithContext(ctx).
		Joins("JOIN work_items ON work_items.id = sessions.work_item_id").
		Where("work_items.owner_id = ? AND sessions.status = ?", ownerID, models.SessionActive).
		Preload("WorkItem").
		Order("sessions.started_at ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, translate(err, "list active sessions")
	}
	return sessions, nil
}
