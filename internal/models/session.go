package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionStatus is the state of a tracked work session
type SessionStatus string

const (
	SessionActive   SessionStatus = "ACTIVE"
	SessionPaused   SessionStatus = "PAUSED"
	SessionFinished SessionStatus = "FINISHED"
)

// Session represents one contiguous interval of work on a work item.
// While ACTIVE the elapsed time is derived from StartedAt; PAUSED and
// FINISHED sessions carry it in AccumulatedSeconds.
type Session struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	WorkItemID         string        `gorm:"not null;index" json:"work_item_id"`
	StartedAt          time.Time     `gorm:"not null" json:"started_at"`
	FinishedAt         *time.Time    `json:"finished_at"`
	AccumulatedSeconds *int64        `json:"accumulated_seconds"`
	Status             SessionStatus `gorm:"type:varchar(16);not null;default:ACTIVE" json:"status"`

	// Relationships
	WorkItem *WorkItem `json:"work_item,omitempty"`
}

// BeforeCreate assigns a random id when none was set
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Accumulated returns the stored accumulated seconds, zero when unset
func (s *Session) Accumulated() int64 {
	if s.AccumulatedSeconds == nil {
		return 0
	}
	return *s.AccumulatedSeconds
}
