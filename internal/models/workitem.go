package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkItemStatus is the lifecycle status of a work item
type WorkItemStatus string

const (
	WorkItemOpen       WorkItemStatus = "OPEN"
	WorkItemInProgress WorkItemStatus = "IN_PROGRESS"
	WorkItemTesting    WorkItemStatus = "TESTING"
	WorkItemDone       WorkItemStatus = "DONE"
)

// Valid reports whether s is one of the known statuses
func (s WorkItemStatus) Valid() bool {
	switch s {
	case WorkItemOpen, WorkItemInProgress, WorkItemTesting, WorkItemDone:
		return true
	}
	return false
}

// WorkItem represents one unit of billable work
type WorkItem struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OwnerID     string         `gorm:"not null;index:idx_work_items_owner_ref,priority:1" json:"owner_id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	ReferenceAt time.Time      `gorm:"column:datahora;not null;index:idx_work_items_owner_ref,priority:2" json:"datahora"`
	Status      WorkItemStatus `gorm:"type:varchar(16);not null;default:OPEN" json:"status"`
	Billed      bool           `gorm:"not null;default:false" json:"billed"`
	Note        string         `json:"note,omitempty"`
	CompletedAt *time.Time     `json:"completed_at"`

	// Relationships
	Sessions []Session `gorm:"foreignKey:WorkItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sessions,omitempty"`
}

// BeforeCreate assigns a random id when none was set
func (w *WorkItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// SetStatus changes the status and keeps CompletedAt in step with it:
// it is set exactly when the status is DONE.
func (w *WorkItem) SetStatus(status WorkItemStatus, now time.Time) {
	w.Status = status
	if status == WorkItemDone {
		if w.CompletedAt == nil {
			completed := now
			w.CompletedAt = &completed
		}
		return
	}
	w.CompletedAt = nil
}
