package tracker

import (
	"context"
	"time"

	"github.com/balkashynov/horas/internal/models"
)

// WorkItemStore persists work items. Lookups scoped by owner return an
// error matching models.ErrNotFound when the item is missing or belongs to
// someone else.
type WorkItemStore interface {
	FindWorkItem(ctx context.Context, id, ownerID string) (*models.WorkItem, error)
	CreateWorkItem(ctx context.Context, item *models.WorkItem) error
	UpdateWorkItem(ctx context.Context, item *models.WorkItem) error
	UpdateWorkItemStatus(ctx context.Context, id string, status models.WorkItemStatus, completedAt *time.Time) error
	DeleteWorkItem(ctx context.Context, id string) error
	ListWorkItems(ctx context.Context, ownerID string) ([]models.WorkItem, error)
	// ListWorkItemsInRange returns the owner's items whose reference date
	// lies in [from, to], with their sessions loaded.
	ListWorkItemsInRange(ctx context.Context, ownerID string, from, to time.Time) ([]models.WorkItem, error)
}

// SessionStore persists sessions
type SessionStore interface {
	FindSession(ctx context.Context, id, ownerID string) (*models.Session, error)
	// FindActiveSession returns nil, nil when the work item has no ACTIVE session.
	FindActiveSession(ctx context.Context, workItemID string) (*models.Session, error)
	CreateSession(ctx context.Context, session *models.Session) error
	UpdateSession(ctx context.Context, session *models.Session) error
	DeleteSession(ctx context.Context, id string) error
	ListSessionsForWorkItem(ctx context.Context, workItemID string) ([]models.Session, error)
	ListActiveSessions(ctx context.Context, ownerID string) ([]models.Session, error)
}

// ConfigStore persists the per-owner configuration
type ConfigStore interface {
	// GetConfig creates the owner's config with a zero rate on first access.
	GetConfig(ctx context.Context, ownerID string) (*models.Config, error)
	UpsertConfig(ctx context.Context, ownerID string, hourlyRate float64) (*models.Config, error)
}

// Store is everything the tracker needs from storage.
//
// Atomic runs fn against a transactional view of the store; fn's error
// rolls the transaction back. Creating or updating a session into ACTIVE
// while another ACTIVE session exists for the same work item must fail with
// an error matching models.ErrConflict, even when two transactions race.
type Store interface {
	WorkItemStore
	SessionStore
	ConfigStore

	Atomic(ctx context.Context, fn func(tx Store) error) error
}
