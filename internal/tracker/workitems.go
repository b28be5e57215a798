package tracker

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/balkashynov/horas/internal/auth"
	"github.com/balkashynov/horas/internal/models"
	"github.com/balkashynov/horas/internal/report"
)

const (
	minNameLength        = 3
	maxNameLength        = 100
	maxDescriptionLength = 500
)

// WorkItemInput holds the fields of a new work item
type WorkItemInput struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	ReferenceAt time.Time             `json:"datahora"`
	Status      models.WorkItemStatus `json:"status"`
	Billed      bool                  `json:"billed"`
	Note        string                `json:"note"`
}

// WorkItemPatch holds a partial update; nil fields are left unchanged
type WorkItemPatch struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	ReferenceAt *time.Time             `json:"datahora"`
	Status      *models.WorkItemStatus `json:"status"`
	Billed      *bool                  `json:"billed"`
	Note        *string                `json:"note"`
}

// WorkItemSummary is a work item with its total tracked time
type WorkItemSummary struct {
	models.WorkItem
	TotalSeconds int64 `json:"total_seconds"`
}

// WorkItemDetail is a work item with its total and session history
type WorkItemDetail struct {
	Item         *models.WorkItem      `json:"item"`
	TotalSeconds int64                 `json:"total_seconds"`
	History      []report.HistoryEntry `json:"history"`
}

// CreateWorkItem validates input and stores a new work item for owner
func (t *Tracker) CreateWorkItem(ctx context.Context, owner auth.Owner, in WorkItemInput) (*models.WorkItem, error) {
	if err := owner.Verify(); err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Status == "" {
		in.Status = models.WorkItemOpen
	}
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	if in.ReferenceAt.IsZero() {
		return nil, models.NewValidationError("datahora", "reference date is required")
	}
	if !in.Status.Valid() {
		return nil, models.NewValidationError("status", "unknown status %q", in.Status)
	}

	item := &models.WorkItem{
		OwnerID:     owner.ID(),
		Name:        in.Name,
		Description: in.Description,
		ReferenceAt: in.ReferenceAt.UTC(),
		Billed:      in.Billed,
		Note:        in.Note,
	}
	item.SetStatus(in.Status, t.Now())

	if err := t.store.CreateWorkItem(ctx, item); err != nil {
		return nil, err
	}

	t.log.WithFields(logrus.Fields{
		"owner":     owner.ID(),
		"work_item": item.ID,
	}).Info("work item created")
	return item, nil
}

// UpdateWorkItem applies patch to one of owner's work items
func (t *Tracker) UpdateWorkItem(ctx context.Context, owner auth.Owner, id string, patch WorkItemPatch) (*models.WorkItem, error) {
	if err := owner.Verify(); err != nil {
		return nil, err
	}

	var item *models.WorkItem
	err := t.store.Atomic(ctx, func(tx Store) error {
		var err error
		item, err = tx.FindWorkItem(ctx, id, owner.ID())
		if err != nil {
			return err
		}

		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if err := validateName(name); err != nil {
				return err
			}
			item.Name = name
		}
		if patch.Description != nil {
			desc := strings.TrimSpace(*patch.Description)
			if err := validateDescription(desc); err != nil {
				return err
			}
			item.Description = desc
		}
		if patch.ReferenceAt != nil {
			if patch.ReferenceAt.IsZero() {
				return models.NewValidationError("datahora", "reference date is required")
			}
			item.ReferenceAt = patch.ReferenceAt.UTC()
		}
		if patch.Status != nil {
			if !patch.Status.Valid() {
				return models.NewValidationError("status", "unknown status %q", *patch.Status)
			}
			item.SetStatus(*patch.Status, t.Now())
		}
		if patch.Billed != nil {
			item.Billed = *patch.Billed
		}
		if patch.Note != nil {
			item.Note = *patch.Note
		}

		return tx.UpdateWorkItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteWorkItem removes a work item together with all its sessions
func (t *Tracker) DeleteWorkItem(ctx context.Context, owner auth.Owner, id string) error {
	if err := owner.Verify(); err != nil {
		return err
	}
	err := t.store.Atomic(ctx, func(tx Store) error {
		item, err := tx.FindWorkItem(ctx, id, owner.ID())
		if err != nil {
			return err
		}
		return tx.DeleteWorkItem(ctx, item.ID)
	})
	if err != nil {
		return err
	}

	t.log.WithFields(logrus.Fields{
		"owner":     owner.ID(),
		"work_item": id,
	}).Info("work item deleted")
	return nil
}

// ListWorkItems returns all of owner's work items, most recent reference
// date first, each with its total time.
func (t *Tracker) ListWorkItems(ctx context.Context, owner auth.Owner) ([]WorkItemSummary, error) {
	if err := owner.Verify(); err != nil {
		return nil, err
	}
	items, err := t.store.ListWorkItems(ctx, owner.ID())
	if err != nil {
		return nil, err
	}

	now := t.Now()
	out := make([]WorkItemSummary, 0, len(items))
	for i := range items {
		out = append(out, WorkItemSummary{
			WorkItem:     items[i],
			TotalSeconds: report.TotalTime(&items[i], now),
		})
	}
	return out, nil
}

// GetWorkItem returns a work item with its total time and session history
func (t *Tracker) GetWorkItem(ctx context.Context, owner auth.Owner, id string) (*WorkItemDetail, error) {
	if err := owner.Verify(); err != nil {
		return nil, err
	}
	item, err := t.store.FindWorkItem(ctx, id, owner.ID())
	if err != nil {
		return nil, err
	}
	sessions, err := t.store.ListSessionsForWorkItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	item.Sessions = sessions

	now := t.Now()
	return &WorkItemDetail{
		Item:         item,
		TotalSeconds: report.TotalTime(item, now),
		History:      report.History(item, now),
	}, nil
}

func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < minNameLength || n > maxNameLength {
		return models.NewValidationError("name", "must be between %d and %d characters", minNameLength, maxNameLength)
	}
	return nil
}

func validateDescription(desc string) error {
	if utf8.RuneCountInString(desc) > maxDescriptionLength {
		return models.NewValidationError("description", "must be at most %d characters", maxDescriptionLength)
	}
	return nil
}
