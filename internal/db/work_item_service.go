package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/horas/internal/models"
)

// FindWorkItem loads a work item owned by ownerID
func (s *Store) FindWorkItem(ctx context.Context, id, ownerID string) (*models.WorkItem, error) {
	var item models.WorkItem
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&item).Error
	if err != nil {
		return nil, translate(err, fmt.Sprintf("work item %s", id))
	}
	return &item, nil
}

// CreateWorkItem inserts a new work item
func (s *Store) CreateWorkItem(ctx context.Context, item *models.WorkItem) error {
	normalizeWorkItem(item)
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
	return translate(err, "create work item")
}

// UpdateWorkItem writes every editable field of item
func (s *Store) UpdateWorkItem(ctx context.Context, item *models.WorkItem) error {
	normalizeWorkItem(item)
	res := s.db.WithContext(ctx).
		Model(item).
		Omit(clause.Associations).
		Select("name", "description", "datahora", "status", "billed", "note", "completed_at", "updated_at").
		Updates(item)
	if res.Error != nil {
		return translate(res.Error, fmt.Sprintf("update work item %s", item.ID))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("work item %s: %w", item.ID, models.ErrNotFound)
	}
	return nil
}

// UpdateWorkItemStatus changes only the status and completion timestamp
func (s *Store) UpdateWorkItemStatus(ctx context.Context, id string, status models.WorkItemStatus, completedAt *time.Time) error {
	if completedAt != nil {
		utc := completedAt.UTC()
		completedAt = &utc
	}
	res := s.db.WithContext(ctx).
		Model(&models.WorkItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"completed_at": completedAt,
		})
	if res.Error != nil {
		return translate(res.Error, fmt.Sprintf("update work item %s", id))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("work item %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// DeleteWorkItem removes a work item and all of its sessions
func (s *Store) DeleteWorkItem(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_item_id = ?", id).Delete(&models.Session{}).Error; err != nil {
			return translate(err, fmt.Sprintf("delete sessions of work item %s", id))
		}
		res := tx.Where("id = ?", id).Delete(&models.WorkItem{})
		if res.Error != nil {
			return translate(res.Error, fmt.Sprintf("delete work item %s", id))
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("work item %s: %w", id, models.ErrNotFound)
		}
		return nil
	})
}

// ListWorkItems returns the owner's work items with their sessions, most
// recent reference date first
func (s *Store) ListWorkItems(ctx context.Context, ownerID string) ([]models.WorkItem, error) {
	var items []models.WorkItem
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Preload("Sessions").
		Order("datahora DESC").
		Find(&items).Error
	if err != nil {
		return nil, translate(err, "list work items")
	}
	return items, nil
}

// ListWorkItemsInRange returns the owner's work items whose reference date
// is within [from, to], with their sessions
func (s *Store) ListWorkItemsInRange(ctx context.Context, ownerID string, from, to time.Time) ([]models.WorkItem, error) {
	var items []models.WorkItem
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND datahora >= ? AND datahora <= ?", ownerID, from.UTC(), to.UTC()).
		Preload("Sessions").
		Order("datahora ASC").
		Find(&items).Error
	if err != nil {
		return nil, translate(err, "list work items in range")
	}
	return items, nil
}

// normalizeWorkItem stores every timestamp in UTC so that range queries
// compare like with like on sqlite, where times are text.
func normalizeWorkItem(item *models.WorkItem) {
	item.ReferenceAt = item.ReferenceAt.UTC()
	if item.CompletedAt != nil {
		completed := item.CompletedAt.UTC()
		item.CompletedAt = &completed
	}
}
