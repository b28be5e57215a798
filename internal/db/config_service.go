package db

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/balkashynov/horas/internal/models"
)

// GetConfig returns the owner's config, creating it with a zero rate when
// it does not exist yet
func (s *Store) GetConfig(ctx context.Context, ownerID string) (*models.Config, error) {
	cfg := models.Config{OwnerID: ownerID}
	err := s.db.WithContext(ctx).
		Where(models.Config{OwnerID: ownerID}).
		FirstOrCreate(&cfg).Error
	if err != nil {
		return nil, translate(err, "get config")
	}
	return &cfg, nil
}

// UpsertConfig sets the owner's hourly rate. Concurrent writers: last wins.
func (s *Store) UpsertConfig(ctx context.Context, ownerID string, hourlyRate float64) (*models.Config, error) {
	cfg := models.Config{OwnerID: ownerID, HourlyRate: hourlyRate}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"hourly_rate", "updated_at"}),
		}).
		Create(&cfg).Error
	if err != nil {
		return nil, translate(err, "upsert config")
	}
	return s.GetConfig(ctx, ownerID)
}
