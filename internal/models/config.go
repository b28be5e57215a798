package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxHourlyRate caps the configurable hourly rate
const MaxHourlyRate = 1_000_000

// Config holds the per-owner billing settings
type Config struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OwnerID    string  `gorm:"uniqueIndex;not null" json:"owner_id"`
	HourlyRate float64 `gorm:"not null;default:0" json:"hourly_rate"`
}

// BeforeCreate assigns a random id when none was set
func (c *Config) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
