package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailabilityPattern is a weekly window (0 = Sunday) in which an expert can
// be booked.
type AvailabilityPattern struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	ExpertID string `gorm:"type:uuid;not null;uniqueIndex:idx_pattern_bounds,priority:1" json:"expert_id"`

	DayOfWeek int    `gorm:"not null;uniqueIndex:idx_pattern_bounds,priority:2" json:"day_of_week"`
	StartTime string `gorm:"size:5;not null;uniqueIndex:idx_pattern_bounds,priority:3" json:"start_time"`
	EndTime   string `gorm:"size:5;not null;uniqueIndex:idx_pattern_bounds,priority:4" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *AvailabilityPattern) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
