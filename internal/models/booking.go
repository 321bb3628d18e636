package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingScheduled = "scheduled"
	BookingCancelled = "cancelled"
)

type Booking struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	ExpertID string `gorm:"type:uuid;not null;index:idx_booking_expert_date" json:"expert_id"`
	PlayerID string `gorm:"type:uuid;not null;index" json:"player_id"`
	Date     string `gorm:"size:10;not null;index:idx_booking_expert_date" json:"date"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	Status    string `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	Notes     string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}
