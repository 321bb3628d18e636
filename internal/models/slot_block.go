package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SlotBlock marks a whole day (empty StartTime/EndTime) or one slot as
// unavailable.
type SlotBlock struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	ExpertID string `gorm:"type:uuid;not null;index:idx_block_expert_date" json:"expert_id"`
	Date     string `gorm:"size:10;not null;index:idx_block_expert_date" json:"date"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Reason    string `gorm:"size:255;not null" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}

func (b *SlotBlock) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

func (b SlotBlock) FullDay() bool {
	return b.StartTime == "" && b.EndTime == ""
}
