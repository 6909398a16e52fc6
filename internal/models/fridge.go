package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FridgeItem is one ingredient in a user's fridge list.
type FridgeItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"size:30;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (FridgeItem) TableName() string {
	return "fridge_items"
}

func (f *FridgeItem) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
