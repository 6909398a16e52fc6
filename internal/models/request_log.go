package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeRequestLog records one generation attempt that reached the AI call.
// Rows are append-only: nothing in this service updates or deletes them.
type RecipeRequestLog struct {
	ID                    uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Ingredients           JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	OriginalIngredients   JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"original_ingredients"`
	Language              string           `gorm:"size:20" json:"language"`
	Response              string           `gorm:"type:text" json:"response"`
	DietaryRestrictions   JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_restrictions"`
	Allergies             JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"allergies"`
	CuisinePreferences    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"cuisine_preferences"`
	CookingTimePreference int              `json:"cooking_time_preference"`
	SpiceLevel            string           `gorm:"size:10" json:"spice_level"`
	Warnings              JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"warnings"`
	CreatedAt             time.Time        `gorm:"index" json:"created_at"`
}

func (RecipeRequestLog) TableName() string {
	return "recipe_requests"
}

func (l *RecipeRequestLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
