package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// UserPreferences is the single stored dietary-preferences record per user.
type UserPreferences struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID               uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	DietaryRestrictions  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_restrictions"`
	Allergies            JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"allergies"`
	CuisinePreferences   JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"cuisine_preferences"`
	PreferredCookingTime int              `gorm:"not null;default:30" json:"preferred_cooking_time"`
	SpiceLevel           string           `gorm:"size:10;not null;default:'medium'" json:"spice_level"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}

func (p *UserPreferences) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
