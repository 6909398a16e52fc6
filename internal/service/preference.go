package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jiwpark00/what-to-cook-backend/internal/models"
)

// PreferenceService reads and writes the single dietary-preferences record a
// user owns.
type PreferenceService struct {
	db *gorm.DB
}

func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// Get returns the stored preferences, or nil without error when the user has
// never saved any. The pipeline treats nil as "no preference clauses".
func (s *PreferenceService) Get(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preferences: %w", err)
	}
	return &prefs, nil
}

// Upsert creates the record on first save and updates it afterwards, keyed by
// user id.
func (s *PreferenceService) Upsert(ctx context.Context, userID uuid.UUID, prefs *models.UserPreferences) (*models.UserPreferences, error) {
	record := models.UserPreferences{
		UserID:               userID,
		DietaryRestrictions:  emptyIfNil(prefs.DietaryRestrictions),
		Allergies:            emptyIfNil(prefs.Allergies),
		CuisinePreferences:   emptyIfNil(prefs.CuisinePreferences),
		PreferredCookingTime: prefs.PreferredCookingTime,
		SpiceLevel:           prefs.SpiceLevel,
	}
	if record.PreferredCookingTime == 0 {
		record.PreferredCookingTime = 30
	}
	if record.SpiceLevel == "" {
		record.SpiceLevel = "medium"
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"dietary_restrictions",
			"allergies",
			"cuisine_preferences",
			"preferred_cooking_time",
			"spice_level",
			"updated_at",
		}),
	}).Create(&record).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}

	return s.Get(ctx, userID)
}

func emptyIfNil(a models.JSONBStringArray) models.JSONBStringArray {
	if a == nil {
		return models.JSONBStringArray{}
	}
	return a
}
