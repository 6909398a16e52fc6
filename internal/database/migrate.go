package database

import (
	"gorm.io/gorm"

	"github.com/jiwpark00/what-to-cook-backend/internal/models"
)

// AutoMigrate creates or updates the schema for every model the service
// persists. Production deploys use the SQL migrations under migrations/; this
// covers development and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserSetting{},
		&models.UserPreferences{},
		&models.FridgeItem{},
		&models.RecipeRequestLog{},
	)
}
