package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/jiwpark00/what-to-cook-backend/internal/models"
	"github.com/jiwpark00/what-to-cook-backend/internal/types"
)

// LLMClient is the one operation the pipeline needs from the text-generation
// service. Implementations block until a completion or an error is available.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IPreferenceService defines the interface for dietary preference storage
type IPreferenceService interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error)
	Upsert(ctx context.Context, userID uuid.UUID, prefs *models.UserPreferences) (*models.UserPreferences, error)
}
