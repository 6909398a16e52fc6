package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jiwpark00/what-to-cook-backend/internal/dietary"
	"github.com/jiwpark00/what-to-cook-backend/internal/models"
)

const (
	minIngredients     = 3
	maxIngredients     = 5
	minSafeIngredients = 2
	maxIngredientLen   = 30

	rateLimitWindow = time.Hour
	rateLimitMax    = 5
)

var allowedLanguages = map[string]bool{
	"English": true,
	"Korean":  true,
	"Spanish": true,
}

// Ingredient text: letters, digits, whitespace and hyphens. The client
// enforces this too; re-checked here as defense in depth.
var ingredientPattern = regexp.MustCompile(`^[\p{L}\p{N}\s-]+$`)

// GenerationService runs the recipe-generation pipeline for one request:
// input validation, permission and rate-limit gates, allergy filtering,
// prompt construction, the AI call, post-generation validation and the
// best-effort log write. Steps are sequential; each gate depends on the one
// before it.
type GenerationService struct {
	db     *gorm.DB
	llm    LLMClient
	prefs  IPreferenceService
	logger *log.Logger
}

func NewGenerationService(db *gorm.DB, llm LLMClient, prefs IPreferenceService, logger *log.Logger) *GenerationService {
	if logger == nil {
		logger = log.Default()
	}
	return &GenerationService{
		db:     db,
		llm:    llm,
		prefs:  prefs,
		logger: logger,
	}
}

// GenerateRequest is one recipe-generation request. Restriction carries the
// simple-form tag; it is only consulted when UsePreferences is false.
type GenerateRequest struct {
	UserID         uuid.UUID
	Ingredients    []string
	Language       string
	Restriction    string
	UsePreferences bool
}

// GenerateResult is the outcome of a successful pipeline run.
type GenerateResult struct {
	Recipe          string
	IngredientsUsed []string
	Language        string
	Preferences     *models.UserPreferences
	Warnings        []string
}

// Generate runs the pipeline. Terminal failures are reported through the
// sentinel errors in errors.go or *AllergyConflictError; a failed log write
// is reported to the operational log and swallowed.
func (s *GenerationService) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}

	if err := s.checkPermission(ctx, req.UserID); err != nil {
		return nil, err
	}

	if err := s.checkRateLimit(ctx, req.UserID); err != nil {
		return nil, err
	}

	var prefs *models.UserPreferences
	if req.UsePreferences {
		p, err := s.prefs.Get(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		prefs = p
	}

	warnings := []string{}
	safeIngredients := req.Ingredients
	if prefs != nil && len(prefs.Allergies) > 0 {
		safe, flagged := dietary.FilterIngredients(req.Ingredients, prefs.Allergies)
		if len(flagged) > 0 {
			if len(safe) < minSafeIngredients {
				return nil, &AllergyConflictError{Flagged: flagged, Allergies: prefs.Allergies}
			}
			warnings = append(warnings, fmt.Sprintf("Warning: Some ingredients may trigger allergies: %s", strings.Join(flagged, ", ")))
			safeIngredients = safe
		}
	}

	var prompt string
	if req.UsePreferences {
		prompt = dietary.BuildEnhancedPrompt(safeIngredients, req.Language, prefs)
	} else {
		prompt = dietary.BuildSimplePrompt(safeIngredients, req.Language, req.Restriction)
	}

	recipeText, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if prefs != nil {
		if ok, validationWarnings := dietary.ValidateRecipe(recipeText, prefs); !ok {
			warnings = append(warnings, validationWarnings...)
		}
	}

	s.writeLog(ctx, req, prefs, safeIngredients, recipeText, warnings)

	return &GenerateResult{
		Recipe:          recipeText,
		IngredientsUsed: safeIngredients,
		Language:        req.Language,
		Preferences:     prefs,
		Warnings:        warnings,
	}, nil
}

func validateInput(req *GenerateRequest) error {
	n := len(req.Ingredients)
	if n < minIngredients || n > maxIngredients {
		return fmt.Errorf("%w: please provide %d-%d ingredients", ErrInvalidInput, minIngredients, maxIngredients)
	}

	if !allowedLanguages[req.Language] {
		return fmt.Errorf("%w: unsupported language %q", ErrInvalidInput, req.Language)
	}

	for _, ingredient := range req.Ingredients {
		if ingredient == "" || len(ingredient) > maxIngredientLen || !ingredientPattern.MatchString(ingredient) {
			return fmt.Errorf("%w: invalid ingredient %q", ErrInvalidInput, ingredient)
		}
	}

	return nil
}

func (s *GenerationService) checkPermission(ctx context.Context, userID uuid.UUID) error {
	var setting models.UserSetting
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// A missing permission record means not permitted.
		return ErrNotPermitted
	}
	if err != nil {
		return fmt.Errorf("failed to check permission: %w", err)
	}
	if !setting.LLMAllowed {
		return ErrNotPermitted
	}
	return nil
}

func (s *GenerationService) checkRateLimit(ctx context.Context, userID uuid.UUID) error {
	cutoff := time.Now().Add(-rateLimitWindow)

	// Trailing wall-clock window, recomputed on every check. The
	// check-then-log sequence is not atomic: two concurrent requests from
	// the same user can both pass before either log row lands, so the
	// bound is best-effort rather than a hard guarantee.
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.RecipeRequestLog{}).
		Where("user_id = ? AND created_at > ?", userID, cutoff).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check rate limit: %w", err)
	}

	if count >= rateLimitMax {
		return ErrRateLimited
	}
	return nil
}

func (s *GenerationService) writeLog(ctx context.Context, req *GenerateRequest, prefs *models.UserPreferences, used []string, recipeText string, warnings []string) {
	entry := models.RecipeRequestLog{
		UserID:              req.UserID,
		Ingredients:         models.JSONBStringArray(used),
		OriginalIngredients: models.JSONBStringArray(req.Ingredients),
		Language:            req.Language,
		Response:            recipeText,
		Warnings:            models.JSONBStringArray(warnings),
	}
	if prefs != nil {
		entry.DietaryRestrictions = prefs.DietaryRestrictions
		entry.Allergies = prefs.Allergies
		entry.CuisinePreferences = prefs.CuisinePreferences
		entry.CookingTimePreference = prefs.PreferredCookingTime
		entry.SpiceLevel = prefs.SpiceLevel
	} else if req.Restriction != "" && req.Restriction != "none" {
		entry.DietaryRestrictions = models.JSONBStringArray{req.Restriction}
	}

	// A failed log write must not fail the user-facing response.
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.logger.Printf("[GenerationService] failed to log recipe request for user %s: %v", req.UserID, err)
	}
}
