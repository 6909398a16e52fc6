package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jiwpark00/what-to-cook-backend/internal/database"
	"github.com/jiwpark00/what-to-cook-backend/internal/models"
)

type stubLLM struct {
	response   string
	err        error
	calls      int
	lastPrompt string
}

func (s *stubLLM) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique name per test: gorm keeps a pool of connections, and shared
	// cache makes them all see the same in-memory database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, llmAllowed bool) uuid.UUID {
	t.Helper()
	user := models.User{
		Name:          "Test User",
		Email:         fmt.Sprintf("user-%s@example.com", uuid.NewString()),
		PasswordHash:  "not-a-real-hash",
		EmailVerified: true,
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.UserSetting{UserID: user.ID, LLMAllowed: llmAllowed}).Error)
	return user.ID
}

func newTestGeneration(db *gorm.DB, llm LLMClient) *GenerationService {
	return NewGenerationService(db, llm, NewPreferenceService(db), log.Default())
}

func TestGenerate_RejectsTooFewIngredients(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db, true)
	llm := &stubLLM{response: "recipe"}
	svc := newTestGeneration(db, llm)

	_, err := svc.Generate(context.Background(), &GenerateRequest{
		UserID:      userID,
		Ingredients: []string{"rice", "egg"},
		Language:    "English",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, llm.calls)
}

func TestGenerate_RejectsTooManyIngredients(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db, true)
	llm := &stubLLM{response: "recipe"}
	svc := newTestGeneration(db, llm)

	_, err := svc.Generate(context.Background(), &GenerateRequest{
		UserID:      userID,
		Ingredients: []string{"a", "b", "c", "d", "e", "f"},
		Language:    "English",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, llm.calls)
}

func TestGenerate_RejectsUnsupportedLanguageBeforeAICall(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db, true)
	llm := &stubLLM{response: "recipe"}
	svc := newTestGeneration(db, llm)

	_, err := svc.Generate(context.Background(), &GenerateRequest{
		UserID:      userID,
		Ingredients: []string{"rice", "egg", "spinach"},
		Language:    "French",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, llm.calls)
}

func TestGenerate_RejectsMalformedIngredient(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db, true)
	llm := &stubLLM{response: "recipe"}
	svc := newTestGeneration(db, llm)

	_, err := svc.Generate(context.Background(), &GenerateRequest{
		UserID:      userID,
		Ingredients: []string{"rice; DROP TABLE users", "egg", "spinach"},
		Language:    "English",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, llm.calls)
}

func TestGenerate_MissingSettingMeansNotPermitted(t *testing.T) {
	db := setupDB(t)
	llm := &stubLLM{response: "recipe"}
	svc := newTestGeneration(db, llm)

	user := models.User{Name: "No Setting", Email: "nosetting@example.com", PasswordHash: "x", EmailVerified: true}
	require.NoError(t, db.Create(&user).Error)

	_, err := svc.Generate(context.Background(), &GenerateRequest{
		UserID:      user.ID,
		Ingredients: []string{"rice", "egg", "spinach"},
		Language:    "English",
	})
	assert.ErrorIs(t, err, ErrNotPermitted)
	assert.Zero(t, llm.calls)
}

func TestGenerate_DisabledSettingMeansNotPermitted(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db, false)
	llm := &stubLLM{response: "recipe"}
	svc := newTestGeneration(db, llm)

	_, err := svc.Generate(context.Background(), &GenerateRequest{
		UserID:      userID,
		Ingredients: []string{"rice", "egg", "spinach"},
		Language:    "English",
	})
	assert.ErrorIs(t, err, ErrNotPermitted)
	assert.Zero(t, llm.calls)
}

func TestGenerate_PermissionLookupFailurePropagates(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db, true)
	llm := &stubLLM{response: "recipe"}
	svc := newTestGeneration(db, llm)

	// An infrastructure failure during the permission check is not the
	// same as a denial; it must not surface as ErrNotPermitted.
	require.NoError(t, db.Exec("DROP TABLE user_settings").Error)

	_, err := svc.Generate(context.Background(), &GenerateRequest{
		UserID:      userID,
		Ingredients: []string{"rice", "egg", "spinach"},
		Language:    "English",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotPermitted)
	assert.Zero(t, llm.calls)
}

func TestGenerate_RateLimitAtFiveInWindow(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db, true)
	llm := &stubLLM{response: "recipe"}
	svc := newTestGeneration(db, llm)

	for i := 0; i < 5; i++ {
		entry := models.RecipeRequestLog{UserID: userID, Language: "English"}
		require.NoError(t, db.Create(&entry).Error)
	}

	_, err := svc.Generate(context.Background(), &GenerateRequest{
		UserID:      userID,
		Ingredients: []string{"rice", "egg", "spinach"},
		Language:    "English",
	})
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Zero(t, llm.calls)
}

func TestGenerate_OldRequestsFallOutOfWindow(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db, true)
	llm := &stubLLM{response: "recipe"}
	svc := newTestGeneration(db, llm)

	// Five requests just over an hour old must not count.
	old := time.Now().Add(-61 * time.Minute)
	for i := 0; i < 5; i++ {
		entry := models.RecipeRequestLog{UserID: userID, Language: "English", CreatedAt: old}
		require.NoError(t, db.Create(&entry).Error)
	}

	result, err := svc.Generate(context.Background(), &GenerateRequest{
		UserID:      userID,
		Ingredients: []string{"rice", "egg", "spinach"},
		Language:    "English",
	})
	require.NoError(t, err)
	assert.Equal(t, "recipe", result.Recipe)
}

func TestGenerate_RateLimitIsPerUser(t *testing.T) {
	db := setupDB(t)
	blocked := createTestUser(t, db, true)
	free := createTestUser(t, db, true)
	llm := &stubLLM{response: "recipe"}
	svc := newTestGeneration(db, llm)

	for i := 0; i < 5; i++ {
		entry := models.RecipeRequestLog{UserID: blocked, Language: "English"}
		require.NoError(t, db.Create(&entry).Error)
	}

	_, err := svc.Generate(context.Background(), &GenerateRequest{
		UserID:      free,
		Ingredients: []string{"rice", "egg", "spinach"},
		Language:    "English",
	})
	assert.NoError(t, err)
}

func TestGenerate_AllergyConflictWhenTooFewSafe(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db, true)
	llm := &stubLLM{response: "recipe"}
	svc := newTestGeneration(db, llm)

	prefSvc := NewPreferenceService(db)
	_, err := prefSvc.Upsert(context.Background(), userID, &models.UserPreferences{
		Allergies: models.JSONBStringArray{"shellfish", "peanuts"},
	})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), &GenerateRequest{
		UserID:         userID,
		Ingredients:    []string{"shrimp", "peanut butter", "rice"},
		Language:       "English",
		UsePreferences: true,
	})

	var conflict *AllergyConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"shrimp", "peanut butter"}, conflict.Flagged)
	assert.Equal(t, []string{"shellfish", "peanuts"}, conflict.Allergies)
	assert.Zero(t, llm.calls)
}

func TestGenerate_FlaggedIngredientsDroppedWithWarning(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db, true)
	llm := &stubLLM{response: "Tofu bowl with rice and spinach."}
	svc := newTestGeneration(db, llm)

	prefSvc := NewPreferenceService(db)
	_, err := prefSvc.Upsert(context.Background(), userID, &models.UserPreferences{
		Allergies: models.JSONBStringArray{"shellfish"},
	})
	require.NoError(t, err)

	result, err := svc.Generate(context.Background(), &GenerateRequest{
		UserID:         userID,
		Ingredients:    []string{"shrimp", "rice", "spinach", "garlic"},
		Language:       "English",
		UsePreferences: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"rice", "spinach", "garlic"}, result.IngredientsUsed)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "shrimp")
	assert.NotContains(t, llm.lastPrompt, "shrimp")
}

func TestGenerate_SimpleFormUsesRestrictionTag(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db, true)
	llm := &stubLLM{response: "A veggie dish."}
	svc := newTestGeneration(db, llm)

	result, err := svc.Generate(context.Background(), &GenerateRequest{
		UserID:      userID,
		Ingredients: []string{"rice", "egg", "spinach"},
		Language:    "Korean",
		Restriction: "vegetarian",
	})
	require.NoError(t, err)
	assert.Equal(t, "A veggie dish.", result.Recipe)
	assert.Contains(t, llm.lastPrompt, "The dish must be vegetarian with no meat or fish.")
	assert.Contains(t, llm.lastPrompt, "Respond in Korean.")
}

func TestGenerate_WrapsAIFailure(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db, true)
	llm := &stubLLM{err: errors.New("upstream timeout")}
	svc := newTestGeneration(db, llm)

	_, err := svc.Generate(context.Background(), &GenerateRequest{
		UserID:      userID,
		Ingredients: []string{"rice", "egg", "spinach"},
		Language:    "English",
	})
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerate_SuccessWritesLogRow(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db, true)
	llm := &stubLLM{response: "Fried rice."}
	svc := newTestGeneration(db, llm)

	_, err := svc.Generate(context.Background(), &GenerateRequest{
		UserID:      userID,
		Ingredients: []string{"rice", "egg", "spinach"},
		Language:    "English",
	})
	require.NoError(t, err)

	var logs []models.RecipeRequestLog
	require.NoError(t, db.Where("user_id = ?", userID).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, models.JSONBStringArray{"rice", "egg", "spinach"}, logs[0].Ingredients)
	assert.Equal(t, "Fried rice.", logs[0].Response)
	assert.Equal(t, "English", logs[0].Language)
}

func TestGenerate_LogWriteFailureIsSwallowed(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db, true)
	llm := &stubLLM{response: "Fried rice."}
	svc := newTestGeneration(db, llm)

	// Block inserts but leave the table readable so the rate-limit count
	// still works; the response must succeed anyway.
	require.NoError(t, db.Exec(`
		CREATE TRIGGER block_request_log BEFORE INSERT ON recipe_requests
		BEGIN SELECT RAISE(ABORT, 'insert blocked'); END
	`).Error)

	result, err := svc.Generate(context.Background(), &GenerateRequest{
		UserID:      userID,
		Ingredients: []string{"rice", "egg", "spinach"},
		Language:    "English",
	})
	require.NoError(t, err)
	assert.Equal(t, "Fried rice.", result.Recipe)
}

func TestGenerate_ValidationWarningOnAllergenLeakage(t *testing.T) {
	db := setupDB(t)
	userID := createTestUser(t, db, true)
	llm := &stubLLM{response: "Top with crushed almonds."}
	svc := newTestGeneration(db, llm)

	prefSvc := NewPreferenceService(db)
	_, err := prefSvc.Upsert(context.Background(), userID, &models.UserPreferences{
		Allergies: models.JSONBStringArray{"nuts"},
	})
	require.NoError(t, err)

	result, err := svc.Generate(context.Background(), &GenerateRequest{
		UserID:         userID,
		Ingredients:    []string{"rice", "egg", "spinach"},
		Language:       "English",
		UsePreferences: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "almond")
}
