package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jiwpark00/what-to-cook-backend/internal/api"
	"github.com/jiwpark00/what-to-cook-backend/internal/database"
	"github.com/jiwpark00/what-to-cook-backend/internal/service"
)

type cannedLLM struct {
	response string
}

func (c *cannedLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return c.response, nil
}

func setupFullRouter(t *testing.T, llm service.LLMClient) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	authService := service.NewAuthService(db, "router-test-secret")
	prefService := service.NewPreferenceService(db)
	generation := service.NewGenerationService(db, llm, prefService, log.Default())

	return SetupRouter(
		db,
		api.NewAuthHandler(authService),
		api.NewPreferencesHandler(prefService),
		api.NewFridgeHandler(db),
		api.NewGenerateHandler(generation),
		api.NewFeedHandler(db, nil, nil),
		authService,
	)
}

func doJSON(router *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/v1/auth/register", "", api.RegisterRequest{
		Name:     "Router Test",
		Email:    email,
		Password: "a-long-password",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

// A freshly registered account must be able to generate right away: no
// out-of-band verification step exists, so registration alone opens the
// generation endpoints.
func TestRouter_RegisterThenGenerate(t *testing.T) {
	router := setupFullRouter(t, &cannedLLM{response: "# Spinach Fried Rice\nCook the rice."})
	token := registerUser(t, router, "fresh@example.com")

	w := doJSON(router, http.MethodPost, "/api/v1/generate", token, api.GenerateRequest{
		Ingredients: []string{"rice", "egg", "spinach"},
		Language:    "English",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp api.GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Recipe)
	assert.Equal(t, "English", resp.Metadata.Language)
}

func TestRouter_RegisterThenIdeate(t *testing.T) {
	router := setupFullRouter(t, &cannedLLM{response: "A simple veggie dish."})
	token := registerUser(t, router, "ideate@example.com")

	w := doJSON(router, http.MethodPost, "/api/v1/ideate", token, api.IdeateRequest{
		Ingredients: []string{"rice", "egg", "spinach"},
		Language:    "English",
		Restriction: "vegetarian",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "A simple veggie dish.")
}

func TestRouter_GenerateRequiresToken(t *testing.T) {
	router := setupFullRouter(t, &cannedLLM{response: "recipe"})

	w := doJSON(router, http.MethodPost, "/api/v1/generate", "", api.GenerateRequest{
		Ingredients: []string{"rice", "egg", "spinach"},
		Language:    "English",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_FeedAndHealthArePublic(t *testing.T) {
	router := setupFullRouter(t, &cannedLLM{response: "recipe"})

	w := doJSON(router, http.MethodGet, "/api/v1/feed", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
