package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jiwpark00/what-to-cook-backend/internal/service"
)

// GenerateHandler exposes the two recipe-generation endpoints. Both run the
// same pipeline; /ideate skips stored preferences and takes a restriction tag
// instead.
type GenerateHandler struct {
	generation *service.GenerationService
}

func NewGenerateHandler(generation *service.GenerationService) *GenerateHandler {
	return &GenerateHandler{generation: generation}
}

func (h *GenerateHandler) Generate(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.generation.Generate(c.Request.Context(), &service.GenerateRequest{
		UserID:         userID,
		Ingredients:    req.Ingredients,
		Language:       req.Language,
		UsePreferences: true,
	})
	if err != nil {
		writeGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Recipe: result.Recipe,
		Metadata: GenerateMetadata{
			IngredientsUsed:    result.IngredientsUsed,
			PreferencesApplied: result.Preferences != nil,
			Warnings:           result.Warnings,
			Language:           result.Language,
		},
	})
}

func (h *GenerateHandler) Ideate(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var req IdeateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.generation.Generate(c.Request.Context(), &service.GenerateRequest{
		UserID:         userID,
		Ingredients:    req.Ingredients,
		Language:       req.Language,
		Restriction:    req.Restriction,
		UsePreferences: false,
	})
	if err != nil {
		writeGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result.Recipe})
}

// writeGenerationError maps pipeline errors onto HTTP statuses. The allergy
// conflict gets a structured body so the client can show which ingredients
// clashed.
func writeGenerationError(c *gin.Context, err error) {
	var conflict *service.AllergyConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":              conflict.Error(),
			"flaggedIngredients": conflict.Flagged,
			"userAllergies":      conflict.Allergies,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotPermitted):
		c.JSON(http.StatusForbidden, gin.H{"error": "AI suggestions are not enabled for this account"})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded: at most 5 requests per hour"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate recipe"})
	}
}
