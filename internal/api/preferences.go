package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jiwpark00/what-to-cook-backend/internal/models"
	"github.com/jiwpark00/what-to-cook-backend/internal/service"
)

var validSpiceLevels = map[string]bool{
	"mild":   true,
	"medium": true,
	"spicy":  true,
}

// PreferencesHandler exposes the stored dietary-preferences record.
type PreferencesHandler struct {
	prefService service.IPreferenceService
}

func NewPreferencesHandler(prefService service.IPreferenceService) *PreferencesHandler {
	return &PreferencesHandler{prefService: prefService}
}

func (h *PreferencesHandler) Get(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	prefs, err := h.prefService.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch preferences"})
		return
	}

	if prefs == nil {
		// Never-saved preferences read back as the defaults.
		c.JSON(http.StatusOK, models.UserPreferences{
			UserID:               userID,
			DietaryRestrictions:  models.JSONBStringArray{},
			Allergies:            models.JSONBStringArray{},
			CuisinePreferences:   models.JSONBStringArray{},
			PreferredCookingTime: 30,
			SpiceLevel:           "medium",
		})
		return
	}

	c.JSON(http.StatusOK, prefs)
}

func (h *PreferencesHandler) Update(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.SpiceLevel != "" && !validSpiceLevels[req.SpiceLevel] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "spice_level must be one of mild, medium, spicy"})
		return
	}
	if req.PreferredCookingTime < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "preferred_cooking_time must be positive"})
		return
	}

	prefs, err := h.prefService.Upsert(c.Request.Context(), userID, &models.UserPreferences{
		DietaryRestrictions:  models.JSONBStringArray(req.DietaryRestrictions),
		Allergies:            models.JSONBStringArray(req.Allergies),
		CuisinePreferences:   models.JSONBStringArray(req.CuisinePreferences),
		PreferredCookingTime: req.PreferredCookingTime,
		SpiceLevel:           req.SpiceLevel,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save preferences"})
		return
	}

	c.JSON(http.StatusOK, prefs)
}
