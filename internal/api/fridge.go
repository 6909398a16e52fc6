package api

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jiwpark00/what-to-cook-backend/internal/models"
)

const (
	maxFridgeItems   = 5
	maxFridgeNameLen = 30
)

var fridgeNamePattern = regexp.MustCompile(`^[\p{L}\p{N}\s-]+$`)

// FridgeHandler manages the per-user fridge list that seeds the generation
// form. The list is capped so it always fits a single request.
type FridgeHandler struct {
	db *gorm.DB
}

func NewFridgeHandler(db *gorm.DB) *FridgeHandler {
	return &FridgeHandler{db: db}
}

func (h *FridgeHandler) List(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var items []models.FridgeItem
	err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch fridge items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *FridgeHandler) Add(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var req FridgeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxFridgeNameLen || !fridgeNamePattern.MatchString(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient name must be 1-30 characters of letters, numbers, spaces or hyphens"})
		return
	}

	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.FridgeItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check fridge capacity"})
		return
	}
	if count >= maxFridgeItems {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fridge is full; remove an item first"})
		return
	}

	item := models.FridgeItem{
		UserID: userID,
		Name:   name,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add fridge item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *FridgeHandler) Delete(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.FridgeItem{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete fridge item"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	c.Status(http.StatusNoContent)
}
