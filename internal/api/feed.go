package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/jiwpark00/what-to-cook-backend/internal/dietary"
	"github.com/jiwpark00/what-to-cook-backend/internal/models"
)

const (
	feedDefaultLimit = 20
	feedMaxLimit     = 50
	feedCacheTTL     = 60 * time.Second
)

// FeedHandler serves the public activity feed: recent generation requests with
// everything personal stripped out. Pages are cached briefly in Redis since
// the feed tolerates slightly stale reads.
type FeedHandler struct {
	db     *gorm.DB
	redis  *redis.Client
	logger *log.Logger
}

// NewFeedHandler builds the handler. redisClient may be nil; the feed then
// reads straight from the database.
func NewFeedHandler(db *gorm.DB, redisClient *redis.Client, logger *log.Logger) *FeedHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &FeedHandler{db: db, redis: redisClient, logger: logger}
}

func (h *FeedHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(feedDefaultLimit)))
	if err != nil || limit < 1 {
		limit = feedDefaultLimit
	}
	if limit > feedMaxLimit {
		limit = feedMaxLimit
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	cacheKey := fmt.Sprintf("feed:%d:%d", limit, offset)
	if cached, ok := h.fromCache(c.Request.Context(), cacheKey); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	var logs []models.RecipeRequestLog
	err = h.db.WithContext(c.Request.Context()).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch feed"})
		return
	}

	entries := make([]FeedEntry, 0, len(logs))
	for _, entry := range logs {
		title := dietary.ExtractTitle(entry.Response)
		if title == "" {
			title = "Untitled recipe"
		}
		entries = append(entries, FeedEntry{
			ID:          entry.ID.String(),
			Title:       title,
			Ingredients: entry.Ingredients,
			Language:    entry.Language,
			CreatedAt:   entry.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	resp := FeedResponse{Entries: entries, Limit: limit, Offset: offset}
	h.toCache(c.Request.Context(), cacheKey, resp)
	c.JSON(http.StatusOK, resp)
}

func (h *FeedHandler) fromCache(ctx context.Context, key string) (*FeedResponse, bool) {
	if h.redis == nil {
		return nil, false
	}
	raw, err := h.redis.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var resp FeedResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (h *FeedHandler) toCache(ctx context.Context, key string, resp FeedResponse) {
	if h.redis == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := h.redis.Set(ctx, key, raw, feedCacheTTL).Err(); err != nil {
		h.logger.Printf("[FeedHandler] failed to cache feed page %s: %v", key, err)
	}
}
