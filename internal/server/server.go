package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/jiwpark00/what-to-cook-backend/config"
	"github.com/jiwpark00/what-to-cook-backend/internal/api"
	"github.com/jiwpark00/what-to-cook-backend/internal/router"
	"github.com/jiwpark00/what-to-cook-backend/internal/service"
)

// Server wires the services, handlers and routes into one HTTP server.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New builds the full application: services, handlers, routes.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, llm service.LLMClient, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	prefService := service.NewPreferenceService(db)
	generationService := service.NewGenerationService(db, llm, prefService, logger)

	authHandler := api.NewAuthHandler(authService)
	prefsHandler := api.NewPreferencesHandler(prefService)
	fridgeHandler := api.NewFridgeHandler(db)
	generateHandler := api.NewGenerateHandler(generationService)
	feedHandler := api.NewFeedHandler(db, redisClient, logger)

	engine := router.SetupRouter(db, authHandler, prefsHandler, fridgeHandler, generateHandler, feedHandler, authService)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
		db: db,
	}
}

// Start blocks serving HTTP until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
