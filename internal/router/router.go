package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jiwpark00/what-to-cook-backend/internal/api"
	"github.com/jiwpark00/what-to-cook-backend/internal/middleware"
	"github.com/jiwpark00/what-to-cook-backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(
	db *gorm.DB,
	authHandler *api.AuthHandler,
	prefsHandler *api.PreferencesHandler,
	fridgeHandler *api.FridgeHandler,
	generateHandler *api.GenerateHandler,
	feedHandler *api.FeedHandler,
	authService service.IAuthService,
) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Public feed
	v1.GET("/feed", feedHandler.List)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		// Preference routes
		preferences := protected.Group("/preferences")
		{
			preferences.GET("", prefsHandler.Get)
			preferences.PUT("", prefsHandler.Update)
		}

		// Fridge routes
		fridge := protected.Group("/fridge")
		{
			fridge.GET("", fridgeHandler.List)
			fridge.POST("", fridgeHandler.Add)
			fridge.DELETE("/:id", fridgeHandler.Delete)
		}

		// Generation routes require a verified email on top of a valid token
		verified := protected.Group("")
		verified.Use(middleware.RequireEmailVerification(db))
		{
			verified.POST("/generate", generateHandler.Generate)
			verified.POST("/ideate", generateHandler.Ideate)
		}
	}

	return router
}
