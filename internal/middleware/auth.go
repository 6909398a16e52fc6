package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jiwpark00/what-to-cook-backend/internal/types"
)

// TokenValidator checks a bearer token and returns the identity it encodes.
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

const bearerPrefix = "Bearer "

// AuthMiddleware rejects requests without a valid bearer token and stores the
// caller's id and email in the request context under "user_id" and
// "user_email" for downstream handlers.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), bearerPrefix)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed bearer token"})
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Next()
	}
}
