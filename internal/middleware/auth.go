package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskly-be/internal/jwt"
	"taskly-be/internal/models"
)

// userIDKey is the gin context key holding the authenticated user ID
const userIDKey = "user_id"

// AuthMiddleware rejects requests without a valid bearer token and stores
// the token's user ID on the context for downstream handlers.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.MessageResponse{
				Message: "Access denied. No token provided.",
			})
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			log.Printf("Rejected token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.MessageResponse{
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user ID set by AuthMiddleware
func UserID(c *gin.Context) (string, bool) {
	userID := c.GetString(userIDKey)
	return userID, userID != ""
}

func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
