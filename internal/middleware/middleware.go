package middleware

import (
	"net/http"
	"strings"

	"github.com/franciscosanchezn/pizzeria-console/internal/auth"
	"github.com/franciscosanchezn/pizzeria-console/internal/models"
	"github.com/gin-gonic/gin"
)

// JWTAuth validates the bearer token on every request and exposes the
// authenticated identity through the gin context (userID, username, userRole).
// Requests without a token are rejected here; a missing token never reaches a
// protected handler.
func JWTAuth(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// RFC 6750: Extract Bearer token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondUnauthorized(c, "Missing Authorization header. A valid Bearer token is required.")
			return
		}

		// Validate Bearer scheme format
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respondUnauthorized(c, "Authorization header must use Bearer scheme. Format: 'Bearer <token>'")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			respondUnauthorized(c, "Bearer token is empty")
			return
		}

		claims, err := issuer.Validate(tokenString)
		if err != nil {
			respondUnauthorized(c, err.Error())
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("userRole", claims.Role)
		c.Set("tokenID", claims.TokenID)

		c.Next()
	}
}

func respondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, models.APIResponse{
		Success: false,
		Message: message,
	})
	c.Abort()
}
