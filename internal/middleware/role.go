package middleware

import (
	"net/http"

	"github.com/franciscosanchezn/pizzeria-console/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireRole is a middleware that checks if the user has one of the allowed
// roles. A request whose role is absent or unrecognized is rejected: the
// capability model fails closed.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedRoles))
	for _, role := range allowedRoles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		// Get user info from context (set by JWTAuth middleware)
		if _, exists := c.Get("userID"); !exists {
			c.JSON(http.StatusUnauthorized, models.APIResponse{
				Success: false,
				Message: "User not authenticated",
			})
			c.Abort()
			return
		}

		role, exists := c.Get("userRole")
		if !exists {
			c.JSON(http.StatusForbidden, models.APIResponse{
				Success: false,
				Message: "User role not found in token",
			})
			c.Abort()
			return
		}

		userRole, ok := role.(string)
		if !ok || !allowed[userRole] {
			c.JSON(http.StatusForbidden, models.APIResponse{
				Success: false,
				Message: "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
