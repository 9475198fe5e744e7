package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/scriptvault/backend/internal/services"
	"github.com/scriptvault/backend/pkg/response"
)

const ContextUserID = "user_id"

// AuthRequired checks for a valid bearer token and attaches the resolved
// user id to the request context. The account's active flag is not
// re-checked here; a deactivated user's existing token stays usable until
// it expires.
func AuthRequired(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// GetUserID gets the current user ID from context.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}
