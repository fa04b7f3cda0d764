package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// SystemUserID is recorded in audit fields for machine-initiated writes (the
// sweep scheduler, reconciliation runs without an operator header).
const SystemUserID = "system"

// CallerIdentityMiddleware records the caller identity forwarded by the
// authenticating gateway. Authentication itself happens upstream; this layer
// only needs a user ID for audit fields.
func CallerIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = SystemUserID
		}
		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetUserIDFromContext retrieves the caller's user ID from the context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
