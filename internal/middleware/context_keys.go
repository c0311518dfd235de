package middleware

import "github.com/gin-gonic/gin"

// ownerIDKey is the key under which the authenticated caller's user ID
// is stored in the request context.
const ownerIDKey = contextKey("ownerID")

// GetOwnerIDFromContext retrieves the authenticated owner ID from the
// Gin context. Returns false when the auth middleware did not run.
func GetOwnerIDFromContext(c *gin.Context) (string, bool) {
	ownerID, ok := c.Request.Context().Value(ownerIDKey).(string)
	if !ok || ownerID == "" {
		return "", false
	}
	return ownerID, true
}
