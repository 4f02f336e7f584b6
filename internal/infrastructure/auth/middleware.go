package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDKey = "auth.userID"

// Middleware returns a gin handler that requires a Bearer token and stores
// the authenticated user id in the request context.
func Middleware(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := a.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by Middleware, or "" when the
// request is unauthenticated.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// SetUserID injects a user id directly, bypassing token validation. Intended
// for tests that exercise handlers without issuing tokens.
func SetUserID(c *gin.Context, userID string) {
	c.Set(userIDKey, userID)
}
