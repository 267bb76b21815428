package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// CacheControl sets the Cache-Control header on every response of the group.
func CacheControl(directive string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", directive)
		c.Next()
	}
}

// PublicMaxAge is the directive for static assets cached by browsers and proxies.
func PublicMaxAge(seconds int) string {
	return fmt.Sprintf("public, max-age=%d", seconds)
}

// NoStore is the directive for admin responses, which must never be cached.
const NoStore = "no-store"
