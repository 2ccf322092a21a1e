package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const DefaultBodyLimit int64 = 8 << 20

// BodyLimit caps the request body; reading past the cap fails with
// *http.MaxBytesError, which the JSON binding surfaces to the handler.
func BodyLimit(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = DefaultBodyLimit
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
