package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"devs-society/backend/pkg/response"
)

// DefaultBodyLimit request body cap applied to the whole API
const DefaultBodyLimit = 1 << 20

// BodyLimit caps request bodies at maxBytes. Oversized bodies are rejected
// up front by Content-Length, or when a handler's read trips the limit.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			tooLarge(c)
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.Writer.Written() {
			return
		}
		var maxErr *http.MaxBytesError
		for _, err := range c.Errors {
			if errors.As(err.Err, &maxErr) {
				tooLarge(c)
				return
			}
		}
	}
}

func tooLarge(c *gin.Context) {
	response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "request body too large")
}
