package middleware

import (
	"quantumworks-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID reuses a well-formed incoming X-Request-ID or generates a UUID,
// stores it on the context and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(domain.HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(domain.KeyRequestID, id)
		c.Header(domain.HeaderRequestID, id)
		c.Next()
	}
}

// requestIDFrom returns the ID stored by RequestID, or ""
func requestIDFrom(c *gin.Context) string {
	return c.GetString(domain.KeyRequestID)
}
