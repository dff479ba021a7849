package middleware

import (
	"inkpost/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID tags every request with an id, echoed in the response header,
// and stores a logger carrying that id in the request context. A valid
// incoming X-Request-ID is reused.
func RequestID(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		child := log.With().Str(RequestIDKey, id).Logger()
		c.Request = c.Request.WithContext(child.WithContext(c.Request.Context()))
		c.Next()
	}
}
