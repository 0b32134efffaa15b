package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/growdaily/internal/platform/logging"
)

const (
	// HeaderRequestID is the header name for the request ID.
	HeaderRequestID = "X-Request-ID"

	// ContextKeyRequestID is the gin context key for the request ID.
	ContextKeyRequestID = "request_id"
)

// RequestID returns middleware that extracts or generates a request ID. The
// id is taken from the X-Request-ID header when present, generated as a UUID
// otherwise, echoed in the response headers, and attached to both the request
// context and the context logger.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(ContextKeyRequestID, id)
		c.Header(HeaderRequestID, id)

		ctx := ContextWithRequestID(c.Request.Context(), id)
		ctx = logging.WithRequestID(ctx, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetRequestID extracts the request ID from the gin.Context.
// Returns empty string if not set.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(ContextKeyRequestID); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}

	return ""
}
