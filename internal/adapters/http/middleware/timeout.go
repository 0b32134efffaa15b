package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/growdaily/internal/adapters/http/dto"
	"github.com/jsamuelsen/growdaily/internal/platform/logging"
)

// Timeout returns middleware that enforces a per-request deadline. On
// timeout the request is answered with 503 and the handler's context is
// cancelled; handlers that ignore cancellation cannot be stopped forcibly.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		done := make(chan struct{})

		go func() {
			c.Next()
			close(done)
		}()

		select {
		case <-done:
			return
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				handleTimeout(c, timeout)
			}
		}
	}
}

func handleTimeout(c *gin.Context, timeout time.Duration) {
	logging.FromContext(c.Request.Context()).Warn("request timeout",
		slog.String("path", c.Request.URL.Path),
		slog.String("method", c.Request.Method),
		slog.Duration("timeout", timeout),
	)

	if !c.Writer.Written() {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
			dto.ErrorCodeTimeout,
			"request timeout exceeded",
		))
	} else {
		c.Abort()
	}
}
