package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/growdaily/internal/adapters/http/handlers"
	"github.com/jsamuelsen/growdaily/internal/adapters/http/middleware"
	"github.com/jsamuelsen/growdaily/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// ServiceName is used by the OpenTelemetry middleware.
	ServiceName string

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// QuoteHandler handles quote library endpoints.
	QuoteHandler *handlers.QuoteHandler

	// ScheduleHandler handles reminder scheduling endpoints.
	ScheduleHandler *handlers.ScheduleHandler

	// Timeout is the default request timeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. OpenTelemetry - tracing and metrics
//  4. Logging - request logging (skips health endpoints)
//  5. Timeout - request deadline
//
// Route groups:
//   - /-/ (internal): health, build info, Prometheus metrics
//   - /v1/ (local API): quote library and scheduling endpoints
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		telemetry.Middleware(cfg.ServiceName),
		middleware.Logging(cfg.Logger),
	)

	// Health endpoints sit outside the timeout so probes stay cheap.
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	v1 := engine.Group("/v1")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	v1.Use(middleware.Timeout(timeout))

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(v1)
	}

	if cfg.ScheduleHandler != nil {
		cfg.ScheduleHandler.RegisterScheduleRoutes(v1)
	}
}
