package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/growdaily/internal/ports"
)

type staticChecker struct {
	name string
	err  error
}

func (c staticChecker) Name() string                  { return c.name }
func (c staticChecker) Check(_ context.Context) error { return c.err }

func setupHealthRouter(t *testing.T, checkers ...ports.HealthChecker) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := ports.NewHealthRegistry()
	for _, c := range checkers {
		require.NoError(t, registry.Register(c))
	}

	handler := NewHealthHandler(registry, NewBuildInfo("1.2.3", "abc123", "2026-01-01"))

	router := gin.New()
	handler.RegisterHealthRoutesOnEngine(router)

	return router
}

func TestHealthHandler_Liveness(t *testing.T) {
	router := setupHealthRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestHealthHandler_Readiness_Healthy(t *testing.T) {
	router := setupHealthRouter(t, staticChecker{name: "sqlite"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/ready", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
}

func TestHealthHandler_Readiness_Unhealthy(t *testing.T) {
	router := setupHealthRouter(t,
		staticChecker{name: "sqlite"},
		staticChecker{name: "notifier", err: errors.New("connection refused")},
	)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestHealthHandler_BuildInfo(t *testing.T) {
	router := setupHealthRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/build", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1.2.3")
}

func TestHealthHandler_Metrics(t *testing.T) {
	router := setupHealthRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
