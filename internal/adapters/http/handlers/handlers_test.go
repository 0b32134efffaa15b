package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/growdaily/internal/adapters/memory"
	"github.com/jsamuelsen/growdaily/internal/adapters/notify"
	"github.com/jsamuelsen/growdaily/internal/app"
	"github.com/jsamuelsen/growdaily/internal/domain"
)

// fixture wires the full handler stack onto in-memory adapters so tests
// exercise real routing, binding and application logic.
type fixture struct {
	router    *gin.Engine
	quotes    *memory.QuoteStore
	overrides *memory.OverrideStore
	settings  *memory.SettingsStore
	gateway   *notify.MemoryGateway
	seedDir   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &fixture{
		quotes:    memory.NewQuoteStore(),
		overrides: memory.NewOverrideStore(),
		settings:  memory.NewSettingsStore(),
		gateway:   notify.NewMemoryGateway(),
		seedDir:   t.TempDir(),
	}

	rotation := app.NewRotation(app.RotationConfig{
		Settings: f.settings,
		Logger:   logger,
	})

	scheduler := app.NewScheduler(app.SchedulerConfig{
		Gateway:   f.gateway,
		Quotes:    f.quotes,
		Overrides: f.overrides,
		Settings:  f.settings,
		Rotation:  rotation,
		Logger:    logger,
	})

	pruner := app.NewPruner(app.PrunerConfig{
		Gateway: f.gateway,
		Logger:  logger,
	})

	library := app.NewLibrary(app.LibraryConfig{
		Quotes:    f.quotes,
		Overrides: f.overrides,
		Settings:  f.settings,
		Logger:    logger,
	})

	seeder := app.NewSeeder(app.SeederConfig{
		Quotes:   f.quotes,
		Settings: f.settings,
		Logger:   logger,
		Dir:      f.seedDir,
		Files: map[string]string{
			"Health": "HealthQuotes",
		},
	})

	f.router = gin.New()
	v1 := f.router.Group("/v1")

	NewQuoteHandler(library, seeder).RegisterQuoteRoutes(v1)
	NewScheduleHandler(ScheduleHandlerConfig{
		Scheduler: scheduler,
		Pruner:    pruner,
		Settings:  f.settings,
		MaxSlots:  2,
	}).RegisterScheduleRoutes(v1)

	return f
}

// do issues a request against the wired router and returns the recorder.
func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	return w
}

// addQuote inserts a quote directly into the store, bypassing the API.
func (f *fixture) addQuote(t *testing.T, q *domain.Quote) {
	t.Helper()
	require.NoError(t, f.quotes.Insert(context.Background(), q))
}

// writeSeedFile places a seed file into the fixture's seed directory.
func (f *fixture) writeSeedFile(t *testing.T, base, content string) {
	t.Helper()
	path := filepath.Join(f.seedDir, base+".json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	return out
}

func testQuote(id string, favorite bool) *domain.Quote {
	return &domain.Quote{
		ID:         id,
		Text:       "quote " + id,
		Author:     "Author " + id,
		Category:   "Health",
		IsFavorite: favorite,
	}
}
