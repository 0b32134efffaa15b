package app_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/growdaily/internal/adapters/memory"
	"github.com/jsamuelsen/growdaily/internal/app"
	"github.com/jsamuelsen/growdaily/internal/domain"
	"github.com/jsamuelsen/growdaily/internal/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sortedShuffle replaces the random permutation with a sorted one so tests
// can predict the cycle order.
func sortedShuffle(ids []string) {
	sort.Strings(ids)
}

func quoteFixtures(n int) []*domain.Quote {
	quotes := make([]*domain.Quote, n)
	for i := range quotes {
		quotes[i] = &domain.Quote{
			ID:   fmt.Sprintf("q-%02d", i+1),
			Text: fmt.Sprintf("quote number %d", i+1),
		}
	}

	return quotes
}

func newRotation(settings ports.SettingsStore) *app.Rotation {
	return app.NewRotation(app.RotationConfig{
		Settings: settings,
		Logger:   discardLogger(),
		Shuffle:  sortedShuffle,
	})
}

func TestRotation_CycleIsPermutationOfLibrary(t *testing.T) {
	ctx := context.Background()
	settings := memory.NewSettingsStore()
	rotation := newRotation(settings)
	quotes := quoteFixtures(5)

	quote, err := rotation.NextQuote(ctx, quotes)
	require.NoError(t, err)
	require.NotNil(t, quote)

	state, err := settings.RotationState(ctx)
	require.NoError(t, err)

	ids := make([]string, len(quotes))
	for i, q := range quotes {
		ids[i] = q.ID
	}

	assert.Len(t, state.Cycle, len(quotes))
	assert.ElementsMatch(t, ids, state.Cycle)
}

func TestRotation_FullPassYieldsEveryQuoteOnce(t *testing.T) {
	ctx := context.Background()
	settings := memory.NewSettingsStore()
	rotation := newRotation(settings)
	quotes := quoteFixtures(4)

	seen := make([]string, 0, len(quotes))

	for range quotes {
		quote, err := rotation.NextQuote(ctx, quotes)
		require.NoError(t, err)
		require.NotNil(t, quote)

		seen = append(seen, quote.ID)
	}

	// Sorted shuffle means consumption order is the sorted id order.
	assert.Equal(t, []string{"q-01", "q-02", "q-03", "q-04"}, seen)
}

func TestRotation_WrapsAfterFullPass(t *testing.T) {
	ctx := context.Background()
	settings := memory.NewSettingsStore()
	rotation := newRotation(settings)
	quotes := quoteFixtures(3)

	for range quotes {
		_, err := rotation.NextQuote(ctx, quotes)
		require.NoError(t, err)
	}

	quote, err := rotation.NextQuote(ctx, quotes)
	require.NoError(t, err)
	assert.Equal(t, "q-01", quote.ID, "a fourth draw restarts the same cycle")
}

func TestRotation_ReshufflesWhenLibrarySizeChanges(t *testing.T) {
	ctx := context.Background()
	settings := memory.NewSettingsStore()
	rotation := newRotation(settings)
	quotes := quoteFixtures(3)

	_, err := rotation.NextQuote(ctx, quotes)
	require.NoError(t, err)
	_, err = rotation.NextQuote(ctx, quotes)
	require.NoError(t, err)

	shrunk := quotes[:2]

	quote, err := rotation.NextQuote(ctx, shrunk)
	require.NoError(t, err)
	assert.Equal(t, "q-01", quote.ID, "reshuffle resets the cursor to the cycle start")

	state, err := settings.RotationState(ctx)
	require.NoError(t, err)
	assert.Len(t, state.Cycle, 2)
	assert.Equal(t, 1, state.Cursor, "cursor advanced past the drawn quote")
}

func TestRotation_EmptyLibraryReturnsNone(t *testing.T) {
	rotation := newRotation(memory.NewSettingsStore())

	quote, err := rotation.NextQuote(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, quote)
}

func TestRotation_RegeneratesWhenCycleEntryIsDead(t *testing.T) {
	ctx := context.Background()
	settings := memory.NewSettingsStore()

	// Right length, wrong ids. The length check passes but resolution fails.
	err := settings.SetRotationState(ctx, domain.RotationState{
		Cycle: []string{"gone-1", "gone-2", "gone-3"},
	})
	require.NoError(t, err)

	rotation := newRotation(settings)
	quotes := quoteFixtures(3)

	quote, err := rotation.NextQuote(ctx, quotes)
	require.NoError(t, err)
	require.NotNil(t, quote)
	assert.Equal(t, "q-01", quote.ID)
}

// failingSettings wraps the in-memory store and fails reads on demand.
type failingSettings struct {
	*memory.SettingsStore
	failReads bool
}

func (f *failingSettings) RotationState(ctx context.Context) (domain.RotationState, error) {
	if f.failReads {
		return domain.RotationState{}, domain.NewUnavailableError("settings", "read failed")
	}

	return f.SettingsStore.RotationState(ctx)
}

func TestRotation_ReadFailureDegradesToFreshCycle(t *testing.T) {
	ctx := context.Background()
	settings := &failingSettings{SettingsStore: memory.NewSettingsStore(), failReads: true}
	rotation := newRotation(settings)
	quotes := quoteFixtures(2)

	quote, err := rotation.NextQuote(ctx, quotes)
	require.NoError(t, err, "a failed state read must not surface to the caller")
	require.NotNil(t, quote)
	assert.Equal(t, "q-01", quote.ID)
}
