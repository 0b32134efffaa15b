package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/growdaily/internal/adapters/memory"
	"github.com/jsamuelsen/growdaily/internal/app"
	"github.com/jsamuelsen/growdaily/internal/domain"
)

type libraryFixture struct {
	library   *app.Library
	quotes    *memory.QuoteStore
	overrides *memory.OverrideStore
	settings  *memory.SettingsStore
}

func newLibraryFixture(t *testing.T) *libraryFixture {
	t.Helper()

	f := &libraryFixture{
		quotes:    memory.NewQuoteStore(),
		overrides: memory.NewOverrideStore(),
		settings:  memory.NewSettingsStore(),
	}

	f.library = app.NewLibrary(app.LibraryConfig{
		Quotes:    f.quotes,
		Overrides: f.overrides,
		Settings:  f.settings,
		Logger:    discardLogger(),
	})

	return f
}

func TestLibrary_CreateCustom(t *testing.T) {
	ctx := context.Background()
	f := newLibraryFixture(t)

	quote, err := f.library.CreateCustom(ctx, "  My own words.  ", " Me ")
	require.NoError(t, err)
	assert.NotEmpty(t, quote.ID)
	assert.Equal(t, "My own words.", quote.Text)
	assert.Equal(t, "Me", quote.Author)
	assert.True(t, quote.IsCustom)

	_, err = f.library.CreateCustom(ctx, "   ", "")
	assert.True(t, domain.IsValidation(err))
}

func TestLibrary_UpdateCustom(t *testing.T) {
	ctx := context.Background()
	f := newLibraryFixture(t)

	quote, err := f.library.CreateCustom(ctx, "Draft.", "")
	require.NoError(t, err)

	updated, err := f.library.UpdateCustom(ctx, quote.ID, "Final.", "Me")
	require.NoError(t, err)
	assert.Equal(t, "Final.", updated.Text)
	assert.Equal(t, "Me", updated.Author)
}

func TestLibrary_SeededQuotesAreReadOnly(t *testing.T) {
	ctx := context.Background()
	f := newLibraryFixture(t)

	seeded := &domain.Quote{ID: "q-01", Text: "Seeded.", Category: "Health"}
	require.NoError(t, f.quotes.Insert(ctx, seeded))

	_, err := f.library.UpdateCustom(ctx, "q-01", "Changed.", "")
	assert.True(t, domain.IsForbidden(err))

	err = f.library.DeleteCustom(ctx, "q-01")
	assert.True(t, domain.IsForbidden(err))
}

func TestLibrary_DeleteCustom(t *testing.T) {
	ctx := context.Background()
	f := newLibraryFixture(t)

	quote, err := f.library.CreateCustom(ctx, "Ephemeral.", "")
	require.NoError(t, err)

	require.NoError(t, f.library.DeleteCustom(ctx, quote.ID))

	_, err = f.library.Get(ctx, quote.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestLibrary_DeletePinnedQuoteForbidden(t *testing.T) {
	ctx := context.Background()
	f := newLibraryFixture(t)

	quote, err := f.library.CreateCustom(ctx, "Pinned.", "")
	require.NoError(t, err)

	require.NoError(t, f.overrides.Insert(ctx, &domain.ScheduledOverride{
		ID:           "ov-1",
		QuoteID:      quote.ID,
		StartDate:    time.Now(),
		DurationDays: 7,
	}))

	err = f.library.DeleteCustom(ctx, quote.ID)
	assert.True(t, domain.IsForbidden(err))
}

func TestLibrary_ToggleFavorite(t *testing.T) {
	ctx := context.Background()
	f := newLibraryFixture(t)

	quote, err := f.library.CreateCustom(ctx, "Beloved.", "")
	require.NoError(t, err)

	toggled, err := f.library.ToggleFavorite(ctx, quote.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFavorite)

	toggled, err = f.library.ToggleFavorite(ctx, quote.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsFavorite)
}

func TestLibrary_UnfavoriteForbiddenWhilePinned(t *testing.T) {
	ctx := context.Background()
	f := newLibraryFixture(t)

	quote, err := f.library.CreateCustom(ctx, "Beloved.", "")
	require.NoError(t, err)

	_, err = f.library.ToggleFavorite(ctx, quote.ID)
	require.NoError(t, err)

	require.NoError(t, f.overrides.Insert(ctx, &domain.ScheduledOverride{
		ID:           "ov-1",
		QuoteID:      quote.ID,
		StartDate:    time.Now(),
		DurationDays: 7,
	}))

	_, err = f.library.ToggleFavorite(ctx, quote.ID)
	assert.True(t, domain.IsForbidden(err), "a pinned quote must stay a favorite")
}

func TestLibrary_ExpiredPinDoesNotBlockAnything(t *testing.T) {
	ctx := context.Background()
	f := newLibraryFixture(t)

	quote, err := f.library.CreateCustom(ctx, "Once pinned.", "")
	require.NoError(t, err)

	_, err = f.library.ToggleFavorite(ctx, quote.ID)
	require.NoError(t, err)

	// The row outlived its end date; nobody unpinned it.
	require.NoError(t, f.overrides.Insert(ctx, &domain.ScheduledOverride{
		ID:           "ov-1",
		QuoteID:      quote.ID,
		StartDate:    time.Now().AddDate(0, 0, -10),
		DurationDays: 7,
	}))

	toggled, err := f.library.ToggleFavorite(ctx, quote.ID)
	require.NoError(t, err, "an expired pin must not freeze the favorite flag")
	assert.False(t, toggled.IsFavorite)

	require.NoError(t, f.library.DeleteCustom(ctx, quote.ID),
		"an expired pin must not block deletion")
}

func TestLibrary_NotificationTapHandoff(t *testing.T) {
	ctx := context.Background()
	f := newLibraryFixture(t)

	quote, err := f.library.CreateCustom(ctx, "Tapped.", "")
	require.NoError(t, err)

	require.NoError(t, f.library.RecordNotificationTap(ctx, quote.ID))

	resolved, err := f.library.ResolvePendingQuote(ctx)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, quote.ID, resolved.ID)

	// The marker is consumed by resolution.
	resolved, err = f.library.ResolvePendingQuote(ctx)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestLibrary_ResolvePendingQuote_Deleted(t *testing.T) {
	ctx := context.Background()
	f := newLibraryFixture(t)

	require.NoError(t, f.library.RecordNotificationTap(ctx, "gone"))

	resolved, err := f.library.ResolvePendingQuote(ctx)
	require.NoError(t, err, "a marker for a deleted quote is swallowed")
	assert.Nil(t, resolved)
}

func TestLibrary_Favorites(t *testing.T) {
	ctx := context.Background()
	f := newLibraryFixture(t)

	first, err := f.library.CreateCustom(ctx, "One.", "")
	require.NoError(t, err)
	_, err = f.library.CreateCustom(ctx, "Two.", "")
	require.NoError(t, err)

	_, err = f.library.ToggleFavorite(ctx, first.ID)
	require.NoError(t, err)

	favorites, err := f.library.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, first.ID, favorites[0].ID)
}
