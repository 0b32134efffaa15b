package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/growdaily/internal/adapters/http/dto"
)

func TestQuoteHandler_CreateQuote(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/v1/quotes", dto.CreateQuoteRequest{
		Text:   "What you do today matters.",
		Author: "Me",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeJSON[dto.QuoteResponse](t, w)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "What you do today matters.", resp.Text)
	assert.True(t, resp.IsCustom)
	assert.False(t, resp.IsFavorite)
}

func TestQuoteHandler_CreateQuote_BlankText(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/v1/quotes", dto.CreateQuoteRequest{
		Text: "   ",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeJSON[dto.ErrorResponse](t, w)
	assert.Equal(t, dto.ErrorCodeValidation, resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "text")
}

func TestQuoteHandler_CreateQuote_MalformedBody(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/v1/quotes", "not an object")

	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeJSON[dto.ErrorResponse](t, w)
	assert.Equal(t, dto.ErrorCodeBadRequest, resp.Error.Code)
}

func TestQuoteHandler_ListQuotes(t *testing.T) {
	f := newFixture(t)
	f.addQuote(t, testQuote("q-1", false))
	f.addQuote(t, testQuote("q-2", true))

	w := f.do(t, http.MethodGet, "/v1/quotes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON[dto.QuoteListResponse](t, w)
	assert.Equal(t, 2, resp.Count)
}

func TestQuoteHandler_ListQuotes_FavoritesOnly(t *testing.T) {
	f := newFixture(t)
	f.addQuote(t, testQuote("q-1", false))
	f.addQuote(t, testQuote("q-2", true))

	w := f.do(t, http.MethodGet, "/v1/quotes?favorites=true", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON[dto.QuoteListResponse](t, w)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "q-2", resp.Quotes[0].ID)
}

func TestQuoteHandler_GetQuote_NotFound(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/v1/quotes/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	resp := decodeJSON[dto.ErrorResponse](t, w)
	assert.Equal(t, dto.ErrorCodeNotFound, resp.Error.Code)
}

func TestQuoteHandler_UpdateQuote_SeededIsReadOnly(t *testing.T) {
	f := newFixture(t)
	f.addQuote(t, testQuote("q-1", false))

	w := f.do(t, http.MethodPut, "/v1/quotes/q-1", dto.UpdateQuoteRequest{
		Text: "rewritten",
	})

	require.Equal(t, http.StatusForbidden, w.Code)

	resp := decodeJSON[dto.ErrorResponse](t, w)
	assert.Equal(t, dto.ErrorCodeForbidden, resp.Error.Code)
}

func TestQuoteHandler_UpdateQuote_Custom(t *testing.T) {
	f := newFixture(t)

	created := decodeJSON[dto.QuoteResponse](t, f.do(t, http.MethodPost, "/v1/quotes", dto.CreateQuoteRequest{
		Text: "first draft",
	}))

	w := f.do(t, http.MethodPut, "/v1/quotes/"+created.ID, dto.UpdateQuoteRequest{
		Text:   "second draft",
		Author: "Editor",
	})

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON[dto.QuoteResponse](t, w)
	assert.Equal(t, "second draft", resp.Text)
	assert.Equal(t, "Editor", resp.Author)
}

func TestQuoteHandler_DeleteQuote(t *testing.T) {
	f := newFixture(t)

	created := decodeJSON[dto.QuoteResponse](t, f.do(t, http.MethodPost, "/v1/quotes", dto.CreateQuoteRequest{
		Text: "short-lived",
	}))

	w := f.do(t, http.MethodDelete, "/v1/quotes/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodDelete, "/v1/quotes/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuoteHandler_ToggleFavorite(t *testing.T) {
	f := newFixture(t)
	f.addQuote(t, testQuote("q-1", false))

	w := f.do(t, http.MethodPost, "/v1/quotes/q-1/favorite", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeJSON[dto.QuoteResponse](t, w).IsFavorite)

	w = f.do(t, http.MethodPost, "/v1/quotes/q-1/favorite", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decodeJSON[dto.QuoteResponse](t, w).IsFavorite)
}

func TestQuoteHandler_SeedImport(t *testing.T) {
	f := newFixture(t)
	f.writeSeedFile(t, "HealthQuotes", `[
		{"text": "Health is wealth.", "author": "Proverb"},
		{"text": "Walk every day."}
	]`)

	w := f.do(t, http.MethodPost, "/v1/seed/import", dto.SeedImportRequest{
		Categories: []string{"Health"},
	})

	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeJSON[dto.SeedImportResponse](t, w)
	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, []string{"Health"}, resp.Categories)

	// The import is one-shot.
	w = f.do(t, http.MethodPost, "/v1/seed/import", dto.SeedImportRequest{
		Categories: []string{"Health"},
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestQuoteHandler_SeedImport_MissingFile(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/v1/seed/import", dto.SeedImportRequest{
		Categories: []string{"Health"},
	})

	require.Equal(t, http.StatusFailedDependency, w.Code)

	resp := decodeJSON[dto.ErrorResponse](t, w)
	assert.Equal(t, dto.ErrorCodeSeedSource, resp.Error.Code)
}

func TestQuoteHandler_SeedCategories(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/v1/seed/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON[seedCategoriesResponse](t, w)
	assert.Equal(t, []string{"Health"}, resp.Categories)
}

func TestQuoteHandler_NotificationTapHandoff(t *testing.T) {
	f := newFixture(t)
	f.addQuote(t, testQuote("q-1", false))

	w := f.do(t, http.MethodPost, "/v1/notifications/tap", dto.NotificationTapRequest{
		QuoteID: "q-1",
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodGet, "/v1/notifications/pending-quote", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON[dto.PendingQuoteResponse](t, w)
	require.NotNil(t, resp.Quote)
	assert.Equal(t, "q-1", resp.Quote.ID)

	// The marker is consumed by the read.
	w = f.do(t, http.MethodGet, "/v1/notifications/pending-quote", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeJSON[dto.PendingQuoteResponse](t, w).Quote)
}
