package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/growdaily/internal/adapters/http/dto"
)

func TestScheduleHandler_GetSlots_Default(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/v1/schedule/slots", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON[dto.SlotsResponse](t, w)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, dto.TimeSlot{Hour: 8, Minute: 0}, resp.Slots[0])
}

func TestScheduleHandler_UpdateSlots_SchedulesReminders(t *testing.T) {
	f := newFixture(t)
	f.addQuote(t, testQuote("q-1", false))
	f.addQuote(t, testQuote("q-2", false))

	w := f.do(t, http.MethodPut, "/v1/schedule/slots", dto.UpdateSlotsRequest{
		Slots: []dto.TimeSlot{
			{Hour: 7, Minute: 30},
			{Hour: 20, Minute: 0},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeJSON[dto.SlotsResponse](t, w).Slots, 2)

	pending, err := f.gateway.ListPending(context.Background())
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestScheduleHandler_UpdateSlots_EmptyDisablesReminders(t *testing.T) {
	f := newFixture(t)
	f.addQuote(t, testQuote("q-1", false))

	w := f.do(t, http.MethodPut, "/v1/schedule/slots", dto.UpdateSlotsRequest{
		Slots: []dto.TimeSlot{{Hour: 9, Minute: 0}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPut, "/v1/schedule/slots", dto.UpdateSlotsRequest{
		Slots: []dto.TimeSlot{},
	})
	require.Equal(t, http.StatusOK, w.Code)

	pending, err := f.gateway.ListPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestScheduleHandler_UpdateSlots_MissingField(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPut, "/v1/schedule/slots", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeJSON[dto.ErrorResponse](t, w)
	assert.Equal(t, dto.ErrorCodeValidation, resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "slots")
}

func TestScheduleHandler_UpdateSlots_OverCap(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPut, "/v1/schedule/slots", dto.UpdateSlotsRequest{
		Slots: []dto.TimeSlot{
			{Hour: 7}, {Hour: 12}, {Hour: 20},
		},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeJSON[dto.ErrorResponse](t, w)
	assert.Contains(t, resp.Error.Details["slots"], "at most 2")
}

func TestScheduleHandler_UpdateSlots_InvalidHour(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPut, "/v1/schedule/slots", dto.UpdateSlotsRequest{
		Slots: []dto.TimeSlot{{Hour: 24, Minute: 0}},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandler_PinQuote(t *testing.T) {
	f := newFixture(t)
	f.addQuote(t, testQuote("q-1", true))

	w := f.do(t, http.MethodPost, "/v1/schedule/override", dto.PinQuoteRequest{
		QuoteID:          "q-1",
		DurationDays:     7,
		NotificationTime: dto.TimeSlot{Hour: 9, Minute: 15},
	})

	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeJSON[dto.OverrideResponse](t, w)
	assert.Equal(t, "q-1", resp.QuoteID)
	assert.Equal(t, 7, resp.DurationDays)
	assert.NotEmpty(t, resp.ID)

	// The pinned notification is keyed by the quote id.
	pending, err := f.gateway.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "q-1", pending[0].Identifier)
}

func TestScheduleHandler_PinQuote_RequiresFavorite(t *testing.T) {
	f := newFixture(t)
	f.addQuote(t, testQuote("q-1", false))

	w := f.do(t, http.MethodPost, "/v1/schedule/override", dto.PinQuoteRequest{
		QuoteID:          "q-1",
		DurationDays:     7,
		NotificationTime: dto.TimeSlot{Hour: 9, Minute: 0},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeJSON[dto.ErrorResponse](t, w)
	assert.Equal(t, dto.ErrorCodeValidation, resp.Error.Code)
}

func TestScheduleHandler_PinQuote_UnknownQuote(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/v1/schedule/override", dto.PinQuoteRequest{
		QuoteID:          "missing",
		DurationDays:     7,
		NotificationTime: dto.TimeSlot{Hour: 9, Minute: 0},
	})

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleHandler_GetOverride(t *testing.T) {
	f := newFixture(t)
	f.addQuote(t, testQuote("q-1", true))

	w := f.do(t, http.MethodGet, "/v1/schedule/override", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeJSON[activeOverrideResponse](t, w).Override)

	f.do(t, http.MethodPost, "/v1/schedule/override", dto.PinQuoteRequest{
		QuoteID:          "q-1",
		DurationDays:     7,
		NotificationTime: dto.TimeSlot{Hour: 9, Minute: 0},
	})

	w = f.do(t, http.MethodGet, "/v1/schedule/override", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON[activeOverrideResponse](t, w)
	require.NotNil(t, resp.Override)
	assert.Equal(t, "q-1", resp.Override.QuoteID)
}

func TestScheduleHandler_UnpinQuote(t *testing.T) {
	f := newFixture(t)
	f.addQuote(t, testQuote("q-1", true))

	f.do(t, http.MethodPost, "/v1/schedule/override", dto.PinQuoteRequest{
		QuoteID:          "q-1",
		DurationDays:     7,
		NotificationTime: dto.TimeSlot{Hour: 9, Minute: 0},
	})

	w := f.do(t, http.MethodDelete, "/v1/schedule/override/q-1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	pending, err := f.gateway.ListPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)

	// Unpinning a quote that was never pinned is fine.
	w = f.do(t, http.MethodDelete, "/v1/schedule/override/q-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestScheduleHandler_Foreground(t *testing.T) {
	f := newFixture(t)
	f.addQuote(t, testQuote("q-1", false))

	w := f.do(t, http.MethodPost, "/v1/app/foreground", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// Slots were never configured, so the default slot got scheduled.
	pending, err := f.gateway.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 8, pending[0].FireAt.Hour)
}
