package dto

import (
	"time"

	"github.com/jsamuelsen/growdaily/internal/domain"
)

// TimeSlot is the API shape of a daily reminder time.
type TimeSlot struct {
	Hour   int `json:"hour"   validate:"min=0,max=23"`
	Minute int `json:"minute" validate:"min=0,max=59"`
}

// UpdateSlotsRequest replaces the configured reminder slots. An empty list is
// valid and disables rotation reminders, so the handler checks for a missing
// field itself instead of using the required tag, which rejects empty slices.
type UpdateSlotsRequest struct {
	Slots []TimeSlot `json:"slots" validate:"omitempty,dive"`
}

// SlotsResponse reports the configured reminder slots.
type SlotsResponse struct {
	Slots []TimeSlot `json:"slots"`
}

// PinQuoteRequest pins a quote to a daily schedule. StartDate defaults to now
// when omitted.
type PinQuoteRequest struct {
	QuoteID          string    `json:"quoteId"          validate:"required,notempty"`
	DurationDays     int       `json:"durationDays"     validate:"required,min=1,max=365"`
	NotificationTime TimeSlot  `json:"notificationTime"`
	StartDate        time.Time `json:"startDate,omitempty"`
}

// OverrideResponse is the API shape of a pinned schedule.
type OverrideResponse struct {
	ID               string    `json:"id"`
	QuoteID          string    `json:"quoteId"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	DurationDays     int       `json:"durationDays"`
	NotificationTime TimeSlot  `json:"notificationTime"`
}

// PendingQuoteResponse carries the quote a tapped notification pointed at.
// Quote is null when no tap is pending.
type PendingQuoteResponse struct {
	Quote *QuoteResponse `json:"quote"`
}

// NotificationTapRequest records a notification tap-through.
type NotificationTapRequest struct {
	QuoteID string `json:"quoteId" validate:"required,notempty"`
}

// SlotToDomain converts an API time slot to its domain shape.
func (t TimeSlot) SlotToDomain() domain.TimeOfDay {
	return domain.TimeOfDay{Hour: t.Hour, Minute: t.Minute}
}

// SlotFromDomain converts a domain time-of-day to its API shape.
func SlotFromDomain(t domain.TimeOfDay) TimeSlot {
	return TimeSlot{Hour: t.Hour, Minute: t.Minute}
}

// SlotsFromDomain converts a slice of domain time slots.
func SlotsFromDomain(slots []domain.TimeOfDay) SlotsResponse {
	out := make([]TimeSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotFromDomain(s))
	}

	return SlotsResponse{Slots: out}
}

// OverrideFromDomain converts a domain override to its API shape.
func OverrideFromDomain(ov *domain.ScheduledOverride) OverrideResponse {
	return OverrideResponse{
		ID:               ov.ID,
		QuoteID:          ov.QuoteID,
		StartDate:        ov.StartDate,
		EndDate:          ov.EndDate(),
		DurationDays:     ov.DurationDays,
		NotificationTime: SlotFromDomain(ov.NotificationTime),
	}
}
