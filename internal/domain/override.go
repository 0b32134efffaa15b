package domain

import "time"

// ScheduledOverride pins a single quote to fire daily for a bounded date
// range, independently of the regular rotation. At most one override is
// semantically active at any wall-clock time; the store may hold stale rows,
// so the scheduling engine removes prior rows before inserting a new one.
type ScheduledOverride struct {
	// ID is the unique identifier for this override record.
	ID string

	// QuoteID references the pinned quote. This is a weak reference -
	// deleting the quote does not cascade.
	QuoteID string

	// StartDate is when the override becomes active. Defaults to the
	// creation time.
	StartDate time.Time

	// DurationDays is how many days the override stays active. Always >= 1.
	DurationDays int

	// NotificationTime is the daily time-of-day the pinned quote fires.
	NotificationTime TimeOfDay
}

// EndDate returns the exclusive end of the override's active range.
func (o *ScheduledOverride) EndDate() time.Time {
	return o.StartDate.AddDate(0, 0, o.DurationDays)
}

// IsActiveAt reports whether the override is active at the given instant,
// i.e. now is within [StartDate, EndDate).
func (o *ScheduledOverride) IsActiveAt(now time.Time) bool {
	return !now.Before(o.StartDate) && now.Before(o.EndDate())
}

// Validate checks the override's business rules.
func (o *ScheduledOverride) Validate() error {
	if o.QuoteID == "" {
		return NewValidationError("quoteId", "a pinned schedule must reference a quote")
	}

	if o.DurationDays < 1 {
		return NewValidationErrorWithValue("durationDays", "must be at least 1 day", o.DurationDays)
	}

	return o.NotificationTime.Validate()
}
