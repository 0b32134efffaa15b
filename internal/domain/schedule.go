package domain

import "fmt"

// MaxTimeSlots caps how many daily reminder slots a user may configure.
const MaxTimeSlots = 2

// TimeOfDay is a wall-clock time with no date component.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// DefaultTimeSlot is the single reminder slot used before the user
// configures any.
var DefaultTimeSlot = TimeOfDay{Hour: 8, Minute: 0}

// Validate checks the time is a real wall-clock time.
func (t TimeOfDay) Validate() error {
	if t.Hour < 0 || t.Hour > 23 {
		return NewValidationErrorWithValue("hour", "must be between 0 and 23", t.Hour)
	}

	if t.Minute < 0 || t.Minute > 59 {
		return NewValidationErrorWithValue("minute", "must be between 0 and 59", t.Minute)
	}

	return nil
}

// String renders the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// RotationState is the persisted fair-rotation cursor: a shuffled permutation
// of every quote id plus the index of the next quote to hand out.
//
// The cycle and cursor are always persisted together as one value, so a crash
// mid-write can never leave a cursor pointing into a cycle of the wrong
// length.
type RotationState struct {
	// Cycle is a permutation of all current quote ids.
	Cycle []string

	// Cursor indexes the next quote in Cycle. Always 0 <= Cursor < len(Cycle),
	// or 0 when Cycle is empty.
	Cursor int
}

// Stale reports whether the state no longer matches the live quote count and
// must be regenerated. Any addition or removal of a single quote triggers a
// full reshuffle: coarse, but crash-safe and needs no set diffing.
func (s RotationState) Stale(quoteCount int) bool {
	return len(s.Cycle) == 0 || len(s.Cycle) != quoteCount
}

// Current returns the quote id under the cursor, or "" when the cycle
// is empty or the cursor is out of range.
func (s RotationState) Current() string {
	if s.Cursor < 0 || s.Cursor >= len(s.Cycle) {
		return ""
	}

	return s.Cycle[s.Cursor]
}

// Advance returns the state with the cursor moved one step, wrapping
// modulo the cycle length.
func (s RotationState) Advance() RotationState {
	if len(s.Cycle) == 0 {
		return s
	}

	s.Cursor = (s.Cursor + 1) % len(s.Cycle)

	return s
}
