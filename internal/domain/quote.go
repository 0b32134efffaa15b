// Package domain contains core business entities and rules.
package domain

// Quote is one entry in the user's quote library.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// ID is the unique identifier for this quote, assigned at creation.
	ID string

	// Text is the quote itself. Never empty for quotes created through
	// the application layer; the store does not enforce this.
	Text string

	// Author is who said or wrote the quote. May be empty.
	Author string

	// Category is the seed category this quote was imported under.
	// Empty for custom quotes.
	Category string

	// IsCustom is true for user-authored quotes. Only custom quotes
	// may be deleted.
	IsCustom bool

	// IsFavorite marks the quote as a favorite. Only favorites can be
	// pinned to a daily schedule.
	IsFavorite bool
}

// NotificationBody renders the quote as notification text,
// appending the author when one is known.
func (q *Quote) NotificationBody() string {
	if q.Author != "" {
		return q.Text + " — " + q.Author
	}

	return q.Text
}
