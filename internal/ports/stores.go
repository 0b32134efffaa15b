// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrUnavailable, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/jsamuelsen/growdaily/internal/domain"
)

// QuoteStore persists the quote library.
type QuoteStore interface {
	// Insert adds a quote. Returns domain.ErrValidation if the id is empty.
	Insert(ctx context.Context, quote *domain.Quote) error

	// InsertAll adds quotes atomically: either every quote is persisted or
	// none are. Used by the one-shot seed import.
	InsertAll(ctx context.Context, quotes []*domain.Quote) error

	// Update rewrites an existing quote.
	// Returns domain.ErrNotFound if the quote does not exist.
	Update(ctx context.Context, quote *domain.Quote) error

	// Delete removes a quote by id.
	// Returns domain.ErrNotFound if the quote does not exist.
	Delete(ctx context.Context, id string) error

	// All returns every quote in the library.
	All(ctx context.Context) ([]*domain.Quote, error)

	// FindByID retrieves a quote by its identifier.
	// Returns domain.ErrNotFound if the quote does not exist.
	FindByID(ctx context.Context, id string) (*domain.Quote, error)

	// Favorites returns all quotes with IsFavorite set.
	Favorites(ctx context.Context) ([]*domain.Quote, error)

	// Custom returns all user-authored quotes.
	Custom(ctx context.Context) ([]*domain.Quote, error)

	// Count returns the number of quotes in the library.
	Count(ctx context.Context) (int, error)
}

// OverrideStore persists pinned-schedule records. The store does not enforce
// the at-most-one-active invariant; the scheduling engine does.
type OverrideStore interface {
	// Insert adds an override record.
	Insert(ctx context.Context, override *domain.ScheduledOverride) error

	// Delete removes an override record by id.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every override record. Called before inserting a
	// new pin so stale rows cannot accumulate.
	DeleteAll(ctx context.Context) error

	// DeleteByQuoteID removes the override record(s) for a quote.
	DeleteByQuoteID(ctx context.Context, quoteID string) error

	// All returns every override record sorted by start date descending.
	All(ctx context.Context) ([]*domain.ScheduledOverride, error)

	// FindByQuoteID retrieves the override for a quote.
	// Returns domain.ErrNotFound if no override references the quote.
	FindByQuoteID(ctx context.Context, quoteID string) (*domain.ScheduledOverride, error)
}

// SettingsStore persists process-wide key-value state: the rotation cycle and
// cursor, the configured reminder slots, the seed categories the user picked,
// and the transient pending quote id set by a notification tap.
//
// Rotation state is written through eagerly after every mutation; the cycle
// and cursor are always stored together as one value.
type SettingsStore interface {
	// NotificationTimes returns the configured daily reminder slots.
	// A nil slice means slots were never configured; an empty non-nil
	// slice means the user explicitly removed them all.
	NotificationTimes(ctx context.Context) ([]domain.TimeOfDay, error)

	// SetNotificationTimes replaces the configured reminder slots.
	SetNotificationTimes(ctx context.Context, slots []domain.TimeOfDay) error

	// RotationState returns the persisted cycle and cursor.
	// A zero-value state is returned when nothing has been persisted yet.
	RotationState(ctx context.Context) (domain.RotationState, error)

	// SetRotationState persists the cycle and cursor together.
	SetRotationState(ctx context.Context, state domain.RotationState) error

	// SelectedCategories returns the seed categories chosen at first launch,
	// keyed by category name.
	SelectedCategories(ctx context.Context) (map[string]bool, error)

	// SetSelectedCategories records the chosen seed categories.
	SetSelectedCategories(ctx context.Context, categories map[string]bool) error

	// PendingQuoteID returns the quote id a tapped notification should open,
	// or "" when there is none.
	PendingQuoteID(ctx context.Context) (string, error)

	// SetPendingQuoteID stores the quote id carried by a tapped notification.
	// An empty id clears it.
	SetPendingQuoteID(ctx context.Context, id string) error
}
