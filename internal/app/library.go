package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/growdaily/internal/domain"
	"github.com/jsamuelsen/growdaily/internal/ports"
)

// Library manages the quote collection: CRUD for custom quotes, favorites,
// and the pending-quote handoff from a tapped notification.
type Library struct {
	quotes    ports.QuoteStore
	overrides ports.OverrideStore
	settings  ports.SettingsStore
	logger    *slog.Logger
	now       func() time.Time
}

// LibraryConfig contains configuration for the library service.
type LibraryConfig struct {
	Quotes    ports.QuoteStore
	Overrides ports.OverrideStore
	Settings  ports.SettingsStore
	Logger    *slog.Logger

	// Now returns the current time. Defaults to time.Now; tests inject
	// a fixed clock.
	Now func() time.Time
}

// NewLibrary creates a new library service with the provided dependencies.
func NewLibrary(cfg LibraryConfig) *Library {
	if cfg.Quotes == nil || cfg.Overrides == nil || cfg.Settings == nil {
		panic("Library: Quotes, Overrides and Settings stores are required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Library{
		quotes:    cfg.Quotes,
		overrides: cfg.Overrides,
		settings:  cfg.Settings,
		logger:    logger,
		now:       now,
	}
}

// All returns every quote in the library.
func (l *Library) All(ctx context.Context) ([]*domain.Quote, error) {
	return l.quotes.All(ctx)
}

// Favorites returns every favorite quote.
func (l *Library) Favorites(ctx context.Context) ([]*domain.Quote, error) {
	return l.quotes.Favorites(ctx)
}

// Get returns a quote by id.
func (l *Library) Get(ctx context.Context, id string) (*domain.Quote, error) {
	return l.quotes.FindByID(ctx, id)
}

// CreateCustom adds a user-authored quote.
func (l *Library) CreateCustom(ctx context.Context, text, author string) (*domain.Quote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("text", "must not be empty")
	}

	quote := &domain.Quote{
		ID:       uuid.New().String(),
		Text:     text,
		Author:   strings.TrimSpace(author),
		IsCustom: true,
	}

	if err := l.quotes.Insert(ctx, quote); err != nil {
		return nil, fmt.Errorf("persisting quote: %w", err)
	}

	l.logger.InfoContext(ctx, "created custom quote",
		slog.String("quote_id", quote.ID),
	)

	return quote, nil
}

// UpdateCustom rewrites the text and author of a custom quote. Seeded quotes
// are read-only.
func (l *Library) UpdateCustom(ctx context.Context, id, text, author string) (*domain.Quote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("text", "must not be empty")
	}

	quote, err := l.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !quote.IsCustom {
		return nil, domain.NewForbiddenError("update quote", "seeded quotes are read-only")
	}

	quote.Text = text
	quote.Author = strings.TrimSpace(author)

	if err := l.quotes.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("persisting quote: %w", err)
	}

	return quote, nil
}

// DeleteCustom removes a custom quote. Seeded quotes cannot be deleted, and
// neither can a quote referenced by a currently active override.
func (l *Library) DeleteCustom(ctx context.Context, id string) error {
	quote, err := l.quotes.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !quote.IsCustom {
		return domain.NewForbiddenError("delete quote", "seeded quotes cannot be deleted")
	}

	if err := l.requireUnpinned(ctx, id, "delete quote"); err != nil {
		return err
	}

	if err := l.quotes.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}

	l.logger.InfoContext(ctx, "deleted custom quote",
		slog.String("quote_id", id),
	)

	return nil
}

// ToggleFavorite flips a quote's favorite flag. Unfavoriting is refused while
// the quote holds an active pin, because only favorites may be pinned.
func (l *Library) ToggleFavorite(ctx context.Context, id string) (*domain.Quote, error) {
	quote, err := l.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if quote.IsFavorite {
		if err := l.requireUnpinned(ctx, id, "unfavorite quote"); err != nil {
			return nil, err
		}
	}

	quote.IsFavorite = !quote.IsFavorite

	if err := l.quotes.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("persisting quote: %w", err)
	}

	return quote, nil
}

// RecordNotificationTap stores the quote id carried by a tapped notification
// so the next foreground resolution can surface it.
func (l *Library) RecordNotificationTap(ctx context.Context, quoteID string) error {
	if quoteID == "" {
		return domain.NewValidationError("quoteId", "must not be empty")
	}

	return l.settings.SetPendingQuoteID(ctx, quoteID)
}

// ResolvePendingQuote returns the quote a tapped notification pointed at, or
// nil when there is none, and clears the marker either way. A marker pointing
// at a since-deleted quote is swallowed.
func (l *Library) ResolvePendingQuote(ctx context.Context) (*domain.Quote, error) {
	id, err := l.settings.PendingQuoteID(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading pending quote id: %w", err)
	}

	if id == "" {
		return nil, nil
	}

	if err := l.settings.SetPendingQuoteID(ctx, ""); err != nil {
		l.logger.WarnContext(ctx, "failed to clear pending quote id",
			slog.Any("error", err),
		)
	}

	quote, err := l.quotes.FindByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return quote, nil
}

func (l *Library) requireUnpinned(ctx context.Context, quoteID, operation string) error {
	override, err := l.overrides.FindByQuoteID(ctx, quoteID)
	if err == nil {
		// Stale rows outlive their end date until the next pin action;
		// only an active pin blocks the operation.
		if override.IsActiveAt(l.now()) {
			return domain.NewForbiddenError(operation, "quote is pinned to a schedule")
		}

		return nil
	}

	if domain.IsNotFound(err) {
		return nil
	}

	return fmt.Errorf("checking override records: %w", err)
}
