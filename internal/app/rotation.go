// Package app contains application services that orchestrate use cases.
// This is the application layer - it coordinates domain logic and
// infrastructure through ports.
package app

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/jsamuelsen/growdaily/internal/domain"
	"github.com/jsamuelsen/growdaily/internal/ports"
)

// Rotation hands out quotes fairly: every quote in the library appears
// exactly once before any repeats, following a persisted shuffled cycle.
//
// The staleness check is deliberately coarse - any change in library size
// regenerates the whole cycle and resets the cursor. That sacrifices
// fairness-over-time for simplicity and crash-safety: there is never a need
// to diff quote sets, and a half-applied mutation can at worst repeat or
// skip a single quote.
type Rotation struct {
	settings ports.SettingsStore
	logger   *slog.Logger
	shuffle  func([]string)
}

// RotationConfig contains configuration for the rotation service.
type RotationConfig struct {
	Settings ports.SettingsStore
	Logger   *slog.Logger

	// Shuffle permutes a cycle in place. Defaults to rand.Shuffle;
	// tests may inject a deterministic one.
	Shuffle func([]string)
}

// NewRotation creates a new rotation service with the provided dependencies.
func NewRotation(cfg RotationConfig) *Rotation {
	if cfg.Settings == nil {
		panic("Rotation: Settings is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	shuffle := cfg.Shuffle
	if shuffle == nil {
		shuffle = func(ids []string) {
			rand.Shuffle(len(ids), func(i, j int) {
				ids[i], ids[j] = ids[j], ids[i]
			})
		}
	}

	return &Rotation{
		settings: cfg.Settings,
		logger:   logger,
		shuffle:  shuffle,
	}
}

// NextQuote returns the next quote in the rotation and advances the cursor.
//
// Returns (nil, nil) when the library is empty or the cycle cannot be
// resolved even after one regeneration. The cycle is regenerated whenever
// its length disagrees with the live quote count. Cycle and cursor are
// persisted together after every advance.
func (r *Rotation) NextQuote(ctx context.Context, quotes []*domain.Quote) (*domain.Quote, error) {
	if len(quotes) == 0 {
		return nil, nil
	}

	byID := make(map[string]*domain.Quote, len(quotes))
	for _, q := range quotes {
		byID[q.ID] = q
	}

	state, err := r.settings.RotationState(ctx)
	if err != nil {
		// Degrade to a fresh cycle rather than failing the caller.
		r.logger.WarnContext(ctx, "failed to load rotation state, regenerating",
			slog.Any("error", err),
		)

		state = domain.RotationState{}
	}

	if state.Stale(len(quotes)) {
		state = r.regenerate(ctx, quotes)
	}

	quote, ok := byID[state.Current()]
	if !ok {
		// The length check should prevent this, but the store may have
		// been queried before a reshuffle landed. Regenerate once and
		// retry.
		r.logger.WarnContext(ctx, "cycle entry does not resolve to a live quote, regenerating",
			slog.String("quote_id", state.Current()),
		)

		state = r.regenerate(ctx, quotes)

		quote, ok = byID[state.Current()]
		if !ok {
			return nil, nil
		}
	}

	state = state.Advance()
	if err := r.settings.SetRotationState(ctx, state); err != nil {
		// The advance regresses on next load; acceptable, a quote may
		// repeat once. Never corrupts the cycle because cycle and
		// cursor are written as one value.
		r.logger.ErrorContext(ctx, "failed to persist rotation state",
			slog.Any("error", err),
		)
	}

	return quote, nil
}

// regenerate builds a fresh shuffled cycle over the given quotes with the
// cursor at 0, and persists it.
func (r *Rotation) regenerate(ctx context.Context, quotes []*domain.Quote) domain.RotationState {
	ids := make([]string, len(quotes))
	for i, q := range quotes {
		ids[i] = q.ID
	}

	r.shuffle(ids)

	state := domain.RotationState{Cycle: ids, Cursor: 0}

	if err := r.settings.SetRotationState(ctx, state); err != nil {
		r.logger.ErrorContext(ctx, "failed to persist regenerated cycle",
			slog.Any("error", err),
		)
	}

	r.logger.InfoContext(ctx, "regenerated quote cycle",
		slog.Int("quote_count", len(ids)),
	)

	return state
}
