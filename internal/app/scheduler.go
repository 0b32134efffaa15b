package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/growdaily/internal/domain"
	"github.com/jsamuelsen/growdaily/internal/ports"
)

// Scheduler reconciles the desired set of reminder notifications against the
// gateway's pending queue.
//
// Pending requests fall into two disjoint families, distinguished by
// identifier scheme: override-family requests are keyed by the pinned
// quote's id, rotation-family requests by a random UUID. The rotation family
// is regenerated from scratch on every reconcile because edited slots cannot
// be matched to existing requests without a stable per-slot identifier;
// override scheduling has its own entry points and is never touched by
// reconcile.
//
// Every operation is idempotent. That, not locking, is what makes re-entrant
// calls safe: the host process is the sole writer, and a reconcile triggered
// mid-reconcile converges on the same gateway state.
type Scheduler struct {
	gateway     ports.NotificationGateway
	quotes      ports.QuoteStore
	overrides   ports.OverrideStore
	settings    ports.SettingsStore
	rotation    *Rotation
	logger      *slog.Logger
	now         func() time.Time
	defaultSlot domain.TimeOfDay
}

// SchedulerConfig contains configuration for the scheduler.
type SchedulerConfig struct {
	Gateway   ports.NotificationGateway
	Quotes    ports.QuoteStore
	Overrides ports.OverrideStore
	Settings  ports.SettingsStore
	Rotation  *Rotation
	Logger    *slog.Logger

	// Now returns the current time. Defaults to time.Now; tests inject
	// a fixed clock.
	Now func() time.Time

	// DefaultSlot is used when the user has never configured any slots.
	// Defaults to domain.DefaultTimeSlot.
	DefaultSlot domain.TimeOfDay
}

// NewScheduler creates a new scheduler with the provided dependencies.
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	if cfg.Gateway == nil {
		panic("Scheduler: Gateway is required")
	}

	if cfg.Quotes == nil || cfg.Overrides == nil || cfg.Settings == nil {
		panic("Scheduler: Quotes, Overrides and Settings stores are required")
	}

	if cfg.Rotation == nil {
		panic("Scheduler: Rotation is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	defaultSlot := cfg.DefaultSlot
	if defaultSlot == (domain.TimeOfDay{}) {
		defaultSlot = domain.DefaultTimeSlot
	}

	return &Scheduler{
		gateway:     cfg.Gateway,
		quotes:      cfg.Quotes,
		overrides:   cfg.Overrides,
		settings:    cfg.Settings,
		rotation:    cfg.Rotation,
		logger:      logger,
		now:         now,
		defaultSlot: defaultSlot,
	}
}

// Reconcile rebuilds the rotation-family pending set from current settings.
//
// All rotation-family requests are cancelled unconditionally, then one
// repeating request is created per configured slot, consuming one rotation
// advance each. Override-family requests are never touched here.
//
// Store and gateway failures degrade to "fewer or no notifications
// scheduled": a failed pending or override read skips cancellation for the
// whole pass, per-request gateway errors are logged and dropped, and the
// next reconcile retries naturally. Skipping cancellation can leave stale
// rotation requests behind temporarily, but never touches the pinned
// request.
func (s *Scheduler) Reconcile(ctx context.Context) error {
	slots := s.desiredSlots(ctx)

	// Pending requests and override records are independent reads.
	pending, overrides, err := Parallel2(ctx,
		func(ctx context.Context) ([]*domain.NotificationRequest, error) {
			return s.gateway.ListPending(ctx)
		},
		func(ctx context.Context) ([]*domain.ScheduledOverride, error) {
			return s.overrides.All(ctx)
		},
	)
	if err != nil {
		// Degraded: cancel nothing this pass. With an incomplete
		// override list the active pin would be misclassified as
		// rotation-family and cancelled, and only an explicit re-pin
		// would ever bring it back.
		s.logger.WarnContext(ctx, "reconcile reads degraded, skipping cancellation",
			slog.Any("error", err),
		)
	} else {
		s.cancelRotationFamily(ctx, pending, overrides)
	}

	if len(slots) == 0 {
		s.logger.InfoContext(ctx, "no reminder slots configured, nothing to schedule")
		return nil
	}

	quotes, err := s.quotes.All(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load quote library",
			slog.Any("error", err),
		)

		return fmt.Errorf("loading quotes: %w", err)
	}

	scheduled := 0

	for _, slot := range slots {
		quote, err := s.rotation.NextQuote(ctx, quotes)
		if err != nil || quote == nil {
			continue
		}

		req := &domain.NotificationRequest{
			Identifier: uuid.New().String(),
			FireAt:     slot,
			Repeats:    true,
			QuoteID:    quote.ID,
			Title:      domain.NotificationTitle,
			Body:       quote.Text,
		}

		if err := s.gateway.Add(ctx, req); err != nil {
			// Per-request failure never aborts the batch.
			metricGatewayErrors.Inc()
			s.logger.ErrorContext(ctx, "failed to schedule rotation notification",
				slog.String("quote_id", quote.ID),
				slog.String("fire_at", slot.String()),
				slog.Any("error", err),
			)

			continue
		}

		metricRotationScheduled.Inc()
		scheduled++
	}

	s.logger.InfoContext(ctx, "reconciled notification schedule",
		slog.Int("slots", len(slots)),
		slog.Int("scheduled", scheduled),
	)

	return nil
}

// ScheduleOverride pins a quote: it cancels every override-family request,
// replaces all stored override rows with the new one, and, if the override
// is active right now, emits a single repeating request keyed by the quote
// id. Cancellation strictly precedes insertion so two override notifications
// can never coexist, even transiently.
func (s *Scheduler) ScheduleOverride(ctx context.Context, override *domain.ScheduledOverride) error {
	if override.ID == "" {
		override.ID = uuid.New().String()
	}

	if override.StartDate.IsZero() {
		override.StartDate = s.now()
	}

	if err := override.Validate(); err != nil {
		return err
	}

	quote, err := s.quotes.FindByID(ctx, override.QuoteID)
	if err != nil {
		return fmt.Errorf("resolving pinned quote: %w", err)
	}

	if !quote.IsFavorite {
		return domain.NewValidationError("quoteId", "only favorite quotes can be pinned")
	}

	if err := s.cancelOverrideFamily(ctx, override.QuoteID); err != nil {
		return err
	}

	// The store does not enforce uniqueness; clearing prior rows here is
	// what keeps "at most one active pin" true.
	if err := s.overrides.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clearing prior overrides: %w", err)
	}

	if err := s.overrides.Insert(ctx, override); err != nil {
		return fmt.Errorf("persisting override: %w", err)
	}

	if !override.IsActiveAt(s.now()) {
		s.logger.InfoContext(ctx, "override stored but not yet active",
			slog.String("quote_id", override.QuoteID),
			slog.Time("start_date", override.StartDate),
		)

		return nil
	}

	req := &domain.NotificationRequest{
		Identifier: override.QuoteID,
		FireAt:     override.NotificationTime,
		Repeats:    true,
		QuoteID:    override.QuoteID,
		Title:      domain.NotificationTitle,
		Body:       quote.NotificationBody(),
	}

	if err := s.gateway.Add(ctx, req); err != nil {
		metricGatewayErrors.Inc()
		s.logger.ErrorContext(ctx, "failed to schedule override notification",
			slog.String("quote_id", override.QuoteID),
			slog.Any("error", err),
		)

		// The record is persisted; the notification will be retried by
		// the next pin action. Degrade, don't fail the user action.
		return nil
	}

	metricOverrideScheduled.Inc()
	s.logger.InfoContext(ctx, "scheduled override notification",
		slog.String("quote_id", override.QuoteID),
		slog.String("fire_at", override.NotificationTime.String()),
		slog.Int("duration_days", override.DurationDays),
	)

	return nil
}

// UnscheduleOverride removes the pin for a quote: the stored rows and the
// matching gateway request, which is keyed by the quote id. Safe to call for
// quotes that were never pinned.
func (s *Scheduler) UnscheduleOverride(ctx context.Context, quoteID string) error {
	if quoteID == "" {
		return domain.NewValidationError("quoteId", "must not be empty")
	}

	if err := s.overrides.DeleteByQuoteID(ctx, quoteID); err != nil {
		return fmt.Errorf("removing override records: %w", err)
	}

	if err := s.gateway.RemovePending(ctx, []string{quoteID}); err != nil {
		metricGatewayErrors.Inc()
		s.logger.ErrorContext(ctx, "failed to cancel override notification",
			slog.String("quote_id", quoteID),
			slog.Any("error", err),
		)
	}

	return nil
}

// ActiveOverride returns the override active at the current time, or nil.
func (s *Scheduler) ActiveOverride(ctx context.Context) (*domain.ScheduledOverride, error) {
	overrides, err := s.overrides.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading overrides: %w", err)
	}

	now := s.now()
	for _, ov := range overrides {
		if ov.IsActiveAt(now) {
			return ov, nil
		}
	}

	return nil, nil
}

// desiredSlots resolves the slots a reconcile should schedule. Unset
// settings fall back to the single default slot; an explicitly empty list
// stays empty and schedules nothing.
func (s *Scheduler) desiredSlots(ctx context.Context) []domain.TimeOfDay {
	slots, err := s.settings.NotificationTimes(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load reminder slots",
			slog.Any("error", err),
		)

		return nil
	}

	if slots == nil {
		return []domain.TimeOfDay{s.defaultSlot}
	}

	return slots
}

// cancelRotationFamily cancels every pending request whose identifier is not
// claimed by an override record, active or stale.
func (s *Scheduler) cancelRotationFamily(
	ctx context.Context,
	pending []*domain.NotificationRequest,
	overrides []*domain.ScheduledOverride,
) {
	if len(pending) == 0 {
		return
	}

	overrideIDs := make(map[string]struct{}, len(overrides))
	for _, ov := range overrides {
		overrideIDs[ov.QuoteID] = struct{}{}
	}

	var stale []string

	for _, req := range pending {
		if _, isOverride := overrideIDs[req.Identifier]; !isOverride {
			stale = append(stale, req.Identifier)
		}
	}

	if len(stale) == 0 {
		return
	}

	if err := s.gateway.RemovePending(ctx, stale); err != nil {
		metricGatewayErrors.Inc()
		s.logger.ErrorContext(ctx, "failed to cancel rotation notifications",
			slog.Int("count", len(stale)),
			slog.Any("error", err),
		)

		return
	}

	metricRotationCancelled.Add(float64(len(stale)))
}

// cancelOverrideFamily cancels every pending request keyed by any override's
// quote id, including the quote about to be pinned.
func (s *Scheduler) cancelOverrideFamily(ctx context.Context, newQuoteID string) error {
	overrides, err := s.overrides.All(ctx)
	if err != nil {
		return fmt.Errorf("loading overrides: %w", err)
	}

	ids := make([]string, 0, len(overrides)+1)
	for _, ov := range overrides {
		ids = append(ids, ov.QuoteID)
	}

	ids = append(ids, newQuoteID)

	if err := s.gateway.RemovePending(ctx, ids); err != nil {
		return fmt.Errorf("cancelling override notifications: %w", err)
	}

	return nil
}
