package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/growdaily/internal/domain"
	"github.com/jsamuelsen/growdaily/internal/ports"
)

// Pruner trims the visible delivered-notification list down to the single
// most recent entry, so the notification shade shows only today's quote.
type Pruner struct {
	gateway ports.NotificationGateway
	logger  *slog.Logger
}

// PrunerConfig contains configuration for the pruner.
type PrunerConfig struct {
	Gateway ports.NotificationGateway
	Logger  *slog.Logger
}

// NewPruner creates a new pruner with the provided dependencies.
func NewPruner(cfg PrunerConfig) *Pruner {
	if cfg.Gateway == nil {
		panic("Pruner: Gateway is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pruner{
		gateway: cfg.Gateway,
		logger:  logger,
	}
}

// StaleDelivered selects every delivered notification except the most recent
// one. Ties on the delivery timestamp keep the entry that appears later in
// the gateway's list, matching the platform's own ordering.
func StaleDelivered(delivered []*domain.DeliveredNotification) []string {
	if len(delivered) <= 1 {
		return nil
	}

	newest := 0
	for i, n := range delivered[1:] {
		if !n.DeliveredAt.Before(delivered[newest].DeliveredAt) {
			newest = i + 1
		}
	}

	stale := make([]string, 0, len(delivered)-1)

	for i, n := range delivered {
		if i != newest {
			stale = append(stale, n.Identifier)
		}
	}

	return stale
}

// Prune removes all delivered notifications except the newest. With zero or
// one delivered notifications it is a no-op.
func (p *Pruner) Prune(ctx context.Context) error {
	delivered, err := p.gateway.ListDelivered(ctx)
	if err != nil {
		metricGatewayErrors.Inc()
		return fmt.Errorf("listing delivered notifications: %w", err)
	}

	stale := StaleDelivered(delivered)
	if len(stale) == 0 {
		return nil
	}

	if err := p.gateway.RemoveDelivered(ctx, stale); err != nil {
		metricGatewayErrors.Inc()
		return fmt.Errorf("removing delivered notifications: %w", err)
	}

	metricDeliveredPruned.Add(float64(len(stale)))
	p.logger.InfoContext(ctx, "pruned delivered notifications",
		slog.Int("removed", len(stale)),
	)

	return nil
}
