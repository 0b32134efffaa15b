// Package notify contains notification gateway implementations.
//
// MemoryGateway models the platform notification center in process: it backs
// the local profile, where no real delivery service exists, and the tests,
// which assert on the pending and delivered sets it exposes. The REST-backed
// gateway lives in the acl package.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/jsamuelsen/growdaily/internal/domain"
)

// MemoryGateway is an in-process NotificationGateway safe for concurrent use.
type MemoryGateway struct {
	mu        sync.RWMutex
	pending   map[string]*domain.NotificationRequest
	delivered map[string]*domain.DeliveredNotification
	order     []string

	authorized bool
}

// NewMemoryGateway creates an empty in-process gateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		pending:   make(map[string]*domain.NotificationRequest),
		delivered: make(map[string]*domain.DeliveredNotification),
	}
}

// Add schedules a notification request. Re-adding an identifier replaces the
// previous request, matching platform semantics.
func (g *MemoryGateway) Add(_ context.Context, req *domain.NotificationRequest) error {
	if req.Identifier == "" {
		return domain.NewValidationError("identifier", "must not be empty")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.pending[req.Identifier]; !exists {
		g.order = append(g.order, req.Identifier)
	}

	clone := *req
	g.pending[req.Identifier] = &clone

	return nil
}

// ListPending returns every request that has not fired yet.
func (g *MemoryGateway) ListPending(_ context.Context) ([]*domain.NotificationRequest, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	result := make([]*domain.NotificationRequest, 0, len(g.pending))

	for _, id := range g.order {
		if req, exists := g.pending[id]; exists {
			clone := *req
			result = append(result, &clone)
		}
	}

	return result, nil
}

// RemovePending cancels the requests with the given identifiers. Unknown
// identifiers are ignored.
func (g *MemoryGateway) RemovePending(_ context.Context, identifiers []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range identifiers {
		delete(g.pending, id)
	}

	return nil
}

// RemoveAllPending cancels every pending request.
func (g *MemoryGateway) RemoveAllPending(_ context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.pending = make(map[string]*domain.NotificationRequest)
	g.order = nil

	return nil
}

// ListDelivered returns notifications that already fired.
func (g *MemoryGateway) ListDelivered(_ context.Context) ([]*domain.DeliveredNotification, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	result := make([]*domain.DeliveredNotification, 0, len(g.delivered))

	for _, n := range g.delivered {
		clone := *n
		result = append(result, &clone)
	}

	return result, nil
}

// RemoveDelivered clears delivered notifications from the visible list.
func (g *MemoryGateway) RemoveDelivered(_ context.Context, identifiers []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range identifiers {
		delete(g.delivered, id)
	}

	return nil
}

// RequestAuthorization grants authorization unconditionally.
func (g *MemoryGateway) RequestAuthorization(_ context.Context, _ domain.AuthorizationOptions) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.authorized = true

	return true, nil
}

// MarkDelivered simulates a pending request firing at the given time. The
// request stays pending when it repeats, as a repeating platform trigger
// would.
func (g *MemoryGateway) MarkDelivered(identifier string, at time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	req, exists := g.pending[identifier]
	if !exists {
		return
	}

	g.delivered[identifier] = &domain.DeliveredNotification{
		Identifier:  identifier,
		QuoteID:     req.QuoteID,
		DeliveredAt: at,
	}

	if !req.Repeats {
		delete(g.pending, identifier)
	}
}
