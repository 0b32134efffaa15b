package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jsamuelsen/growdaily/internal/domain"
)

// OverrideStore is an in-memory override store safe for concurrent use.
type OverrideStore struct {
	mu        sync.RWMutex
	overrides map[string]*domain.ScheduledOverride
}

// NewOverrideStore creates an empty in-memory override store.
func NewOverrideStore() *OverrideStore {
	return &OverrideStore{
		overrides: make(map[string]*domain.ScheduledOverride),
	}
}

// Insert adds an override record.
func (s *OverrideStore) Insert(_ context.Context, override *domain.ScheduledOverride) error {
	if override.ID == "" {
		return domain.NewValidationError("id", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *override
	s.overrides[override.ID] = &clone

	return nil
}

// Delete removes an override record by id.
func (s *OverrideStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.overrides[id]; !exists {
		return domain.NewNotFoundError("override", id)
	}

	delete(s.overrides, id)

	return nil
}

// DeleteAll removes every override record.
func (s *OverrideStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.overrides = make(map[string]*domain.ScheduledOverride)

	return nil
}

// DeleteByQuoteID removes the override record(s) for a quote.
func (s *OverrideStore) DeleteByQuoteID(_ context.Context, quoteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, ov := range s.overrides {
		if ov.QuoteID == quoteID {
			delete(s.overrides, id)
		}
	}

	return nil
}

// All returns every override record sorted by start date descending.
func (s *OverrideStore) All(_ context.Context) ([]*domain.ScheduledOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.ScheduledOverride, 0, len(s.overrides))

	for _, ov := range s.overrides {
		clone := *ov
		result = append(result, &clone)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartDate.After(result[j].StartDate)
	})

	return result, nil
}

// FindByQuoteID retrieves the override for a quote.
func (s *OverrideStore) FindByQuoteID(_ context.Context, quoteID string) (*domain.ScheduledOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ov := range s.overrides {
		if ov.QuoteID == quoteID {
			clone := *ov
			return &clone, nil
		}
	}

	return nil, domain.NewNotFoundError("override", quoteID)
}
