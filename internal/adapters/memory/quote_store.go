// Package memory provides in-memory store implementations. They back the
// local development profile and the application-layer tests; production runs
// on the sqlite adapters.
package memory

import (
	"context"
	"sync"

	"github.com/jsamuelsen/growdaily/internal/domain"
)

// QuoteStore is an in-memory quote store safe for concurrent use.
type QuoteStore struct {
	mu     sync.RWMutex
	quotes map[string]*domain.Quote
	order  []string
}

// NewQuoteStore creates an empty in-memory quote store.
func NewQuoteStore() *QuoteStore {
	return &QuoteStore{
		quotes: make(map[string]*domain.Quote),
	}
}

// Insert adds a quote.
func (s *QuoteStore) Insert(_ context.Context, quote *domain.Quote) error {
	if quote.ID == "" {
		return domain.NewValidationError("id", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.quotes[quote.ID]; exists {
		return domain.NewValidationErrorWithValue("id", "already exists", quote.ID)
	}

	s.insertLocked(quote)

	return nil
}

// InsertAll adds quotes atomically.
func (s *QuoteStore) InsertAll(_ context.Context, quotes []*domain.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, q := range quotes {
		if q.ID == "" {
			return domain.NewValidationError("id", "must not be empty")
		}

		if _, exists := s.quotes[q.ID]; exists {
			return domain.NewValidationErrorWithValue("id", "already exists", q.ID)
		}
	}

	for _, q := range quotes {
		s.insertLocked(q)
	}

	return nil
}

// Update rewrites an existing quote.
func (s *QuoteStore) Update(_ context.Context, quote *domain.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.quotes[quote.ID]; !exists {
		return domain.NewNotFoundError("quote", quote.ID)
	}

	clone := *quote
	s.quotes[quote.ID] = &clone

	return nil
}

// Delete removes a quote by id.
func (s *QuoteStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.quotes[id]; !exists {
		return domain.NewNotFoundError("quote", id)
	}

	delete(s.quotes, id)

	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return nil
}

// All returns every quote in insertion order.
func (s *QuoteStore) All(_ context.Context) ([]*domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectLocked(func(*domain.Quote) bool { return true }), nil
}

// FindByID retrieves a quote by its identifier.
func (s *QuoteStore) FindByID(_ context.Context, id string) (*domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	quote, exists := s.quotes[id]
	if !exists {
		return nil, domain.NewNotFoundError("quote", id)
	}

	clone := *quote

	return &clone, nil
}

// Favorites returns all quotes with IsFavorite set.
func (s *QuoteStore) Favorites(_ context.Context) ([]*domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectLocked(func(q *domain.Quote) bool { return q.IsFavorite }), nil
}

// Custom returns all user-authored quotes.
func (s *QuoteStore) Custom(_ context.Context) ([]*domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectLocked(func(q *domain.Quote) bool { return q.IsCustom }), nil
}

// Count returns the number of quotes in the library.
func (s *QuoteStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.quotes), nil
}

func (s *QuoteStore) insertLocked(quote *domain.Quote) {
	clone := *quote
	s.quotes[quote.ID] = &clone
	s.order = append(s.order, quote.ID)
}

func (s *QuoteStore) collectLocked(keep func(*domain.Quote) bool) []*domain.Quote {
	result := make([]*domain.Quote, 0, len(s.order))

	for _, id := range s.order {
		if q, exists := s.quotes[id]; exists && keep(q) {
			clone := *q
			result = append(result, &clone)
		}
	}

	return result
}
