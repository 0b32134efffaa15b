package memory

import (
	"context"
	"sync"

	"github.com/jsamuelsen/growdaily/internal/domain"
)

// SettingsStore is an in-memory settings store safe for concurrent use.
//
// NotificationTimes distinguishes "never set" (nil) from "explicitly empty"
// the same way the sqlite adapter does: a nil slice survives round trips.
type SettingsStore struct {
	mu             sync.RWMutex
	times          []domain.TimeOfDay
	timesSet       bool
	rotation       domain.RotationState
	categories     map[string]bool
	pendingQuoteID string
}

// NewSettingsStore creates an empty in-memory settings store.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{}
}

// NotificationTimes returns the configured daily reminder slots.
func (s *SettingsStore) NotificationTimes(_ context.Context) ([]domain.TimeOfDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.timesSet {
		return nil, nil
	}

	out := make([]domain.TimeOfDay, len(s.times))
	copy(out, s.times)

	return out, nil
}

// SetNotificationTimes replaces the configured reminder slots.
func (s *SettingsStore) SetNotificationTimes(_ context.Context, slots []domain.TimeOfDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.times = make([]domain.TimeOfDay, len(slots))
	copy(s.times, slots)
	s.timesSet = true

	return nil
}

// RotationState returns the persisted cycle and cursor.
func (s *SettingsStore) RotationState(_ context.Context) (domain.RotationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := domain.RotationState{
		Cycle:  make([]string, len(s.rotation.Cycle)),
		Cursor: s.rotation.Cursor,
	}
	copy(state.Cycle, s.rotation.Cycle)

	return state, nil
}

// SetRotationState persists the cycle and cursor together.
func (s *SettingsStore) SetRotationState(_ context.Context, state domain.RotationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rotation = domain.RotationState{
		Cycle:  make([]string, len(state.Cycle)),
		Cursor: state.Cursor,
	}
	copy(s.rotation.Cycle, state.Cycle)

	return nil
}

// SelectedCategories returns the seed categories chosen at first launch.
func (s *SettingsStore) SelectedCategories(_ context.Context) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]bool, len(s.categories))
	for k, v := range s.categories {
		out[k] = v
	}

	return out, nil
}

// SetSelectedCategories records the chosen seed categories.
func (s *SettingsStore) SetSelectedCategories(_ context.Context, categories map[string]bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = make(map[string]bool, len(categories))
	for k, v := range categories {
		s.categories[k] = v
	}

	return nil
}

// PendingQuoteID returns the quote id a tapped notification should open.
func (s *SettingsStore) PendingQuoteID(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.pendingQuoteID, nil
}

// SetPendingQuoteID stores the quote id carried by a tapped notification.
func (s *SettingsStore) SetPendingQuoteID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pendingQuoteID = id

	return nil
}
