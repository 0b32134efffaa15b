package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jsamuelsen/growdaily/internal/domain"
)

// Settings keys. Values are stored as JSON blobs.
const (
	keyNotificationTimes  = "notificationTimes"
	keyRotationState      = "rotationState"
	keySelectedCategories = "selectedCategories"
	keyPendingQuoteID     = "pendingQuoteID"
)

// SettingsStore implements ports.SettingsStore on the settings key-value
// table. Each key holds one JSON document, so compound values like the
// rotation cycle and cursor are always written atomically.
type SettingsStore struct {
	db *DB
}

// NewSettingsStore creates a settings store backed by the given database.
func NewSettingsStore(db *DB) *SettingsStore {
	if db == nil {
		panic("SettingsStore: db is required")
	}

	return &SettingsStore{db: db}
}

// rotationStateDoc is the persisted JSON shape of domain.RotationState.
type rotationStateDoc struct {
	Cycle  []string `json:"cycle"`
	Cursor int      `json:"cursor"`
}

// NotificationTimes returns the configured daily reminder slots. Returns nil
// when the key was never written, an empty non-nil slice when the user
// removed every slot.
func (s *SettingsStore) NotificationTimes(ctx context.Context) ([]domain.TimeOfDay, error) {
	var slots []domain.TimeOfDay

	found, err := s.get(ctx, keyNotificationTimes, &slots)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	if slots == nil {
		slots = []domain.TimeOfDay{}
	}

	return slots, nil
}

// SetNotificationTimes replaces the configured reminder slots.
func (s *SettingsStore) SetNotificationTimes(ctx context.Context, slots []domain.TimeOfDay) error {
	if slots == nil {
		slots = []domain.TimeOfDay{}
	}

	return s.set(ctx, keyNotificationTimes, slots)
}

// RotationState returns the persisted cycle and cursor.
func (s *SettingsStore) RotationState(ctx context.Context) (domain.RotationState, error) {
	var doc rotationStateDoc

	if _, err := s.get(ctx, keyRotationState, &doc); err != nil {
		return domain.RotationState{}, err
	}

	return domain.RotationState{Cycle: doc.Cycle, Cursor: doc.Cursor}, nil
}

// SetRotationState persists the cycle and cursor as one document.
func (s *SettingsStore) SetRotationState(ctx context.Context, state domain.RotationState) error {
	return s.set(ctx, keyRotationState, rotationStateDoc{Cycle: state.Cycle, Cursor: state.Cursor})
}

// SelectedCategories returns the seed categories chosen at first launch.
func (s *SettingsStore) SelectedCategories(ctx context.Context) (map[string]bool, error) {
	categories := make(map[string]bool)

	if _, err := s.get(ctx, keySelectedCategories, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

// SetSelectedCategories records the chosen seed categories.
func (s *SettingsStore) SetSelectedCategories(ctx context.Context, categories map[string]bool) error {
	return s.set(ctx, keySelectedCategories, categories)
}

// PendingQuoteID returns the quote id a tapped notification should open.
func (s *SettingsStore) PendingQuoteID(ctx context.Context) (string, error) {
	var id string

	if _, err := s.get(ctx, keyPendingQuoteID, &id); err != nil {
		return "", err
	}

	return id, nil
}

// SetPendingQuoteID stores the quote id carried by a tapped notification.
func (s *SettingsStore) SetPendingQuoteID(ctx context.Context, id string) error {
	return s.set(ctx, keyPendingQuoteID, id)
}

func (s *SettingsStore) get(ctx context.Context, key string, out any) (bool, error) {
	var value string

	err := s.db.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("reading setting %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(value), out); err != nil {
		return false, fmt.Errorf("decoding setting %s: %w", key, err)
	}

	return true, nil
}

func (s *SettingsStore) set(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding setting %s: %w", key, err)
	}

	_, err = s.db.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(encoded),
	)
	if err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}

	return nil
}
