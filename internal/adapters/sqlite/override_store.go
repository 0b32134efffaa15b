package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jsamuelsen/growdaily/internal/domain"
)

const overrideColumns = "id, quote_id, start_date, duration_days, notify_hour, notify_minute"

// OverrideStore implements ports.OverrideStore on SQLite.
type OverrideStore struct {
	db *DB
}

// NewOverrideStore creates an override store backed by the given database.
func NewOverrideStore(db *DB) *OverrideStore {
	if db == nil {
		panic("OverrideStore: db is required")
	}

	return &OverrideStore{db: db}
}

// Insert adds an override record.
func (s *OverrideStore) Insert(ctx context.Context, override *domain.ScheduledOverride) error {
	if override.ID == "" {
		return domain.NewValidationError("id", "must not be empty")
	}

	_, err := s.db.db.ExecContext(ctx, `
		INSERT INTO overrides (id, quote_id, start_date, duration_days, notify_hour, notify_minute)
		VALUES (?, ?, ?, ?, ?, ?)`,
		override.ID, override.QuoteID, override.StartDate.UTC().Format(time.RFC3339),
		override.DurationDays, override.NotificationTime.Hour, override.NotificationTime.Minute,
	)
	if err != nil {
		return fmt.Errorf("inserting override: %w", err)
	}

	return nil
}

// Delete removes an override record by id.
func (s *OverrideStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.db.ExecContext(ctx, "DELETE FROM overrides WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting override: %w", err)
	}

	return requireRowAffected(res, "override", id)
}

// DeleteAll removes every override record.
func (s *OverrideStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.db.ExecContext(ctx, "DELETE FROM overrides"); err != nil {
		return fmt.Errorf("deleting overrides: %w", err)
	}

	return nil
}

// DeleteByQuoteID removes the override record(s) for a quote.
func (s *OverrideStore) DeleteByQuoteID(ctx context.Context, quoteID string) error {
	if _, err := s.db.db.ExecContext(ctx, "DELETE FROM overrides WHERE quote_id = ?", quoteID); err != nil {
		return fmt.Errorf("deleting overrides for quote: %w", err)
	}

	return nil
}

// All returns every override record sorted by start date descending.
func (s *OverrideStore) All(ctx context.Context) ([]*domain.ScheduledOverride, error) {
	rows, err := s.db.db.QueryContext(ctx,
		"SELECT "+overrideColumns+" FROM overrides ORDER BY start_date DESC")
	if err != nil {
		return nil, fmt.Errorf("querying overrides: %w", err)
	}
	defer rows.Close()

	var result []*domain.ScheduledOverride

	for rows.Next() {
		ov, err := scanOverride(rows.Scan)
		if err != nil {
			return nil, err
		}

		result = append(result, ov)
	}

	return result, rows.Err()
}

// FindByQuoteID retrieves the override for a quote.
func (s *OverrideStore) FindByQuoteID(ctx context.Context, quoteID string) (*domain.ScheduledOverride, error) {
	row := s.db.db.QueryRowContext(ctx,
		"SELECT "+overrideColumns+" FROM overrides WHERE quote_id = ? ORDER BY start_date DESC LIMIT 1",
		quoteID,
	)

	ov, err := scanOverride(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("override", quoteID)
	}

	if err != nil {
		return nil, err
	}

	return ov, nil
}

func scanOverride(scan func(...any) error) (*domain.ScheduledOverride, error) {
	var (
		ov        domain.ScheduledOverride
		startDate string
	)

	if err := scan(&ov.ID, &ov.QuoteID, &startDate, &ov.DurationDays,
		&ov.NotificationTime.Hour, &ov.NotificationTime.Minute); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("scanning override: %w", err)
	}

	t, err := time.Parse(time.RFC3339, startDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}

	ov.StartDate = t

	return &ov, nil
}
