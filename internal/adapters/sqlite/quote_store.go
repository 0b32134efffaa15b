package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jsamuelsen/growdaily/internal/domain"
)

const quoteColumns = "id, text, author, category, is_custom, is_favorite"

// QuoteStore implements ports.QuoteStore on SQLite.
type QuoteStore struct {
	db *DB
}

// NewQuoteStore creates a quote store backed by the given database.
func NewQuoteStore(db *DB) *QuoteStore {
	if db == nil {
		panic("QuoteStore: db is required")
	}

	return &QuoteStore{db: db}
}

// Insert adds a quote.
func (s *QuoteStore) Insert(ctx context.Context, quote *domain.Quote) error {
	if quote.ID == "" {
		return domain.NewValidationError("id", "must not be empty")
	}

	_, err := s.db.db.ExecContext(ctx, `
		INSERT INTO quotes (id, text, author, category, is_custom, is_favorite)
		VALUES (?, ?, ?, ?, ?, ?)`,
		quote.ID, quote.Text, quote.Author, quote.Category, quote.IsCustom, quote.IsFavorite,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewValidationErrorWithValue("id", "already exists", quote.ID)
		}

		return fmt.Errorf("inserting quote: %w", err)
	}

	return nil
}

// InsertAll adds quotes in a single transaction, so a failure on any row
// leaves the library untouched.
func (s *QuoteStore) InsertAll(ctx context.Context, quotes []*domain.Quote) error {
	tx, err := s.db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning insert transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quotes (id, text, author, category, is_custom, is_favorite)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, q := range quotes {
		if q.ID == "" {
			return domain.NewValidationError("id", "must not be empty")
		}

		if _, err := stmt.ExecContext(ctx, q.ID, q.Text, q.Author, q.Category, q.IsCustom, q.IsFavorite); err != nil {
			if isUniqueViolation(err) {
				return domain.NewValidationErrorWithValue("id", "already exists", q.ID)
			}

			return fmt.Errorf("inserting quote %s: %w", q.ID, err)
		}
	}

	return tx.Commit()
}

// Update rewrites an existing quote.
func (s *QuoteStore) Update(ctx context.Context, quote *domain.Quote) error {
	res, err := s.db.db.ExecContext(ctx, `
		UPDATE quotes SET text = ?, author = ?, category = ?, is_custom = ?, is_favorite = ?
		WHERE id = ?`,
		quote.Text, quote.Author, quote.Category, quote.IsCustom, quote.IsFavorite, quote.ID,
	)
	if err != nil {
		return fmt.Errorf("updating quote: %w", err)
	}

	return requireRowAffected(res, "quote", quote.ID)
}

// Delete removes a quote by id.
func (s *QuoteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.db.ExecContext(ctx, "DELETE FROM quotes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}

	return requireRowAffected(res, "quote", id)
}

// All returns every quote in insertion order.
func (s *QuoteStore) All(ctx context.Context) ([]*domain.Quote, error) {
	return s.query(ctx, "SELECT "+quoteColumns+" FROM quotes ORDER BY rowid")
}

// FindByID retrieves a quote by its identifier.
func (s *QuoteStore) FindByID(ctx context.Context, id string) (*domain.Quote, error) {
	var q domain.Quote

	err := s.db.db.QueryRowContext(ctx,
		"SELECT "+quoteColumns+" FROM quotes WHERE id = ?", id,
	).Scan(&q.ID, &q.Text, &q.Author, &q.Category, &q.IsCustom, &q.IsFavorite)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("quote", id)
	}

	if err != nil {
		return nil, fmt.Errorf("querying quote: %w", err)
	}

	return &q, nil
}

// Favorites returns all quotes with is_favorite set.
func (s *QuoteStore) Favorites(ctx context.Context) ([]*domain.Quote, error) {
	return s.query(ctx, "SELECT "+quoteColumns+" FROM quotes WHERE is_favorite = 1 ORDER BY rowid")
}

// Custom returns all user-authored quotes.
func (s *QuoteStore) Custom(ctx context.Context) ([]*domain.Quote, error) {
	return s.query(ctx, "SELECT "+quoteColumns+" FROM quotes WHERE is_custom = 1 ORDER BY rowid")
}

// Count returns the number of quotes in the library.
func (s *QuoteStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM quotes").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting quotes: %w", err)
	}

	return count, nil
}

func (s *QuoteStore) query(ctx context.Context, query string, args ...any) ([]*domain.Quote, error) {
	rows, err := s.db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying quotes: %w", err)
	}
	defer rows.Close()

	var result []*domain.Quote

	for rows.Next() {
		var q domain.Quote
		if err := rows.Scan(&q.ID, &q.Text, &q.Author, &q.Category, &q.IsCustom, &q.IsFavorite); err != nil {
			return nil, fmt.Errorf("scanning quote: %w", err)
		}

		result = append(result, &q)
	}

	return result, rows.Err()
}

func requireRowAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.NewNotFoundError(entity, id)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
