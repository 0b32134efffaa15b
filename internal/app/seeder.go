package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jsamuelsen/growdaily/internal/domain"
	"github.com/jsamuelsen/growdaily/internal/ports"
)

// Seeder performs the one-shot first-launch import: the user picks categories,
// the seeder loads the bundled quote files for those categories and inserts
// them atomically. A second import attempt is rejected once categories have
// been recorded.
type Seeder struct {
	quotes   ports.QuoteStore
	settings ports.SettingsStore
	logger   *slog.Logger
	dir      string
	files    map[string]string
	shuffle  func([]*domain.Quote)
}

// SeederConfig contains configuration for the seeder.
type SeederConfig struct {
	Quotes   ports.QuoteStore
	Settings ports.SettingsStore
	Logger   *slog.Logger

	// Dir is the directory holding the seed files.
	Dir string

	// Files maps category names to seed file basenames (without extension).
	Files map[string]string

	// Shuffle permutes the combined batch in place before insertion.
	// Defaults to rand.Shuffle; tests may inject a deterministic one.
	Shuffle func([]*domain.Quote)
}

// seedQuote is the wire shape of one entry in a seed file.
type seedQuote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// NewSeeder creates a new seeder with the provided dependencies.
func NewSeeder(cfg SeederConfig) *Seeder {
	if cfg.Quotes == nil || cfg.Settings == nil {
		panic("Seeder: Quotes and Settings stores are required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	shuffle := cfg.Shuffle
	if shuffle == nil {
		shuffle = func(quotes []*domain.Quote) {
			rand.Shuffle(len(quotes), func(i, j int) {
				quotes[i], quotes[j] = quotes[j], quotes[i]
			})
		}
	}

	return &Seeder{
		quotes:   cfg.Quotes,
		settings: cfg.Settings,
		logger:   logger,
		dir:      cfg.Dir,
		files:    cfg.Files,
		shuffle:  shuffle,
	}
}

// ImportCategories seeds the library with the quotes of the chosen
// categories.
//
// The import is all-or-nothing: every file is read and parsed before a
// single quote is written, and the write itself is one atomic batch of the
// shuffled combination. Returns domain.ErrForbidden if an import already
// happened.
func (s *Seeder) ImportCategories(ctx context.Context, categories []string) error {
	if len(categories) == 0 {
		return domain.NewValidationError("categories", "at least one category is required")
	}

	selected, err := s.settings.SelectedCategories(ctx)
	if err != nil {
		return fmt.Errorf("loading selected categories: %w", err)
	}

	if len(selected) > 0 {
		return domain.NewForbiddenError("seed import", "already completed")
	}

	var quotes []*domain.Quote

	for _, category := range categories {
		loaded, err := s.loadCategory(category)
		if err != nil {
			return err
		}

		quotes = append(quotes, loaded...)
	}

	// Mix the categories together so the stored order does not mirror the
	// files.
	s.shuffle(quotes)

	if err := s.quotes.InsertAll(ctx, quotes); err != nil {
		return fmt.Errorf("persisting seed quotes: %w", err)
	}

	chosen := make(map[string]bool, len(categories))
	for _, category := range categories {
		chosen[category] = true
	}

	if err := s.settings.SetSelectedCategories(ctx, chosen); err != nil {
		// Quotes landed but the marker did not. A retried import will be
		// rejected by duplicate ids at the store, so the library cannot
		// double up.
		s.logger.ErrorContext(ctx, "failed to record selected categories",
			slog.Any("error", err),
		)
	}

	s.logger.InfoContext(ctx, "seeded quote library",
		slog.Int("categories", len(categories)),
		slog.Int("quotes", len(quotes)),
	)

	return nil
}

// Categories returns the category names available for import.
func (s *Seeder) Categories() []string {
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}

	return names
}

func (s *Seeder) loadCategory(category string) ([]*domain.Quote, error) {
	base, ok := s.files[category]
	if !ok {
		return nil, domain.NewSeedSourceError(category, "", fmt.Errorf("unknown category"))
	}

	path := filepath.Join(s.dir, base+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewSeedSourceError(category, path, err)
	}

	var entries []seedQuote
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, domain.NewSeedSourceError(category, path, err)
	}

	if len(entries) == 0 {
		return nil, domain.NewSeedSourceError(category, path, fmt.Errorf("seed file is empty"))
	}

	quotes := make([]*domain.Quote, 0, len(entries))

	for _, entry := range entries {
		if entry.Text == "" {
			return nil, domain.NewSeedSourceError(category, path, fmt.Errorf("entry with empty text"))
		}

		quotes = append(quotes, &domain.Quote{
			ID:       uuid.New().String(),
			Text:     entry.Text,
			Author:   entry.Author,
			Category: category,
		})
	}

	return quotes, nil
}
