package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/growdaily/internal/adapters/memory"
	"github.com/jsamuelsen/growdaily/internal/app"
	"github.com/jsamuelsen/growdaily/internal/domain"
)

func writeSeedFile(t *testing.T, dir, base, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, base+".json"), []byte(content), 0o600))
}

func newSeederFixture(t *testing.T) (*app.Seeder, *memory.QuoteStore, *memory.SettingsStore, string) {
	t.Helper()

	dir := t.TempDir()
	quotes := memory.NewQuoteStore()
	settings := memory.NewSettingsStore()

	seeder := app.NewSeeder(app.SeederConfig{
		Quotes:   quotes,
		Settings: settings,
		Logger:   discardLogger(),
		Dir:      dir,
		Files: map[string]string{
			"Health":       "HealthQuotes",
			"Motivational": "MotivationalQuotes",
		},
		// Identity shuffle keeps file order so tests can assert on it.
		Shuffle: func([]*domain.Quote) {},
	})

	return seeder, quotes, settings, dir
}

func TestSeeder_ImportCategories(t *testing.T) {
	ctx := context.Background()
	seeder, quotes, settings, dir := newSeederFixture(t)

	writeSeedFile(t, dir, "HealthQuotes", `[
		{"text": "Early to bed.", "author": "Benjamin Franklin"},
		{"text": "Walk daily."}
	]`)
	writeSeedFile(t, dir, "MotivationalQuotes", `[
		{"text": "Just do it."}
	]`)

	require.NoError(t, seeder.ImportCategories(ctx, []string{"Health", "Motivational"}))

	all, err := quotes.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, "Health", all[0].Category)
	assert.Equal(t, "Benjamin Franklin", all[0].Author)
	assert.False(t, all[0].IsCustom)
	assert.NotEmpty(t, all[0].ID)

	selected, err := settings.SelectedCategories(ctx)
	require.NoError(t, err)
	assert.True(t, selected["Health"])
	assert.True(t, selected["Motivational"])
}

func TestSeeder_ImportShufflesCombinedBatch(t *testing.T) {
	ctx := context.Background()

	dir := t.TempDir()
	quotes := memory.NewQuoteStore()

	seeder := app.NewSeeder(app.SeederConfig{
		Quotes:   quotes,
		Settings: memory.NewSettingsStore(),
		Logger:   discardLogger(),
		Dir:      dir,
		Files:    map[string]string{"Health": "HealthQuotes"},
		Shuffle: func(batch []*domain.Quote) {
			for i, j := 0, len(batch)-1; i < j; i, j = i+1, j-1 {
				batch[i], batch[j] = batch[j], batch[i]
			}
		},
	})

	writeSeedFile(t, dir, "HealthQuotes", `[
		{"text": "first"},
		{"text": "second"},
		{"text": "third"}
	]`)

	require.NoError(t, seeder.ImportCategories(ctx, []string{"Health"}))

	all, err := quotes.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	texts := []string{all[0].Text, all[1].Text, all[2].Text}
	assert.Equal(t, []string{"third", "second", "first"}, texts,
		"the configured shuffle must run on the batch before insertion")
}

func TestSeeder_SecondImportForbidden(t *testing.T) {
	ctx := context.Background()
	seeder, _, _, dir := newSeederFixture(t)

	writeSeedFile(t, dir, "HealthQuotes", `[{"text": "Hydrate."}]`)

	require.NoError(t, seeder.ImportCategories(ctx, []string{"Health"}))

	err := seeder.ImportCategories(ctx, []string{"Health"})
	assert.True(t, domain.IsForbidden(err))
}

func TestSeeder_MissingFileAbortsWholeImport(t *testing.T) {
	ctx := context.Background()
	seeder, quotes, _, dir := newSeederFixture(t)

	writeSeedFile(t, dir, "HealthQuotes", `[{"text": "Hydrate."}]`)
	// MotivationalQuotes.json is deliberately absent.

	err := seeder.ImportCategories(ctx, []string{"Health", "Motivational"})
	assert.True(t, domain.IsSeedSource(err))

	count, countErr := quotes.Count(ctx)
	require.NoError(t, countErr)
	assert.Zero(t, count, "a failed import must not insert anything")
}

func TestSeeder_UnknownCategory(t *testing.T) {
	seeder, _, _, _ := newSeederFixture(t)

	err := seeder.ImportCategories(context.Background(), []string{"Cooking"})
	assert.True(t, domain.IsSeedSource(err))
}

func TestSeeder_MalformedFile(t *testing.T) {
	seeder, _, _, dir := newSeederFixture(t)

	writeSeedFile(t, dir, "HealthQuotes", `{"not": "an array"}`)

	err := seeder.ImportCategories(context.Background(), []string{"Health"})
	assert.True(t, domain.IsSeedSource(err))
}

func TestSeeder_EmptyFile(t *testing.T) {
	seeder, _, _, dir := newSeederFixture(t)

	writeSeedFile(t, dir, "HealthQuotes", `[]`)

	err := seeder.ImportCategories(context.Background(), []string{"Health"})
	assert.True(t, domain.IsSeedSource(err))
}

func TestSeeder_NoCategories(t *testing.T) {
	seeder, _, _, _ := newSeederFixture(t)

	err := seeder.ImportCategories(context.Background(), nil)
	assert.True(t, domain.IsValidation(err))
}

func TestSeeder_Categories(t *testing.T) {
	seeder, _, _, _ := newSeederFixture(t)

	assert.ElementsMatch(t, []string{"Health", "Motivational"}, seeder.Categories())
}
