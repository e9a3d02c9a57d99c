package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "E", cfg.Columns.NameColumn)
	assert.Equal(t, []string{"I", "J", "K", "L"}, cfg.Columns.MealColumns)
	assert.Equal(t, 0, cfg.Columns.FirstDataRow, "auto-detection by default")
	assert.Equal(t, "benef", cfg.Template.SheetMarker)
	assert.Equal(t, 8, cfg.Template.FallbackStartRow)
	assert.Equal(t, "info", cfg.Logging.Level)

	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("Missing File Yields Defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("File Overrides A Subset", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := `
columns:
  name_column: "B"
  meal_columns: ["C", "D"]
  first_data_row: 5
names:
  stop_words: ["nome", "utente"]
logging:
  level: debug
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "B", cfg.Columns.NameColumn)
		assert.Equal(t, []string{"C", "D"}, cfg.Columns.MealColumns)
		assert.Equal(t, 5, cfg.Columns.FirstDataRow)
		assert.Equal(t, []string{"nome", "utente"}, cfg.Names.StopWords)
		assert.Equal(t, "debug", cfg.Logging.Level)

		// Untouched sections keep their defaults.
		assert.Equal(t, "benef", cfg.Template.SheetMarker)
	})

	t.Run("Invalid YAML Is An Error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("columns: [I, J"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("Invalid Values Are Rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("columns:\n  meal_columns: []\n"), 0o644))

		_, err := Load(path)
		assert.ErrorContains(t, err, "meal_columns")
	})
}

func TestValidate(t *testing.T) {
	t.Run("Bad Log Level", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Level = "loud"
		assert.ErrorContains(t, cfg.Validate(), "logging.level")
	})

	t.Run("Negative First Row", func(t *testing.T) {
		cfg := Default()
		cfg.Columns.FirstDataRow = -1
		assert.ErrorContains(t, cfg.Validate(), "first_data_row")
	})

	t.Run("Fallback Row Must Be Positive", func(t *testing.T) {
		cfg := Default()
		cfg.Template.FallbackStartRow = 0
		assert.ErrorContains(t, cfg.Validate(), "fallback_start_row")
	})
}
