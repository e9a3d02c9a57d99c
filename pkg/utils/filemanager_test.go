package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputName(t *testing.T) {
	t.Run("Plain Names Pass Through", func(t *testing.T) {
		assert.Equal(t, "report.csv", OutputName("report.csv"))
	})

	t.Run("UUID Placeholder", func(t *testing.T) {
		name := OutputName("report_{uuid}.csv")
		assert.Regexp(t, regexp.MustCompile(`^report_[0-9a-f-]{36}\.csv$`), name)
		assert.NotEqual(t, name, OutputName("report_{uuid}.csv"))
	})

	t.Run("Timestamp Placeholder", func(t *testing.T) {
		name := OutputName("report_{timestamp}.csv")
		assert.Regexp(t, regexp.MustCompile(`^report_\d{8}_\d{6}\.csv$`), name)
	})
}

func TestResolveOutputPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports", "2024")

	path, err := ResolveOutputPath(dir, "monthly.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "monthly.csv"), path)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
