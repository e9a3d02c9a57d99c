// =============================================================================
// Monthly Meals Report - File Utilities
// =============================================================================
//
// Output-side file helpers: report file naming with placeholder expansion
// and directory management. Naming placeholders let a scheduled run keep
// every month's report side by side instead of overwriting the last one.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OutputName expands naming placeholders in a report file name pattern.
//
// Supported placeholders:
//   {uuid}      - a random UUID
//   {timestamp} - the current time as YYYYMMDD_HHMMSS
func OutputName(pattern string) string {
	name := pattern

	if strings.Contains(name, "{uuid}") {
		name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())
	}
	if strings.Contains(name, "{timestamp}") {
		name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	}

	return name
}

// EnsureDir creates a directory (and any parents) if it does not exist.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// ResolveOutputPath joins the output directory with an expanded file name
// pattern, creating the directory when needed.
func ResolveOutputPath(dir, pattern string) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	return filepath.Join(dir, OutputName(pattern)), nil
}
