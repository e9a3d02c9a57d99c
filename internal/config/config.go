// =============================================================================
// Monthly Meals Report - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration. All column
// positions are given as spreadsheet letters because that is how the people
// maintaining the sheets think about them.
//
// CONFIGURATION SOURCES:
//   1. Built-in defaults (the layout of the real attendance sheets)
//   2. An optional YAML file overriding any subset of the defaults
//   3. Command-line flags, applied last by the cmd layer
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Shrimpo22/Refood-Montly-Report/internal/names"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config is the full application configuration.
type Config struct {
	// Columns describes the layout of the attendance sheets.
	Columns ColumnsConfig `yaml:"columns"`

	// Names configures name normalization.
	Names NamesConfig `yaml:"names"`

	// Template describes the report template the totals are merged into.
	Template TemplateConfig `yaml:"template"`

	// Output controls where and under what name reports are written.
	Output OutputConfig `yaml:"output"`

	// Logging controls log verbosity.
	Logging LoggingConfig `yaml:"logging"`
}

// ColumnsConfig describes the attendance sheet layout.
type ColumnsConfig struct {
	// NameColumn is the letter of the column holding person names.
	// Default: "E"
	NameColumn string `yaml:"name_column"`

	// MealColumns are the letters of the meal columns, in order. The first
	// one is the primary column, which is where absence codes (A/F) are
	// honored.
	// Default: ["I", "J", "K", "L"]
	MealColumns []string `yaml:"meal_columns"`

	// FirstDataRow forces the 1-based first data row for every sheet.
	// 0 (the default) enables per-sheet auto-detection. This is the escape
	// hatch for sheets whose banner defeats the detection heuristic.
	FirstDataRow int `yaml:"first_data_row"`
}

// NamesConfig configures name normalization.
type NamesConfig struct {
	// StopWords are header labels that must never be treated as names.
	// Matched case- and accent-insensitively. An empty list falls back to
	// the built-in Portuguese/English set.
	StopWords []string `yaml:"stop_words"`
}

// TemplateConfig describes the report template layout.
type TemplateConfig struct {
	// SheetMarker is the substring (folded) that identifies the
	// beneficiary sheet by name.
	// Default: "benef"
	SheetMarker string `yaml:"sheet_marker"`

	// HeaderPhrase is the substring (folded) that identifies the header
	// cell in the template's name column; data starts on the next row.
	// Default: "familia"
	HeaderPhrase string `yaml:"header_phrase"`

	// NameColumn is the letter of the template's name column.
	// Default: "B"
	NameColumn string `yaml:"name_column"`

	// AuxColumn is the letter of the column that receives the fixed
	// per-row constant for appended people.
	// Default: "C"
	AuxColumn string `yaml:"aux_column"`

	// TargetColumn is the letter of the numeric column to overwrite.
	// Default: "D"
	TargetColumn string `yaml:"target_column"`

	// FallbackStartRow is the 1-based data row used when no header cell
	// is found.
	// Default: 8
	FallbackStartRow int `yaml:"fallback_start_row"`
}

// OutputConfig controls report output.
type OutputConfig struct {
	// Dir is the directory reports are written into.
	// Default: "."
	Dir string `yaml:"dir"`

	// ReportName is the file name pattern for the CSV report.
	// Placeholders:
	//   {uuid}      - a random UUID
	//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
	// Default: "monthly_meals_report.csv"
	ReportName string `yaml:"report_name"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`
}

// =============================================================================
// DEFAULTS AND LOADING
// =============================================================================

// Default returns the configuration matching the real attendance sheets.
func Default() *Config {
	return &Config{
		Columns: ColumnsConfig{
			NameColumn:  "E",
			MealColumns: []string{"I", "J", "K", "L"},
		},
		Names: NamesConfig{
			StopWords: append([]string(nil), names.DefaultStopWords...),
		},
		Template: TemplateConfig{
			SheetMarker:      "benef",
			HeaderPhrase:     "familia",
			NameColumn:       "B",
			AuxColumn:        "C",
			TargetColumn:     "D",
			FallbackStartRow: 8,
		},
		Output: OutputConfig{
			Dir:        ".",
			ReportName: "monthly_meals_report.csv",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration file at path on top of the defaults.
// A missing file is not an error: the defaults are returned unchanged so
// the tool works out of the box.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	return cfg, nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// validLogLevels are the accepted logging levels.
var validLogLevels = map[string]struct{}{
	"debug": {}, "info": {}, "warn": {}, "error": {},
}

// Validate checks the configuration for values the pipeline cannot work
// with. Column letters are not validated here: column parsing is total by
// design, so a typo degrades to column A instead of failing the run.
func (c *Config) Validate() error {
	if len(c.Columns.MealColumns) == 0 {
		return fmt.Errorf("columns.meal_columns must list at least one column")
	}

	if c.Columns.FirstDataRow < 0 {
		return fmt.Errorf("columns.first_data_row must be 0 (auto) or a positive row number")
	}

	if c.Template.FallbackStartRow < 1 {
		return fmt.Errorf("template.fallback_start_row must be a positive row number")
	}

	if _, ok := validLogLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}

	return nil
}
