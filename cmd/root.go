// =============================================================================
// Monthly Meals Report - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that the 'tally', 'merge', and 'version' commands are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (refeed)
//   ├── tallyCmd   (refeed tally)
//   ├── mergeCmd   (refeed merge)
//   └── versionCmd (refeed version)
//
// The root command owns the global flags (--config, --verbose) and the
// shared setup: loading the YAML configuration and building the logger.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Shrimpo22/Refood-Montly-Report/internal/config"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// cfgFile holds the path to the configuration file.
// Overridden with the --config flag.
var cfgFile string

// verbose enables debug logging regardless of the configured level.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "refeed",
	Short: "Monthly meals report - tally attendance sheets and merge into report templates",
	Long: `refeed ingests one or more xlsx attendance sheets (one row per person per
day, arbitrary header banners, inconsistent name spelling), produces a
canonical per-person monthly meal tally, and can merge the tally into an
existing report template document.

Counting rules:
  - The configured meal columns (default I,J,K,L) are summed per row.
  - "A" or "F" in the primary meal column marks an absence: 0 meals.
  - "PB" in any meal column marks a packed-lunch day: 0 meals, tracked
    separately. A person with only packed-lunch days reports "PB" instead
    of a number.
  - Names are matched case- and accent-insensitively across all inputs.

Example Usage:
  refeed tally january.xlsx                  # Tally one sheet to CSV
  refeed tally week*.xlsx --out report.csv   # Tally several sheets
  refeed merge week*.xlsx --template report_template.xlsx`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug output",
	)
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadConfig loads the configuration file named by --config. A missing file
// yields the built-in defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the console logger from the configured level; --verbose
// forces debug.
func newLogger(cfg *config.Config) (*zap.SugaredLogger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.Logging.Level); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.DisableStacktrace = true

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Sugar(), nil
}
