// =============================================================================
// Monthly Meals Report - Tally Command
// =============================================================================
//
// This file defines the 'tally' command: aggregate one or more attendance
// workbooks into the per-person monthly report and write it as CSV.
//
// COMMAND USAGE:
//   refeed tally <file.xlsx> [more files...] [flags]
//
// FLAGS:
//   --name-col   : Name column letter (overrides configuration)
//   --meal-cols  : Comma-separated meal column letters (overrides configuration)
//   --first-row  : Forced 1-based first data row; 0 auto-detects
//   --out        : Output CSV path (overrides the configured pattern)
//
// PROCESSING PIPELINE:
//   1. Load configuration and apply flag overrides
//   2. Process every input workbook sequentially
//   3. Finalize the per-person records
//   4. Write the CSV report and print a summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Shrimpo22/Refood-Montly-Report/internal/config"
	"github.com/Shrimpo22/Refood-Montly-Report/internal/export"
	"github.com/Shrimpo22/Refood-Montly-Report/internal/grid"
	"github.com/Shrimpo22/Refood-Montly-Report/internal/names"
	"github.com/Shrimpo22/Refood-Montly-Report/internal/tally"
	"github.com/Shrimpo22/Refood-Montly-Report/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// nameCol overrides the configured name column letter.
var nameCol string

// mealCols overrides the configured meal column letters.
var mealCols string

// firstRow forces the 1-based first data row (0 = auto-detect).
var firstRow int

// outPath overrides the configured output path.
var outPath string

// =============================================================================
// TALLY COMMAND DEFINITION
// =============================================================================

// tallyCmd represents the 'tally' command.
var tallyCmd = &cobra.Command{
	Use:   "tally <file.xlsx> [more files...]",
	Short: "Aggregate attendance workbooks into a per-person meal report",
	Long: `The tally command reads every sheet of every given workbook, locates each
sheet's first data row (or uses the forced row), classifies each row as a
meal count, an absence, or a packed-lunch day, and folds the results into
one record per person. Names are matched case- and accent-insensitively,
so "José Silva" and "JOSE SILVA *" are the same person.

The finalized report is written as CSV with one line per person:
name, total (a number, or "PB" for packed-lunch-only people), packed-lunch
days, meal days, and rows counted.`,

	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTally(args)
	},
}

// init registers the tally command and its flags.
func init() {
	rootCmd.AddCommand(tallyCmd)

	tallyCmd.Flags().StringVar(&nameCol, "name-col", "", "Name column letter (default from configuration)")
	tallyCmd.Flags().StringVar(&mealCols, "meal-cols", "", "Comma-separated meal column letters (default from configuration)")
	tallyCmd.Flags().IntVar(&firstRow, "first-row", 0, "Forced 1-based first data row (0 auto-detects)")
	tallyCmd.Flags().StringVar(&outPath, "out", "", "Output CSV path (default from configuration)")
}

// =============================================================================
// MAIN TALLY FUNCTION
// =============================================================================

// runTally aggregates the input workbooks and writes the CSV report.
func runTally(files []string) error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: CONFIGURATION AND LOGGER
	// =========================================================================

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyColumnFlags(cfg)

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	// =========================================================================
	// STEP 2: AGGREGATE
	// =========================================================================

	runner := tally.NewRunner(names.New(cfg.Names.StopWords), runnerOptions(cfg), log)

	lines, stats, err := runner.Run(files)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 3: WRITE THE REPORT
	// =========================================================================

	target := outPath
	if target == "" {
		target, err = utils.ResolveOutputPath(cfg.Output.Dir, cfg.Output.ReportName)
		if err != nil {
			return err
		}
	}

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", target, err)
	}
	defer out.Close()

	if err := export.WriteCSV(out, lines); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	// =========================================================================
	// STEP 4: SUMMARY
	// =========================================================================

	fmt.Println("=== Monthly Meals Report ===")
	fmt.Printf("Files processed: %d\n", stats.FilesProcessed)
	fmt.Printf("Sheets scanned:  %d\n", stats.SheetsScanned)
	fmt.Printf("Rows counted:    %d\n", stats.RowsIngested)
	fmt.Printf("People found:    %d\n", stats.PeopleFound)
	fmt.Printf("Report:          %s\n", target)
	fmt.Printf("Time elapsed:    %s\n", time.Since(startTime))

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// applyColumnFlags folds the column flags into the loaded configuration.
// Flags win over the file.
func applyColumnFlags(cfg *config.Config) {
	if nameCol != "" {
		cfg.Columns.NameColumn = nameCol
	}
	if mealCols != "" {
		cols := strings.Split(mealCols, ",")
		cfg.Columns.MealColumns = cfg.Columns.MealColumns[:0]
		for _, c := range cols {
			if strings.TrimSpace(c) != "" {
				cfg.Columns.MealColumns = append(cfg.Columns.MealColumns, strings.TrimSpace(c))
			}
		}
	}
	if firstRow > 0 {
		cfg.Columns.FirstDataRow = firstRow
	}
}

// runnerOptions converts configured column letters to runner options.
func runnerOptions(cfg *config.Config) tally.Options {
	mealIdx := make([]int, 0, len(cfg.Columns.MealColumns))
	for _, letter := range cfg.Columns.MealColumns {
		mealIdx = append(mealIdx, grid.ColumnIndex(letter))
	}

	return tally.Options{
		NameColumn:   grid.ColumnIndex(cfg.Columns.NameColumn),
		MealColumns:  mealIdx,
		FirstDataRow: cfg.Columns.FirstDataRow,
	}
}
