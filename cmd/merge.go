// =============================================================================
// Monthly Meals Report - Merge Command
// =============================================================================
//
// This file defines the 'merge' command: aggregate attendance workbooks and
// merge the totals into an existing report template document.
//
// COMMAND USAGE:
//   refeed merge <file.xlsx> [more files...] --template report.xlsx [flags]
//
// MERGE BEHAVIOR:
//   People already listed in the template get their target column
//   overwritten in place; people found only in the attendance sheets are
//   appended below the existing list. The rest of the template is left
//   untouched, and nothing is written at all when the template's structure
//   cannot be recognized.
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/Shrimpo22/Refood-Montly-Report/internal/config"
	"github.com/Shrimpo22/Refood-Montly-Report/internal/grid"
	"github.com/Shrimpo22/Refood-Montly-Report/internal/names"
	"github.com/Shrimpo22/Refood-Montly-Report/internal/reconcile"
	"github.com/Shrimpo22/Refood-Montly-Report/internal/tally"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// templatePath is the report template to merge into.
var templatePath string

// mergeOut is the path the merged document is written to. Empty overwrites
// the template file itself.
var mergeOut string

// =============================================================================
// MERGE COMMAND DEFINITION
// =============================================================================

// mergeCmd represents the 'merge' command.
var mergeCmd = &cobra.Command{
	Use:   "merge <file.xlsx> [more files...]",
	Short: "Merge the aggregated totals into an existing report template",
	Long: `The merge command first aggregates the given attendance workbooks exactly
like 'tally', then locates the beneficiary sheet of the template document
(by sheet-name marker, or by scanning for the header phrase), overwrites
the target column for every person already listed, and appends the people
the template does not know yet.

The merged document is only written after the whole merge succeeds in
memory; a template whose structure is not recognized fails the command
without touching any file.`,

	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMerge(args)
	},
}

// init registers the merge command and its flags.
func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVar(&templatePath, "template", "", "Path to the report template xlsx (required)")
	mergeCmd.Flags().StringVar(&mergeOut, "out", "", "Path for the merged document (default: overwrite the template)")
	mergeCmd.MarkFlagRequired("template")

	// The tally column overrides apply to the attendance side of a merge too.
	mergeCmd.Flags().StringVar(&nameCol, "name-col", "", "Name column letter (default from configuration)")
	mergeCmd.Flags().StringVar(&mealCols, "meal-cols", "", "Comma-separated meal column letters (default from configuration)")
	mergeCmd.Flags().IntVar(&firstRow, "first-row", 0, "Forced 1-based first data row (0 auto-detects)")
}

// =============================================================================
// MAIN MERGE FUNCTION
// =============================================================================

// runMerge aggregates the inputs and reconciles them into the template.
func runMerge(files []string) error {
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
	// STEP 2: AGGREGATE THE ATTENDANCE SHEETS
	// =========================================================================

	runner := tally.NewRunner(names.New(cfg.Names.StopWords), runnerOptions(cfg), log)

	lines, stats, err := runner.Run(files)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 3: MERGE INTO THE TEMPLATE
	// =========================================================================

	f, err := excelize.OpenFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to open template %s: %w", templatePath, err)
	}
	defer f.Close()

	rc := reconcile.New(names.New(cfg.Names.StopWords), reconcileOptions(cfg))
	if err := rc.Merge(f, lines); err != nil {
		return fmt.Errorf("failed to merge into template %s: %w", templatePath, err)
	}

	// The document is only serialized after the full merge succeeded.
	target := mergeOut
	if target == "" {
		target = templatePath
	}
	if err := f.SaveAs(target); err != nil {
		return fmt.Errorf("failed to write merged document %s: %w", target, err)
	}

	// =========================================================================
	// STEP 4: SUMMARY
	// =========================================================================

	fmt.Println("=== Template Merge ===")
	fmt.Printf("Files processed: %d\n", stats.FilesProcessed)
	fmt.Printf("People merged:   %d\n", stats.PeopleFound)
	fmt.Printf("Document:        %s\n", target)
	fmt.Printf("Time elapsed:    %s\n", time.Since(startTime))

	return nil
}

// reconcileOptions converts the template configuration to reconciler options.
func reconcileOptions(cfg *config.Config) reconcile.Options {
	return reconcile.Options{
		SheetMarker:      cfg.Template.SheetMarker,
		HeaderPhrase:     cfg.Template.HeaderPhrase,
		NameColumn:       grid.ColumnIndex(cfg.Template.NameColumn),
		AuxColumn:        grid.ColumnIndex(cfg.Template.AuxColumn),
		TargetColumn:     grid.ColumnIndex(cfg.Template.TargetColumn),
		FallbackStartRow: cfg.Template.FallbackStartRow - 1,
	}
}
