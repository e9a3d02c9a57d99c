// =============================================================================
// Monthly Meals Report - Run Orchestration
// =============================================================================
//
// The Runner drives a whole tally run: open each input workbook, find each
// sheet's data window, stream the rows through the Aggregator, and finalize.
//
// PROCESSING PIPELINE:
//   1. For each input file (strictly in caller-supplied order):
//      a. Open and snapshot the workbook
//      b. For each sheet: apply the forced first-row override, or detect
//         the start row, or fall back to the top of the sheet
//      c. Stream rows into the Aggregator
//   2. Finalize into report lines
//
// Processing is sequential on purpose: accumulation is monotonic, so file
// order can only influence which display spelling wins ties, never the
// totals or the person a row is attributed to.
//
// =============================================================================

package tally

import (
	"go.uber.org/zap"

	"github.com/Shrimpo22/Refood-Montly-Report/internal/grid"
	"github.com/Shrimpo22/Refood-Montly-Report/internal/names"
)

// =============================================================================
// OPTIONS AND STATS
// =============================================================================

// Options configures a tally run.
type Options struct {
	// NameColumn is the 0-based index of the name column.
	NameColumn int

	// MealColumns are the 0-based meal column indices in configured order;
	// the first is the primary absence/PB indicator column.
	MealColumns []int

	// FirstDataRow forces the 1-based first data row for every sheet.
	// 0 enables per-sheet auto-detection.
	FirstDataRow int
}

// Stats summarizes what a run processed.
type Stats struct {
	// FilesProcessed is the number of input workbooks read.
	FilesProcessed int

	// SheetsScanned is the number of worksheets walked.
	SheetsScanned int

	// RowsIngested is the number of rows attributed to a person.
	RowsIngested int

	// RowsSkipped is the number of rows dropped for lacking a usable name.
	RowsSkipped int

	// PeopleFound is the number of distinct identity keys.
	PeopleFound int
}

// =============================================================================
// RUNNER
// =============================================================================

// Runner aggregates attendance workbooks into report lines.
type Runner struct {
	norm *names.Normalizer
	opts Options
	log  *zap.SugaredLogger
}

// NewRunner builds a Runner. The logger may be nil, in which case progress
// logging is disabled.
func NewRunner(norm *names.Normalizer, opts Options, log *zap.SugaredLogger) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{norm: norm, opts: opts, log: log}
}

// Run processes the given files in order and returns the finalized report
// lines plus run statistics. A file that cannot be opened aborts the run;
// malformed cells inside a readable file never do.
func (r *Runner) Run(files []string) ([]ReportLine, Stats, error) {
	agg := NewAggregator(r.norm)

	var stats Stats
	for _, path := range files {
		r.log.Infow("reading workbook", "file", path)

		wb, err := grid.OpenWorkbook(path)
		if err != nil {
			return nil, stats, err
		}
		stats.FilesProcessed++

		for _, sheet := range wb.Sheets {
			stats.SheetsScanned++
			r.ingestSheet(agg, sheet, &stats)
		}
	}

	lines := agg.Finalize()
	stats.PeopleFound = len(lines)

	r.log.Infow("tally complete",
		"files", stats.FilesProcessed,
		"sheets", stats.SheetsScanned,
		"rows", stats.RowsIngested,
		"people", stats.PeopleFound,
	)

	return lines, stats, nil
}

// RunWorkbooks is Run for already-snapshotted workbooks. The merge command
// uses it when the inputs were read elsewhere.
func (r *Runner) RunWorkbooks(books []*grid.Workbook) ([]ReportLine, Stats) {
	agg := NewAggregator(r.norm)

	var stats Stats
	for _, wb := range books {
		stats.FilesProcessed++
		for _, sheet := range wb.Sheets {
			stats.SheetsScanned++
			r.ingestSheet(agg, sheet, &stats)
		}
	}

	lines := agg.Finalize()
	stats.PeopleFound = len(lines)

	return lines, stats
}

// ingestSheet resolves the sheet's data window and streams it into the
// aggregator.
func (r *Runner) ingestSheet(agg *Aggregator, sheet grid.Sheet, stats *Stats) {
	if len(sheet.Rows) == 0 {
		return
	}

	start := 0
	switch {
	case r.opts.FirstDataRow > 0:
		start = r.opts.FirstDataRow - 1
	default:
		detected, ok := DetectStartRow(sheet.Rows, r.norm, r.opts.NameColumn, r.opts.MealColumns)
		if !ok {
			r.log.Debugw("no data window detected, scanning from the top", "sheet", sheet.Name)
		}
		start = detected
	}

	ingested, skipped := agg.IngestSheet(sheet, start, r.opts.NameColumn, r.opts.MealColumns)
	stats.RowsIngested += ingested
	stats.RowsSkipped += skipped

	r.log.Debugw("sheet ingested",
		"sheet", sheet.Name,
		"start_row", start+1,
		"rows", ingested,
		"skipped", skipped,
	)
}
