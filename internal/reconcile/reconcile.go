// =============================================================================
// Monthly Meals Report - Template Reconciliation
// =============================================================================
//
// The monthly report is not generated from scratch: an independently
// authored xlsx template already lists beneficiaries, and the aggregated
// totals are merged into it. The merge has two passes:
//
//   1. OVERWRITE: walk the template's name column from the detected data
//      row; every listed person gets the target column overwritten with
//      their total (or 0 when the tally has nothing for them).
//   2. APPEND: people in the tally but not in the template are appended
//      below the last listed row, ordered by identity key so the output is
//      reproducible.
//
// Everything happens in memory on the open excelize file; the caller only
// serializes after the merge succeeds, so a partial document is never
// written. excelize maintains the sheet dimension as cells are set, which
// keeps the emitted document structurally valid when the append pass grows
// the used range.
//
// =============================================================================

package reconcile

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Shrimpo22/Refood-Montly-Report/internal/grid"
	"github.com/Shrimpo22/Refood-Montly-Report/internal/names"
	"github.com/Shrimpo22/Refood-Montly-Report/internal/tally"
)

// ErrTemplateNotRecognized is returned when no sheet of the template
// qualifies under either the marker-substring or the header-scan rule.
// Nothing is written when this error is returned.
var ErrTemplateNotRecognized = errors.New("template structure not recognized")

// =============================================================================
// OPTIONS
// =============================================================================

// Options locates the beneficiary list inside the template.
type Options struct {
	// SheetMarker is the folded substring that identifies the beneficiary
	// sheet by name (e.g. "benef" matches "Beneficiários 2024").
	SheetMarker string

	// HeaderPhrase is the folded substring that identifies the header cell
	// in the name column; data starts on the row after it.
	HeaderPhrase string

	// NameColumn, AuxColumn, and TargetColumn are 0-based column indices:
	// the template's name list, the per-row constant column, and the
	// numeric column to overwrite.
	NameColumn   int
	AuxColumn    int
	TargetColumn int

	// FallbackStartRow is the 0-based data row used when no header cell is
	// found in the scanned window.
	FallbackStartRow int

	// HeaderScanLimit caps how many rows of the name column are scanned
	// for the header phrase.
	HeaderScanLimit int
}

// auxConstant is the fixed value written to the auxiliary column for every
// appended person.
const auxConstant = 1

// =============================================================================
// RECONCILER
// =============================================================================

// Reconciler merges finalized report lines into a report template.
type Reconciler struct {
	norm *names.Normalizer
	opts Options
}

// New builds a Reconciler.
func New(norm *names.Normalizer, opts Options) *Reconciler {
	if opts.HeaderScanLimit <= 0 {
		opts.HeaderScanLimit = 60
	}
	return &Reconciler{norm: norm, opts: opts}
}

// Merge locates the beneficiary sheet and merges the report lines into it,
// mutating the open file in place. It returns ErrTemplateNotRecognized
// (wrapped) when no candidate sheet qualifies; the file is untouched in
// that case.
func (rc *Reconciler) Merge(f *excelize.File, lines []tally.ReportLine) error {
	sheet, startRow, ok := rc.locate(f)
	if !ok {
		return fmt.Errorf("%w: no sheet matches marker %q and no header phrase %q found",
			ErrTemplateNotRecognized, rc.opts.SheetMarker, rc.opts.HeaderPhrase)
	}

	byKey := tally.LinesByKey(lines)

	lastRow, seen, err := rc.overwrite(f, sheet, startRow, byKey)
	if err != nil {
		return err
	}

	return rc.appendUnlisted(f, sheet, lastRow, seen, lines)
}

// =============================================================================
// STRUCTURE DETECTION
// =============================================================================

// locate finds the beneficiary sheet and its first data row.
//
// A sheet whose folded name contains the marker substring is preferred; its
// data row comes from the header scan, falling back to the configured
// default. When no sheet name matches, the first sheet in which the header
// scan itself succeeds is used. ok is false when neither rule applies.
func (rc *Reconciler) locate(f *excelize.File) (sheet string, startRow int, ok bool) {
	marker := names.ToKey(rc.opts.SheetMarker)

	for _, name := range f.GetSheetList() {
		if marker != "" && strings.Contains(names.ToKey(name), marker) {
			if headerRow, found := rc.findHeader(f, name); found {
				return name, headerRow + 1, true
			}
			return name, rc.opts.FallbackStartRow, true
		}
	}

	for _, name := range f.GetSheetList() {
		if headerRow, found := rc.findHeader(f, name); found {
			return name, headerRow + 1, true
		}
	}

	return "", 0, false
}

// findHeader scans the top of the name column for a cell whose folded text
// contains the header phrase, returning the 0-based header row.
func (rc *Reconciler) findHeader(f *excelize.File, sheet string) (int, bool) {
	phrase := names.ToKey(rc.opts.HeaderPhrase)
	if phrase == "" {
		return 0, false
	}

	for r := 0; r < rc.opts.HeaderScanLimit; r++ {
		value, err := f.GetCellValue(sheet, grid.CellName(r, rc.opts.NameColumn))
		if err != nil {
			return 0, false
		}
		if strings.Contains(names.ToKey(value), phrase) {
			return r, true
		}
	}

	return 0, false
}

// =============================================================================
// MERGE PASSES
// =============================================================================

// overwrite walks the template's name column from startRow, overwriting the
// target column for every listed person. The template's list is assumed
// contiguous: the pass stops at the first row whose name cell is empty or
// unnormalizable. It returns the row index one past the last row touched
// and the set of keys found in the template.
func (rc *Reconciler) overwrite(f *excelize.File, sheet string, startRow int, byKey map[string]tally.ReportLine) (int, map[string]struct{}, error) {
	seen := make(map[string]struct{})
	row := startRow

	for {
		raw, err := f.GetCellValue(sheet, grid.CellName(row, rc.opts.NameColumn))
		if err != nil {
			return 0, nil, fmt.Errorf("failed to read template name cell: %w", err)
		}

		display := rc.norm.ToDisplay(grid.ParseCell(raw))
		if display == "" {
			break
		}

		key := names.ToKey(display)
		seen[key] = struct{}{}

		target := grid.CellName(row, rc.opts.TargetColumn)
		if line, ok := byKey[key]; ok {
			err = setTotal(f, sheet, target, line)
		} else {
			err = f.SetCellValue(sheet, target, 0)
		}
		if err != nil {
			return 0, nil, fmt.Errorf("failed to write %s!%s: %w", sheet, target, err)
		}

		row++
	}

	return row, seen, nil
}

// appendUnlisted appends one row per aggregated person the overwrite pass
// did not see, starting at firstFree. Appends are ordered by identity key
// so repeated merges of the same tally produce identical documents.
func (rc *Reconciler) appendUnlisted(f *excelize.File, sheet string, firstFree int, seen map[string]struct{}, lines []tally.ReportLine) error {
	unlisted := make([]tally.ReportLine, 0)
	for _, line := range lines {
		if _, ok := seen[line.Key]; !ok {
			unlisted = append(unlisted, line)
		}
	}
	sort.Slice(unlisted, func(i, j int) bool { return unlisted[i].Key < unlisted[j].Key })

	row := firstFree
	for _, line := range unlisted {
		if err := f.SetCellValue(sheet, grid.CellName(row, rc.opts.NameColumn), line.Name); err != nil {
			return fmt.Errorf("failed to append name for %q: %w", line.Name, err)
		}
		if err := f.SetCellValue(sheet, grid.CellName(row, rc.opts.AuxColumn), auxConstant); err != nil {
			return fmt.Errorf("failed to write aux column for %q: %w", line.Name, err)
		}
		if err := setTotal(f, sheet, grid.CellName(row, rc.opts.TargetColumn), line); err != nil {
			return fmt.Errorf("failed to write total for %q: %w", line.Name, err)
		}
		row++
	}

	return nil
}

// setTotal writes a line's total: the "PB" sentinel as text, everything
// else as a number.
func setTotal(f *excelize.File, sheet, cell string, line tally.ReportLine) error {
	if line.PBOnly {
		return f.SetCellValue(sheet, cell, "PB")
	}
	return f.SetCellValue(sheet, cell, line.Total)
}
