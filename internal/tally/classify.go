// =============================================================================
// Monthly Meals Report - Row Classification
// =============================================================================
//
// Every attendance row resolves to exactly one of three outcomes:
//   - PackedLunch : the person brought their own meal ("PB" marker)
//   - Absent      : an absence code ("A" or "F") in the primary meal column
//   - Meal(n)     : the numeric sum of the meal columns (n may be 0)
//
// Precedence is PackedLunch > Absent > Meal; a row is never double
// classified. The absence code is only honored in the primary (first
// configured) meal column, while the PB marker is honored in any meal
// column. The asymmetry matches how the sheets are actually filled in.
//
// =============================================================================

package tally

import (
	"strings"

	"github.com/Shrimpo22/Refood-Montly-Report/internal/grid"
	"github.com/Shrimpo22/Refood-Montly-Report/internal/names"
)

// =============================================================================
// CLASSIFICATION RESULT
// =============================================================================

// RowStatus is the outcome kind of classifying one row.
type RowStatus int

const (
	// Meal means the row contributes its numeric meal total (possibly 0).
	Meal RowStatus = iota

	// Absent means an absence code was found in the primary meal column.
	Absent

	// PackedLunch means the PB marker was found in a meal column.
	PackedLunch
)

// Classification is the result of classifying one row.
type Classification struct {
	// Status is the row outcome.
	Status RowStatus

	// Total is the numeric meal total for the row. It is always 0 unless
	// Status is Meal.
	Total float64
}

// =============================================================================
// CLASSIFIER
// =============================================================================

// packedLunchMarker is the folded packed-lunch marker.
const packedLunchMarker = "pb"

// absenceCodes are the folded single-letter absence codes
// (absent / justified absence).
var absenceCodes = map[string]struct{}{"a": {}, "f": {}}

// Classify classifies a single row given the configured meal column indices.
// mealIdx must be in configured order; the first entry is the primary
// absence/PB indicator column.
func Classify(row []grid.Cell, mealIdx []int) Classification {
	if len(mealIdx) == 0 {
		return Classification{Status: Meal}
	}

	primary := names.Fold(grid.At(row, mealIdx[0]))

	_, absent := absenceCodes[primary]

	packed := primary == packedLunchMarker
	if !packed {
		for _, idx := range mealIdx[1:] {
			if names.Fold(grid.At(row, idx)) == packedLunchMarker {
				packed = true
				break
			}
		}
	}

	// PackedLunch beats Absent beats Meal.
	switch {
	case packed:
		return Classification{Status: PackedLunch}
	case absent:
		return Classification{Status: Absent}
	}

	return Classification{Status: Meal, Total: sumMealCells(row, mealIdx)}
}

// sumMealCells totals every meal column cell that parses as a number.
// Number cells contribute directly; text cells are trimmed and have a
// decimal comma converted before the strict parse; everything else,
// including non-finite junk like "NaN" or "inf", contributes 0.
func sumMealCells(row []grid.Cell, mealIdx []int) float64 {
	var total float64

	for _, idx := range mealIdx {
		cell := grid.At(row, idx)

		switch cell.Kind {
		case grid.Number:
			total += cell.Num
		case grid.Text:
			s := strings.Replace(strings.TrimSpace(cell.Str), ",", ".", 1)
			if n, ok := grid.ParseNumber(s); ok {
				total += n
			}
		}
	}

	return total
}
