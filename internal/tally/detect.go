// =============================================================================
// Monthly Meals Report - Start Row Detection
// =============================================================================
//
// The attendance sheets carry a decorative banner of unknown height above
// the data: titles, month labels, merged header cells. When no explicit
// first-data-row override is configured, DetectStartRow finds the first row
// of real data.
//
// This is a heuristic, not a correctness guarantee. A sheet that deviates
// from the usual layout can be mis-detected and silently produce a
// plausible but wrong tally; the forced first-row configuration is the
// escape hatch for such sheets.
//
// =============================================================================

package tally

import (
	"github.com/Shrimpo22/Refood-Montly-Report/internal/grid"
	"github.com/Shrimpo22/Refood-Montly-Report/internal/names"
)

// bannerThreshold is the row index past which a row with a real name is
// accepted as data even when all its meal columns are blank. Banners on the
// real sheets never extend past the first few rows.
const bannerThreshold = 3

// DetectStartRow scans rows from the top and returns the index of the first
// data row, or ok=false when no row qualifies (callers then fall back to 0).
//
// A row qualifies when its name column normalizes to a non-empty display
// name and either (a) at least one configured meal column is non-empty, or
// (b) the row lies past the banner threshold, which covers people whose
// meal cells happen to be blank that month.
func DetectStartRow(rows [][]grid.Cell, norm *names.Normalizer, nameIdx int, mealIdx []int) (int, bool) {
	for r, row := range rows {
		if norm.ToDisplay(grid.At(row, nameIdx)) == "" {
			continue
		}

		for _, c := range mealIdx {
			if !grid.At(row, c).IsEmpty() {
				return r, true
			}
		}

		if r > bannerThreshold {
			return r, true
		}
	}

	return 0, false
}
