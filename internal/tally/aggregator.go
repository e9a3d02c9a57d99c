// =============================================================================
// Monthly Meals Report - Aggregator
// =============================================================================
//
// The Aggregator owns the per-person running records for one run. Rows
// stream in through Ingest; Finalize turns the completed records into
// report lines and the Aggregator is discarded. No state survives a run,
// so two runs can never contaminate each other.
//
// PRECEDENCE PER ROW:
//   PackedLunch : pbDays++, no meal contribution
//   Absent      : row counted, nothing else
//   Meal(n)     : totalMeals += n; a positive n also counts as a meal day
//
// The "PB" sentinel is resolved only at finalization: a person whose rows
// were exclusively packed-lunch days reports "PB" instead of a number.
//
// =============================================================================

package tally

import (
	"strconv"

	"github.com/Shrimpo22/Refood-Montly-Report/internal/grid"
	"github.com/Shrimpo22/Refood-Montly-Report/internal/names"
)

// =============================================================================
// PERSON RECORD
// =============================================================================

// personRecord is the running state for one identity key.
// rowsSeen always equals pbDays + absent rows + meal rows, and totalMeals
// only ever increases.
type personRecord struct {
	displayName     string
	totalMeals      float64
	pbDays          int
	mealDays        int
	rowsSeen        int
	everNumericMeal bool
	everPackedLunch bool
}

// =============================================================================
// REPORT LINE
// =============================================================================

// ReportLine is the finalized, immutable result for one person.
type ReportLine struct {
	// Key is the identity key the person was aggregated under.
	Key string

	// Name is the best display spelling seen for this person.
	Name string

	// Total is the accumulated numeric meal count. It is 0 when PBOnly.
	Total float64

	// PBOnly marks a person whose only attendance was packed-lunch days;
	// such a person reports the "PB" sentinel instead of a number.
	PBOnly bool

	// PBDays is the number of packed-lunch rows.
	PBDays int

	// MealDays is the number of rows with a positive meal total.
	MealDays int

	// RowsSeen is the number of rows attributed to this person.
	RowsSeen int
}

// TotalString renders the total for reports: "PB" for a packed-lunch-only
// person, otherwise the number without a trailing ".0".
func (l ReportLine) TotalString() string {
	if l.PBOnly {
		return "PB"
	}
	return strconv.FormatFloat(l.Total, 'f', -1, 64)
}

// =============================================================================
// AGGREGATOR
// =============================================================================

// Aggregator accumulates per-person records for a single run.
type Aggregator struct {
	norm    *names.Normalizer
	records map[string]*personRecord
	order   []string // keys in first-seen order, for deterministic output
}

// NewAggregator builds an empty Aggregator using the given normalizer.
func NewAggregator(norm *names.Normalizer) *Aggregator {
	return &Aggregator{
		norm:    norm,
		records: make(map[string]*personRecord),
	}
}

// Ingest attributes one row to a person and folds its classification into
// the running record. Rows whose name cell does not normalize to a display
// name are skipped entirely. It reports whether the row was ingested.
// Calling Ingest after Finalize is a programming error and panics.
func (a *Aggregator) Ingest(row []grid.Cell, nameIdx int, mealIdx []int) bool {
	if a.records == nil {
		panic("tally: Ingest called after Finalize")
	}

	display := a.norm.ToDisplay(grid.At(row, nameIdx))
	if display == "" {
		return false
	}
	key := names.ToKey(display)

	rec, ok := a.records[key]
	if !ok {
		rec = &personRecord{displayName: display}
		a.records[key] = rec
		a.order = append(a.order, key)
	} else {
		rec.displayName = names.ChooseBetterDisplay(rec.displayName, display)
	}

	rec.rowsSeen++

	switch cls := Classify(row, mealIdx); cls.Status {
	case PackedLunch:
		rec.pbDays++
		rec.everPackedLunch = true
	case Absent:
		// Counted, contributes nothing.
	case Meal:
		rec.totalMeals += cls.Total
		if cls.Total > 0 {
			rec.mealDays++
			rec.everNumericMeal = true
		}
	}

	return true
}

// IngestSheet streams every row of a sheet snapshot from startRow on.
// It returns the number of rows ingested and the number skipped.
func (a *Aggregator) IngestSheet(sheet grid.Sheet, startRow, nameIdx int, mealIdx []int) (ingested, skipped int) {
	for r := startRow; r < len(sheet.Rows); r++ {
		if a.Ingest(sheet.Rows[r], nameIdx, mealIdx) {
			ingested++
		} else {
			skipped++
		}
	}
	return ingested, skipped
}

// Finalize converts the completed records into report lines in first-seen
// order. The Aggregator must not be used afterwards.
func (a *Aggregator) Finalize() []ReportLine {
	lines := make([]ReportLine, 0, len(a.order))

	for _, key := range a.order {
		rec := a.records[key]

		lines = append(lines, ReportLine{
			Key:      key,
			Name:     rec.displayName,
			Total:    rec.totalMeals,
			PBOnly:   rec.everPackedLunch && !rec.everNumericMeal && rec.totalMeals == 0,
			PBDays:   rec.pbDays,
			MealDays: rec.mealDays,
			RowsSeen: rec.rowsSeen,
		})
	}

	a.records = nil
	a.order = nil

	return lines
}

// LinesByKey indexes finalized report lines by identity key.
func LinesByKey(lines []ReportLine) map[string]ReportLine {
	byKey := make(map[string]ReportLine, len(lines))
	for _, l := range lines {
		byKey[l.Key] = l
	}
	return byKey
}
