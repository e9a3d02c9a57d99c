// =============================================================================
// Monthly Meals Report - CSV Export
// =============================================================================
//
// Flat serialization of the finalized report: one line per person, the
// "PB" sentinel rendered literally in the Total column.
//
// =============================================================================

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Shrimpo22/Refood-Montly-Report/internal/tally"
)

// csvHeader matches the column order of the on-screen report.
var csvHeader = []string{"Name", "Total", "PB days", "Meal days", "Rows counted"}

// WriteCSV serializes report lines as CSV to w.
func WriteCSV(w io.Writer, lines []tally.ReportLine) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, line := range lines {
		record := []string{
			line.Name,
			line.TotalString(),
			strconv.Itoa(line.PBDays),
			strconv.Itoa(line.MealDays),
			strconv.Itoa(line.RowsSeen),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record for %q: %w", line.Name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
