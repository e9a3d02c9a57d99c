package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Shrimpo22/Refood-Montly-Report/internal/grid"
	"github.com/Shrimpo22/Refood-Montly-Report/internal/names"
)

// buildAttendanceBook builds an in-memory workbook in the real sheet layout:
// banner rows on top, names in column E, meal columns I..L.
func buildAttendanceBook(t *testing.T, rows []struct {
	name  string
	meals []any
}) *grid.Workbook {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Monthly Attendance"))
	require.NoError(t, f.SetCellValue("Sheet1", "E2", "Famílias"))

	for i, r := range rows {
		rowNum := i + 3
		require.NoError(t, f.SetCellValue("Sheet1", grid.CellName(rowNum-1, 4), r.name))
		for j, m := range r.meals {
			require.NoError(t, f.SetCellValue("Sheet1", grid.CellName(rowNum-1, 8+j), m))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	wb, err := grid.ReadWorkbook(buf.Bytes())
	require.NoError(t, err)
	return wb
}

func TestRunnerEndToEnd(t *testing.T) {
	wb := buildAttendanceBook(t, []struct {
		name  string
		meals []any
	}{
		{"José Silva", []any{2, 1}},
		{"JOSE SILVA *", []any{"A"}},
		{"Maria", []any{"PB"}},
		{"Maria", []any{"pb"}},
		{"Ana", []any{"1,5"}},
	})

	opts := Options{
		NameColumn:  grid.ColumnIndex("E"),
		MealColumns: []int{8, 9, 10, 11},
	}
	runner := NewRunner(names.New(nil), opts, nil)

	lines, stats := runner.RunWorkbooks([]*grid.Workbook{wb})

	assert.Equal(t, 1, stats.FilesProcessed)
	assert.Equal(t, 1, stats.SheetsScanned)
	assert.Equal(t, 5, stats.RowsIngested)
	assert.Equal(t, 3, stats.PeopleFound)

	byKey := LinesByKey(lines)

	jose := byKey["jose silva"]
	assert.Equal(t, "José Silva", jose.Name)
	assert.Equal(t, 3.0, jose.Total)
	assert.Equal(t, 2, jose.RowsSeen)

	maria := byKey["maria"]
	assert.True(t, maria.PBOnly)
	assert.Equal(t, 2, maria.PBDays)

	ana := byKey["ana"]
	assert.Equal(t, 1.5, ana.Total)
	assert.Equal(t, 1, ana.MealDays)
}

func TestRunnerForcedFirstRow(t *testing.T) {
	wb := buildAttendanceBook(t, []struct {
		name  string
		meals []any
	}{
		{"Maria", []any{1}},
		{"Ana", []any{2}},
	})

	opts := Options{
		NameColumn:   grid.ColumnIndex("E"),
		MealColumns:  []int{8, 9, 10, 11},
		FirstDataRow: 4, // skip the first data row entirely
	}
	runner := NewRunner(names.New(nil), opts, nil)

	lines, stats := runner.RunWorkbooks([]*grid.Workbook{wb})

	assert.Equal(t, 1, stats.RowsIngested)
	require.Len(t, lines, 1)
	assert.Equal(t, "Ana", lines[0].Name)
}

func TestRunnerEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	wb, err := grid.ReadWorkbook(buf.Bytes())
	require.NoError(t, err)

	runner := NewRunner(names.New(nil), Options{MealColumns: []int{8}}, nil)
	lines, stats := runner.RunWorkbooks([]*grid.Workbook{wb})

	assert.Empty(t, lines)
	assert.Equal(t, 0, stats.RowsIngested)
}
