package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestColumnIndex(t *testing.T) {
	t.Run("Single Letters", func(t *testing.T) {
		assert.Equal(t, 0, ColumnIndex("A"))
		assert.Equal(t, 4, ColumnIndex("E"))
		assert.Equal(t, 8, ColumnIndex("I"))
		assert.Equal(t, 25, ColumnIndex("Z"))
	})

	t.Run("Multi Letter Columns", func(t *testing.T) {
		assert.Equal(t, 26, ColumnIndex("AA"))
		assert.Equal(t, 27, ColumnIndex("AB"))
		assert.Equal(t, 51, ColumnIndex("AZ"))
		assert.Equal(t, 52, ColumnIndex("BA"))
	})

	t.Run("Case And Whitespace", func(t *testing.T) {
		assert.Equal(t, 4, ColumnIndex("e"))
		assert.Equal(t, 26, ColumnIndex(" aa "))
	})

	t.Run("Junk Is Ignored Not Fatal", func(t *testing.T) {
		// Characters outside A-Z are skipped; a full-junk or empty input
		// degrades to column 0.
		assert.Equal(t, 0, ColumnIndex("A1")) // digit ignored, "A" remains
		assert.Equal(t, 0, ColumnIndex(""))
		assert.Equal(t, 0, ColumnIndex("$%"))
		assert.Equal(t, 8, ColumnIndex("I!"))
	})
}

func TestColumnIndexes(t *testing.T) {
	assert.Equal(t, []int{8, 9, 10, 11}, ColumnIndexes("I,J,K,L"))
	assert.Equal(t, []int{8, 11}, ColumnIndexes("I,,L"))
	assert.Empty(t, ColumnIndexes(""))
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "A", ColumnName(0))
	assert.Equal(t, "Z", ColumnName(25))
	assert.Equal(t, "AA", ColumnName(26))
	assert.Equal(t, "B3", CellName(2, 1))
}

func TestParseCell(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.True(t, ParseCell("").IsEmpty())
		assert.True(t, ParseCell("   ").IsEmpty())
	})

	t.Run("Numbers", func(t *testing.T) {
		c := ParseCell("2")
		assert.Equal(t, Number, c.Kind)
		assert.Equal(t, 2.0, c.Num)

		c = ParseCell(" 2.5 ")
		assert.Equal(t, Number, c.Kind)
		assert.Equal(t, 2.5, c.Num)
	})

	t.Run("Text", func(t *testing.T) {
		c := ParseCell("PB")
		assert.Equal(t, Text, c.Kind)
		assert.Equal(t, "PB", c.Str)
	})

	t.Run("Non Finite Values Are Text", func(t *testing.T) {
		// Only finite numbers count as numeric; "NaN" in a cell is junk,
		// not a number to accumulate.
		for _, raw := range []string{"NaN", "nan", "inf", "+Inf", "-inf", "Infinity"} {
			assert.Equal(t, Text, ParseCell(raw).Kind, "raw %q", raw)
		}
	})

	t.Run("Go Only Literals Are Text", func(t *testing.T) {
		for _, raw := range []string{"1_000", "0x10", "0x1p4"} {
			assert.Equal(t, Text, ParseCell(raw).Kind, "raw %q", raw)
		}
	})

	t.Run("String Rendering", func(t *testing.T) {
		assert.Equal(t, "2.5", ParseCell("2.5").String())
		assert.Equal(t, "2", ParseCell("2").String())
		assert.Equal(t, "", Cell{}.String())
	})
}

func TestParseNumber(t *testing.T) {
	t.Run("Plain And Scientific Decimals", func(t *testing.T) {
		for raw, want := range map[string]float64{
			"2":     2,
			" 2.5 ": 2.5,
			"-1":    -1,
			"1e3":   1000,
		} {
			n, ok := ParseNumber(raw)
			assert.True(t, ok, "raw %q", raw)
			assert.Equal(t, want, n, "raw %q", raw)
		}
	})

	t.Run("Rejected Forms", func(t *testing.T) {
		for _, raw := range []string{"", "  ", "two", "NaN", "inf", "-Inf", "Infinity", "1_000", "0x1p4"} {
			n, ok := ParseNumber(raw)
			assert.False(t, ok, "raw %q", raw)
			assert.Equal(t, 0.0, n, "raw %q", raw)
		}
	})
}

func TestAt(t *testing.T) {
	row := []Cell{TextCell("a"), NumberCell(1)}

	assert.Equal(t, "a", At(row, 0).Str)
	assert.True(t, At(row, 5).IsEmpty(), "past the ragged row end is Empty")
	assert.True(t, At(row, -1).IsEmpty())
}

func TestReadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Attendance"))
	require.NoError(t, f.SetCellValue("Sheet1", "B3", "Maria"))
	require.NoError(t, f.SetCellValue("Sheet1", "C3", 2))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	wb, err := ReadWorkbook(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 1)

	sheet := wb.Sheets[0]
	assert.Equal(t, "Sheet1", sheet.Name)
	assert.Equal(t, "Attendance", At(sheet.Rows[0], 0).Str)
	assert.Equal(t, "Maria", At(sheet.Rows[2], 1).Str)
	assert.Equal(t, 2.0, At(sheet.Rows[2], 2).Num)

	// Missing cells are Empty, never an error.
	assert.True(t, At(sheet.Rows[0], 7).IsEmpty())
}
