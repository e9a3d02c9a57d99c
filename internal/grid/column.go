// =============================================================================
// Monthly Meals Report - Column Addressing
// =============================================================================
//
// Spreadsheet-style column letters are the configuration currency of this
// tool: the name column, the meal columns, and the template columns are all
// given as letters ("E", "I,J,K,L"). This module converts between letters
// and 0-based indices.
//
// ColumnIndex is a total function by contract: configuration typos must not
// crash a run, so characters outside A-Z are ignored and anything that
// resolves to nothing maps to column 0.
//
// =============================================================================

package grid

import (
	"strconv"
	"strings"
)

// ColumnIndex converts a column letter to a 0-based index.
// "A" -> 0, "Z" -> 25, "AA" -> 26. Lower case is accepted; characters
// outside A-Z are skipped; empty or fully invalid input yields 0.
func ColumnIndex(letters string) int {
	s := strings.ToUpper(strings.TrimSpace(letters))

	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			continue
		}
		n = n*26 + int(c-'A'+1)
	}

	if n <= 0 {
		return 0
	}
	return n - 1
}

// ColumnIndexes converts a comma-separated list of column letters to
// 0-based indices, preserving order and skipping blank entries.
func ColumnIndexes(list string) []int {
	parts := strings.Split(list, ",")

	idxs := make([]int, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		idxs = append(idxs, ColumnIndex(p))
	}
	return idxs
}

// ColumnName converts a 0-based column index back to letters.
// 0 -> "A", 25 -> "Z", 26 -> "AA".
func ColumnName(col int) string {
	name := ""
	for col >= 0 {
		name = string(rune('A'+col%26)) + name
		col = col/26 - 1
	}
	return name
}

// CellName converts 0-based row and column indices to a cell reference
// (0,0 -> "A1").
func CellName(row, col int) string {
	return ColumnName(col) + strconv.Itoa(row+1)
}
