// =============================================================================
// Monthly Meals Report - Cell Model
// =============================================================================
//
// This module defines the cell value model shared by every part of the
// pipeline. A cell is one of exactly three kinds:
//   - Empty  : the cell is missing or blank
//   - Number : the cell holds a finite numeric value
//   - Text   : anything else
//
// The attendance sheets are manually maintained, so the model is deliberately
// forgiving: a missing cell is Empty, never an error, and a value that does
// not parse as a number is simply Text.
//
// =============================================================================

package grid

import (
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// CELL KINDS
// =============================================================================

// Kind identifies what a cell holds.
type Kind int

const (
	// Empty means the cell is absent or blank.
	Empty Kind = iota

	// Number means the cell holds a finite numeric value.
	Number

	// Text means the cell holds a non-numeric string.
	Text
)

// =============================================================================
// CELL
// =============================================================================

// Cell is a single cell value from a tabular document.
type Cell struct {
	// Kind is the cell kind. The zero value is Empty.
	Kind Kind

	// Num is the numeric value when Kind is Number.
	Num float64

	// Str is the string value when Kind is Text.
	Str string
}

// ParseCell classifies a raw string value from the document reader.
// An empty string yields an Empty cell; a value that parses as a finite
// number yields a Number cell; everything else is Text.
func ParseCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Cell{}
	}

	if n, ok := ParseNumber(trimmed); ok {
		return Cell{Kind: Number, Num: n}
	}

	return Cell{Kind: Text, Str: raw}
}

// ParseNumber parses a strict decimal number: plain or scientific notation
// only. Non-finite values ("NaN", "inf", "Infinity") and Go-only literal
// forms (underscore separators, hex floats) are rejected, so a noisy cell
// degrades to text instead of poisoning a tally with NaN or infinity.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "_xX") {
		return 0, false
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}

	return n, true
}

// NumberCell builds a Number cell. Used mostly by tests and fixtures.
func NumberCell(n float64) Cell {
	return Cell{Kind: Number, Num: n}
}

// TextCell builds a Text cell.
func TextCell(s string) Cell {
	return Cell{Kind: Text, Str: s}
}

// IsEmpty reports whether the cell is Empty.
func (c Cell) IsEmpty() bool {
	return c.Kind == Empty
}

// String renders the cell for display and folding purposes.
// Numbers use the shortest round-trip representation; Empty renders as "".
func (c Cell) String() string {
	switch c.Kind {
	case Number:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case Text:
		return c.Str
	default:
		return ""
	}
}

// At returns the cell at the given column index, treating positions past the
// end of the row as Empty. Rows in the source sheets are ragged, so callers
// must never index a row slice directly.
func At(row []Cell, col int) Cell {
	if col < 0 || col >= len(row) {
		return Cell{}
	}
	return row[col]
}
