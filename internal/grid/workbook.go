// =============================================================================
// Monthly Meals Report - Workbook Reader
// =============================================================================
//
// This module is the read side of the tabular-document I/O boundary. It
// opens an xlsx workbook with excelize and snapshots every sheet into a
// [][]Cell grid in sheet order. Missing cells come back Empty, never as an
// error, which is the contract the rest of the pipeline relies on.
//
// The write side (overwriting a report template) lives in the reconcile
// package, which works directly on the excelize file so that the untouched
// parts of the document are re-serialized byte-for-byte.
//
// =============================================================================

package grid

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// =============================================================================
// SHEET AND WORKBOOK
// =============================================================================

// Sheet is an immutable snapshot of one worksheet.
type Sheet struct {
	// Name is the worksheet name as stored in the document.
	Name string

	// Rows holds the cell grid. Rows may be ragged; use At for access.
	Rows [][]Cell
}

// Workbook is an ordered collection of sheet snapshots from one document.
type Workbook struct {
	// Path is the source file path, kept for log and error messages.
	Path string

	// Sheets are the worksheets in document order.
	Sheets []Sheet
}

// =============================================================================
// READERS
// =============================================================================

// OpenWorkbook reads an xlsx file from disk and snapshots all its sheets.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	wb, err := snapshot(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	wb.Path = path

	return wb, nil
}

// ReadWorkbook reads an xlsx document from raw bytes. Used by tests and by
// callers that already hold the document in memory.
func ReadWorkbook(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook from bytes: %w", err)
	}
	defer f.Close()

	return snapshot(f)
}

// snapshot walks every sheet of an open excelize file and converts the raw
// string cells into typed Cell values.
func snapshot(f *excelize.File) (*Workbook, error) {
	wb := &Workbook{}

	for _, name := range f.GetSheetList() {
		raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}

		sheet := Sheet{Name: name, Rows: make([][]Cell, len(raw))}
		for r, rawRow := range raw {
			row := make([]Cell, len(rawRow))
			for c, value := range rawRow {
				row[c] = ParseCell(value)
			}
			sheet.Rows[r] = row
		}

		wb.Sheets = append(wb.Sheets, sheet)
	}

	return wb, nil
}
