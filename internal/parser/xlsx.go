package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/thiago-r-goveia/promptgen/internal/models"
)

// ReadXLSX streams one worksheet of an OOXML workbook. Rows are read
// through the excelize row iterator, so rows past maxRows are never parsed.
func ReadXLSX(filePath string, sheetIndex, maxRows int) (*models.Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", filePath, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheetIndex < 0 || sheetIndex >= len(sheets) {
		return nil, fmt.Errorf("workbook %s has %d sheets, got index %d: %w", filePath, len(sheets), sheetIndex, ErrSheetOutOfRange)
	}
	sheet := sheets[sheetIndex]

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, filePath, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Error(); err != nil {
			return nil, fmt.Errorf("failed to read header of sheet %q: %w", sheet, err)
		}
		return nil, fmt.Errorf("sheet %q of %s: %w", sheet, filePath, ErrEmptySheet)
	}
	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of sheet %q: %w", sheet, err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("sheet %q of %s: %w", sheet, filePath, ErrEmptySheet)
	}

	// Blank rows are held back until a non-blank row follows them, so styled
	// but empty rows below the data never become records.
	table := &models.Table{Sheet: sheet, Columns: header}
	var pending []models.Record
	for table.Len() < maxRows && rows.Next() {
		cells, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d of sheet %q: %w", table.Len()+len(pending), sheet, err)
		}
		// excelize drops trailing empty cells; those are blanks, not missing fields.
		record := newRecord(table.Len()+len(pending), cells, len(header), true)
		if record.IsBlank() {
			if table.Len()+len(pending) < maxRows {
				pending = append(pending, record)
			}
			continue
		}

		table.Records = append(table.Records, pending...)
		pending = pending[:0]
		if table.Len() < maxRows {
			table.Records = append(table.Records, record)
		}
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate sheet %q: %w", sheet, err)
	}

	return table, nil
}
