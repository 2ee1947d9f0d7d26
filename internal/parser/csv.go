package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thiago-r-goveia/promptgen/internal/models"
)

// ReadCSV reads a delimited text file as a single-sheet table. Rows shorter
// than the header are kept short so the missing fields stay inaccessible.
func ReadCSV(filePath string, comma rune, sheetIndex, maxRows int) (*models.Table, error) {
	if sheetIndex != 0 {
		return nil, fmt.Errorf("csv file %s has a single sheet, got index %d: %w", filePath, sheetIndex, ErrSheetOutOfRange)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("file %s is empty: %w", filePath, ErrEmptySheet)
		}
		return nil, fmt.Errorf("failed to read header from %s: %w", filePath, err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	table := &models.Table{Sheet: "csv", Columns: header}
	for table.Len() < maxRows {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d from %s: %w", table.Len(), filePath, err)
		}
		table.Records = append(table.Records, newRecord(table.Len(), record, len(header), false))
	}

	return table, nil
}
