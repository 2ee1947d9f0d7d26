package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/thiago-r-goveia/promptgen/internal/models"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported source format")
	ErrSheetOutOfRange   = errors.New("sheet index out of range")
	ErrEmptySheet        = errors.New("sheet has no header row")
)

// Loader reads up to maxRows data rows from one sheet of a tabular source.
// The first row of the sheet is the header and is not counted.
type Loader interface {
	Load(path string, sheetIndex, maxRows int) (*models.Table, error)
}

// FileLoader picks a reader from the file extension.
type FileLoader struct {
	CSVDelimiter rune
}

func NewFileLoader(csvDelimiter rune) *FileLoader {
	if csvDelimiter == 0 {
		csvDelimiter = ','
	}
	return &FileLoader{CSVDelimiter: csvDelimiter}
}

func (l *FileLoader) Load(path string, sheetIndex, maxRows int) (*models.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("source %s is a directory: %w", path, ErrUnsupportedFormat)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return ReadXLSX(path, sheetIndex, maxRows)
	case ".csv":
		return ReadCSV(path, l.CSVDelimiter, sheetIndex, maxRows)
	default:
		return nil, fmt.Errorf("file %s has extension %q: %w", path, ext, ErrUnsupportedFormat)
	}
}

// newRecord aligns raw cells to a header of the given width. With pad set,
// missing trailing cells become nulls; otherwise the record keeps only the
// fields the source row carried.
func newRecord(index int, cells []string, width int, pad bool) models.Record {
	n := len(cells)
	if n > width {
		n = width
	}
	size := n
	if pad {
		size = width
	}

	fields := make([]models.Value, size)
	for i := 0; i < n; i++ {
		fields[i] = models.ParseValue(cells[i])
	}
	return models.Record{Index: index, Fields: fields}
}
