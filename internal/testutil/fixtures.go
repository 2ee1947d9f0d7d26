// Package testutil builds spreadsheet fixtures for tests.
package testutil

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet of a fixture workbook. The first row is the header.
// A nil cell is written as an empty cell.
type Sheet struct {
	Name string
	Rows [][]any
}

// WriteWorkbook saves the sheets, in order, to dir/name and returns the path.
func WriteWorkbook(t *testing.T, dir, name string, sheets ...Sheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		switch {
		case i == 0 && sheet.Name != "Sheet1":
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				t.Fatalf("failed to rename first sheet: %v", err)
			}
		case i > 0:
			if _, err := f.NewSheet(sheet.Name); err != nil {
				t.Fatalf("failed to add sheet %s: %v", sheet.Name, err)
			}
		}

		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("invalid row %d: %v", r, err)
			}
			values := row
			if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
				t.Fatalf("failed to write row %d of %s: %v", r, sheet.Name, err)
			}
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook %s: %v", path, err)
	}
	return path
}

// FillRange gives the cells from..to of a saved workbook a solid fill without
// writing any values, the way a formatted but unused area looks.
func FillRange(t *testing.T, path, sheet, from, to string) {
	t.Helper()

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook %s: %v", path, err)
	}
	defer f.Close()

	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFFF00"}, Pattern: 1},
	})
	if err != nil {
		t.Fatalf("failed to create style: %v", err)
	}
	if err := f.SetCellStyle(sheet, from, to, style); err != nil {
		t.Fatalf("failed to style %s:%s: %v", from, to, err)
	}
	if err := f.Save(); err != nil {
		t.Fatalf("failed to save workbook %s: %v", path, err)
	}
}

// EmploymentSheet is a header in C/D/E form followed by the given rows.
func EmploymentSheet(name string, rows ...[]any) Sheet {
	all := [][]any{{"A", "B", "C", "D", "E"}}
	all = append(all, rows...)
	return Sheet{Name: name, Rows: all}
}

func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}
	return path
}

// ReadLines returns the newline-terminated lines of a file.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("failed to scan %s: %v", path, err)
	}
	return lines
}
