package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/thiago-r-goveia/promptgen/internal/models"
)

const maxCellWidth = 48

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Preview renders the first n rows of the result as a bordered table,
// with a leading row-index column. Cells longer than maxCellWidth runes
// are cut with an ellipsis. An empty result renders as "".
func Preview(result *models.ResultTable, n int) string {
	if result == nil || result.Table == nil || result.Len() == 0 || n <= 0 {
		return ""
	}
	if n > result.Len() {
		n = result.Len()
	}

	headers := append([]string{"#"}, result.Header()...)
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		row := []string{fmt.Sprint(result.Records[i].Index)}
		for _, cell := range result.Row(i) {
			row = append(row, truncate(cell, maxCellWidth))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	return fmt.Sprintf("--- First %d rows of %s ---\n%s", n, sheetLabel(result), t.String())
}

func sheetLabel(result *models.ResultTable) string {
	if result.Sheet == "" {
		return "result"
	}
	return fmt.Sprintf("sheet %q", result.Sheet)
}

func truncate(s string, width int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= width {
		return string(runes)
	}
	return string(runes[:width-1]) + "…"
}
