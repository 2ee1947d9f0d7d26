package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thiago-r-goveia/promptgen/internal/models"
)

func newResult(rows int, augmented bool) *models.ResultTable {
	table := &models.Table{Sheet: "Employment", Columns: []string{"C", "D", "E"}}
	result := &models.ResultTable{Table: table}
	for i := 0; i < rows; i++ {
		table.Records = append(table.Records, models.Record{
			Index:  i,
			Fields: []models.Value{models.ParseValue("Librarian"), models.ParseValue(""), models.ParseValue("Education")},
		})
		if augmented {
			result.Prompts = append(result.Prompts, "Given this information about a person's employment, assign a SIC and SOC code - Librarian, , Education.")
			result.Responses = append(result.Responses, models.PendingResponse(i))
		}
	}
	return result
}

func TestPreview(t *testing.T) {
	t.Run("Augmented", func(t *testing.T) {
		out := Preview(newResult(7, true), 5)

		assert.True(t, strings.HasPrefix(out, `--- First 5 rows of sheet "Employment" ---`))
		assert.Contains(t, out, models.GeneratedPromptColumn)
		assert.Contains(t, out, models.ResponseColumn)
		assert.Contains(t, out, "Librarian")
		assert.Contains(t, out, "{SIC: PENDING, SOC: PENDING, Row: 4}")
		assert.NotContains(t, out, "Row: 5}")
		assert.Contains(t, out, "…")
	})

	t.Run("Unaugmented", func(t *testing.T) {
		out := Preview(newResult(2, false), 5)

		assert.Contains(t, out, "First 2 rows")
		assert.NotContains(t, out, models.GeneratedPromptColumn)
	})

	t.Run("Disabled", func(t *testing.T) {
		assert.Empty(t, Preview(newResult(2, true), 0))
		assert.Empty(t, Preview(nil, 5))
	})

	t.Run("No rows", func(t *testing.T) {
		assert.Empty(t, Preview(newResult(0, true), 5))
		assert.Empty(t, Preview(newResult(0, false), 5))
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "ééé…", truncate("éééééé", 4))
}
