package models

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	GeneratedPromptColumn = "GeneratedPrompt"
	ResponseColumn        = "LLM_Response"

	ResponsePending = "PENDING"
)

type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "null"
	}
}

// nullMarkers are cell texts treated as missing values, matching what
// spreadsheet tooling usually writes for an empty or errored cell.
var nullMarkers = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"#N/A": {},
	"NaN":  {},
	"nan":  {},
	"NULL": {},
	"null": {},
}

// Value is a single scalar cell. Text holds the source text verbatim so
// numbers render the way the spreadsheet displayed them.
type Value struct {
	Kind   Kind
	Text   string
	Number float64
}

// ParseValue classifies raw cell text. Null markers match exactly, so a
// whitespace-only cell stays a string.
func ParseValue(raw string) Value {
	if _, isNull := nullMarkers[raw]; isNull {
		return Value{Kind: KindNull}
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return Value{Kind: KindNumber, Text: raw, Number: n}
	}
	return Value{Kind: KindString, Text: raw}
}

func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// String returns the prompt-ready text of the value; nulls become "".
func (v Value) String() string {
	if v.IsNull() {
		return ""
	}
	return v.Text
}

// Record is one data row. Fields is aligned to the table columns but may be
// shorter than the header when the source row did not carry every field.
type Record struct {
	Index  int
	Fields []Value
}

// Field returns the value at column position i and whether the row carries it.
func (r Record) Field(i int) (Value, bool) {
	if i < 0 || i >= len(r.Fields) {
		return Value{}, false
	}
	return r.Fields[i], true
}

// IsBlank reports whether every field of the row is null.
func (r Record) IsBlank() bool {
	for _, v := range r.Fields {
		if !v.IsNull() {
			return false
		}
	}
	return true
}

type Table struct {
	Sheet   string
	Columns []string
	Records []Record
}

func (t *Table) Len() int {
	return len(t.Records)
}

func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, col := range t.Columns {
		if col == name {
			return i, true
		}
	}
	return -1, false
}

// MissingColumns returns the names from the list that are not in the header,
// in the order they were requested.
func (t *Table) MissingColumns(names []string) []string {
	var missing []string
	for _, name := range names {
		if _, ok := t.ColumnIndex(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Response is the slot a downstream classifier fills in for a row.
type Response struct {
	SIC string `json:"SIC" yaml:"SIC"`
	SOC string `json:"SOC" yaml:"SOC"`
	Row int    `json:"Row" yaml:"Row"`
}

func PendingResponse(row int) Response {
	return Response{SIC: ResponsePending, SOC: ResponsePending, Row: row}
}

func (r Response) IsPending() bool {
	return r.SIC == ResponsePending && r.SOC == ResponsePending
}

func (r Response) String() string {
	return fmt.Sprintf("{SIC: %s, SOC: %s, Row: %d}", r.SIC, r.SOC, r.Row)
}

type RunStats struct {
	RunID          string
	RowsRead       int
	PromptsWritten int
	RowsSkipped    int
	SourceChecksum string
	OutputChecksum string
}

// ResultTable is the loaded table plus, when every row produced a prompt,
// the GeneratedPrompt and LLM_Response columns.
type ResultTable struct {
	*Table
	Prompts   []string
	Responses []Response
	Warnings  []AppError
	Stats     RunStats
}

// Augmented reports whether the prompt and response columns were attached.
func (r *ResultTable) Augmented() bool {
	return r.Prompts != nil && len(r.Prompts) == r.Len() && len(r.Responses) == r.Len()
}

func (r *ResultTable) Header() []string {
	header := append([]string(nil), r.Columns...)
	if r.Augmented() {
		header = append(header, GeneratedPromptColumn, ResponseColumn)
	}
	return header
}

// Row renders record i as display strings aligned to Header.
func (r *ResultTable) Row(i int) []string {
	rec := r.Records[i]
	row := make([]string, 0, len(r.Columns)+2)
	for col := range r.Columns {
		v, _ := rec.Field(col)
		row = append(row, v.String())
	}
	if r.Augmented() {
		row = append(row, r.Prompts[i], r.Responses[i].String())
	}
	return row
}
