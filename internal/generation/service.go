package generation

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/thiago-r-goveia/promptgen/internal/logger"
	"github.com/thiago-r-goveia/promptgen/internal/models"
	"github.com/thiago-r-goveia/promptgen/internal/parser"
	"github.com/thiago-r-goveia/promptgen/pkg/checksum"
)

// Options are the arguments of a single generation run.
type Options struct {
	SourcePath    string
	OutputPath    string
	SheetIndex    int
	PromptColumns []string
	MaxRows       int
}

func (o Options) Validate() error {
	var problem string
	switch {
	case o.SourcePath == "":
		problem = "source path is empty"
	case o.OutputPath == "":
		problem = "output path is empty"
	case len(o.PromptColumns) != 3:
		problem = fmt.Sprintf("exactly 3 prompt columns are required, got %d", len(o.PromptColumns))
	case o.MaxRows < 1:
		problem = fmt.Sprintf("max rows must be at least 1, got %d", o.MaxRows)
	case o.SheetIndex < 0:
		problem = fmt.Sprintf("sheet index must not be negative, got %d", o.SheetIndex)
	default:
		return nil
	}
	return &Error{Kind: ErrInvalidOptions, Err: errors.New(problem)}
}

type Generator struct {
	loader    parser.Loader
	responder Responder
	progress  io.Writer
	logger    *logger.Logger
}

// NewGenerator wires a generator. A nil responder falls back to
// PlaceholderResponder, a nil progress writer discards the progress stream.
// Progress is best-effort: a failing writer is logged once and the run goes on.
func NewGenerator(loader parser.Loader, responder Responder, progress io.Writer, log *logger.Logger) *Generator {
	if responder == nil {
		responder = PlaceholderResponder
	}
	if progress == nil {
		progress = io.Discard
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{
		loader:    loader,
		responder: responder,
		progress:  progress,
		logger:    log,
	}
}

// Generate runs the load, validate, transform, emit and augment steps.
// Any error is fatal and comes with a nil result. Rows missing a prompt field
// are skipped with a warning, and if any row was skipped the table is returned
// without the prompt and response columns.
func (g *Generator) Generate(opts Options) (*models.ResultTable, error) {
	runID := uuid.NewString()
	log := g.logger.With("run_id", runID)

	if err := opts.Validate(); err != nil {
		return nil, g.fail(log, err)
	}
	log.Info("Starting prompt generation", "source", opts.SourcePath, "output", opts.OutputPath)

	// Step 1: Read the sheet, bounded by MaxRows.
	table, err := g.loader.Load(opts.SourcePath, opts.SheetIndex, opts.MaxRows)
	if err != nil {
		return nil, g.fail(log, classifyLoadError(opts.SourcePath, err))
	}
	log.Info("Read rows from sheet", "rows", table.Len(), "sheet_index", opts.SheetIndex, "sheet", table.Sheet)

	// Step 2: Every prompt column must be in the header before anything is written.
	if missing := table.MissingColumns(opts.PromptColumns); len(missing) > 0 {
		return nil, g.fail(log, &Error{Kind: ErrSchemaMismatch, Path: opts.SourcePath, Missing: missing})
	}
	positions := make([]int, len(opts.PromptColumns))
	for i, name := range opts.PromptColumns {
		positions[i], _ = table.ColumnIndex(name)
	}

	result := &models.ResultTable{Table: table}
	result.Stats.RunID = runID
	result.Stats.RowsRead = table.Len()
	if sum, err := checksum.GetFileChecksum(opts.SourcePath); err != nil {
		log.Warn("Could not checksum source", "source", opts.SourcePath, "error", err)
	} else {
		result.Stats.SourceChecksum = sum
	}

	// Step 3: Prepare the output file. It is truncated on every run.
	created, err := ensureOutputDir(opts.OutputPath)
	if err != nil {
		return nil, g.fail(log, &Error{Kind: ErrOutputWrite, Path: opts.OutputPath, Err: err})
	}
	if created {
		log.Info("Created output directory", "dir", filepath.Dir(opts.OutputPath))
	}
	out, err := createPromptFile(opts.OutputPath)
	if err != nil {
		return nil, g.fail(log, &Error{Kind: ErrOutputWrite, Path: opts.OutputPath, Err: err})
	}
	defer out.Close()

	// Step 4: Build, print and write one prompt per row, in source order.
	prompts := make([]string, 0, table.Len())
	responses := make([]models.Response, 0, table.Len())
	progressFailed := false
	for _, record := range table.Records {
		values, err := promptValues(record, positions, opts.PromptColumns)
		if err != nil {
			warning := models.AppError{Row: record.Index, Message: "Row has fewer fields than the prompt columns require", Err: err}
			log.Warn("Skipping row", "row", record.Index, "error", warning.Error())
			result.Warnings = append(result.Warnings, warning)
			continue
		}

		prompt := BuildPrompt(values[0], values[1], values[2])
		prompts = append(prompts, prompt)
		if _, err := fmt.Fprintf(g.progress, "Row %d: %s\n", record.Index, prompt); err != nil && !progressFailed {
			log.Warn("Could not write progress line", "row", record.Index, "error", err)
			progressFailed = true
		}

		if err := out.WriteLine(prompt); err != nil {
			return nil, g.fail(log, &Error{Kind: ErrOutputWrite, Path: opts.OutputPath, Err: err})
		}

		responses = append(responses, g.responder.Respond(record, prompt))
	}

	if err := out.Close(); err != nil {
		return nil, g.fail(log, &Error{Kind: ErrOutputWrite, Path: opts.OutputPath, Err: err})
	}
	result.Stats.PromptsWritten = out.lines
	result.Stats.RowsSkipped = len(result.Warnings)
	result.Stats.OutputChecksum = out.Checksum()

	// Step 5: Attach the new columns only if every row produced a prompt.
	if len(prompts) == table.Len() {
		result.Prompts = prompts
		result.Responses = responses
	} else {
		log.Warn("Number of generated prompts does not match table rows, skipping column addition",
			"prompts", len(prompts), "rows", table.Len())
	}

	log.Info("Prompt generation complete",
		"output", opts.OutputPath,
		"rows_read", result.Stats.RowsRead,
		"prompts_written", result.Stats.PromptsWritten,
		"rows_skipped", result.Stats.RowsSkipped,
		"output_checksum", result.Stats.OutputChecksum,
	)
	return result, nil
}

func (g *Generator) fail(log *logger.Logger, err error) error {
	log.Error("Prompt generation failed", "error", err.Error())
	return err
}

func classifyLoadError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &Error{Kind: ErrSourceNotFound, Path: path, Err: err}
	}
	return &Error{Kind: ErrSourceRead, Path: path, Err: err}
}

// promptValues returns the prompt-ready text of the record's prompt fields.
// Null values become "", and a field the row does not carry is an error.
func promptValues(record models.Record, positions []int, names []string) ([]string, error) {
	values := make([]string, len(positions))
	for i, pos := range positions {
		v, ok := record.Field(pos)
		if !ok {
			return nil, fmt.Errorf("%w: column %q is not present (row has %d fields)", ErrRowSkipped, names[i], len(record.Fields))
		}
		values[i] = v.String()
	}
	return values, nil
}
