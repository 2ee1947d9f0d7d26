package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/thiago-r-goveia/promptgen/internal/config"
	"github.com/thiago-r-goveia/promptgen/internal/generation"
	"github.com/thiago-r-goveia/promptgen/internal/logger"
	"github.com/thiago-r-goveia/promptgen/internal/models"
	"github.com/thiago-r-goveia/promptgen/internal/parser"
	"github.com/thiago-r-goveia/promptgen/internal/report"
)

type flagValues struct {
	configPath   string
	source       string
	output       string
	sheet        int
	columns      []string
	maxRows      int
	previewRows  int
	csvDelimiter string
	logMode      string
	logLevel     string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags flagValues

	cmd := &cobra.Command{
		Use:   "promptgen [source]",
		Short: "Turn spreadsheet rows into SIC/SOC classification prompts",
		Long: `promptgen reads rows from one sheet of a spreadsheet, builds a classification
prompt from three columns of each row, prints every prompt and saves them,
one per line, to a text file.

Settings come from defaults, then --config (YAML), then environment variables
(a .env file is loaded if present), then command-line flags.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args, flags)
			if err != nil {
				if errors.Is(err, config.ErrPlaceholderSource) {
					fmt.Fprintln(stderr, "!!! Please set the source spreadsheet path (PROMPT_SOURCE_PATH or --source) before running !!!")
				}
				return err
			}

			generator, log, cleanupFunc, err := setup(cfg, stdout)
			if err != nil {
				return err
			}
			defer cleanup(log, cleanupFunc)

			startTime := time.Now()
			result, err := execute(generator, cfg)
			if err != nil {
				return err
			}

			if preview := report.Preview(result, cfg.PreviewRows); preview != "" {
				fmt.Fprintf(stdout, "\n%s\n", preview)
			}
			log.Info("Execution time", "elapsed", time.Since(startTime).String())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "YAML config file")
	f.StringVarP(&flags.source, "source", "s", "", "spreadsheet to read (.xlsx, .xlsm, .csv)")
	f.StringVarP(&flags.output, "output", "o", "", "prompt file to write (default output/prompts_debug.txt)")
	f.IntVar(&flags.sheet, "sheet", 1, "0-based sheet index")
	f.StringSliceVar(&flags.columns, "columns", nil, "the three prompt columns, in order (default C,D,E)")
	f.IntVar(&flags.maxRows, "max-rows", 100, "maximum number of data rows to read")
	f.IntVar(&flags.previewRows, "preview-rows", 5, "rows of the result to print after the run, 0 to disable")
	f.StringVar(&flags.csvDelimiter, "csv-delimiter", ",", "field delimiter for .csv sources")
	f.StringVar(&flags.logMode, "log-mode", "dev", "log encoding: dev or prod")
	f.StringVar(&flags.logLevel, "log-level", "info", "minimum log level: debug, info, warn or error")

	return cmd
}

// resolveConfig layers explicitly set flags and the positional source over
// the file and environment configuration, then validates the result.
func resolveConfig(cmd *cobra.Command, args []string, flags flagValues) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	changed := cmd.Flags().Changed
	if changed("source") {
		cfg.SourcePath = flags.source
	}
	if len(args) == 1 {
		cfg.SourcePath = args[0]
	}
	if changed("output") {
		cfg.OutputPath = flags.output
	}
	if changed("sheet") {
		cfg.SheetIndex = flags.sheet
	}
	if changed("columns") {
		cfg.PromptColumns = flags.columns
	}
	if changed("max-rows") {
		cfg.MaxRows = flags.maxRows
	}
	if changed("preview-rows") {
		cfg.PreviewRows = flags.previewRows
	}
	if changed("csv-delimiter") {
		cfg.CSVDelimiter = flags.csvDelimiter
	}
	if changed("log-mode") {
		cfg.LogMode = flags.logMode
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setup(cfg *config.Config, stdout io.Writer) (*generation.Generator, *logger.Logger, func(), error) {
	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	generator := generation.NewGenerator(
		parser.NewFileLoader(cfg.Delimiter()),
		generation.PlaceholderResponder,
		stdout,
		log,
	)

	cleanupFunc := func() {
		log.Sync()
	}

	return generator, log, cleanupFunc, nil
}

func execute(generator *generation.Generator, cfg *config.Config) (*models.ResultTable, error) {
	return generator.Generate(generation.Options{
		SourcePath:    cfg.SourcePath,
		OutputPath:    cfg.OutputPath,
		SheetIndex:    cfg.SheetIndex,
		PromptColumns: cfg.PromptColumns,
		MaxRows:       cfg.MaxRows,
	})
}

func cleanup(log *logger.Logger, cleanupFunc func()) {
	log.Debug("Cleaning up resources...")
	cleanupFunc()
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env file: %v\n", err)
	}

	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
