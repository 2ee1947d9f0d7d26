package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// PlaceholderSourcePath is the value shipped in sample configs. Running
// against it means nobody pointed the tool at a real workbook yet.
const PlaceholderSourcePath = "path/to/your/input_data.xlsx"

var ErrPlaceholderSource = errors.New("source path is not set")

type Config struct {
	SourcePath    string   `yaml:"source_path"`
	OutputPath    string   `yaml:"output_path"`
	SheetIndex    int      `yaml:"sheet_index"`
	PromptColumns []string `yaml:"prompt_columns"`
	MaxRows       int      `yaml:"max_rows"`
	CSVDelimiter  string   `yaml:"csv_delimiter"`
	PreviewRows   int      `yaml:"preview_rows"`
	LogMode       string   `yaml:"log_mode"`
	LogLevel      string   `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		SourcePath:    PlaceholderSourcePath,
		OutputPath:    "output/prompts_debug.txt",
		SheetIndex:    1,
		PromptColumns: []string{"C", "D", "E"},
		MaxRows:       100,
		CSVDelimiter:  ",",
		PreviewRows:   5,
		LogMode:       "dev",
		LogLevel:      "info",
	}
}

// New builds the configuration from defaults and environment variables.
func New() (*Config, error) {
	return Load("")
}

// Load layers defaults, then the YAML file at path (if non-empty), then
// environment variables. The result is not validated; call Validate once
// command-line overrides are applied.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.SourcePath = getEnv("PROMPT_SOURCE_PATH", cfg.SourcePath)
	cfg.OutputPath = getEnv("PROMPT_OUTPUT_PATH", cfg.OutputPath)
	cfg.PromptColumns = getEnvAsList("PROMPT_COLUMNS", cfg.PromptColumns)
	cfg.CSVDelimiter = getEnv("PROMPT_CSV_DELIMITER", cfg.CSVDelimiter)
	cfg.LogMode = getEnv("LOG_MODE", cfg.LogMode)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	var err error
	cfg.SheetIndex, err = getEnvAsInt("PROMPT_SHEET_INDEX", cfg.SheetIndex)
	if err != nil {
		return nil, err
	}

	cfg.MaxRows, err = getEnvAsInt("PROMPT_MAX_ROWS", cfg.MaxRows)
	if err != nil {
		return nil, err
	}

	cfg.PreviewRows, err = getEnvAsInt("PREVIEW_ROWS", cfg.PreviewRows)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SourcePath == "" || c.SourcePath == PlaceholderSourcePath {
		return fmt.Errorf("%w: point PROMPT_SOURCE_PATH or --source at your spreadsheet", ErrPlaceholderSource)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if len(c.PromptColumns) != 3 {
		return fmt.Errorf("exactly 3 prompt columns are required, got %d: %v", len(c.PromptColumns), c.PromptColumns)
	}
	if c.SheetIndex < 0 {
		return fmt.Errorf("sheet index must not be negative, got %d", c.SheetIndex)
	}
	if c.MaxRows < 1 {
		return fmt.Errorf("max rows must be at least 1, got %d", c.MaxRows)
	}
	if c.PreviewRows < 0 {
		return fmt.Errorf("preview rows must not be negative, got %d", c.PreviewRows)
	}
	if utf8.RuneCountInString(c.CSVDelimiter) != 1 {
		return fmt.Errorf("csv delimiter must be a single character, got %q", c.CSVDelimiter)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

// Delimiter returns the CSV delimiter as a rune; Validate guarantees it is one.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSVDelimiter)
	return r
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: expected an integer, got '%s'", key, valueStr)
	}

	return value, nil
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		values = append(values, strings.TrimSpace(part))
	}
	return values
}
