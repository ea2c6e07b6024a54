// Package config provides configuration loading and validation for the CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/cvcheck/internal/dates"
	"github.com/jonathan/cvcheck/internal/types"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Output formats for diagnostics
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Log formats
const (
	LogConsole = "console"
	LogJSON    = "json"
)

// envPrefix namespaces the environment variables read by ApplyEnv
const envPrefix = "CVCHECK_"

// Config represents the CLI configuration that can be loaded from a YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Dates
	CurrentDate    string `yaml:"current_date,omitempty"`    // Reference date (YYYY-MM-DD) when the document has none
	SpanArithmetic string `yaml:"span_arithmetic,omitempty"` // calendar or legacy

	// Logging
	LogLevel  string `yaml:"log_level,omitempty"`  // zerolog level name
	LogFormat string `yaml:"log_format,omitempty"` // console or json

	// Output
	Output string `yaml:"output,omitempty"` // text or json
	Width  int    `yaml:"width,omitempty"`  // Wrap width of diagnostic text, 0 disables wrapping
	Color  *bool  `yaml:"color,omitempty"`  // Colored diagnostics

	// Behavior
	Jobs      int               `yaml:"jobs,omitempty"`      // Files validated concurrently
	Overrides map[string]string `yaml:"overrides,omitempty"` // Applied to every document
}

// Defaults returns the values used when neither a file, the environment, nor
// a flag sets a field.
func Defaults() Config {
	color := false
	return Config{
		SpanArithmetic: dates.SpanCalendar.String(),
		LogLevel:       zerolog.WarnLevel.String(),
		LogFormat:      LogConsole,
		Output:         OutputText,
		Width:          78,
		Color:          &color,
		Jobs:           4,
	}
}

// LoadConfig loads configuration from a YAML file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.CurrentDate != "" {
		if _, ok := types.ParseCurrentDate(c.CurrentDate); !ok {
			return fmt.Errorf("config error: 'current_date' must be a YYYY-MM-DD date, got %q", c.CurrentDate)
		}
	}
	if _, err := dates.ParseSpanMode(c.SpanArithmetic); err != nil {
		return fmt.Errorf("config error: 'span_arithmetic': %w", err)
	}
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config error: 'log_level': %w", err)
		}
	}

	switch c.LogFormat {
	case "", LogConsole, LogJSON:
	default:
		return fmt.Errorf("config error: 'log_format' must be console or json, got %q", c.LogFormat)
	}
	switch c.Output {
	case "", OutputText, OutputJSON:
	default:
		return fmt.Errorf("config error: 'output' must be text or json, got %q", c.Output)
	}

	// Validate numeric ranges
	if c.Width < 0 {
		return fmt.Errorf("config error: 'width' must be non-negative")
	}
	if c.Jobs < 0 {
		return fmt.Errorf("config error: 'jobs' must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.CurrentDate == "" {
		result.CurrentDate = defaults.CurrentDate
	}
	if result.SpanArithmetic == "" {
		result.SpanArithmetic = defaults.SpanArithmetic
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}

	// Int fields: use default if zero
	if result.Width == 0 {
		result.Width = defaults.Width
	}
	if result.Jobs == 0 {
		result.Jobs = defaults.Jobs
	}

	// Color is a pointer so an explicit false survives the merge
	if result.Color == nil {
		result.Color = defaults.Color
	}

	// Overrides: defaults first, ours win
	if len(defaults.Overrides) > 0 {
		merged := make(map[string]string, len(defaults.Overrides)+len(result.Overrides))
		for k, v := range defaults.Overrides {
			merged[k] = v
		}
		for k, v := range result.Overrides {
			merged[k] = v
		}
		result.Overrides = merged
	}

	return result
}

// ApplyEnv applies CVCHECK_* environment variables to the config.
// Environment variables always override file-based configuration.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(envPrefix + "CURRENT_DATE"); v != "" {
		c.CurrentDate = v
	}
	if v := os.Getenv(envPrefix + "SPAN_ARITHMETIC"); v != "" {
		c.SpanArithmetic = v
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(envPrefix + "LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv(envPrefix + "OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv(envPrefix + "WIDTH"); v != "" {
		if width, err := strconv.Atoi(v); err == nil {
			c.Width = width
		}
	}
	if v := os.Getenv(envPrefix + "JOBS"); v != "" {
		if jobs, err := strconv.Atoi(v); err == nil {
			c.Jobs = jobs
		}
	}
	if v := os.Getenv(envPrefix + "COLOR"); v != "" {
		if color, err := strconv.ParseBool(v); err == nil {
			c.Color = &color
		}
	}
}

// SpanMode returns the parsed span arithmetic. Call Validate first.
func (c *Config) SpanMode() dates.SpanMode {
	mode, _ := dates.ParseSpanMode(c.SpanArithmetic)
	return mode
}

// Level returns the parsed log level, warn when unset or invalid.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.WarnLevel
	}
	return level
}

// ColorEnabled reports whether diagnostics should be colored.
func (c *Config) ColorEnabled() bool {
	return c.Color != nil && *c.Color
}
