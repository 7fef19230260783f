// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/jobclean/internal/retry"
)

// DefaultOutDir is where results are written when neither flag nor config names a directory
const DefaultOutDir = "out"

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Inputs []string `json:"inputs,omitempty" yaml:"inputs" validate:"dive,required"` // Job batch files to clean
	OutDir string   `json:"out_dir,omitempty" yaml:"out_dir"`                        // Output directory

	// Storage
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url"` // PostgreSQL connection URL

	// Behavior
	Verbose  bool `json:"verbose,omitempty" yaml:"verbose"`     // Debug logging and boxed summaries
	Quiet    bool `json:"quiet,omitempty" yaml:"quiet"`         // Only log errors
	JSONLogs bool `json:"json_logs,omitempty" yaml:"json_logs"` // Emit logs as JSON

	Retry RetryConfig `json:"retry,omitempty" yaml:"retry"`
}

// RetryConfig controls backoff for database operations
type RetryConfig struct {
	MaxRetries     *int    `json:"max_retries,omitempty" yaml:"max_retries" validate:"omitempty,gte=0,lte=20"`
	InitialDelayMS int     `json:"initial_delay_ms,omitempty" yaml:"initial_delay_ms" validate:"gte=0"`
	MaxDelayMS     int     `json:"max_delay_ms,omitempty" yaml:"max_delay_ms" validate:"gte=0"`
	Multiplier     float64 `json:"multiplier,omitempty" yaml:"multiplier" validate:"omitempty,gte=1"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Defaults returns the built-in configuration
func Defaults() Config {
	p := retry.DefaultPolicy()
	maxRetries := p.MaxRetries
	return Config{
		OutDir: DefaultOutDir,
		Retry: RetryConfig{
			MaxRetries:     &maxRetries,
			InitialDelayMS: int(p.InitialDelay / time.Millisecond),
			MaxDelayMS:     int(p.MaxDelay / time.Millisecond),
			Multiplier:     p.Multiplier,
		},
	}
}

// LoadConfig loads configuration from a JSON file, or a YAML file when the
// extension is .yaml or .yml. Returns an error if the file cannot be read or parsed.
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
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' check", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Retry.MaxDelayMS > 0 && c.Retry.InitialDelayMS > c.Retry.MaxDelayMS {
		return fmt.Errorf("config error: 'retry.initial_delay_ms' must not exceed 'retry.max_delay_ms'")
	}

	for _, input := range c.Inputs {
		if _, err := os.Stat(input); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", input)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if len(result.Inputs) == 0 {
		result.Inputs = append([]string(nil), defaults.Inputs...)
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.Retry.MaxRetries == nil && defaults.Retry.MaxRetries != nil {
		maxRetries := *defaults.Retry.MaxRetries
		result.Retry.MaxRetries = &maxRetries
	}
	if result.Retry.InitialDelayMS == 0 {
		result.Retry.InitialDelayMS = defaults.Retry.InitialDelayMS
	}
	if result.Retry.MaxDelayMS == 0 {
		result.Retry.MaxDelayMS = defaults.Retry.MaxDelayMS
	}
	if result.Retry.Multiplier == 0 {
		result.Retry.Multiplier = defaults.Retry.Multiplier
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// RetryPolicy converts the retry settings into a retry.Policy. Unset values
// fall back to retry.DefaultPolicy.
func (c *Config) RetryPolicy() retry.Policy {
	p := retry.DefaultPolicy()
	if c.Retry.MaxRetries != nil {
		p.MaxRetries = *c.Retry.MaxRetries
	}
	if c.Retry.InitialDelayMS > 0 {
		p.InitialDelay = time.Duration(c.Retry.InitialDelayMS) * time.Millisecond
	}
	if c.Retry.MaxDelayMS > 0 {
		p.MaxDelay = time.Duration(c.Retry.MaxDelayMS) * time.Millisecond
	}
	if c.Retry.Multiplier > 0 {
		p.Multiplier = c.Retry.Multiplier
	}
	return p
}
