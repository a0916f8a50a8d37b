// Package config provides configuration loading for the boolprob CLI.
// It supports loading from YAML files and environment variables; command
// line flags are applied on top by the caller.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/boolprob/internal/logging"
	"github.com/katalvlaran/boolprob/meanfield"
	"github.com/katalvlaran/boolprob/successor"
)

// Config contains all boolprob configuration settings.
type Config struct {
	// Run holds estimator parameters.
	Run RunConfig `json:"run" yaml:"run"`

	// Output selects how series are written.
	Output OutputConfig `json:"output" yaml:"output"`

	// Logging contains settings for operational logging and the run journal.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// RunConfig configures the estimators.
type RunConfig struct {
	// Steps is the number of reported time points, including step 0.
	Steps int `json:"steps" yaml:"steps"`

	// Trials is the Monte Carlo trajectory count.
	Trials int `json:"trials" yaml:"trials"`

	// Seed feeds the Monte Carlo RNG. 0 selects the fixed default stream.
	Seed int64 `json:"seed" yaml:"seed"`

	// Workers bounds the goroutines of every estimator.
	Workers int `json:"workers" yaml:"workers"`

	// Discipline is "synchronous" or "asynchronous".
	Discipline string `json:"discipline" yaml:"discipline"`

	// Mode is the mean-field recurrence: "synchronous" or "asynchronous-blend".
	// Empty follows Discipline.
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`

	// MaxEntries caps the exact enumerator's distribution size. 0 keeps the
	// library default.
	MaxEntries int `json:"max_entries,omitempty" yaml:"max_entries,omitempty"`

	// Merge collapses duplicate states in the exact enumerator.
	Merge bool `json:"merge" yaml:"merge"`

	// MaxTableRows caps the mean-field tables. 0 keeps the library default.
	MaxTableRows int `json:"max_table_rows,omitempty" yaml:"max_table_rows,omitempty"`

	// Fixed pins mean-field nodes to constant probabilities.
	Fixed map[string]float64 `json:"fixed,omitempty" yaml:"fixed,omitempty"`
}

// OutputConfig configures series output.
type OutputConfig struct {
	// Format is "json" (default) or "yaml".
	Format string `json:"format" yaml:"format"`

	// Path is the output file; empty writes to stdout.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level sets the log verbosity: "error", "warn", "info" (default),
	// "debug" or "trace".
	Level string `json:"level" yaml:"level"`

	// Journal, when set, appends one JSON line per run to this file.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Run: RunConfig{
			Steps:      10,
			Trials:     10000,
			Workers:    1,
			Discipline: "synchronous",
		},
		Output: OutputConfig{
			Format: "json",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.Output.Path = expandEnvVars(cfg.Output.Path)
	cfg.Logging.Journal = expandEnvVars(cfg.Logging.Journal)

	return cfg, nil
}

// Load returns the defaults, or the file at path when path is non-empty,
// with environment overrides applied.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv applies BOOLPROB_* environment overrides. Unparsable numbers are
// ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("BOOLPROB_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Run.Steps = n
		}
	}
	if v := os.Getenv("BOOLPROB_TRIALS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Run.Trials = n
		}
	}
	if v := os.Getenv("BOOLPROB_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Run.Seed = n
		}
	}
	if v := os.Getenv("BOOLPROB_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Run.Workers = n
		}
	}
	if v := os.Getenv("BOOLPROB_DISCIPLINE"); v != "" {
		c.Run.Discipline = v
	}
	if v := os.Getenv("BOOLPROB_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("BOOLPROB_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Run.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", c.Run.Steps)
	}
	if c.Run.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", c.Run.Trials)
	}
	if c.Run.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Run.Workers)
	}
	if c.Run.MaxEntries < 0 || c.Run.MaxTableRows < 0 {
		return fmt.Errorf("max_entries and max_table_rows must be non-negative")
	}
	if _, err := successor.ParseDiscipline(c.Run.Discipline); err != nil {
		return err
	}
	if c.Run.Mode != "" {
		if _, err := meanfield.ParseMode(c.Run.Mode); err != nil {
			return err
		}
	}
	for name, p := range c.Run.Fixed {
		if p < 0 || p > 1 {
			return fmt.Errorf("fixed probability for %s must be between 0 and 1, got %f", name, p)
		}
	}

	switch strings.ToLower(c.Output.Format) {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid output format: %s (valid: json, yaml)", c.Output.Format)
	}

	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: error, warn, info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// Discipline returns the parsed update discipline.
func (c *Config) Discipline() (successor.Discipline, error) {
	return successor.ParseDiscipline(c.Run.Discipline)
}

// Mode returns the parsed mean-field mode; an empty Mode follows Discipline.
func (c *Config) Mode() (meanfield.Mode, error) {
	if c.Run.Mode != "" {
		return meanfield.ParseMode(c.Run.Mode)
	}
	d, err := c.Discipline()
	if err != nil {
		return 0, err
	}
	if d == successor.Asynchronous {
		return meanfield.AsynchronousBlend, nil
	}
	return meanfield.Synchronous, nil
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, os.Getenv)
}
