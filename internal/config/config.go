package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up by the CLI.
const FileName = "semlang.yaml"

// Output formats for diagnostics.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the tool configuration, read from semlang.yaml and then
// overridden by SEMLANG_* environment variables.
type Config struct {
	// Log level: trace, debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// Diagnostic output: text or json
	Format string `yaml:"format"`

	// Stop collecting diagnostics per file after this many (0 = unlimited)
	MaxErrors int `yaml:"max_errors"`

	// Number of files parsed concurrently
	Workers int `yaml:"workers"`

	// NFC-normalize sources before lexing
	Normalize bool `yaml:"normalize"`

	// File name patterns used when no paths are given
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		Format:    FormatText,
		MaxErrors: 0,
		Workers:   4,
		Normalize: true,
		Include:   []string{"*.sem"},
	}
}

// Load reads the configuration at path and applies environment overrides.
// A missing file yields the defaults; a malformed one is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.LogLevel = getEnv("SEMLANG_LOG_LEVEL", c.LogLevel)
	c.Format = getEnv("SEMLANG_FORMAT", c.Format)
	c.MaxErrors = getEnvInt("SEMLANG_MAX_ERRORS", c.MaxErrors)
	c.Workers = getEnvInt("SEMLANG_WORKERS", c.Workers)
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		return fmt.Errorf("log_level %q must be one of trace, debug, info, warn, error", c.LogLevel)
	}

	if c.Format != FormatText && c.Format != FormatJSON {
		return fmt.Errorf("format %q must be %s or %s", c.Format, FormatText, FormatJSON)
	}

	if c.MaxErrors < 0 {
		return fmt.Errorf("max_errors must not be negative, got %d", c.MaxErrors)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	return nil
}

// Level returns the configured log level, falling back to info.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
