package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.Format != FormatText {
		t.Errorf("Format = %s, want text", cfg.Format)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if !cfg.Normalize {
		t.Error("Normalize should be true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Workers != 4 || cfg.Format != FormatText {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `log_level: debug
format: json
max_errors: 20
workers: 2
normalize: false
include:
  - "*.sl"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if cfg.Format != FormatJSON {
		t.Errorf("Format = %s, want json", cfg.Format)
	}
	if cfg.MaxErrors != 20 {
		t.Errorf("MaxErrors = %d, want 20", cfg.MaxErrors)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if cfg.Normalize {
		t.Error("Normalize should be false")
	}
	if len(cfg.Include) != 1 || cfg.Include[0] != "*.sl" {
		t.Errorf("Include = %v, want [*.sl]", cfg.Include)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("format: json\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Workers != 4 || !cfg.Normalize || cfg.LogLevel != "info" {
		t.Errorf("unset fields should keep defaults, got %+v", cfg)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("workers: [1, 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SEMLANG_LOG_LEVEL", "warn")
	t.Setenv("SEMLANG_FORMAT", "json")
	t.Setenv("SEMLANG_MAX_ERRORS", "7")
	t.Setenv("SEMLANG_WORKERS", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "warn" || cfg.Format != FormatJSON || cfg.MaxErrors != 7 {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Workers != 4 {
		t.Errorf("invalid SEMLANG_WORKERS should be ignored, got %d", cfg.Workers)
	}
	if cfg.Level() != zerolog.WarnLevel {
		t.Errorf("Level() = %v, want warn", cfg.Level())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"empty log level", func(c *Config) { c.LogLevel = "" }},
		{"format", func(c *Config) { c.Format = "xml" }},
		{"max errors", func(c *Config) { c.MaxErrors = -1 }},
		{"workers", func(c *Config) { c.Workers = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	cfg := Default()
	cfg.Workers = 9
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Workers != 9 {
		t.Errorf("Workers = %d, want 9", loaded.Workers)
	}
}
