// Package config provides configuration types and defaults for webwalker.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjrosen/webwalker/internal/log"
)

// Config holds all configuration options for webwalker.
type Config struct {
	// Hostname is stripped from scraped entries before they become
	// directory names. Empty keeps entries as scraped.
	Hostname string `mapstructure:"hostname"`

	// RootName names the root directory of a new tree. Default: "/"
	RootName string `mapstructure:"root_name"`

	// DataDir is the base for relative input and output paths. Default: "data"
	DataDir string `mapstructure:"data_dir"`

	// OutputFile is the save target when none is given. Default: "outputfile.txt"
	OutputFile string `mapstructure:"output_file"`

	// AutoReload re-populates the root when the input file changes.
	AutoReload         bool          `mapstructure:"auto_reload"`
	AutoReloadDebounce time.Duration `mapstructure:"auto_reload_debounce"`

	Snapshots SnapshotsConfig `mapstructure:"snapshots"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	UI        UIConfig        `mapstructure:"ui"`
}

// UIConfig holds navigator display options.
type UIConfig struct {
	ShowCounts    bool   `mapstructure:"show_counts"`    // Show child counts next to listing entries
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// SnapshotsConfig controls the snapshot database written on every save.
type SnapshotsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Path is the SQLite file. Default: <data_dir>/snapshots.db
	Path string `mapstructure:"path"`

	// ListLimit caps "snapshot list" output. Default: 20
	ListLimit int `mapstructure:"list_limit"`
}

// TracingConfig holds tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/webwalker/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling, in (0.0, 1.0].
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// SnapshotPath returns the configured snapshot database path, falling back
// to snapshots.db inside DataDir.
func (c Config) SnapshotPath() string {
	if c.Snapshots.Path != "" {
		return c.Snapshots.Path
	}
	return filepath.Join(c.DataDir, "snapshots.db")
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/webwalker/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "webwalker", "traces", "traces.jsonl")
}

// Validate checks the whole configuration.
func Validate(c Config) error {
	if strings.TrimSpace(c.RootName) == "" {
		return fmt.Errorf("root_name must not be empty")
	}
	if c.AutoReloadDebounce < 0 {
		return fmt.Errorf("auto_reload_debounce must not be negative, got %s", c.AutoReloadDebounce)
	}
	if c.Snapshots.ListLimit < 0 {
		return fmt.Errorf("snapshots.list_limit must not be negative, got %d", c.Snapshots.ListLimit)
	}
	switch c.UI.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", c.UI.MarkdownStyle)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate <= 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be greater than 0.0 and at most 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		RootName:           "/",
		DataDir:            "data",
		OutputFile:         "outputfile.txt",
		AutoReload:         true,
		AutoReloadDebounce: time.Second,
		Snapshots: SnapshotsConfig{
			Enabled:   true,
			ListLimit: 20,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		UI: UIConfig{
			ShowCounts:    true,
			MarkdownStyle: "dark",
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Webwalker Configuration

# Host stripped from scraped links, e.g. https://example.com/login -> /login
# hostname: example.com

# Name of the root directory for a new tree
root_name: /

# Base directory for relative input and output files
data_dir: data

# File written by "save" when no name is given
output_file: outputfile.txt

# Re-populate the root when the input file changes
auto_reload: true
auto_reload_debounce: 1s

# Every save also stores the tree in a local database
snapshots:
  enabled: true
  # path: data/snapshots.db
  list_limit: 20

# UI settings
ui:
  show_counts: true       # Show subdirectory counts in listings
  # markdown_style: dark  # Help rendering style: "dark" (default) or "light"

# Tracing of load, populate and save operations
# tracing:
#   enabled: true
#   exporter: file
#   file_path: ~/.config/webwalker/traces/traces.jsonl
#
# Example: Send traces to Jaeger via OTLP
# tracing:
#   enabled: true
#   exporter: otlp
#   otlp_endpoint: jaeger.internal:4317
#   sample_rate: 0.1  # Sample 10% of traces
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
