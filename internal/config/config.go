// Package config provides configuration types and defaults for arcadia.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/arcadia/internal/ledger"
	"github.com/zjrosen/arcadia/internal/log"
)

// Config holds all configuration options for arcadia.
type Config struct {
	// LedgerPath is the SQLite database file backing the ledger.
	// Default: ~/.arcadia/ledger.db
	LedgerPath string `mapstructure:"ledger_path"`

	// AutoRefresh re-renders watch views when the ledger file changes.
	AutoRefresh bool `mapstructure:"auto_refresh"`

	Rent    RentConfig    `mapstructure:"rent"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Queue   QueueConfig   `mapstructure:"queue"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// RentConfig holds the retention pricing parameters seeded into new ledgers.
// A running ledger always reads the live schedule from the database; these
// values only apply when a ledger is first initialized or explicitly reset.
type RentConfig struct {
	// UnitsPerByteYear is the native-unit cost of retaining one byte for one year.
	UnitsPerByteYear uint64 `mapstructure:"units_per_byte_year"`

	// RetentionYears is how many years of retention an account must prepay.
	RetentionYears uint64 `mapstructure:"retention_years"`

	// AccountOverheadBytes is the fixed per-account metadata charge.
	AccountOverheadBytes uint64 `mapstructure:"account_overhead_bytes"`
}

// Schedule converts the config values into a ledger rent schedule.
func (r RentConfig) Schedule() ledger.RentSchedule {
	return ledger.RentSchedule{
		UnitsPerByteYear:     r.UnitsPerByteYear,
		RetentionYears:       r.RetentionYears,
		AccountOverheadBytes: r.AccountOverheadBytes,
	}
}

// CacheConfig holds read-side caching configuration.
type CacheConfig struct {
	// Disabled turns off the leaderboard read-through cache entirely.
	Disabled bool `mapstructure:"disabled"`

	// TopTTLSeconds is how long cached leaderboard standings stay fresh.
	// Default: 30
	TopTTLSeconds int `mapstructure:"top_ttl_seconds"`
}

// QueueConfig holds command queue configuration.
type QueueConfig struct {
	// Capacity is the maximum number of queued commands before Submit
	// starts rejecting. Default: 1000
	Capacity int `mapstructure:"capacity"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.arcadia/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// 1.0 = all traces, 0.1 = 10% of traces
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultDataDir returns the root directory for arcadia state.
// Returns ~/.arcadia or empty string if home dir unavailable.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcadia")
}

// DefaultLedgerPath returns the default SQLite database path.
func DefaultLedgerPath() string {
	dir := DefaultDataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "ledger.db")
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.arcadia/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	dir := DefaultDataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// ValidateRent checks rent configuration for errors.
// Returns nil if the configuration is valid (zero values use defaults).
func ValidateRent(rent RentConfig) error {
	// A zero-rate schedule would make every account free to retain forever,
	// which defeats the balance model.
	if rent.UnitsPerByteYear == 0 && (rent.RetentionYears != 0 || rent.AccountOverheadBytes != 0) {
		return fmt.Errorf("rent.units_per_byte_year must be set when other rent parameters are configured")
	}
	if rent.RetentionYears == 0 && rent.UnitsPerByteYear != 0 {
		return fmt.Errorf("rent.retention_years must be at least 1 when rent is configured")
	}
	return nil
}

// ValidateCache checks cache configuration for errors.
func ValidateCache(cache CacheConfig) error {
	if cache.TopTTLSeconds < 0 {
		return fmt.Errorf("cache.top_ttl_seconds must not be negative, got %d", cache.TopTTLSeconds)
	}
	return nil
}

// ValidateQueue checks queue configuration for errors.
func ValidateQueue(queue QueueConfig) error {
	if queue.Capacity < 0 {
		return fmt.Errorf("queue.capacity must not be negative, got %d", queue.Capacity)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
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

// Validate checks the full configuration for errors.
func (c Config) Validate() error {
	if err := ValidateRent(c.Rent); err != nil {
		return err
	}
	if err := ValidateCache(c.Cache); err != nil {
		return err
	}
	if err := ValidateQueue(c.Queue); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		LedgerPath:  DefaultLedgerPath(),
		AutoRefresh: true,
		Rent: RentConfig{
			UnitsPerByteYear:     ledger.DefaultUnitsPerByteYear,
			RetentionYears:       ledger.DefaultRetentionYears,
			AccountOverheadBytes: ledger.DefaultAccountOverheadBytes,
		},
		Cache: CacheConfig{
			Disabled:      false,
			TopTTLSeconds: 30,
		},
		Queue: QueueConfig{
			Capacity: 1000,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from data dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Arcadia Configuration

# Path to the SQLite ledger database (default: ~/.arcadia/ledger.db)
# ledger_path: /path/to/ledger.db

# Re-render watch views when the ledger file changes
auto_refresh: true

# Retention pricing seeded into freshly initialized ledgers.
# A running ledger reads its live schedule from the database, so editing
# these values does not reprice existing ledgers; use 'arcadia rent set'.
rent:
  units_per_byte_year: 3480
  retention_years: 2
  account_overhead_bytes: 128

# Read-side caching for leaderboard standings
cache:
  # disabled: false
  top_ttl_seconds: 30   # How long cached standings stay fresh

# Command queue settings
queue:
  capacity: 1000        # Queued commands before submissions are rejected

# Feature flags
# flags:
#   watch-invalidation: false  # Flush cached standings on external ledger writes
#   verbose-results: false     # Print command and trace ids after submissions

# Distributed tracing configuration
# Enables end-to-end visibility into command processing
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.arcadia/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
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
