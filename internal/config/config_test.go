package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/arcadia/internal/ledger"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.True(t, cfg.AutoRefresh, "auto refresh should default on")
	require.Equal(t, uint64(3480), cfg.Rent.UnitsPerByteYear)
	require.Equal(t, uint64(2), cfg.Rent.RetentionYears)
	require.Equal(t, uint64(128), cfg.Rent.AccountOverheadBytes)
	require.Equal(t, 30, cfg.Cache.TopTTLSeconds)
	require.False(t, cfg.Cache.Disabled)
	require.Equal(t, 1000, cfg.Queue.Capacity)
	require.False(t, cfg.Tracing.Enabled, "tracing should be off by default")
	require.Equal(t, "file", cfg.Tracing.Exporter)
	require.NoError(t, cfg.Validate(), "defaults must validate")
}

func TestRentConfig_Schedule(t *testing.T) {
	rent := RentConfig{UnitsPerByteYear: 5, RetentionYears: 1, AccountOverheadBytes: 0}
	schedule := rent.Schedule()

	require.Equal(t, ledger.RentSchedule{
		UnitsPerByteYear:     5,
		RetentionYears:       1,
		AccountOverheadBytes: 0,
	}, schedule)
	require.Equal(t, uint64(500), schedule.MinimumBalance(100))
}

func TestValidateRent(t *testing.T) {
	tests := []struct {
		name    string
		rent    RentConfig
		wantErr bool
	}{
		{
			name:    "zero config uses defaults",
			rent:    RentConfig{},
			wantErr: false,
		},
		{
			name:    "complete schedule",
			rent:    RentConfig{UnitsPerByteYear: 3480, RetentionYears: 2, AccountOverheadBytes: 128},
			wantErr: false,
		},
		{
			name:    "missing rate",
			rent:    RentConfig{RetentionYears: 2},
			wantErr: true,
		},
		{
			name:    "missing retention",
			rent:    RentConfig{UnitsPerByteYear: 3480},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRent(tt.rent)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		tracing TracingConfig
		wantErr string
	}{
		{
			name:    "empty config is valid",
			tracing: TracingConfig{},
		},
		{
			name:    "sample rate out of range",
			tracing: TracingConfig{SampleRate: 1.5},
			wantErr: "sample_rate",
		},
		{
			name:    "unknown exporter",
			tracing: TracingConfig{Exporter: "kafka"},
			wantErr: "exporter",
		},
		{
			name:    "file exporter without path when enabled",
			tracing: TracingConfig{Enabled: true, Exporter: "file"},
			wantErr: "file_path",
		},
		{
			name:    "file exporter without path when disabled",
			tracing: TracingConfig{Enabled: false, Exporter: "file"},
		},
		{
			name:    "otlp exporter without endpoint when enabled",
			tracing: TracingConfig{Enabled: true, Exporter: "otlp"},
			wantErr: "otlp_endpoint",
		},
		{
			name:    "valid file config",
			tracing: TracingConfig{Enabled: true, Exporter: "file", FilePath: "/tmp/traces.jsonl", SampleRate: 1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.tracing)
			if tt.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateCacheAndQueue(t *testing.T) {
	require.NoError(t, ValidateCache(CacheConfig{TopTTLSeconds: 30}))
	require.Error(t, ValidateCache(CacheConfig{TopTTLSeconds: -1}))
	require.NoError(t, ValidateQueue(QueueConfig{Capacity: 100}))
	require.Error(t, ValidateQueue(QueueConfig{Capacity: -1}))
}

func TestWriteDefaultConfig_Parseable(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	err := WriteDefaultConfig(configPath)
	require.NoError(t, err, "WriteDefaultConfig should create parent dirs")

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig(), "generated template must be valid YAML")

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	require.True(t, cfg.AutoRefresh)
	require.Equal(t, uint64(3480), cfg.Rent.UnitsPerByteYear)
	require.Equal(t, 30, cfg.Cache.TopTTLSeconds)
	require.Equal(t, 1000, cfg.Queue.Capacity)
	require.NoError(t, cfg.Validate())
}

func TestWriteDefaultConfig_Permissions(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	require.NoError(t, WriteDefaultConfig(configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "config should not be world-readable")
}
