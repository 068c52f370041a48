package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestSaveRent_CreatesFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	rent := RentConfig{UnitsPerByteYear: 100, RetentionYears: 3, AccountOverheadBytes: 64}
	err := SaveRent(configPath, rent)
	require.NoError(t, err, "SaveRent should create a missing config file")

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	require.Equal(t, rent, cfg.Rent)
}

func TestSaveRent_ReplacesExistingSection(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	require.NoError(t, WriteDefaultConfig(configPath))

	rent := RentConfig{UnitsPerByteYear: 7000, RetentionYears: 1, AccountOverheadBytes: 0}
	require.NoError(t, SaveRent(configPath, rent))

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	require.Equal(t, rent, cfg.Rent, "rent section should be replaced")
	require.True(t, cfg.AutoRefresh, "other sections should survive the save")
}

func TestSaveRent_PreservesComments(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	initial := `# my custom ledger setup
ledger_path: /srv/arcadia/ledger.db

rent:
  units_per_byte_year: 3480
  retention_years: 2
  account_overhead_bytes: 128
`
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0o600))

	require.NoError(t, SaveRent(configPath, RentConfig{UnitsPerByteYear: 5000, RetentionYears: 2, AccountOverheadBytes: 128}))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Contains(t, string(content), "# my custom ledger setup", "comments outside the section must be preserved")
	require.Contains(t, string(content), "units_per_byte_year: 5000")
	require.Contains(t, string(content), "/srv/arcadia/ledger.db")
}

func TestSaveCache_AppendsSection(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	require.NoError(t, os.WriteFile(configPath, []byte("auto_refresh: false\n"), 0o600))

	require.NoError(t, SaveCache(configPath, CacheConfig{Disabled: true, TopTTLSeconds: 60}))

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	require.False(t, cfg.AutoRefresh)
	require.True(t, cfg.Cache.Disabled)
	require.Equal(t, 60, cfg.Cache.TopTTLSeconds)
}

func TestSaveRent_AtomicOnExistingFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	require.NoError(t, SaveRent(configPath, RentConfig{UnitsPerByteYear: 1, RetentionYears: 1}))
	require.NoError(t, SaveRent(configPath, RentConfig{UnitsPerByteYear: 2, RetentionYears: 1}))

	// No temp files left behind
	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the config file should remain after atomic saves")
}
