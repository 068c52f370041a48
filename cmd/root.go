// Package cmd implements the arcadia command line interface.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/arcadia/internal/config"
	"github.com/zjrosen/arcadia/internal/log"
)

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config

	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "arcadia",
	Short: "An on-chain style game registry backed by a rent-priced ledger",
	Long: `Arcadia manages games, players, leaderboards, and achievements as
fixed-layout records on a balance-carrying ledger. Every record prepays
retention rent for its size; growing a record tops its balance up to the
new minimum before the buffer is reallocated.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.arcadia/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false,
		"write debug logs to ~/.arcadia/debug.log")
	rootCmd.PersistentFlags().String("ledger", "",
		"path to the ledger database (overrides config)")

	_ = viper.BindPFlag("ledger_path", rootCmd.PersistentFlags().Lookup("ledger"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("ledger_path", defaults.LedgerPath)
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("rent.units_per_byte_year", defaults.Rent.UnitsPerByteYear)
	viper.SetDefault("rent.retention_years", defaults.Rent.RetentionYears)
	viper.SetDefault("rent.account_overhead_bytes", defaults.Rent.AccountOverheadBytes)
	viper.SetDefault("cache.top_ttl_seconds", defaults.Cache.TopTTLSeconds)
	viper.SetDefault("queue.capacity", defaults.Queue.Capacity)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .arcadia/config.yaml (current directory)
		// 2. ~/.arcadia/config.yaml (user config)
		if _, err := os.Stat(".arcadia/config.yaml"); err == nil {
			viper.SetConfigFile(".arcadia/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".arcadia"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	// Missing config is fine: 'arcadia init' creates it, everything else
	// runs on defaults.
	_ = viper.ReadInConfig()
	_ = viper.Unmarshal(&cfg)
}

func initLogging() {
	if flagDebug, _ := rootCmd.PersistentFlags().GetBool("debug"); flagDebug {
		debug = true
	}
	if os.Getenv("ARCADIA_DEBUG") != "" {
		debug = true
	}
	if !debug {
		return
	}

	dir := config.DefaultDataDir()
	if dir == "" {
		return
	}
	cleanup, err := log.Init(filepath.Join(dir, "debug.log"))
	if err != nil {
		return
	}
	logCleanup = cleanup
	log.SetMinLevel(log.LevelDebug)
	log.Info(log.CatCommands, "debug logging enabled", "version", version)
}

// configFilePath returns the config file in use, falling back to the default
// user location when none was loaded.
func configFilePath() string {
	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}
	dir := config.DefaultDataDir()
	if dir == "" {
		return ".arcadia/config.yaml"
	}
	return filepath.Join(dir, "config.yaml")
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if logCleanup != nil {
			logCleanup()
		}
	}()
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
