package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/arcadia/internal/config"
	"github.com/zjrosen/arcadia/internal/infrastructure/sqlite"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the config file and ledger database",
	Long: `Create the default config file (if missing), open the ledger database
(running migrations), and apply the configured rent schedule.

Example:
  arcadia init
  arcadia init --ledger /srv/arcadia/ledger.db`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := configFilePath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := config.WriteDefaultConfig(configPath); err != nil {
			return err
		}
		fmt.Printf("created config %s\n", configPath)
	} else {
		fmt.Printf("config %s already exists\n", configPath)
	}

	db, err := sqlite.NewDB(cfg.LedgerPath)
	if err != nil {
		return fmt.Errorf("initializing ledger at %s: %w", cfg.LedgerPath, err)
	}
	defer db.Close()

	l := sqlite.NewLedger(db)
	if err := l.SetRentSchedule(cfg.Rent.Schedule()); err != nil {
		return fmt.Errorf("applying rent schedule: %w", err)
	}

	fmt.Printf("ledger ready at %s\n", cfg.LedgerPath)
	return nil
}
