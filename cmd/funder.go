package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/arcadia/internal/infrastructure/sqlite"
	"github.com/zjrosen/arcadia/internal/ledger"
)

var funderCmd = &cobra.Command{
	Use:   "funder",
	Short: "Manage funder accounts",
}

var funderBalance uint64

var funderCreateCmd = &cobra.Command{
	Use:   "create <address>",
	Short: "Create a funder account with an initial balance",
	Long: `Create an externally owned funder account. Funders pay the rent
deposits for every record they create or grow.

Example:
  arcadia funder create treasury --balance 100000000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := sqlite.NewDB(cfg.LedgerPath)
		if err != nil {
			return fmt.Errorf("opening ledger: %w", err)
		}
		defer db.Close()

		l := sqlite.NewLedger(db)
		acct, err := l.CreateFunder(ledger.Address(args[0]), funderBalance)
		if err != nil {
			return err
		}

		fmt.Printf("funder %s created with balance %d\n", acct.Addr(), acct.Balance())
		return nil
	},
}

var funderShowCmd = &cobra.Command{
	Use:   "show <address>",
	Short: "Show a funder's balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := sqlite.NewDB(cfg.LedgerPath)
		if err != nil {
			return fmt.Errorf("opening ledger: %w", err)
		}
		defer db.Close()

		l := sqlite.NewLedger(db)
		acct, err := l.Account(ledger.Address(args[0]))
		if err != nil {
			return err
		}

		fmt.Printf("%s\tkind=%s\tbalance=%d\n", acct.Addr(), acct.Kind(), acct.Balance())
		return nil
	},
}

func init() {
	funderCreateCmd.Flags().Uint64Var(&funderBalance, "balance", 0, "Initial balance in native units")
	_ = funderCreateCmd.MarkFlagRequired("balance")

	funderCmd.AddCommand(funderCreateCmd)
	funderCmd.AddCommand(funderShowCmd)
	rootCmd.AddCommand(funderCmd)
}
