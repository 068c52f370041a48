package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/arcadia/internal/config"
	"github.com/zjrosen/arcadia/internal/infrastructure/sqlite"
	"github.com/zjrosen/arcadia/internal/ledger"
)

var rentCmd = &cobra.Command{
	Use:   "rent",
	Short: "Inspect and adjust the rent schedule",
	Long: `The rent schedule determines the minimum balance an account of a given
size must hold. Record growth reads the schedule at the moment it runs,
so changes here affect the very next operation.`,
}

var (
	rentUnits    uint64
	rentYears    uint64
	rentOverhead uint64
)

var rentSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the rent schedule",
	RunE: func(c *cobra.Command, args []string) error {
		rc := config.RentConfig{
			UnitsPerByteYear:     rentUnits,
			RetentionYears:       rentYears,
			AccountOverheadBytes: rentOverhead,
		}
		if err := config.ValidateRent(rc); err != nil {
			return err
		}

		db, err := sqlite.NewDB(cfg.LedgerPath)
		if err != nil {
			return err
		}
		defer db.Close()

		l := sqlite.NewLedger(db)
		if err := l.SetRentSchedule(rc.Schedule()); err != nil {
			return err
		}
		if err := config.SaveRent(configFilePath(), rc); err != nil {
			return fmt.Errorf("schedule applied but config not saved: %w", err)
		}

		fmt.Printf("rent schedule set: %d units/byte-year, %d years retained, %d bytes overhead\n",
			rentUnits, rentYears, rentOverhead)
		return nil
	},
}

var rentQuoteSize int

var rentQuoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Quote the minimum balance for an account size",
	RunE: func(c *cobra.Command, args []string) error {
		db, err := sqlite.NewDB(cfg.LedgerPath)
		if err != nil {
			return err
		}
		defer db.Close()

		l := sqlite.NewLedger(db)
		min, err := l.MinimumBalance(rentQuoteSize)
		if err != nil {
			return err
		}
		fmt.Printf("%d bytes requires a balance of %d\n", rentQuoteSize, min)
		return nil
	},
}

func init() {
	def := ledger.DefaultRentSchedule()
	rentSetCmd.Flags().Uint64Var(&rentUnits, "units", def.UnitsPerByteYear, "Balance units per byte-year")
	rentSetCmd.Flags().Uint64Var(&rentYears, "years", def.RetentionYears, "Years of rent the minimum balance covers")
	rentSetCmd.Flags().Uint64Var(&rentOverhead, "overhead", def.AccountOverheadBytes, "Per-account byte overhead")

	rentQuoteCmd.Flags().IntVar(&rentQuoteSize, "size", 0, "Account data size in bytes")
	_ = rentQuoteCmd.MarkFlagRequired("size")

	rentCmd.AddCommand(rentSetCmd)
	rentCmd.AddCommand(rentQuoteCmd)
	rootCmd.AddCommand(rentCmd)
}
