package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/arcadia/internal/ledger"
	"github.com/zjrosen/arcadia/internal/registry/command"
	"github.com/zjrosen/arcadia/internal/registry/domain"
	"github.com/zjrosen/arcadia/internal/watcher"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Manage leaderboards",
}

var (
	boardGame          string
	boardAuthority     string
	boardFunder        string
	boardDescription   string
	boardDecimals      uint8
	boardMinScore      uint64
	boardMaxScore      uint64
	boardCapacity      uint32
	boardAllowMultiple bool
	boardWatch         bool
)

var leaderboardAddCmd = &cobra.Command{
	Use:   "add <address>",
	Short: "Add a leaderboard to a game",
	Long: `Create a leaderboard record attached to a game. Only a game authority
may add one; the funder pays the rent deposit and the game record grows to
account for its new leaderboard counter.

Example:
  arcadia leaderboard add raid-highscores --game space-raid \
    --min 0 --max 1000000 --capacity 10 \
    --authority studio-key --funder treasury`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		cmd := command.NewAddLeaderboardCommand(command.SourceCLI,
			ledger.Address(args[0]), ledger.Address(boardGame),
			ledger.Address(boardAuthority), ledger.Address(boardFunder),
			boardDescription, boardDecimals, boardMinScore, boardMaxScore,
			boardCapacity, boardAllowMultiple)
		if _, err := rt.submit(cmd); err != nil {
			return err
		}

		fmt.Printf("leaderboard %s added to %s\n", args[0], boardGame)
		return nil
	},
}

var leaderboardTopCmd = &cobra.Command{
	Use:   "top <address>",
	Short: "Show a leaderboard's top standings",
	Long: `Print the retained top entries, best first. With --watch the standings
re-render whenever the ledger database changes.

Example:
  arcadia leaderboard top raid-highscores
  arcadia leaderboard top raid-highscores --watch`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		addr := ledger.Address(args[0])
		if err := printTop(rt, addr); err != nil {
			return err
		}
		if !boardWatch {
			return nil
		}
		return watchTop(rt, addr)
	},
}

func printTop(rt *runtime, addr ledger.Address) error {
	board, err := rt.query.Leaderboard(addr)
	if err != nil {
		return err
	}
	top, err := rt.query.TopScores(context.Background(), addr)
	if err != nil {
		return err
	}

	if board.Description() != "" {
		fmt.Printf("%s\n", board.Description())
	}
	if len(top) == 0 {
		fmt.Println("no scores yet")
		return nil
	}
	for i, entry := range top {
		fmt.Printf("%2d. %-32s %s\n", i+1, entry.Player, formatScore(entry.Score, board.Decimals()))
	}
	return nil
}

// formatScore renders a raw score with the board's display decimals.
func formatScore(score uint64, decimals uint8) string {
	if decimals == 0 {
		return fmt.Sprintf("%d", score)
	}
	divisor := uint64(1)
	for i := uint8(0); i < decimals; i++ {
		divisor *= 10
	}
	return fmt.Sprintf("%d.%0*d", score/divisor, decimals, score%divisor)
}

// watchTop re-renders the standings when the ledger file changes until
// interrupted.
func watchTop(rt *runtime, addr ledger.Address) error {
	w, err := watcher.New(watcher.DefaultConfig(cfg.LedgerPath))
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	fmt.Println("watching for changes (ctrl-c to stop)")
	for {
		select {
		case <-onChange:
			fmt.Println()
			if err := printTop(rt, addr); err != nil {
				return err
			}
		case <-sigCh:
			return nil
		}
	}
}

func init() {
	leaderboardAddCmd.Flags().StringVar(&boardGame, "game", "", "Game the leaderboard belongs to")
	leaderboardAddCmd.Flags().StringVar(&boardDescription, "description", "", "Leaderboard description")
	leaderboardAddCmd.Flags().Uint8Var(&boardDecimals, "decimals", 0, "Display decimals for scores")
	leaderboardAddCmd.Flags().Uint64Var(&boardMinScore, "min", 0, "Lowest accepted score")
	leaderboardAddCmd.Flags().Uint64Var(&boardMaxScore, "max", 0, "Highest accepted score")
	leaderboardAddCmd.Flags().Uint32Var(&boardCapacity, "capacity", domain.DefaultTopCapacity, "Retained top entries")
	leaderboardAddCmd.Flags().BoolVar(&boardAllowMultiple, "allow-multiple", false, "Allow one player to hold several top entries")
	leaderboardAddCmd.Flags().StringVar(&boardAuthority, "authority", "", "Acting game authority")
	leaderboardAddCmd.Flags().StringVar(&boardFunder, "funder", "", "Funder account paying the rent deposit")
	_ = leaderboardAddCmd.MarkFlagRequired("game")
	_ = leaderboardAddCmd.MarkFlagRequired("max")
	_ = leaderboardAddCmd.MarkFlagRequired("authority")
	_ = leaderboardAddCmd.MarkFlagRequired("funder")

	leaderboardTopCmd.Flags().BoolVar(&boardWatch, "watch", false, "Re-render when the ledger changes")

	leaderboardCmd.AddCommand(leaderboardAddCmd)
	leaderboardCmd.AddCommand(leaderboardTopCmd)
	rootCmd.AddCommand(leaderboardCmd)
}
