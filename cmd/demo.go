package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/arcadia/internal/ledger"
	"github.com/zjrosen/arcadia/internal/registry/command"
	"github.com/zjrosen/arcadia/internal/registry/handler"
	"github.com/zjrosen/arcadia/internal/registry/processor"
	"github.com/zjrosen/arcadia/internal/registry/query"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted registry session on an ephemeral in-memory ledger",
	Long: `Walk through a full registry lifecycle without touching the ledger
database: fund a treasury, create a game, a player and a leaderboard,
register the player, and submit a few scores. Everything runs against an
in-memory ledger that is discarded when the command exits.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(c *cobra.Command, args []string) error {
	l := ledger.NewMemoryLedger(ledger.DefaultRentSchedule())

	treasury, err := l.CreateFunder("treasury", 100_000_000)
	if err != nil {
		return fmt.Errorf("funding treasury: %w", err)
	}
	fmt.Printf("treasury funded with %d\n", treasury.Balance())

	p := processor.NewCommandProcessor(
		processor.WithMiddleware(
			processor.NewLoggingMiddleware(processor.LoggingMiddlewareConfig{}),
			processor.NewTransactionMiddleware(l),
		),
	)
	handler.RegisterAll(p)

	ctx, cancel := context.WithCancel(c.Context())
	defer cancel()
	go p.Run(ctx)
	if err := p.WaitForReady(ctx); err != nil {
		return fmt.Errorf("starting command processor: %w", err)
	}
	defer p.Stop()

	steps := []struct {
		desc string
		cmd  command.Command
	}{
		{"create game space-raid", command.NewCreateGameCommand(command.SourceCLI,
			"space-raid", "treasury",
			"Space Raid", "Arcade shmup", "shmup", []ledger.Address{"studio-key"})},
		{"create player alice", command.NewCreatePlayerCommand(command.SourceCLI,
			"player-alice", "user-alice", "treasury", "alice", "")},
		{"add leaderboard high-scores", command.NewAddLeaderboardCommand(command.SourceCLI,
			"high-scores", "space-raid", "studio-key", "treasury",
			"All-time high scores", 0, 0, 1_000_000, 10, false)},
		{"register alice on high-scores", command.NewRegisterPlayerCommand(command.SourceCLI,
			"book-alice", "player-alice", "high-scores", "treasury")},
		{"submit score 4200", command.NewSubmitScoreCommand(command.SourceCLI,
			"book-alice", "high-scores", "studio-key", "treasury", 4200, 0)},
		{"submit score 6150", command.NewSubmitScoreCommand(command.SourceCLI,
			"book-alice", "high-scores", "studio-key", "treasury", 6150, 0)},
		{"submit score 5100", command.NewSubmitScoreCommand(command.SourceCLI,
			"book-alice", "high-scores", "studio-key", "treasury", 5100, 0)},
	}

	for _, step := range steps {
		result, err := p.SubmitAndWait(ctx, step.cmd)
		if err != nil {
			return fmt.Errorf("%s: %w", step.desc, err)
		}
		if !result.Success {
			return fmt.Errorf("%s: %w", step.desc, result.Error)
		}
		fmt.Printf("ok  %s\n", step.desc)
	}

	q := query.NewService(l, query.WithoutCache())
	board, err := q.Leaderboard("high-scores")
	if err != nil {
		return fmt.Errorf("reading leaderboard: %w", err)
	}
	top, err := q.TopScores(ctx, "high-scores")
	if err != nil {
		return fmt.Errorf("reading top scores: %w", err)
	}
	fmt.Printf("\ntop of %q:\n", board.Description())
	for i, entry := range top {
		fmt.Printf("%2d. %-32s %s\n", i+1, entry.Player, formatScore(entry.Score, board.Decimals()))
	}

	book, err := l.Account("book-alice")
	if err != nil {
		return fmt.Errorf("reading score book: %w", err)
	}
	min, err := l.MinimumBalance(book.Size())
	if err != nil {
		return fmt.Errorf("quoting rent: %w", err)
	}
	fmt.Printf("\nbook-alice grew to %d bytes, funded %d (minimum %d)\n",
		book.Size(), book.Balance(), min)
	treasury, err = l.Account("treasury")
	if err != nil {
		return fmt.Errorf("reading treasury: %w", err)
	}
	fmt.Printf("treasury balance after the session: %d\n", treasury.Balance())
	return nil
}
