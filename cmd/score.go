package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/arcadia/internal/ledger"
	"github.com/zjrosen/arcadia/internal/registry/command"
	"github.com/zjrosen/arcadia/internal/registry/processor"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Submit and inspect scores",
}

var (
	scoreBook      string
	scoreBoard     string
	scoreAuthority string
	scoreFunder    string
	scoreValue     uint64
	scoreTimestamp int64
)

var scoreSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a score to a player's score book",
	Long: `Append a score to a score book and update the leaderboard's top
standings when it qualifies. The book grows by one entry, so the funder
pays the incremental rent; only a game authority may submit.

Example:
  arcadia score submit --book alice-raid-book --leaderboard raid-highscores \
    --score 4250 --authority studio-key --funder treasury`,
	RunE: func(c *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		cmd := command.NewSubmitScoreCommand(command.SourceCLI,
			ledger.Address(scoreBook), ledger.Address(scoreBoard),
			ledger.Address(scoreAuthority), ledger.Address(scoreFunder),
			scoreValue, scoreTimestamp)
		result, err := rt.submit(cmd)
		if err != nil {
			return err
		}

		if evt, ok := firstScoreEvent(result); ok && evt.MadeTop {
			fmt.Printf("score %d submitted - made the top!\n", scoreValue)
		} else {
			fmt.Printf("score %d submitted\n", scoreValue)
		}
		return nil
	},
}

var scoreBestCmd = &cobra.Command{
	Use:   "best <score-book-address>",
	Short: "Show a player's best score on a leaderboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		book, err := rt.query.ScoreBook(ledger.Address(args[0]))
		if err != nil {
			return err
		}

		best, ok := book.Best()
		if !ok {
			fmt.Println("no scores yet")
			return nil
		}
		fmt.Printf("best %d (of %d submissions)\n", best.Score, len(book.Entries()))
		return nil
	},
}

// firstScoreEvent digs the score event out of a command result.
func firstScoreEvent(result *command.CommandResult) (processor.ScoreSubmittedEvent, bool) {
	for _, e := range result.Events {
		if evt, ok := e.(processor.ScoreSubmittedEvent); ok {
			return evt, true
		}
	}
	return processor.ScoreSubmittedEvent{}, false
}

func init() {
	scoreSubmitCmd.Flags().StringVar(&scoreBook, "book", "", "Score book address")
	scoreSubmitCmd.Flags().StringVar(&scoreBoard, "leaderboard", "", "Leaderboard address")
	scoreSubmitCmd.Flags().Uint64Var(&scoreValue, "score", 0, "Score value")
	scoreSubmitCmd.Flags().Int64Var(&scoreTimestamp, "timestamp", 0, "Unix timestamp (0 = now)")
	scoreSubmitCmd.Flags().StringVar(&scoreAuthority, "authority", "", "Acting game authority")
	scoreSubmitCmd.Flags().StringVar(&scoreFunder, "funder", "", "Funder account paying for growth")
	_ = scoreSubmitCmd.MarkFlagRequired("book")
	_ = scoreSubmitCmd.MarkFlagRequired("leaderboard")
	_ = scoreSubmitCmd.MarkFlagRequired("score")
	_ = scoreSubmitCmd.MarkFlagRequired("authority")
	_ = scoreSubmitCmd.MarkFlagRequired("funder")

	scoreCmd.AddCommand(scoreSubmitCmd)
	scoreCmd.AddCommand(scoreBestCmd)
	rootCmd.AddCommand(scoreCmd)
}
