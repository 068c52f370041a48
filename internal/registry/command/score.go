package command

import (
	"fmt"

	"github.com/zjrosen/arcadia/internal/ledger"
)

// ===========================================================================
// Score Commands
// ===========================================================================

// SubmitScoreCommand appends a score to a player's score book and folds it
// into the leaderboard's retained top entries. The score book record grows by
// a fixed stride per entry, funded by Funder.
type SubmitScoreCommand struct {
	*BaseCommand
	ScoreBook   ledger.Address // Required: the player's score book for this leaderboard
	Leaderboard ledger.Address // Required: leaderboard the score targets
	Authority   ledger.Address // Required: must be in the owning game's authority set
	Funder      ledger.Address // Required: pays any balance shortfall from growth
	Score       uint64         // The submitted score, validated against the board's bounds
	Timestamp   int64          // Optional: unix seconds, 0 means now
}

// NewSubmitScoreCommand creates a new SubmitScoreCommand.
func NewSubmitScoreCommand(source CommandSource, scoreBook, leaderboard, authority, funder ledger.Address, score uint64, timestamp int64) *SubmitScoreCommand {
	base := NewBaseCommand(CmdSubmitScore, source)
	return &SubmitScoreCommand{
		BaseCommand: &base,
		ScoreBook:   scoreBook,
		Leaderboard: leaderboard,
		Authority:   authority,
		Funder:      funder,
		Score:       score,
		Timestamp:   timestamp,
	}
}

// Validate checks that all addresses are provided.
func (c *SubmitScoreCommand) Validate() error {
	if c.ScoreBook == "" {
		return fmt.Errorf("score book address is required")
	}
	if c.Leaderboard == "" {
		return fmt.Errorf("leaderboard address is required")
	}
	if c.Authority == "" {
		return fmt.Errorf("authority address is required")
	}
	if c.Funder == "" {
		return fmt.Errorf("funder address is required")
	}
	return nil
}

// String returns a readable representation of the command.
func (c *SubmitScoreCommand) String() string {
	return fmt.Sprintf("SubmitScore{scoreBook=%s, score=%d}", c.ScoreBook, c.Score)
}
