package command

import (
	"fmt"

	"github.com/zjrosen/arcadia/internal/ledger"
)

// ===========================================================================
// Leaderboard Commands
// ===========================================================================

// AddLeaderboardCommand adds a leaderboard record to a game.
type AddLeaderboardCommand struct {
	*BaseCommand
	Leaderboard   ledger.Address // Required: address for the new leaderboard record
	Game          ledger.Address // Required: game the leaderboard belongs to
	Authority     ledger.Address // Required: must be in the game's authority set
	Funder        ledger.Address // Required: pays the record's balance requirement
	Description   string         // Optional: display description
	Decimals      uint8          // Optional: score display decimals
	MinScore      uint64         // Required: inclusive lower bound for scores
	MaxScore      uint64         // Required: inclusive upper bound for scores
	Capacity      uint32         // Optional: retained top entries, 0 for default
	AllowMultiple bool           // Whether a player may hold multiple top entries
}

// NewAddLeaderboardCommand creates a new AddLeaderboardCommand.
func NewAddLeaderboardCommand(source CommandSource, leaderboard, game, authority, funder ledger.Address, description string, decimals uint8, minScore, maxScore uint64, capacity uint32, allowMultiple bool) *AddLeaderboardCommand {
	base := NewBaseCommand(CmdAddLeaderboard, source)
	return &AddLeaderboardCommand{
		BaseCommand:   &base,
		Leaderboard:   leaderboard,
		Game:          game,
		Authority:     authority,
		Funder:        funder,
		Description:   description,
		Decimals:      decimals,
		MinScore:      minScore,
		MaxScore:      maxScore,
		Capacity:      capacity,
		AllowMultiple: allowMultiple,
	}
}

// Validate checks that all addresses are provided and the score bounds are ordered.
func (c *AddLeaderboardCommand) Validate() error {
	if c.Leaderboard == "" {
		return fmt.Errorf("leaderboard address is required")
	}
	if c.Game == "" {
		return fmt.Errorf("game address is required")
	}
	if c.Authority == "" {
		return fmt.Errorf("authority address is required")
	}
	if c.Funder == "" {
		return fmt.Errorf("funder address is required")
	}
	if c.MinScore >= c.MaxScore {
		return fmt.Errorf("min score %d must be below max score %d", c.MinScore, c.MaxScore)
	}
	return nil
}

// String returns a readable representation of the command.
func (c *AddLeaderboardCommand) String() string {
	return fmt.Sprintf("AddLeaderboard{leaderboard=%s, game=%s}", c.Leaderboard, c.Game)
}
