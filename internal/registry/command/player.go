package command

import (
	"fmt"

	"github.com/zjrosen/arcadia/internal/ledger"
)

// ===========================================================================
// Player Commands
// ===========================================================================

// CreatePlayerCommand creates a player profile record for a user wallet.
type CreatePlayerCommand struct {
	*BaseCommand
	Player   ledger.Address // Required: address for the new player record
	User     ledger.Address // Required: wallet that owns the profile
	Funder   ledger.Address // Required: pays the record's balance requirement
	Username string         // Required: display name
	MetaURI  string         // Optional: off-ledger profile metadata
}

// NewCreatePlayerCommand creates a new CreatePlayerCommand.
func NewCreatePlayerCommand(source CommandSource, player, user, funder ledger.Address, username, metaURI string) *CreatePlayerCommand {
	base := NewBaseCommand(CmdCreatePlayer, source)
	return &CreatePlayerCommand{
		BaseCommand: &base,
		Player:      player,
		User:        user,
		Funder:      funder,
		Username:    username,
		MetaURI:     metaURI,
	}
}

// Validate checks that the record, user, funder, and username are provided.
func (c *CreatePlayerCommand) Validate() error {
	if c.Player == "" {
		return fmt.Errorf("player address is required")
	}
	if c.User == "" {
		return fmt.Errorf("user address is required")
	}
	if c.Funder == "" {
		return fmt.Errorf("funder address is required")
	}
	if c.Username == "" {
		return fmt.Errorf("username is required")
	}
	return nil
}

// String returns a readable representation of the command.
func (c *CreatePlayerCommand) String() string {
	return fmt.Sprintf("CreatePlayer{player=%s, username=%q}", c.Player, c.Username)
}

// RegisterPlayerCommand opens an empty score book linking a player to a
// leaderboard. Scores cannot be submitted until the player is registered.
type RegisterPlayerCommand struct {
	*BaseCommand
	ScoreBook   ledger.Address // Required: address for the new score book record
	Player      ledger.Address // Required: existing player record
	Leaderboard ledger.Address // Required: existing leaderboard record
	Funder      ledger.Address // Required: pays the record's balance requirement
}

// NewRegisterPlayerCommand creates a new RegisterPlayerCommand.
func NewRegisterPlayerCommand(source CommandSource, scoreBook, player, leaderboard, funder ledger.Address) *RegisterPlayerCommand {
	base := NewBaseCommand(CmdRegisterPlayer, source)
	return &RegisterPlayerCommand{
		BaseCommand: &base,
		ScoreBook:   scoreBook,
		Player:      player,
		Leaderboard: leaderboard,
		Funder:      funder,
	}
}

// Validate checks that all addresses are provided.
func (c *RegisterPlayerCommand) Validate() error {
	if c.ScoreBook == "" {
		return fmt.Errorf("score book address is required")
	}
	if c.Player == "" {
		return fmt.Errorf("player address is required")
	}
	if c.Leaderboard == "" {
		return fmt.Errorf("leaderboard address is required")
	}
	if c.Funder == "" {
		return fmt.Errorf("funder address is required")
	}
	return nil
}

// String returns a readable representation of the command.
func (c *RegisterPlayerCommand) String() string {
	return fmt.Sprintf("RegisterPlayer{player=%s, leaderboard=%s}", c.Player, c.Leaderboard)
}
