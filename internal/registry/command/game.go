// Package command provides concrete command types for the registry pipeline.
package command

import (
	"fmt"

	"github.com/zjrosen/arcadia/internal/ledger"
)

// ===========================================================================
// Game Commands
// ===========================================================================

// CreateGameCommand creates a new game record funded by Funder.
type CreateGameCommand struct {
	*BaseCommand
	Game        ledger.Address   // Required: address for the new game record
	Funder      ledger.Address   // Required: pays the record's balance requirement
	Title       string           // Required: display title
	Description string           // Optional: short description
	Genre       string           // Optional: genre label
	Authorities []ledger.Address // Required: at least one authority
}

// NewCreateGameCommand creates a new CreateGameCommand.
func NewCreateGameCommand(source CommandSource, game, funder ledger.Address, title, description, genre string, authorities []ledger.Address) *CreateGameCommand {
	base := NewBaseCommand(CmdCreateGame, source)
	return &CreateGameCommand{
		BaseCommand: &base,
		Game:        game,
		Funder:      funder,
		Title:       title,
		Description: description,
		Genre:       genre,
		Authorities: authorities,
	}
}

// Validate checks that the record address, funder, title, and authorities are provided.
func (c *CreateGameCommand) Validate() error {
	if c.Game == "" {
		return fmt.Errorf("game address is required")
	}
	if c.Funder == "" {
		return fmt.Errorf("funder address is required")
	}
	if c.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(c.Authorities) == 0 {
		return fmt.Errorf("at least one authority is required")
	}
	return nil
}

// String returns a readable representation of the command.
func (c *CreateGameCommand) String() string {
	return fmt.Sprintf("CreateGame{game=%s, title=%q}", c.Game, truncate(c.Title, 50))
}

// UpdateGameCommand replaces a game's metadata and optionally its authority set.
// An empty NewAuthorities list keeps the current set.
type UpdateGameCommand struct {
	*BaseCommand
	Game           ledger.Address   // Required: game record to update
	Authority      ledger.Address   // Required: must be in the game's authority set
	Funder         ledger.Address   // Required: pays any balance shortfall from growth
	Title          string           // Required: new display title
	Description    string           // Optional: new description
	Genre          string           // Optional: new genre label
	NewAuthorities []ledger.Address // Optional: replacement authority set
}

// NewUpdateGameCommand creates a new UpdateGameCommand.
func NewUpdateGameCommand(source CommandSource, game, authority, funder ledger.Address, title, description, genre string, newAuthorities []ledger.Address) *UpdateGameCommand {
	base := NewBaseCommand(CmdUpdateGame, source)
	return &UpdateGameCommand{
		BaseCommand:    &base,
		Game:           game,
		Authority:      authority,
		Funder:         funder,
		Title:          title,
		Description:    description,
		Genre:          genre,
		NewAuthorities: newAuthorities,
	}
}

// Validate checks that the record, authority, funder, and title are provided.
func (c *UpdateGameCommand) Validate() error {
	if c.Game == "" {
		return fmt.Errorf("game address is required")
	}
	if c.Authority == "" {
		return fmt.Errorf("authority address is required")
	}
	if c.Funder == "" {
		return fmt.Errorf("funder address is required")
	}
	if c.Title == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// String returns a readable representation of the command.
func (c *UpdateGameCommand) String() string {
	return fmt.Sprintf("UpdateGame{game=%s, title=%q}", c.Game, truncate(c.Title, 50))
}

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
