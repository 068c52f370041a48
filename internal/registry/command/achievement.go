package command

import (
	"fmt"

	"github.com/zjrosen/arcadia/internal/ledger"
)

// ===========================================================================
// Achievement Commands
// ===========================================================================

// AddAchievementCommand adds an achievement record to a game.
type AddAchievementCommand struct {
	*BaseCommand
	Achievement ledger.Address // Required: address for the new achievement record
	Game        ledger.Address // Required: game the achievement belongs to
	Authority   ledger.Address // Required: must be in the game's authority set
	Funder      ledger.Address // Required: pays the record's balance requirement
	Title       string         // Required: display title
	Description string         // Optional: unlock criteria description
	MetaURI     string         // Optional: off-ledger artwork/metadata
}

// NewAddAchievementCommand creates a new AddAchievementCommand.
func NewAddAchievementCommand(source CommandSource, achievement, game, authority, funder ledger.Address, title, description, metaURI string) *AddAchievementCommand {
	base := NewBaseCommand(CmdAddAchievement, source)
	return &AddAchievementCommand{
		BaseCommand: &base,
		Achievement: achievement,
		Game:        game,
		Authority:   authority,
		Funder:      funder,
		Title:       title,
		Description: description,
		MetaURI:     metaURI,
	}
}

// Validate checks that all addresses and the title are provided.
func (c *AddAchievementCommand) Validate() error {
	if c.Achievement == "" {
		return fmt.Errorf("achievement address is required")
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
	if c.Title == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// String returns a readable representation of the command.
func (c *AddAchievementCommand) String() string {
	return fmt.Sprintf("AddAchievement{achievement=%s, title=%q}", c.Achievement, truncate(c.Title, 50))
}

// UpdateAchievementCommand updates an achievement's mutable metadata.
// Empty fields keep their current values.
type UpdateAchievementCommand struct {
	*BaseCommand
	Achievement ledger.Address // Required: achievement record to update
	Authority   ledger.Address // Required: must be in the owning game's authority set
	Funder      ledger.Address // Required: pays any balance shortfall from growth
	Title       string         // Optional: new display title
	Description string         // Optional: new description
	MetaURI     string         // Optional: new metadata URI
}

// NewUpdateAchievementCommand creates a new UpdateAchievementCommand.
func NewUpdateAchievementCommand(source CommandSource, achievement, authority, funder ledger.Address, title, description, metaURI string) *UpdateAchievementCommand {
	base := NewBaseCommand(CmdUpdateAchievement, source)
	return &UpdateAchievementCommand{
		BaseCommand: &base,
		Achievement: achievement,
		Authority:   authority,
		Funder:      funder,
		Title:       title,
		Description: description,
		MetaURI:     metaURI,
	}
}

// Validate checks that the addresses are provided and at least one field changes.
func (c *UpdateAchievementCommand) Validate() error {
	if c.Achievement == "" {
		return fmt.Errorf("achievement address is required")
	}
	if c.Authority == "" {
		return fmt.Errorf("authority address is required")
	}
	if c.Funder == "" {
		return fmt.Errorf("funder address is required")
	}
	if c.Title == "" && c.Description == "" && c.MetaURI == "" {
		return fmt.Errorf("at least one field to update is required")
	}
	return nil
}

// String returns a readable representation of the command.
func (c *UpdateAchievementCommand) String() string {
	return fmt.Sprintf("UpdateAchievement{achievement=%s}", c.Achievement)
}
