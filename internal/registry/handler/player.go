package handler

import (
	"context"
	"fmt"

	"github.com/zjrosen/arcadia/internal/log"
	"github.com/zjrosen/arcadia/internal/registry/command"
	"github.com/zjrosen/arcadia/internal/registry/domain"
	"github.com/zjrosen/arcadia/internal/registry/processor"
)

// ===========================================================================
// CreatePlayerHandler
// ===========================================================================

// CreatePlayerHandler handles CmdCreatePlayer commands.
type CreatePlayerHandler struct{}

// NewCreatePlayerHandler creates a new CreatePlayerHandler.
func NewCreatePlayerHandler() *CreatePlayerHandler {
	return &CreatePlayerHandler{}
}

// Handle processes a CreatePlayerCommand.
func (h *CreatePlayerHandler) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	c := cmd.(*command.CreatePlayerCommand)

	tx, err := txFrom(ctx)
	if err != nil {
		return nil, err
	}

	p, err := domain.NewPlayer(c.User, c.Username, c.MetaURI)
	if err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}

	if _, err := tx.CreateRecord(c.Player, c.User, p.EncodedSize(), c.Funder); err != nil {
		return nil, fmt.Errorf("create player record %s: %w", c.Player, err)
	}
	if err := tx.WriteData(c.Player, 0, p.Encode()); err != nil {
		return nil, fmt.Errorf("write player record %s: %w", c.Player, err)
	}

	log.Info(log.CatRegistry, "player created", "player", c.Player, "username", c.Username)

	return SuccessWithEvents(p, processor.PlayerCreatedEvent{Player: c.Player, Username: c.Username}), nil
}

// ===========================================================================
// RegisterPlayerHandler
// ===========================================================================

// RegisterPlayerHandler handles CmdRegisterPlayer commands.
// It opens an empty score book for the player on the leaderboard. Both the
// player and leaderboard records must already exist.
type RegisterPlayerHandler struct{}

// NewRegisterPlayerHandler creates a new RegisterPlayerHandler.
func NewRegisterPlayerHandler() *RegisterPlayerHandler {
	return &RegisterPlayerHandler{}
}

// Handle processes a RegisterPlayerCommand.
func (h *RegisterPlayerHandler) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	c := cmd.(*command.RegisterPlayerCommand)

	tx, err := txFrom(ctx)
	if err != nil {
		return nil, err
	}

	// Both ends of the registration must exist before the book is opened.
	if _, err := tx.Account(c.Player); err != nil {
		return nil, fmt.Errorf("register player %s: %w", c.Player, err)
	}
	if _, err := loadLeaderboard(tx, c.Leaderboard); err != nil {
		return nil, err
	}

	sb := domain.NewScoreBook(c.Player, c.Leaderboard)

	if _, err := tx.CreateRecord(c.ScoreBook, c.Player, sb.EncodedSize(), c.Funder); err != nil {
		return nil, fmt.Errorf("create score book record %s: %w", c.ScoreBook, err)
	}
	if err := tx.WriteData(c.ScoreBook, 0, sb.Encode()); err != nil {
		return nil, fmt.Errorf("write score book record %s: %w", c.ScoreBook, err)
	}

	log.Info(log.CatRegistry, "player registered",
		"score_book", c.ScoreBook,
		"player", c.Player,
		"leaderboard", c.Leaderboard,
	)

	return SuccessWithEvents(sb, processor.PlayerRegisteredEvent{
		ScoreBook:   c.ScoreBook,
		Player:      c.Player,
		Leaderboard: c.Leaderboard,
	}), nil
}
