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
// CreateGameHandler
// ===========================================================================

// CreateGameHandler handles CmdCreateGame commands.
// It creates the game record sized for the encoded entity, funded by the
// command's funder, and writes the initial game state.
type CreateGameHandler struct{}

// NewCreateGameHandler creates a new CreateGameHandler.
func NewCreateGameHandler() *CreateGameHandler {
	return &CreateGameHandler{}
}

// Handle processes a CreateGameCommand.
func (h *CreateGameHandler) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	c := cmd.(*command.CreateGameCommand)

	tx, err := txFrom(ctx)
	if err != nil {
		return nil, err
	}

	g, err := domain.NewGame(c.Title, c.Description, c.Genre, c.Authorities)
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	if _, err := tx.CreateRecord(c.Game, c.Authorities[0], g.EncodedSize(), c.Funder); err != nil {
		return nil, fmt.Errorf("create game record %s: %w", c.Game, err)
	}
	if err := tx.WriteData(c.Game, 0, g.Encode()); err != nil {
		return nil, fmt.Errorf("write game record %s: %w", c.Game, err)
	}

	log.Info(log.CatRegistry, "game created",
		"game", c.Game,
		"title", c.Title,
		"authorities", len(c.Authorities),
	)

	return SuccessWithEvents(g, processor.GameCreatedEvent{Game: c.Game, Title: c.Title}), nil
}

// ===========================================================================
// UpdateGameHandler
// ===========================================================================

// UpdateGameHandler handles CmdUpdateGame commands.
// The record is regrown to the new encoded size; a larger authority set or
// longer metadata tops the record's balance up from the funder, a smaller
// one shrinks the buffer without reclaiming balance.
type UpdateGameHandler struct{}

// NewUpdateGameHandler creates a new UpdateGameHandler.
func NewUpdateGameHandler() *UpdateGameHandler {
	return &UpdateGameHandler{}
}

// Handle processes an UpdateGameCommand.
func (h *UpdateGameHandler) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	c := cmd.(*command.UpdateGameCommand)

	tx, err := txFrom(ctx)
	if err != nil {
		return nil, err
	}

	g, err := loadGame(tx, c.Game)
	if err != nil {
		return nil, err
	}
	if err := requireAuthority(g, c.Authority); err != nil {
		return nil, err
	}

	if err := g.Update(c.Title, c.Description, c.Genre, c.NewAuthorities); err != nil {
		return nil, fmt.Errorf("update game %s: %w", c.Game, err)
	}

	if err := saveRecord(tx, c.Game, c.Funder, g); err != nil {
		return nil, err
	}

	log.Info(log.CatRegistry, "game updated", "game", c.Game, "title", c.Title)

	return SuccessWithEvents(g, processor.GameUpdatedEvent{Game: c.Game}), nil
}
