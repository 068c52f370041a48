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
// AddAchievementHandler
// ===========================================================================

// AddAchievementHandler handles CmdAddAchievement commands.
type AddAchievementHandler struct{}

// NewAddAchievementHandler creates a new AddAchievementHandler.
func NewAddAchievementHandler() *AddAchievementHandler {
	return &AddAchievementHandler{}
}

// Handle processes an AddAchievementCommand.
func (h *AddAchievementHandler) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	c := cmd.(*command.AddAchievementCommand)

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

	a, err := domain.NewAchievement(c.Game, c.Title, c.Description, c.MetaURI)
	if err != nil {
		return nil, fmt.Errorf("add achievement: %w", err)
	}

	if _, err := tx.CreateRecord(c.Achievement, c.Game, a.EncodedSize(), c.Funder); err != nil {
		return nil, fmt.Errorf("create achievement record %s: %w", c.Achievement, err)
	}
	if err := tx.WriteData(c.Achievement, 0, a.Encode()); err != nil {
		return nil, fmt.Errorf("write achievement record %s: %w", c.Achievement, err)
	}

	g.IncrementAchievements()
	if err := saveRecord(tx, c.Game, c.Funder, g); err != nil {
		return nil, err
	}

	log.Info(log.CatRegistry, "achievement added",
		"achievement", c.Achievement,
		"game", c.Game,
		"title", c.Title,
	)

	return SuccessWithEvents(a, processor.AchievementAddedEvent{
		Achievement: c.Achievement,
		Game:        c.Game,
		Title:       c.Title,
	}), nil
}

// ===========================================================================
// UpdateAchievementHandler
// ===========================================================================

// UpdateAchievementHandler handles CmdUpdateAchievement commands.
// Longer metadata grows the record with the funder covering the shortfall;
// shorter metadata shrinks the buffer and keeps the balance.
type UpdateAchievementHandler struct{}

// NewUpdateAchievementHandler creates a new UpdateAchievementHandler.
func NewUpdateAchievementHandler() *UpdateAchievementHandler {
	return &UpdateAchievementHandler{}
}

// Handle processes an UpdateAchievementCommand.
func (h *UpdateAchievementHandler) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	c := cmd.(*command.UpdateAchievementCommand)

	tx, err := txFrom(ctx)
	if err != nil {
		return nil, err
	}

	a, err := loadAchievement(tx, c.Achievement)
	if err != nil {
		return nil, err
	}
	g, err := loadGame(tx, a.Game())
	if err != nil {
		return nil, err
	}
	if err := requireAuthority(g, c.Authority); err != nil {
		return nil, err
	}

	if err := a.Update(c.Title, c.Description, c.MetaURI); err != nil {
		return nil, fmt.Errorf("update achievement %s: %w", c.Achievement, err)
	}

	if err := saveRecord(tx, c.Achievement, c.Funder, a); err != nil {
		return nil, err
	}

	log.Info(log.CatRegistry, "achievement updated", "achievement", c.Achievement)

	return SuccessWithEvents(a, processor.AchievementUpdatedEvent{Achievement: c.Achievement}), nil
}
