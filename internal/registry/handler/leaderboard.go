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
// AddLeaderboardHandler
// ===========================================================================

// AddLeaderboardHandler handles CmdAddLeaderboard commands.
// It creates the leaderboard record and bumps the owning game's leaderboard
// counter, both inside the enclosing transaction.
type AddLeaderboardHandler struct{}

// NewAddLeaderboardHandler creates a new AddLeaderboardHandler.
func NewAddLeaderboardHandler() *AddLeaderboardHandler {
	return &AddLeaderboardHandler{}
}

// Handle processes an AddLeaderboardCommand.
func (h *AddLeaderboardHandler) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	c := cmd.(*command.AddLeaderboardCommand)

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

	lb, err := domain.NewLeaderboard(c.Game, c.Description, c.Decimals, c.MinScore, c.MaxScore, c.Capacity, c.AllowMultiple)
	if err != nil {
		return nil, fmt.Errorf("add leaderboard: %w", err)
	}

	if _, err := tx.CreateRecord(c.Leaderboard, c.Game, lb.EncodedSize(), c.Funder); err != nil {
		return nil, fmt.Errorf("create leaderboard record %s: %w", c.Leaderboard, err)
	}
	if err := tx.WriteData(c.Leaderboard, 0, lb.Encode()); err != nil {
		return nil, fmt.Errorf("write leaderboard record %s: %w", c.Leaderboard, err)
	}

	g.IncrementLeaderboards()
	if err := saveRecord(tx, c.Game, c.Funder, g); err != nil {
		return nil, err
	}

	log.Info(log.CatRegistry, "leaderboard added",
		"leaderboard", c.Leaderboard,
		"game", c.Game,
		"capacity", lb.Capacity(),
	)

	return SuccessWithEvents(lb, processor.LeaderboardAddedEvent{Leaderboard: c.Leaderboard, Game: c.Game}), nil
}
