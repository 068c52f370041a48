package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/zjrosen/arcadia/internal/log"
	"github.com/zjrosen/arcadia/internal/registry/command"
	"github.com/zjrosen/arcadia/internal/registry/processor"
)

// ===========================================================================
// SubmitScoreHandler
// ===========================================================================

// SubmitScoreHandler handles CmdSubmitScore commands.
// Submitting a score appends a fixed-stride entry to the player's score
// book, which is the registry's steady record-growth path: every submission
// regrows the book to its new encoded size with the funder covering the
// balance shortfall. The leaderboard's retained top entries are updated in
// the same transaction.
type SubmitScoreHandler struct {
	now func() time.Time
}

// SubmitScoreHandlerOption configures SubmitScoreHandler.
type SubmitScoreHandlerOption func(*SubmitScoreHandler)

// WithClock sets the time source used when a command carries no timestamp.
func WithClock(now func() time.Time) SubmitScoreHandlerOption {
	return func(h *SubmitScoreHandler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewSubmitScoreHandler creates a new SubmitScoreHandler.
func NewSubmitScoreHandler(opts ...SubmitScoreHandlerOption) *SubmitScoreHandler {
	h := &SubmitScoreHandler{now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle processes a SubmitScoreCommand.
// 1. Loads the score book and its leaderboard
// 2. Checks the submitting authority against the owning game
// 3. Validates the score against the board's bounds
// 4. Appends to the book and regrows its record
// 5. Folds the score into the board's top entries
func (h *SubmitScoreHandler) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	c := cmd.(*command.SubmitScoreCommand)

	tx, err := txFrom(ctx)
	if err != nil {
		return nil, err
	}

	sb, err := loadScoreBook(tx, c.ScoreBook)
	if err != nil {
		return nil, err
	}
	if sb.Leaderboard() != c.Leaderboard {
		return nil, fmt.Errorf("score book %s is registered to %s, not %s", c.ScoreBook, sb.Leaderboard(), c.Leaderboard)
	}

	lb, err := loadLeaderboard(tx, c.Leaderboard)
	if err != nil {
		return nil, err
	}
	g, err := loadGame(tx, lb.Game())
	if err != nil {
		return nil, err
	}
	if err := requireAuthority(g, c.Authority); err != nil {
		return nil, err
	}

	if err := lb.ValidateScore(c.Score); err != nil {
		return nil, err
	}

	ts := c.Timestamp
	if ts == 0 {
		ts = h.now().Unix()
	}
	if err := sb.Append(c.Score, ts, lb.AllowMultiple()); err != nil {
		return nil, err
	}

	if err := saveRecord(tx, c.ScoreBook, c.Funder, sb); err != nil {
		return nil, err
	}

	madeTop := lb.RecordTop(sb.Player(), c.Score)
	if madeTop {
		if err := saveRecord(tx, c.Leaderboard, c.Funder, lb); err != nil {
			return nil, err
		}
	}

	log.Info(log.CatRegistry, "score submitted",
		"score_book", c.ScoreBook,
		"leaderboard", c.Leaderboard,
		"score", c.Score,
		"made_top", madeTop,
	)

	return SuccessWithEvents(sb, processor.ScoreSubmittedEvent{
		ScoreBook:   c.ScoreBook,
		Leaderboard: c.Leaderboard,
		Player:      sb.Player(),
		Score:       c.Score,
		MadeTop:     madeTop,
		Timestamp:   time.Unix(ts, 0),
	}), nil
}
