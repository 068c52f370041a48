// Package handler provides command handlers for the registry.
// Handlers run inside the ledger transaction opened by the processor's
// transaction middleware: they load records, apply domain mutations, grow
// the record to the entity's encoded size, and rewrite the buffer. A failed
// handler rolls the whole transaction back, so growth, funding transfers,
// and record writes land together or not at all.
package handler

import (
	"context"
	"fmt"

	"github.com/zjrosen/arcadia/internal/ledger"
	"github.com/zjrosen/arcadia/internal/registry/command"
	"github.com/zjrosen/arcadia/internal/registry/domain"
	"github.com/zjrosen/arcadia/internal/registry/processor"
)

// record is any domain entity that serializes into a ledger record buffer.
type record interface {
	EncodedSize() int
	Encode() []byte
}

// txFrom extracts the active ledger transaction injected by the
// transaction middleware.
func txFrom(ctx context.Context) (ledger.Tx, error) {
	tx, ok := processor.TxFromContext(ctx)
	if !ok {
		return nil, processor.ErrNoTransaction
	}
	return tx, nil
}

// saveRecord grows a record to the entity's encoded size, funding any
// balance shortfall from funder, then rewrites the buffer from offset zero.
// Encode produces exactly EncodedSize bytes, so every byte exposed by the
// growth is overwritten before the transaction commits.
func saveRecord(tx ledger.Tx, addr, funder ledger.Address, rec record) error {
	if err := ledger.Grow(tx, addr, funder, rec.EncodedSize()); err != nil {
		return err
	}
	return tx.WriteData(addr, 0, rec.Encode())
}

// loadGame reads and decodes a game record.
func loadGame(tx ledger.Tx, addr ledger.Address) (*domain.Game, error) {
	acct, err := tx.Account(addr)
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", addr, err)
	}
	g, err := domain.DecodeGame(acct.Data())
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", addr, err)
	}
	return g, nil
}

// loadLeaderboard reads and decodes a leaderboard record.
func loadLeaderboard(tx ledger.Tx, addr ledger.Address) (*domain.Leaderboard, error) {
	acct, err := tx.Account(addr)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard %s: %w", addr, err)
	}
	l, err := domain.DecodeLeaderboard(acct.Data())
	if err != nil {
		return nil, fmt.Errorf("load leaderboard %s: %w", addr, err)
	}
	return l, nil
}

// loadAchievement reads and decodes an achievement record.
func loadAchievement(tx ledger.Tx, addr ledger.Address) (*domain.Achievement, error) {
	acct, err := tx.Account(addr)
	if err != nil {
		return nil, fmt.Errorf("load achievement %s: %w", addr, err)
	}
	a, err := domain.DecodeAchievement(acct.Data())
	if err != nil {
		return nil, fmt.Errorf("load achievement %s: %w", addr, err)
	}
	return a, nil
}

// loadScoreBook reads and decodes a score book record.
func loadScoreBook(tx ledger.Tx, addr ledger.Address) (*domain.ScoreBook, error) {
	acct, err := tx.Account(addr)
	if err != nil {
		return nil, fmt.Errorf("load score book %s: %w", addr, err)
	}
	s, err := domain.DecodeScoreBook(acct.Data())
	if err != nil {
		return nil, fmt.Errorf("load score book %s: %w", addr, err)
	}
	return s, nil
}

// requireAuthority checks that addr is in the game's authority set.
func requireAuthority(g *domain.Game, addr ledger.Address) error {
	if !g.HasAuthority(addr) {
		return fmt.Errorf("%w: %s", domain.ErrNotGameAuthority, addr)
	}
	return nil
}

// Success builds a successful CommandResult with optional data.
func Success(data any) *command.CommandResult {
	return &command.CommandResult{Success: true, Data: data}
}

// SuccessWithEvents builds a successful CommandResult carrying events to emit.
func SuccessWithEvents(data any, events ...any) *command.CommandResult {
	return &command.CommandResult{Success: true, Data: data, Events: events}
}
