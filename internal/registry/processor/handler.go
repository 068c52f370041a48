// Package processor provides the FIFO command processor for the registry.
// This file defines the handler contract that command handlers implement.
package processor

import (
	"context"
	"errors"

	"github.com/zjrosen/arcadia/internal/registry/command"
)

// CommandHandler executes a single command against the ledger.
// Handlers run on the processor's single goroutine, so they never need
// internal locking.
type CommandHandler interface {
	Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error)
}

// HandlerFunc adapts a function to the CommandHandler interface.
type HandlerFunc func(ctx context.Context, cmd command.Command) (*command.CommandResult, error)

// Handle calls f(ctx, cmd).
func (f HandlerFunc) Handle(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	return f(ctx, cmd)
}

// ErrUnknownCommandType is returned when no handler is registered for a command type.
var ErrUnknownCommandType = errors.New("unknown command type")

// ErrNoTransaction is returned when a handler runs without an enclosing ledger transaction.
var ErrNoTransaction = errors.New("no ledger transaction in context")
