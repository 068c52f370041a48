package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/zjrosen/arcadia/internal/ledger"
	"github.com/zjrosen/arcadia/internal/log"
	"github.com/zjrosen/arcadia/internal/registry/command"
)

// Middleware wraps a CommandHandler with a cross-cutting concern such as
// logging, tracing, or transaction management.
type Middleware func(CommandHandler) CommandHandler

// ChainMiddleware composes middlewares around a handler so the first one
// listed is the outermost wrapper: ChainMiddleware(h, logging, tx) runs as
// logging(tx(h)).
func ChainMiddleware(handler CommandHandler, middlewares ...Middleware) CommandHandler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// ===========================================================================
// Transaction Middleware
// ===========================================================================

// txContextKey is the context key under which the active ledger transaction
// is stored for handlers.
type txContextKey struct{}

// ContextWithTx returns a context carrying an active ledger transaction.
func ContextWithTx(ctx context.Context, tx ledger.Tx) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TxFromContext extracts the active ledger transaction from the context.
func TxFromContext(ctx context.Context) (ledger.Tx, bool) {
	tx, ok := ctx.Value(txContextKey{}).(ledger.Tx)
	return tx, ok
}

// NewTransactionMiddleware creates a middleware that wraps every handler in
// a ledger transaction. A transaction is begun before the handler runs and
// committed only when the handler succeeds; any error or failed result rolls
// the whole transaction back, so a command either applies all of its record
// mutations and transfers or none of them.
func NewTransactionMiddleware(txer ledger.Transactional) Middleware {
	return func(next CommandHandler) CommandHandler {
		return HandlerFunc(func(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
			tx, err := txer.Begin()
			if err != nil {
				return nil, fmt.Errorf("begin transaction: %w", err)
			}

			result, err := next.Handle(ContextWithTx(ctx, tx), cmd)
			if err != nil || (result != nil && !result.Success) {
				if rbErr := tx.Rollback(); rbErr != nil {
					log.ErrorErr(log.CatLedger, "rollback failed", rbErr,
						"command_id", cmd.ID(),
						"command_type", cmd.Type().String(),
					)
				}
				return result, err
			}

			if err := tx.Commit(); err != nil {
				return &command.CommandResult{
					Success: false,
					Error:   fmt.Errorf("commit transaction: %w", err),
				}, nil
			}
			return result, nil
		})
	}
}

// ===========================================================================
// Logging Middleware
// ===========================================================================

// LoggingMiddlewareConfig configures the logging middleware.
type LoggingMiddlewareConfig struct {
	// Reserved for future configuration options
}

// commandTraceID pulls the trace ID off commands that carry one.
func commandTraceID(cmd command.Command) string {
	if traced, ok := cmd.(interface{ TraceID() string }); ok {
		return traced.TraceID()
	}
	return ""
}

// NewLoggingMiddleware creates a middleware that logs every command's
// outcome and duration: debug on success, warn on a failed result, error
// when the handler itself errors.
func NewLoggingMiddleware(cfg LoggingMiddlewareConfig) Middleware {
	return func(next CommandHandler) CommandHandler {
		return HandlerFunc(func(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
			start := time.Now()

			source := ""
			if sourced, ok := cmd.(interface{ Source() command.CommandSource }); ok {
				source = string(sourced.Source())
			}

			result, err := next.Handle(ctx, cmd)
			duration := time.Since(start)

			fields := []any{
				"command_id", cmd.ID(),
				"command_type", cmd.Type().String(),
				"trace_id", commandTraceID(cmd),
				"duration", duration,
				"source", source,
			}

			switch {
			case err != nil:
				log.Error(log.CatCommands, "command failed",
					append(fields, "error", err.Error())...)
			case result != nil && !result.Success:
				errMsg := ""
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				log.Warn(log.CatCommands, "command completed with error result",
					append(fields, "error", errMsg)...)
			default:
				log.Debug(log.CatCommands, "command completed",
					append(fields, "success", result != nil && result.Success)...)
			}

			return result, err
		})
	}
}

// ===========================================================================
// Timeout Middleware
// ===========================================================================

// DefaultTimeoutWarningThreshold is the default threshold for logging slow handler warnings.
const DefaultTimeoutWarningThreshold = 100 * time.Millisecond

// TimeoutMiddlewareConfig configures the timeout middleware.
type TimeoutMiddlewareConfig struct {
	WarningThreshold time.Duration
}

// NewTimeoutMiddleware creates a middleware that logs a warning when a
// handler exceeds the configured threshold. Slow handlers are never
// aborted: cancelling mid-handler could leave a ledger transaction
// half-applied.
func NewTimeoutMiddleware(cfg TimeoutMiddlewareConfig) Middleware {
	threshold := cfg.WarningThreshold
	if threshold == 0 {
		threshold = DefaultTimeoutWarningThreshold
	}

	return func(next CommandHandler) CommandHandler {
		return HandlerFunc(func(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
			start := time.Now()
			result, err := next.Handle(ctx, cmd)

			if duration := time.Since(start); duration > threshold {
				log.Warn(log.CatCommands, "handler exceeded time threshold",
					"command_id", cmd.ID(),
					"command_type", cmd.Type().String(),
					"trace_id", commandTraceID(cmd),
					"duration", duration,
					"threshold", threshold,
				)
			}

			return result, err
		})
	}
}
