// Package processor provides the FIFO command processor for the registry.
// The processor is a single-threaded loop that applies commands in strict
// FIFO order, so at most one mutation touches the ledger at a time and no
// handler ever observes another command's partial effects.
package processor

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/zjrosen/arcadia/internal/pubsub"
	"github.com/zjrosen/arcadia/internal/registry/command"
)

// DefaultQueueCapacity is the default buffer size for the command queue.
const DefaultQueueCapacity = 1000

// Option configures the CommandProcessor.
type Option func(*CommandProcessor)

// WithQueueCapacity sets the command queue buffer capacity.
func WithQueueCapacity(capacity int) Option {
	return func(p *CommandProcessor) {
		p.queueCapacity = capacity
	}
}

// WithEventBus sets the broker that receives events emitted by handlers.
func WithEventBus(bus *pubsub.Broker[any]) Option {
	return func(p *CommandProcessor) {
		p.eventBus = bus
	}
}

// WithMiddleware adds middleware applied to every registered handler.
// The first middleware wraps outermost.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(p *CommandProcessor) {
		p.middlewares = append(p.middlewares, middlewares...)
	}
}

// CommandProcessor applies commands one at a time in submission order.
// Serializing mutations through a single loop means handlers need no locks
// and every ledger transaction sees a consistent registry.
type CommandProcessor struct {
	queue         chan submission
	queueCapacity int

	handlers    map[command.CommandType]CommandHandler
	middlewares []Middleware

	eventBus *pubsub.Broker[any]

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	running   atomic.Bool
	started   atomic.Bool
	readyCh   chan struct{}
	readyOnce sync.Once

	processedCount atomic.Int64
	errorCount     atomic.Int64
}

// submission pairs a command with the channel its submitter is waiting on.
// The channel is nil for fire-and-forget submissions.
type submission struct {
	cmd   command.Command
	reply chan *outcome
}

type outcome struct {
	result *command.CommandResult
	err    error
}

// NewCommandProcessor creates a CommandProcessor with the given options.
func NewCommandProcessor(opts ...Option) *CommandProcessor {
	p := &CommandProcessor{
		queueCapacity: DefaultQueueCapacity,
		handlers:      make(map[command.CommandType]CommandHandler),
		readyCh:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RegisterHandler binds a handler to a command type, wrapped in the
// configured middleware chain. Must be called before Run.
func (p *CommandProcessor) RegisterHandler(cmdType command.CommandType, handler CommandHandler) {
	p.handlers[cmdType] = ChainMiddleware(handler, p.middlewares...)
}

// Run executes the processing loop until the context is cancelled or Stop
// is called. Only the first call does anything; later calls return
// immediately.
func (p *CommandProcessor) Run(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}

	p.ctx, p.cancel = context.WithCancel(ctx)
	p.queue = make(chan submission, p.queueCapacity)

	// wg.Add must precede the running flag so Drain cannot observe
	// running=true with nothing to wait on.
	p.wg.Add(1)
	p.running.Store(true)
	p.readyOnce.Do(func() { close(p.readyCh) })

	defer func() {
		p.running.Store(false)
		p.wg.Done()
	}()

	for {
		select {
		case <-p.ctx.Done():
			return
		case item, ok := <-p.queue:
			if !ok {
				// Drain closed the queue.
				return
			}
			p.dispatch(item)
		}
	}
}

// WaitForReady blocks until the loop is accepting commands or ctx ends.
func (p *CommandProcessor) WaitForReady(ctx context.Context) error {
	select {
	case <-p.readyCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit enqueues a command without waiting for its result.
// Returns ErrQueueFull when the queue is at capacity or the loop is down.
func (p *CommandProcessor) Submit(cmd command.Command) error {
	if !p.running.Load() {
		return command.ErrQueueFull
	}

	select {
	case p.queue <- submission{cmd: cmd}:
		return nil
	default:
		return command.ErrQueueFull
	}
}

// SubmitAndWait enqueues a command and blocks until it has been processed,
// ctx is cancelled, or the processor shuts down.
func (p *CommandProcessor) SubmitAndWait(ctx context.Context, cmd command.Command) (*command.CommandResult, error) {
	if !p.running.Load() {
		return nil, command.ErrQueueFull
	}

	reply := make(chan *outcome, 1)

	select {
	case p.queue <- submission{cmd: cmd, reply: reply}:
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		return nil, command.ErrQueueFull
	}

	select {
	case out := <-reply:
		return out.result, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.ctx.Done():
		return nil, context.Canceled
	}
}

// Stop cancels the loop and waits for it to exit. Commands still queued
// are not processed.
func (p *CommandProcessor) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

// Drain stops accepting new commands, finishes everything already queued,
// then returns.
func (p *CommandProcessor) Drain() {
	if !p.running.Load() {
		return
	}
	p.running.Store(false)
	close(p.queue)
	p.wg.Wait()
}

// IsRunning reports whether the loop is accepting commands.
func (p *CommandProcessor) IsRunning() bool {
	return p.running.Load()
}

// ProcessedCount returns the number of commands processed so far.
func (p *CommandProcessor) ProcessedCount() int64 {
	return p.processedCount.Load()
}

// ErrorCount returns the number of commands that failed.
func (p *CommandProcessor) ErrorCount() int64 {
	return p.errorCount.Load()
}

// QueueLength returns the number of commands waiting in the queue.
func (p *CommandProcessor) QueueLength() int {
	if p.queue == nil {
		return 0
	}
	return len(p.queue)
}

func (p *CommandProcessor) dispatch(item submission) {
	result := p.execute(item.cmd)

	p.processedCount.Add(1)
	if result != nil && !result.Success {
		p.errorCount.Add(1)
	}

	if item.reply != nil {
		item.reply <- &outcome{result: result}
		close(item.reply)
	}
}

// execute runs a command through validation, its handler, and event/follow-up
// emission. Failures are carried in the CommandResult rather than returned.
func (p *CommandProcessor) execute(cmd command.Command) *command.CommandResult {
	if err := cmd.Validate(); err != nil {
		p.emitErrorEvent(cmd, err)
		return &command.CommandResult{Success: false, Error: err}
	}

	handler, ok := p.handlers[cmd.Type()]
	if !ok {
		p.emitErrorEvent(cmd, ErrUnknownCommandType)
		return &command.CommandResult{Success: false, Error: ErrUnknownCommandType}
	}

	result, err := handler.Handle(p.ctx, cmd)
	if err != nil {
		p.emitErrorEvent(cmd, err)
		return &command.CommandResult{Success: false, Error: err}
	}

	if result != nil && len(result.Events) > 0 {
		p.emitEvents(result.Events)
	}

	if result != nil {
		for _, followUp := range result.FollowUp {
			// Follow-ups join the back of the queue. Non-blocking send:
			// a full queue must not deadlock the loop that drains it.
			select {
			case p.queue <- submission{cmd: followUp}:
			default:
			}
		}
	}

	return result
}

func (p *CommandProcessor) emitEvents(events []any) {
	if p.eventBus == nil {
		return
	}
	for _, event := range events {
		p.eventBus.Publish(pubsub.UpdatedEvent, event)
	}
}

func (p *CommandProcessor) emitErrorEvent(cmd command.Command, err error) {
	if p.eventBus == nil {
		return
	}
	p.eventBus.Publish(pubsub.UpdatedEvent, CommandErrorEvent{
		CommandID:   cmd.ID(),
		CommandType: cmd.Type(),
		Error:       err,
	})
}
