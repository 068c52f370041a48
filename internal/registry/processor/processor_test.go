package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/arcadia/internal/registry/command"
)

// testCommand is a minimal command for exercising the processor.
type testCommand struct {
	*command.BaseCommand
	validateErr error
}

func newTestCommand(cmdType command.CommandType) *testCommand {
	base := command.NewBaseCommand(cmdType, command.SourceInternal)
	return &testCommand{BaseCommand: &base}
}

func (c *testCommand) Validate() error {
	return c.validateErr
}

func startProcessor(t *testing.T, p *CommandProcessor) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go p.Run(ctx)
	require.NoError(t, p.WaitForReady(ctx), "processor should become ready")
	t.Cleanup(p.Stop)
}

func TestProcessor_SubmitAndWait(t *testing.T) {
	p := NewCommandProcessor()
	handled := false
	p.RegisterHandler("test", HandlerFunc(func(_ context.Context, _ command.Command) (*command.CommandResult, error) {
		handled = true
		return &command.CommandResult{Success: true, Data: "done"}, nil
	}))
	startProcessor(t, p)

	result, err := p.SubmitAndWait(context.Background(), newTestCommand("test"))
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, "done", result.Data)
	require.True(t, handled, "handler should have run")
	require.Equal(t, int64(1), p.ProcessedCount())
}

func TestProcessor_FIFOOrdering(t *testing.T) {
	p := NewCommandProcessor()
	var order []string
	p.RegisterHandler("test", HandlerFunc(func(_ context.Context, cmd command.Command) (*command.CommandResult, error) {
		order = append(order, cmd.ID())
		return &command.CommandResult{Success: true}, nil
	}))
	startProcessor(t, p)

	cmds := []*testCommand{newTestCommand("test"), newTestCommand("test"), newTestCommand("test")}
	for _, c := range cmds[:2] {
		require.NoError(t, p.Submit(c))
	}
	// Waiting on the last command flushes everything submitted before it.
	_, err := p.SubmitAndWait(context.Background(), cmds[2])
	require.NoError(t, err)

	require.Equal(t, []string{cmds[0].ID(), cmds[1].ID(), cmds[2].ID()}, order,
		"commands must execute in submission order")
}

func TestProcessor_UnknownCommandType(t *testing.T) {
	p := NewCommandProcessor()
	startProcessor(t, p)

	result, err := p.SubmitAndWait(context.Background(), newTestCommand("nope"))
	require.NoError(t, err)
	require.False(t, result.Success)
	require.ErrorIs(t, result.Error, ErrUnknownCommandType)
	require.Equal(t, int64(1), p.ErrorCount())
}

func TestProcessor_ValidationFailureSkipsHandler(t *testing.T) {
	p := NewCommandProcessor()
	handled := false
	p.RegisterHandler("test", HandlerFunc(func(_ context.Context, _ command.Command) (*command.CommandResult, error) {
		handled = true
		return &command.CommandResult{Success: true}, nil
	}))
	startProcessor(t, p)

	cmd := newTestCommand("test")
	cmd.validateErr = errors.New("bad command")
	result, err := p.SubmitAndWait(context.Background(), cmd)
	require.NoError(t, err)
	require.False(t, result.Success)
	require.ErrorContains(t, result.Error, "bad command")
	require.False(t, handled, "handler must not run for an invalid command")
}

func TestProcessor_FollowUpCommands(t *testing.T) {
	p := NewCommandProcessor()
	var handledTypes []command.CommandType
	p.RegisterHandler("first", HandlerFunc(func(_ context.Context, cmd command.Command) (*command.CommandResult, error) {
		handledTypes = append(handledTypes, cmd.Type())
		return &command.CommandResult{
			Success:  true,
			FollowUp: []command.Command{newTestCommand("second")},
		}, nil
	}))
	done := make(chan struct{})
	p.RegisterHandler("second", HandlerFunc(func(_ context.Context, cmd command.Command) (*command.CommandResult, error) {
		handledTypes = append(handledTypes, cmd.Type())
		close(done)
		return &command.CommandResult{Success: true}, nil
	}))
	startProcessor(t, p)

	_, err := p.SubmitAndWait(context.Background(), newTestCommand("first"))
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("follow-up command was never processed")
	}
	require.Equal(t, []command.CommandType{"first", "second"}, handledTypes)
}

func TestProcessor_SubmitWhenNotRunning(t *testing.T) {
	p := NewCommandProcessor()
	require.ErrorIs(t, p.Submit(newTestCommand("test")), command.ErrQueueFull)
}

func TestProcessor_QueueFull(t *testing.T) {
	p := NewCommandProcessor(WithQueueCapacity(1))
	block := make(chan struct{})
	p.RegisterHandler("test", HandlerFunc(func(_ context.Context, _ command.Command) (*command.CommandResult, error) {
		<-block
		return &command.CommandResult{Success: true}, nil
	}))
	startProcessor(t, p)
	defer close(block)

	// First command occupies the handler, second fills the queue.
	require.NoError(t, p.Submit(newTestCommand("test")))

	// Eventually the queue has exactly one slot taken and submissions fail.
	require.Eventually(t, func() bool {
		if err := p.Submit(newTestCommand("test")); errors.Is(err, command.ErrQueueFull) {
			return true
		}
		return false
	}, 2*time.Second, 10*time.Millisecond, "queue should fill up while the handler is blocked")
}
