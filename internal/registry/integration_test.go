package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/arcadia/internal/ledger"
	"github.com/zjrosen/arcadia/internal/registry/command"
	"github.com/zjrosen/arcadia/internal/registry/domain"
	"github.com/zjrosen/arcadia/internal/registry/handler"
	"github.com/zjrosen/arcadia/internal/registry/processor"
	"github.com/zjrosen/arcadia/internal/testutil"
)

// startStack runs the full command pipeline against a SQLite-backed ledger:
// transactional middleware, all handlers, single-threaded processor.
func startStack(t *testing.T, l ledger.Transactional) *processor.CommandProcessor {
	t.Helper()

	p := processor.NewCommandProcessor(
		processor.WithMiddleware(processor.NewTransactionMiddleware(l)),
	)
	handler.RegisterAll(p)

	ctx, cancel := context.WithCancel(context.Background())
	go p.Run(ctx)
	require.NoError(t, p.WaitForReady(ctx))
	t.Cleanup(func() {
		p.Stop()
		cancel()
	})
	return p
}

func decodeScoreBook(t *testing.T, l ledger.Ledger, addr ledger.Address) *domain.ScoreBook {
	t.Helper()
	acct, err := l.Account(addr)
	require.NoError(t, err)
	book, err := domain.DecodeScoreBook(acct.Data())
	require.NoError(t, err)
	return book
}

func TestRegistry_SubmitScore_EndToEndOnSQLite(t *testing.T) {
	l := testutil.NewTestLedger(t)
	testutil.NewBuilder(t, l).
		WithFunder("funder-1", 10_000_000).
		WithGame("game-1").
		WithPlayer("player-1", "user-1", testutil.Username("alice")).
		WithLeaderboard("board-1", "game-1", testutil.Bounds(0, 1000), testutil.Capacity(5)).
		WithScoreBook("book-1", "player-1", "board-1").
		Build()

	p := startStack(t, l)

	cmd := command.NewSubmitScoreCommand(command.SourceCLI, "book-1", "board-1", "authority-1", "funder-1", 250, 1700000000)
	result, err := p.SubmitAndWait(context.Background(), cmd)
	require.NoError(t, err, "submit should commit")
	require.True(t, result.Success)

	// Entry persisted in the score book
	book := decodeScoreBook(t, l, "book-1")
	require.Len(t, book.Entries(), 1)
	best, ok := book.Best()
	require.True(t, ok)
	require.Equal(t, uint64(250), best.Score)
	require.Equal(t, int64(1700000000), best.Timestamp)

	// Top standings persisted on the leaderboard
	boardAcct, err := l.Account("board-1")
	require.NoError(t, err)
	board, err := domain.DecodeLeaderboard(boardAcct.Data())
	require.NoError(t, err)
	require.Len(t, board.Top(), 1)
	require.Equal(t, ledger.Address("player-1"), board.Top()[0].Player)

	// The grown book is funded to exactly the minimum for its new size
	bookAcct, err := l.Account("book-1")
	require.NoError(t, err)
	require.Equal(t, testutil.TestRentSchedule.MinimumBalance(bookAcct.Size()), bookAcct.Balance())
}

func TestRegistry_InsufficientFunder_NothingPersists(t *testing.T) {
	l := testutil.NewTestLedger(t)
	testutil.NewBuilder(t, l).
		WithFunder("funder-1", 10_000_000).
		WithFunder("poor", 10).
		WithGame("game-1").
		WithPlayer("player-1", "user-1").
		WithLeaderboard("board-1", "game-1", testutil.Bounds(0, 1000)).
		WithScoreBook("book-1", "player-1", "board-1").
		Build()

	p := startStack(t, l)

	before, err := l.Account("book-1")
	require.NoError(t, err)

	cmd := command.NewSubmitScoreCommand(command.SourceCLI, "book-1", "board-1", "authority-1", "poor", 250, 0)
	result, err := p.SubmitAndWait(context.Background(), cmd)
	require.NoError(t, err)
	require.False(t, result.Success)
	require.ErrorIs(t, result.Error, ledger.ErrTransferRejected)

	// The whole transaction rolled back: size, balance, and data untouched
	after, err := l.Account("book-1")
	require.NoError(t, err)
	require.Equal(t, before.Size(), after.Size())
	require.Equal(t, before.Balance(), after.Balance())
	require.Equal(t, before.Data(), after.Data())

	poor, err := l.Account("poor")
	require.NoError(t, err)
	require.Equal(t, uint64(10), poor.Balance())
}

func TestRegistry_CreateGameAndLeaderboard_EndToEnd(t *testing.T) {
	l := testutil.NewTestLedger(t)
	testutil.NewBuilder(t, l).
		WithFunder("funder-1", 10_000_000).
		Build()

	p := startStack(t, l)

	createGame := command.NewCreateGameCommand(command.SourceCLI, "game-1", "funder-1",
		"Space Raid", "Wave shooter", "shmup", []ledger.Address{"auth-1"})
	result, err := p.SubmitAndWait(context.Background(), createGame)
	require.NoError(t, err)
	require.True(t, result.Success)

	addBoard := command.NewAddLeaderboardCommand(command.SourceCLI, "board-1", "game-1", "auth-1", "funder-1",
		"High scores", 0, 0, 1000, 10, false)
	result, err = p.SubmitAndWait(context.Background(), addBoard)
	require.NoError(t, err)
	require.True(t, result.Success)

	gameAcct, err := l.Account("game-1")
	require.NoError(t, err)
	game, err := domain.DecodeGame(gameAcct.Data())
	require.NoError(t, err)
	require.Equal(t, "Space Raid", game.Title())
	require.Equal(t, uint32(1), game.LeaderboardCount(), "adding a board bumps the game's counter")

	boardAcct, err := l.Account("board-1")
	require.NoError(t, err)
	board, err := domain.DecodeLeaderboard(boardAcct.Data())
	require.NoError(t, err)
	require.Equal(t, ledger.Address("game-1"), board.Game())
}
