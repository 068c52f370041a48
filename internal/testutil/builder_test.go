package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/arcadia/internal/ledger"
	"github.com/zjrosen/arcadia/internal/registry/domain"
)

func TestBuilder_WithGame(t *testing.T) {
	l := NewTestLedger(t)

	NewBuilder(t, l).
		WithFunder("funder-1", 1_000_000).
		WithGame("game-1").
		Build()

	acct, err := l.Account("game-1")
	require.NoError(t, err)

	game, err := domain.DecodeGame(acct.Data())
	require.NoError(t, err)
	require.Equal(t, "game-1", game.Title(), "default title is the address")
	require.Equal(t, "arcade", game.Genre())
	require.True(t, game.HasAuthority("authority-1"))
}

func TestBuilder_WithGame_Options(t *testing.T) {
	l := NewTestLedger(t)

	NewBuilder(t, l).
		WithFunder("funder-1", 1_000_000).
		WithGame("game-1",
			Title("Space Raid"),
			Description("Wave shooter"),
			Genre("shmup"),
			Authorities("auth-a", "auth-b"),
		).
		Build()

	acct, err := l.Account("game-1")
	require.NoError(t, err)

	game, err := domain.DecodeGame(acct.Data())
	require.NoError(t, err)
	require.Equal(t, "Space Raid", game.Title())
	require.Equal(t, "Wave shooter", game.Description())
	require.Equal(t, "shmup", game.Genre())
	require.True(t, game.HasAuthority("auth-a"))
	require.True(t, game.HasAuthority("auth-b"))
	require.False(t, game.HasAuthority("authority-1"))
}

func TestBuilder_FullRegistry(t *testing.T) {
	l := NewTestLedger(t)

	NewBuilder(t, l).
		WithFunder("funder-1", 10_000_000).
		WithGame("game-1").
		WithPlayer("player-1", "user-1", Username("alice")).
		WithLeaderboard("board-1", "game-1", Bounds(0, 100), Capacity(3)).
		WithScoreBook("book-1", "player-1", "board-1").
		Build()

	boardAcct, err := l.Account("board-1")
	require.NoError(t, err)
	board, err := domain.DecodeLeaderboard(boardAcct.Data())
	require.NoError(t, err)
	require.Equal(t, ledger.Address("game-1"), board.Game())
	require.NoError(t, board.ValidateScore(50))
	require.Error(t, board.ValidateScore(101))

	bookAcct, err := l.Account("book-1")
	require.NoError(t, err)
	book, err := domain.DecodeScoreBook(bookAcct.Data())
	require.NoError(t, err)
	require.Equal(t, ledger.Address("player-1"), book.Player())
	require.Equal(t, ledger.Address("board-1"), book.Leaderboard())
}

func TestBuilder_FunderPaysForRecords(t *testing.T) {
	l := NewTestLedger(t)

	NewBuilder(t, l).
		WithFunder("funder-1", 1_000_000).
		WithGame("game-1").
		Build()

	gameAcct, err := l.Account("game-1")
	require.NoError(t, err)
	required := TestRentSchedule.MinimumBalance(gameAcct.Size())
	require.Equal(t, required, gameAcct.Balance(), "record funded to exactly its minimum balance")

	funder, err := l.Account("funder-1")
	require.NoError(t, err)
	require.Equal(t, 1_000_000-required, funder.Balance())
}
