package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/arcadia/internal/ledger"
)

func TestNewLeaderboard_Validation(t *testing.T) {
	_, err := NewLeaderboard("game-1", "speedrun", 0, 100, 100, 0, false)
	require.ErrorIs(t, err, ErrInvalidBounds, "min equal to max should be rejected")

	_, err = NewLeaderboard("game-1", "speedrun", 0, 200, 100, 0, false)
	require.ErrorIs(t, err, ErrInvalidBounds, "min above max should be rejected")

	lb, err := NewLeaderboard("game-1", "speedrun", 0, 0, 1000, 0, false)
	require.NoError(t, err)
	require.Equal(t, uint32(DefaultTopCapacity), lb.Capacity(), "zero capacity should use the default")
}

func TestLeaderboard_ValidateScore(t *testing.T) {
	lb, err := NewLeaderboard("game-1", "speedrun", 0, 10, 100, 0, false)
	require.NoError(t, err)

	require.NoError(t, lb.ValidateScore(10))
	require.NoError(t, lb.ValidateScore(100))
	require.ErrorIs(t, lb.ValidateScore(9), ErrScoreOutOfRange)
	require.ErrorIs(t, lb.ValidateScore(101), ErrScoreOutOfRange)
}

func TestLeaderboard_RecordTopKeepsBestFirst(t *testing.T) {
	lb, err := NewLeaderboard("game-1", "speedrun", 0, 0, 1000, 3, true)
	require.NoError(t, err)

	require.True(t, lb.RecordTop("p1", 100))
	require.True(t, lb.RecordTop("p2", 300))
	require.True(t, lb.RecordTop("p3", 200))

	top := lb.Top()
	require.Equal(t, []uint64{300, 200, 100}, []uint64{top[0].Score, top[1].Score, top[2].Score})

	// A score below the retained floor falls off a full board.
	require.False(t, lb.RecordTop("p4", 50), "score below the cut should not make the board")
	require.Len(t, lb.Top(), 3)

	require.True(t, lb.RecordTop("p4", 250))
	top = lb.Top()
	require.Equal(t, ledger.Address("p2"), top[0].Player)
	require.Equal(t, ledger.Address("p4"), top[1].Player)
	require.Equal(t, ledger.Address("p3"), top[2].Player)
}

func TestLeaderboard_RecordTopSingleEntryPerPlayer(t *testing.T) {
	lb, err := NewLeaderboard("game-1", "speedrun", 0, 0, 1000, 5, false)
	require.NoError(t, err)

	require.True(t, lb.RecordTop("p1", 100))
	require.False(t, lb.RecordTop("p1", 80), "worse score should not replace the player's entry")
	require.True(t, lb.RecordTop("p1", 150), "better score should replace the player's entry")

	top := lb.Top()
	require.Len(t, top, 1, "a single-entry board keeps one row per player")
	require.Equal(t, uint64(150), top[0].Score)
}

func TestLeaderboard_EncodeDecode(t *testing.T) {
	lb, err := NewLeaderboard("game-1", "speedrun", 2, 0, 1000, 3, true)
	require.NoError(t, err)
	lb.RecordTop("p1", 700)
	lb.RecordTop("p2", 900)

	buf := lb.Encode()
	require.Len(t, buf, lb.EncodedSize(), "Encode must produce exactly EncodedSize bytes")

	got, err := DecodeLeaderboard(buf)
	require.NoError(t, err)
	require.Equal(t, lb.Game(), got.Game())
	require.Equal(t, uint8(2), got.Decimals())
	require.Equal(t, lb.Top(), got.Top())
	require.True(t, got.AllowMultiple())
}

func TestLeaderboard_TopInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.Uint32Range(1, 8).Draw(t, "capacity")
		lb, err := NewLeaderboard("game-1", "", 0, 0, 1_000_000, capacity, true)
		require.NoError(t, err)

		n := rapid.IntRange(0, 40).Draw(t, "n")
		for i := 0; i < n; i++ {
			score := rapid.Uint64Range(0, 1_000_000).Draw(t, "score")
			lb.RecordTop(ledger.Address(rapid.StringMatching(`p[0-9]`).Draw(t, "player")), score)
		}

		top := lb.Top()
		require.LessOrEqual(t, uint32(len(top)), capacity, "board must never exceed capacity")
		for i := 1; i < len(top); i++ {
			require.GreaterOrEqual(t, top[i-1].Score, top[i].Score, "board must stay sorted best first")
		}
	})
}
