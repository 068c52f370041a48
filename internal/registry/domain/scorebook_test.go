package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreBook_AppendGrowsEncoding(t *testing.T) {
	sb := NewScoreBook("player-1", "leaderboard-1")
	base := sb.EncodedSize()

	require.NoError(t, sb.Append(100, 1700000000, true))
	require.Equal(t, base+16, sb.EncodedSize(), "each entry adds a fixed 16 bytes")

	require.NoError(t, sb.Append(200, 1700000100, true))
	require.Equal(t, base+32, sb.EncodedSize())
}

func TestScoreBook_RejectsRepeatWhenSingleEntry(t *testing.T) {
	sb := NewScoreBook("player-1", "leaderboard-1")

	require.NoError(t, sb.Append(100, 1700000000, false))
	err := sb.Append(100, 1700000100, false)
	require.ErrorIs(t, err, ErrScoreAlreadySubmitted)

	require.NoError(t, sb.Append(100, 1700000100, true), "multi-entry boards accept repeats")
}

func TestScoreBook_Best(t *testing.T) {
	sb := NewScoreBook("player-1", "leaderboard-1")

	_, ok := sb.Best()
	require.False(t, ok, "empty book has no best score")

	require.NoError(t, sb.Append(100, 1, true))
	require.NoError(t, sb.Append(300, 2, true))
	require.NoError(t, sb.Append(200, 3, true))

	best, ok := sb.Best()
	require.True(t, ok)
	require.Equal(t, uint64(300), best.Score)
}

func TestScoreBook_EncodeDecode(t *testing.T) {
	sb := NewScoreBook("player-1", "leaderboard-1")
	require.NoError(t, sb.Append(100, 1700000000, true))
	require.NoError(t, sb.Append(200, 1700000100, true))

	buf := sb.Encode()
	require.Len(t, buf, sb.EncodedSize(), "Encode must produce exactly EncodedSize bytes")

	got, err := DecodeScoreBook(buf)
	require.NoError(t, err)
	require.Equal(t, sb.Player(), got.Player())
	require.Equal(t, sb.Leaderboard(), got.Leaderboard())
	require.Equal(t, sb.Entries(), got.Entries())
}
