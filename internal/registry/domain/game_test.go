package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/arcadia/internal/ledger"
)

func TestNewGame_Validation(t *testing.T) {
	auth := []ledger.Address{"authority-1"}

	_, err := NewGame("", "desc", "rpg", auth)
	require.ErrorIs(t, err, ErrTitleRequired, "empty title should be rejected")

	_, err = NewGame(strings.Repeat("x", MaxTitleLen+1), "desc", "rpg", auth)
	require.ErrorIs(t, err, ErrTitleTooLong, "oversized title should be rejected")

	_, err = NewGame("quest", strings.Repeat("x", MaxDescriptionLen+1), "rpg", auth)
	require.ErrorIs(t, err, ErrFieldTooLong, "oversized description should be rejected")

	_, err = NewGame("quest", "desc", "rpg", nil)
	require.ErrorIs(t, err, ErrNoAuthorities, "a game needs at least one authority")
}

func TestGame_Authorities(t *testing.T) {
	g, err := NewGame("quest", "a dungeon crawler", "rpg", []ledger.Address{"alice", "bob"})
	require.NoError(t, err)

	require.True(t, g.HasAuthority("alice"), "alice should be an authority")
	require.True(t, g.HasAuthority("bob"), "bob should be an authority")
	require.False(t, g.HasAuthority("mallory"), "mallory should not be an authority")

	// Mutating the returned slice must not touch the game's set.
	auths := g.Authorities()
	auths[0] = "mallory"
	require.True(t, g.HasAuthority("alice"), "authority set should be insulated from returned copies")
}

func TestGame_UpdateKeepsAuthoritiesWhenEmpty(t *testing.T) {
	g, err := NewGame("quest", "desc", "rpg", []ledger.Address{"alice"})
	require.NoError(t, err)

	require.NoError(t, g.Update("quest 2", "bigger dungeon", "arpg", nil))
	require.Equal(t, "quest 2", g.Title())
	require.True(t, g.HasAuthority("alice"), "empty authority list should keep the current set")

	require.NoError(t, g.Update("quest 2", "bigger dungeon", "arpg", []ledger.Address{"carol"}))
	require.True(t, g.HasAuthority("carol"))
	require.False(t, g.HasAuthority("alice"), "non-empty authority list replaces the set")
}

func TestGame_EncodeDecode(t *testing.T) {
	g, err := NewGame("quest", "a dungeon crawler", "rpg", []ledger.Address{"alice", "bob"})
	require.NoError(t, err)
	g.IncrementAchievements()
	g.IncrementLeaderboards()
	g.IncrementLeaderboards()

	buf := g.Encode()
	require.Len(t, buf, g.EncodedSize(), "Encode must produce exactly EncodedSize bytes")

	// Decoders tolerate a stale tail left behind by a shrink.
	buf = append(buf, 0xA5, 0xA5, 0xA5)
	got, err := DecodeGame(buf)
	require.NoError(t, err)
	require.Equal(t, g.Title(), got.Title())
	require.Equal(t, g.Authorities(), got.Authorities())
	require.Equal(t, uint32(1), got.AchievementCount())
	require.Equal(t, uint32(2), got.LeaderboardCount())
}

func TestDecodeGame_Truncated(t *testing.T) {
	g, err := NewGame("quest", "desc", "rpg", []ledger.Address{"alice"})
	require.NoError(t, err)

	buf := g.Encode()
	_, err = DecodeGame(buf[:len(buf)-5])
	require.ErrorIs(t, err, ErrCorruptRecord, "truncated buffer should fail decoding")
}
