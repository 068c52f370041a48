package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/arcadia/internal/ledger"
	"github.com/zjrosen/arcadia/internal/registry/domain"
)

// funderData holds data for a funder account to be created.
type funderData struct {
	addr    ledger.Address
	balance uint64
}

// bookData holds data for a score book record to be created.
type bookData struct {
	addr        ledger.Address
	player      ledger.Address
	leaderboard ledger.Address
}

// Builder accumulates registry fixtures and inserts them in the correct order:
// funders first, then games, players, leaderboards, and score books.
type Builder struct {
	t       *testing.T
	l       ledger.Ledger
	payer   ledger.Address
	funders []funderData
	games   []gameData
	players []playerData
	boards  []boardData
	books   []bookData
}

// NewBuilder creates a builder for the given ledger.
func NewBuilder(t *testing.T, l ledger.Ledger) *Builder {
	t.Helper()
	return &Builder{t: t, l: l}
}

// WithFunder adds a funder account. The first funder pays for every record
// the builder creates.
func (b *Builder) WithFunder(addr ledger.Address, balance uint64) *Builder {
	if b.payer == "" {
		b.payer = addr
	}
	b.funders = append(b.funders, funderData{addr, balance})
	return b
}

// WithGame adds a game record with optional configuration.
func (b *Builder) WithGame(addr ledger.Address, opts ...GameOption) *Builder {
	game := defaultGame(addr)
	for _, opt := range opts {
		opt(&game)
	}
	b.games = append(b.games, game)
	return b
}

// WithPlayer adds a player record owned by the given user.
func (b *Builder) WithPlayer(addr, user ledger.Address, opts ...PlayerOption) *Builder {
	player := defaultPlayer(addr, user)
	for _, opt := range opts {
		opt(&player)
	}
	b.players = append(b.players, player)
	return b
}

// WithLeaderboard adds a leaderboard record attached to a game.
func (b *Builder) WithLeaderboard(addr, game ledger.Address, opts ...BoardOption) *Builder {
	board := defaultBoard(addr, game)
	for _, opt := range opts {
		opt(&board)
	}
	b.boards = append(b.boards, board)
	return b
}

// WithScoreBook adds an empty score book linking a player to a leaderboard.
func (b *Builder) WithScoreBook(addr, player, leaderboard ledger.Address) *Builder {
	b.books = append(b.books, bookData{addr, player, leaderboard})
	return b
}

// Build inserts all accumulated fixtures. Fails the test on any error.
func (b *Builder) Build() {
	b.t.Helper()

	require.NotEmpty(b.t, b.funders, "at least one funder is required to pay for records")

	for _, f := range b.funders {
		_, err := b.l.CreateFunder(f.addr, f.balance)
		require.NoError(b.t, err, "creating funder %s", f.addr)
	}

	for _, g := range b.games {
		game, err := domain.NewGame(g.title, g.description, g.genre, g.authorities)
		require.NoError(b.t, err, "building game %s", g.addr)
		b.insert(g.addr, g.authorities[0], game)
	}

	for _, p := range b.players {
		player, err := domain.NewPlayer(p.user, p.username, p.metaURI)
		require.NoError(b.t, err, "building player %s", p.addr)
		b.insert(p.addr, p.user, player)
	}

	for _, bd := range b.boards {
		board, err := domain.NewLeaderboard(bd.game, bd.description, bd.decimals,
			bd.minScore, bd.maxScore, bd.capacity, bd.allowMultiple)
		require.NoError(b.t, err, "building leaderboard %s", bd.addr)
		b.insert(bd.addr, bd.game, board)
	}

	for _, bk := range b.books {
		book := domain.NewScoreBook(bk.player, bk.leaderboard)
		b.insert(bk.addr, bk.player, book)
	}
}

// record is the encodable surface shared by every registry type.
type record interface {
	EncodedSize() int
	Encode() []byte
}

func (b *Builder) insert(addr, owner ledger.Address, rec record) {
	b.t.Helper()

	_, err := b.l.CreateRecord(addr, owner, rec.EncodedSize(), b.payer)
	require.NoError(b.t, err, "creating record %s", addr)
	require.NoError(b.t, b.l.WriteData(addr, 0, rec.Encode()), "writing record %s", addr)
}
