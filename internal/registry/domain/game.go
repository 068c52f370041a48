package domain

import (
	"fmt"

	"github.com/zjrosen/arcadia/internal/ledger"
)

const (
	MaxTitleLen       = 64
	MaxDescriptionLen = 256
	MaxGenreLen       = 32
	MaxUsernameLen    = 32
	MaxURILen         = 200
)

// Game is the root record of a registry. Every leaderboard and achievement
// points back at its game, and every authority-gated operation checks the
// game's authority set.
type Game struct {
	title            string
	description      string
	genre            string
	authorities      []ledger.Address
	achievementCount uint32
	leaderboardCount uint32
}

func NewGame(title, description, genre string, authorities []ledger.Address) (*Game, error) {
	if err := validateGameFields(title, description, genre); err != nil {
		return nil, err
	}
	if len(authorities) == 0 {
		return nil, ErrNoAuthorities
	}
	return &Game{
		title:       title,
		description: description,
		genre:       genre,
		authorities: append([]ledger.Address(nil), authorities...),
	}, nil
}

func validateGameFields(title, description, genre string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if len(title) > MaxTitleLen {
		return fmt.Errorf("%w: title is %d bytes, limit %d", ErrTitleTooLong, len(title), MaxTitleLen)
	}
	if len(description) > MaxDescriptionLen {
		return fmt.Errorf("%w: description is %d bytes, limit %d", ErrFieldTooLong, len(description), MaxDescriptionLen)
	}
	if len(genre) > MaxGenreLen {
		return fmt.Errorf("%w: genre is %d bytes, limit %d", ErrFieldTooLong, len(genre), MaxGenreLen)
	}
	return nil
}

func (g *Game) Title() string       { return g.title }
func (g *Game) Description() string { return g.description }
func (g *Game) Genre() string       { return g.genre }

func (g *Game) Authorities() []ledger.Address {
	return append([]ledger.Address(nil), g.authorities...)
}

func (g *Game) AchievementCount() uint32 { return g.achievementCount }
func (g *Game) LeaderboardCount() uint32 { return g.leaderboardCount }

func (g *Game) HasAuthority(addr ledger.Address) bool {
	for _, a := range g.authorities {
		if a == addr {
			return true
		}
	}
	return false
}

// Update replaces the game's metadata and authority set wholesale. Passing an
// empty authority list keeps the current set, so an update cannot strand the
// game without any authority.
func (g *Game) Update(title, description, genre string, authorities []ledger.Address) error {
	if err := validateGameFields(title, description, genre); err != nil {
		return err
	}
	g.title = title
	g.description = description
	g.genre = genre
	if len(authorities) > 0 {
		g.authorities = append([]ledger.Address(nil), authorities...)
	}
	return nil
}

func (g *Game) IncrementAchievements() { g.achievementCount++ }
func (g *Game) IncrementLeaderboards() { g.leaderboardCount++ }

func (g *Game) EncodedSize() int {
	n := stringSize(g.title) + stringSize(g.description) + stringSize(g.genre)
	n += 4 // authority count
	for _, a := range g.authorities {
		n += addrSize(a)
	}
	n += 4 + 4 // achievement and leaderboard counters
	return n
}

func (g *Game) Encode() []byte {
	b := make([]byte, 0, g.EncodedSize())
	b = appendString(b, g.title)
	b = appendString(b, g.description)
	b = appendString(b, g.genre)
	b = appendU32(b, uint32(len(g.authorities)))
	for _, a := range g.authorities {
		b = appendAddr(b, a)
	}
	b = appendU32(b, g.achievementCount)
	b = appendU32(b, g.leaderboardCount)
	return b
}

func DecodeGame(data []byte) (*Game, error) {
	r := newReader(data)
	g := &Game{}
	g.title = r.stringv()
	g.description = r.stringv()
	g.genre = r.stringv()
	n := r.u32()
	for i := uint32(0); i < n && r.err == nil; i++ {
		g.authorities = append(g.authorities, r.addr())
	}
	g.achievementCount = r.u32()
	g.leaderboardCount = r.u32()
	if r.err != nil {
		return nil, fmt.Errorf("decode game: %w", r.err)
	}
	return g, nil
}
