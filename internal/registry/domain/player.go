package domain

import (
	"fmt"

	"github.com/zjrosen/arcadia/internal/ledger"
)

// Player is a profile record owned by a user wallet. Registrations link a
// player to a game's leaderboard via a ScoreBook record.
type Player struct {
	user     ledger.Address
	username string
	metaURI  string
}

func NewPlayer(user ledger.Address, username, metaURI string) (*Player, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(username) > MaxUsernameLen {
		return nil, fmt.Errorf("%w: username is %d bytes, limit %d", ErrFieldTooLong, len(username), MaxUsernameLen)
	}
	if len(metaURI) > MaxURILen {
		return nil, fmt.Errorf("%w: meta URI is %d bytes, limit %d", ErrFieldTooLong, len(metaURI), MaxURILen)
	}
	return &Player{user: user, username: username, metaURI: metaURI}, nil
}

func (p *Player) User() ledger.Address { return p.user }
func (p *Player) Username() string     { return p.username }
func (p *Player) MetaURI() string      { return p.metaURI }

func (p *Player) EncodedSize() int {
	return addrSize(p.user) + stringSize(p.username) + stringSize(p.metaURI)
}

func (p *Player) Encode() []byte {
	b := make([]byte, 0, p.EncodedSize())
	b = appendAddr(b, p.user)
	b = appendString(b, p.username)
	b = appendString(b, p.metaURI)
	return b
}

func DecodePlayer(data []byte) (*Player, error) {
	r := newReader(data)
	p := &Player{}
	p.user = r.addr()
	p.username = r.stringv()
	p.metaURI = r.stringv()
	if r.err != nil {
		return nil, fmt.Errorf("decode player: %w", r.err)
	}
	return p, nil
}
