package domain

import (
	"fmt"

	"github.com/zjrosen/arcadia/internal/ledger"
)

// Achievement is a per-game record describing one unlockable. The game record
// keeps only a counter; each achievement lives in its own growable record.
type Achievement struct {
	game        ledger.Address
	title       string
	description string
	metaURI     string
}

func NewAchievement(game ledger.Address, title, description, metaURI string) (*Achievement, error) {
	if err := validateAchievementFields(title, description, metaURI); err != nil {
		return nil, err
	}
	return &Achievement{game: game, title: title, description: description, metaURI: metaURI}, nil
}

func validateAchievementFields(title, description, metaURI string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if len(title) > MaxTitleLen {
		return fmt.Errorf("%w: title is %d bytes, limit %d", ErrTitleTooLong, len(title), MaxTitleLen)
	}
	if len(description) > MaxDescriptionLen {
		return fmt.Errorf("%w: description is %d bytes, limit %d", ErrFieldTooLong, len(description), MaxDescriptionLen)
	}
	if len(metaURI) > MaxURILen {
		return fmt.Errorf("%w: meta URI is %d bytes, limit %d", ErrFieldTooLong, len(metaURI), MaxURILen)
	}
	return nil
}

func (a *Achievement) Game() ledger.Address { return a.game }
func (a *Achievement) Title() string        { return a.title }
func (a *Achievement) Description() string  { return a.description }
func (a *Achievement) MetaURI() string      { return a.metaURI }

// Update replaces the mutable metadata. Empty strings keep the current value
// so a caller can update one field without re-sending the rest.
func (a *Achievement) Update(title, description, metaURI string) error {
	next := *a
	if title != "" {
		next.title = title
	}
	if description != "" {
		next.description = description
	}
	if metaURI != "" {
		next.metaURI = metaURI
	}
	if err := validateAchievementFields(next.title, next.description, next.metaURI); err != nil {
		return err
	}
	*a = next
	return nil
}

func (a *Achievement) EncodedSize() int {
	return addrSize(a.game) + stringSize(a.title) + stringSize(a.description) + stringSize(a.metaURI)
}

func (a *Achievement) Encode() []byte {
	b := make([]byte, 0, a.EncodedSize())
	b = appendAddr(b, a.game)
	b = appendString(b, a.title)
	b = appendString(b, a.description)
	b = appendString(b, a.metaURI)
	return b
}

func DecodeAchievement(data []byte) (*Achievement, error) {
	r := newReader(data)
	a := &Achievement{}
	a.game = r.addr()
	a.title = r.stringv()
	a.description = r.stringv()
	a.metaURI = r.stringv()
	if r.err != nil {
		return nil, fmt.Errorf("decode achievement: %w", r.err)
	}
	return a, nil
}
