package domain

import (
	"fmt"
	"sort"

	"github.com/zjrosen/arcadia/internal/ledger"
)

// DefaultTopCapacity bounds the in-record top-entries list when a leaderboard
// is created without an explicit capacity.
const DefaultTopCapacity = 10

// TopEntry is one row of a leaderboard's retained best scores.
type TopEntry struct {
	Player ledger.Address
	Score  uint64
}

// Leaderboard is a per-game record holding score bounds, display metadata,
// and a bounded list of the best scores seen so far. The full score history
// lives in each player's ScoreBook; the leaderboard record only keeps the top.
type Leaderboard struct {
	game          ledger.Address
	description   string
	decimals      uint8
	minScore      uint64
	maxScore      uint64
	capacity      uint32
	allowMultiple bool
	top           []TopEntry
}

func NewLeaderboard(game ledger.Address, description string, decimals uint8, minScore, maxScore uint64, capacity uint32, allowMultiple bool) (*Leaderboard, error) {
	if len(description) > MaxDescriptionLen {
		return nil, fmt.Errorf("%w: description is %d bytes, limit %d", ErrFieldTooLong, len(description), MaxDescriptionLen)
	}
	if minScore >= maxScore {
		return nil, fmt.Errorf("%w: min %d must be below max %d", ErrInvalidBounds, minScore, maxScore)
	}
	if capacity == 0 {
		capacity = DefaultTopCapacity
	}
	return &Leaderboard{
		game:          game,
		description:   description,
		decimals:      decimals,
		minScore:      minScore,
		maxScore:      maxScore,
		capacity:      capacity,
		allowMultiple: allowMultiple,
	}, nil
}

func (l *Leaderboard) Game() ledger.Address { return l.game }
func (l *Leaderboard) Description() string  { return l.description }
func (l *Leaderboard) Decimals() uint8      { return l.decimals }
func (l *Leaderboard) MinScore() uint64     { return l.minScore }
func (l *Leaderboard) MaxScore() uint64     { return l.maxScore }
func (l *Leaderboard) Capacity() uint32     { return l.capacity }
func (l *Leaderboard) AllowMultiple() bool  { return l.allowMultiple }

func (l *Leaderboard) Top() []TopEntry {
	return append([]TopEntry(nil), l.top...)
}

func (l *Leaderboard) ValidateScore(score uint64) error {
	if score < l.minScore || score > l.maxScore {
		return fmt.Errorf("%w: %d outside [%d, %d]", ErrScoreOutOfRange, score, l.minScore, l.maxScore)
	}
	return nil
}

// RecordTop folds a new score into the retained list, keeping it sorted best
// first and truncated to capacity. Returns true when the entry made the cut.
func (l *Leaderboard) RecordTop(player ledger.Address, score uint64) bool {
	if !l.allowMultiple {
		for i, e := range l.top {
			if e.Player != player {
				continue
			}
			if score <= e.Score {
				return false
			}
			l.top[i].Score = score
			l.sortTop()
			return true
		}
	}
	l.top = append(l.top, TopEntry{Player: player, Score: score})
	l.sortTop()
	if uint32(len(l.top)) > l.capacity {
		dropped := l.top[l.capacity]
		l.top = l.top[:l.capacity]
		if dropped.Player == player && dropped.Score == score {
			return false
		}
	}
	return true
}

func (l *Leaderboard) sortTop() {
	sort.SliceStable(l.top, func(i, j int) bool {
		return l.top[i].Score > l.top[j].Score
	})
}

func (l *Leaderboard) EncodedSize() int {
	n := addrSize(l.game) + stringSize(l.description)
	n += 1 + 8 + 8 + 4 + 1 // decimals, bounds, capacity, allowMultiple
	n += 4                 // top entry count
	for _, e := range l.top {
		n += addrSize(e.Player) + 8
	}
	return n
}

func (l *Leaderboard) Encode() []byte {
	b := make([]byte, 0, l.EncodedSize())
	b = appendAddr(b, l.game)
	b = appendString(b, l.description)
	b = appendU8(b, l.decimals)
	b = appendU64(b, l.minScore)
	b = appendU64(b, l.maxScore)
	b = appendU32(b, l.capacity)
	b = appendBool(b, l.allowMultiple)
	b = appendU32(b, uint32(len(l.top)))
	for _, e := range l.top {
		b = appendAddr(b, e.Player)
		b = appendU64(b, e.Score)
	}
	return b
}

func DecodeLeaderboard(data []byte) (*Leaderboard, error) {
	r := newReader(data)
	l := &Leaderboard{}
	l.game = r.addr()
	l.description = r.stringv()
	l.decimals = r.u8()
	l.minScore = r.u64()
	l.maxScore = r.u64()
	l.capacity = r.u32()
	l.allowMultiple = r.boolean()
	n := r.u32()
	for i := uint32(0); i < n && r.err == nil; i++ {
		e := TopEntry{Player: r.addr(), Score: r.u64()}
		l.top = append(l.top, e)
	}
	if r.err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", r.err)
	}
	return l, nil
}
