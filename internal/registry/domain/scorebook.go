package domain

import (
	"fmt"

	"github.com/zjrosen/arcadia/internal/ledger"
)

// ScoreEntry is one submitted score with the time it was recorded.
type ScoreEntry struct {
	Score     uint64
	Timestamp int64
}

// ScoreBook is the registration record linking one player to one leaderboard.
// Every submitted score is appended here, which is what makes score
// submission the registry's main record-growth path.
type ScoreBook struct {
	player      ledger.Address
	leaderboard ledger.Address
	entries     []ScoreEntry
}

func NewScoreBook(player, leaderboard ledger.Address) *ScoreBook {
	return &ScoreBook{player: player, leaderboard: leaderboard}
}

func (s *ScoreBook) Player() ledger.Address      { return s.player }
func (s *ScoreBook) Leaderboard() ledger.Address { return s.leaderboard }

func (s *ScoreBook) Entries() []ScoreEntry {
	return append([]ScoreEntry(nil), s.entries...)
}

func (s *ScoreBook) Best() (ScoreEntry, bool) {
	var best ScoreEntry
	if len(s.entries) == 0 {
		return best, false
	}
	best = s.entries[0]
	for _, e := range s.entries[1:] {
		if e.Score > best.Score {
			best = e
		}
	}
	return best, true
}

// Append records a score. When allowMultiple is false a repeat of an already
// held score value is rejected, matching leaderboards that track personal
// bests rather than attempt history.
func (s *ScoreBook) Append(score uint64, timestamp int64, allowMultiple bool) error {
	if !allowMultiple {
		for _, e := range s.entries {
			if e.Score == score {
				return fmt.Errorf("%w: score %d", ErrScoreAlreadySubmitted, score)
			}
		}
	}
	s.entries = append(s.entries, ScoreEntry{Score: score, Timestamp: timestamp})
	return nil
}

func (s *ScoreBook) EncodedSize() int {
	return addrSize(s.player) + addrSize(s.leaderboard) + 4 + len(s.entries)*16
}

func (s *ScoreBook) Encode() []byte {
	b := make([]byte, 0, s.EncodedSize())
	b = appendAddr(b, s.player)
	b = appendAddr(b, s.leaderboard)
	b = appendU32(b, uint32(len(s.entries)))
	for _, e := range s.entries {
		b = appendU64(b, e.Score)
		b = appendI64(b, e.Timestamp)
	}
	return b
}

func DecodeScoreBook(data []byte) (*ScoreBook, error) {
	r := newReader(data)
	s := &ScoreBook{}
	s.player = r.addr()
	s.leaderboard = r.addr()
	n := r.u32()
	for i := uint32(0); i < n && r.err == nil; i++ {
		e := ScoreEntry{Score: r.u64(), Timestamp: r.i64()}
		s.entries = append(s.entries, e)
	}
	if r.err != nil {
		return nil, fmt.Errorf("decode score book: %w", r.err)
	}
	return s, nil
}
