// Package processor provides the FIFO command processor for the registry.
// This file defines event types emitted after commands are processed. The
// query layer subscribes to these for cache invalidation, and the CLI's
// watch mode uses them to refresh displayed leaderboards.
package processor

import (
	"time"

	"github.com/zjrosen/arcadia/internal/ledger"
	"github.com/zjrosen/arcadia/internal/registry/command"
)

// CommandErrorEvent is emitted when a command fails validation or execution.
type CommandErrorEvent struct {
	// CommandID is the unique identifier of the failed command.
	CommandID string
	// CommandType indicates the type of command that failed.
	CommandType command.CommandType
	// Error is the failure cause.
	Error error
}

// GameCreatedEvent is emitted after a game record is created.
type GameCreatedEvent struct {
	Game  ledger.Address
	Title string
}

// GameUpdatedEvent is emitted after a game record's metadata changes.
type GameUpdatedEvent struct {
	Game ledger.Address
}

// PlayerCreatedEvent is emitted after a player profile record is created.
type PlayerCreatedEvent struct {
	Player   ledger.Address
	Username string
}

// PlayerRegisteredEvent is emitted after a score book is opened for a
// player on a leaderboard.
type PlayerRegisteredEvent struct {
	ScoreBook   ledger.Address
	Player      ledger.Address
	Leaderboard ledger.Address
}

// LeaderboardAddedEvent is emitted after a leaderboard record is created.
type LeaderboardAddedEvent struct {
	Leaderboard ledger.Address
	Game        ledger.Address
}

// AchievementAddedEvent is emitted after an achievement record is created.
type AchievementAddedEvent struct {
	Achievement ledger.Address
	Game        ledger.Address
	Title       string
}

// AchievementUpdatedEvent is emitted after an achievement's metadata changes.
type AchievementUpdatedEvent struct {
	Achievement ledger.Address
}

// ScoreSubmittedEvent is emitted after a score lands in a score book.
// MadeTop indicates whether the score entered the leaderboard's retained
// top entries, which is what cache invalidation keys off.
type ScoreSubmittedEvent struct {
	ScoreBook   ledger.Address
	Leaderboard ledger.Address
	Player      ledger.Address
	Score       uint64
	MadeTop     bool
	Timestamp   time.Time
}
