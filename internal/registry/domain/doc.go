// Package domain provides the pure domain layer for registry entities.
//
// It defines the five record kinds the registry persists - Game, Player,
// Leaderboard, Achievement and ScoreBook - with encapsulated state and
// behavior, plus the fixed-layout binary codec that maps each entity onto a
// ledger record's byte buffer. The codec is deliberately explicit about
// sizes: handlers grow a record to an entity's EncodedSize before writing,
// and Encode always produces exactly that many bytes so every newly exposed
// byte of a grown buffer is overwritten.
//
// The package has no knowledge of infrastructure concerns (ledgers,
// databases, command processing).
package domain
