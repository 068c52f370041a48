package testutil

import "github.com/zjrosen/arcadia/internal/ledger"

// gameData holds all data for a game record to be inserted.
type gameData struct {
	addr        ledger.Address
	title       string
	description string
	genre       string
	authorities []ledger.Address
}

// defaultGame returns a gameData with sensible defaults.
func defaultGame(addr ledger.Address) gameData {
	return gameData{
		addr:        addr,
		title:       string(addr), // Default title is the address
		genre:       "arcade",
		authorities: []ledger.Address{"authority-1"},
	}
}

// GameOption configures a game fixture.
type GameOption func(*gameData)

// Title sets the game title.
func Title(title string) GameOption {
	return func(g *gameData) { g.title = title }
}

// Description sets the game description.
func Description(description string) GameOption {
	return func(g *gameData) { g.description = description }
}

// Genre sets the game genre.
func Genre(genre string) GameOption {
	return func(g *gameData) { g.genre = genre }
}

// Authorities replaces the game's authority set.
func Authorities(addrs ...ledger.Address) GameOption {
	return func(g *gameData) { g.authorities = addrs }
}

// playerData holds all data for a player record to be inserted.
type playerData struct {
	addr     ledger.Address
	user     ledger.Address
	username string
	metaURI  string
}

func defaultPlayer(addr, user ledger.Address) playerData {
	return playerData{
		addr:     addr,
		user:     user,
		username: string(addr),
	}
}

// PlayerOption configures a player fixture.
type PlayerOption func(*playerData)

// Username sets the player's display name.
func Username(username string) PlayerOption {
	return func(p *playerData) { p.username = username }
}

// MetaURI sets the player's metadata URI.
func MetaURI(uri string) PlayerOption {
	return func(p *playerData) { p.metaURI = uri }
}

// boardData holds all data for a leaderboard record to be inserted.
type boardData struct {
	addr          ledger.Address
	game          ledger.Address
	description   string
	decimals      uint8
	minScore      uint64
	maxScore      uint64
	capacity      uint32
	allowMultiple bool
}

func defaultBoard(addr, game ledger.Address) boardData {
	return boardData{
		addr:     addr,
		game:     game,
		minScore: 0,
		maxScore: 1_000_000,
	}
}

// BoardOption configures a leaderboard fixture.
type BoardOption func(*boardData)

// Bounds sets the accepted score range.
func Bounds(min, max uint64) BoardOption {
	return func(b *boardData) { b.minScore, b.maxScore = min, max }
}

// Capacity sets the number of retained top entries.
func Capacity(capacity uint32) BoardOption {
	return func(b *boardData) { b.capacity = capacity }
}

// Decimals sets the display decimals for scores.
func Decimals(decimals uint8) BoardOption {
	return func(b *boardData) { b.decimals = decimals }
}

// AllowMultiple lets a player hold several top entries at once.
func AllowMultiple() BoardOption {
	return func(b *boardData) { b.allowMultiple = true }
}

// BoardDescription sets the leaderboard description.
func BoardDescription(description string) BoardOption {
	return func(b *boardData) { b.description = description }
}
