package domain

import "errors"

// Validation errors surfaced by entity constructors and mutators.
var (
	ErrTitleRequired    = errors.New("title is required")
	ErrTitleTooLong     = errors.New("title exceeds maximum length")
	ErrFieldTooLong     = errors.New("field exceeds maximum length")
	ErrUsernameRequired = errors.New("username is required")
	ErrNoAuthorities    = errors.New("at least one authority is required")
	ErrNotGameAuthority = errors.New("signer is not a game authority")
	ErrInvalidBounds    = errors.New("minimum score exceeds maximum score")
)

// Score submission errors.
var (
	ErrScoreOutOfRange       = errors.New("score outside leaderboard bounds")
	ErrScoreAlreadySubmitted = errors.New("player already submitted a score")
)

// ErrCorruptRecord is returned when a record buffer cannot be decoded.
// It usually means a caller read bytes it never wrote.
var ErrCorruptRecord = errors.New("corrupt record data")
