package game

import "errors"

// Recoverable precondition errors. The engine never mutates state when
// rejecting an action: callers can re-prompt and retry. Shoe exhaustion
// (deck.ErrShoeEmpty) is the only failure that aborts a round.
var (
	// ErrPlayerExists is returned when registering a duplicate player name.
	ErrPlayerExists = errors.New("player already registered")

	// ErrPlayerNotFound is returned by player lookups with a bad name or index.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrEmptyPlayerName is returned when registering a player with no name.
	ErrEmptyPlayerName = errors.New("player name is empty")

	// ErrInvalidSplit is returned when a split is requested but the
	// hand is not a two-card pair or has already been split.
	ErrInvalidSplit = errors.New("hand cannot be split")

	// ErrInvalidHandAction is returned when a hit, stand, double or
	// fold is requested while the corresponding guard is false.
	ErrInvalidHandAction = errors.New("hand action not permitted")

	// ErrHandNotSplit is returned when the split hand is addressed
	// while the player holds a single hand.
	ErrHandNotSplit = errors.New("hand has not been split")
)
