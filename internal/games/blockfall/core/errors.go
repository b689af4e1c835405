package core

import "errors"

// Fatal configuration and invariant errors. None of these are retried:
// they indicate either a programming bug or a session that was started
// incorrectly. Malformed player input is never an error; out-of-phase
// actions are silently ignored.
var (
	// ErrUnknownPieceType is returned when a piece kind is requested that
	// has no entry in the shape table.
	ErrUnknownPieceType = errors.New("blockfall: unknown piece type")

	// ErrUninitializedRNG is returned when a piece is requested from a
	// state that has no sequencer attached.
	ErrUninitializedRNG = errors.New("blockfall: rng sequencer not initialized")

	// ErrNoAvailablePieces is returned when the unlock policy yields an
	// empty kind set. Tier 0 always includes kinds, so this indicates a
	// broken generator configuration.
	ErrNoAvailablePieces = errors.New("blockfall: no piece kinds available")

	// ErrInvalidBoardState is returned by the board integrity check when a
	// structural invariant is violated (wrong dimensions, wrong row width).
	ErrInvalidBoardState = errors.New("blockfall: invalid board state")
)
