package apperrors

import "errors"

// Sentinel errors for the business layer. Services wrap these with %w and
// handlers translate them into HTTP status codes.
var (
	// ErrNotFound means a referenced entity is absent.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate means a uniqueness constraint was violated
	// (participant email, restaurant name, draw date).
	ErrDuplicate = errors.New("already exists")

	// ErrInvalidInput means a field value failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict means the operation would break referential integrity,
	// e.g. deleting a participant that still has ballots.
	ErrConflict = errors.New("conflict")

	// ErrNoBallotsCast means the resolver found zero ballots for the open
	// draw. The draw stays pending.
	ErrNoBallotsCast = errors.New("no ballots cast")

	// ErrAlreadyResolved means a winner was already recorded for the draw.
	// The stored winner is never overwritten.
	ErrAlreadyResolved = errors.New("draw already resolved")
)
