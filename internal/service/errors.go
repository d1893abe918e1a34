package service

import "errors"

// Sentinel errors for the order workflow. All of them are recoverable at
// the session level: handlers surface a message and the operator corrects
// the input and retries. Wrapped values are checked with errors.Is.
var (
	// ErrNotFound: the product code matches no catalog row.
	ErrNotFound = errors.New("product not found")

	// ErrDuplicate: the code is already on the order. Lines are never
	// merged or incremented implicitly.
	ErrDuplicate = errors.New("product already in order")

	// ErrInvalidQuantity: quantity is not positive, breaks the product's
	// forced multiple, or exceeds available stock.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrOutOfRange: the line index does not exist.
	ErrOutOfRange = errors.New("line index out of range")

	// ErrEmptyOrder: commit called with no lines.
	ErrEmptyOrder = errors.New("order is empty")

	// ErrMissingParticipant: commit called without a client or salesperson.
	ErrMissingParticipant = errors.New("client and salesperson are required")

	// ErrPersistence: a commit-time write failed. The in-memory order is
	// kept so the operator may retry.
	ErrPersistence = errors.New("persistence failed")

	// ErrPartialCommit: the order log was appended but the catalog save
	// failed afterwards, leaving the stores inconsistent. Wraps
	// ErrPersistence so errors.Is(err, ErrPersistence) also holds.
	ErrPartialCommit = errors.New("order logged but catalog save failed")
)

// partialCommitError ties ErrPartialCommit to ErrPersistence in the
// errors.Is chain.
type partialCommitError struct{ cause error }

func (e *partialCommitError) Error() string { return ErrPartialCommit.Error() + ": " + e.cause.Error() }

func (e *partialCommitError) Is(target error) bool {
	return target == ErrPartialCommit || target == ErrPersistence
}

func (e *partialCommitError) Unwrap() error { return e.cause }
