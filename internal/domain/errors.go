package domain

import "errors"

// Sentinel errors for schedule operations. Callers match them with errors.Is;
// wrapped variants carry the operation detail.
var (
	// ErrValidation covers missing or malformed fields detected before any
	// mutation takes place.
	ErrValidation = errors.New("invalid event data")

	// ErrConflict is returned when a candidate event's time window intersects
	// an existing event's window, or when its derived id already exists.
	ErrConflict = errors.New("scheduling conflict")

	// ErrNotFound is returned when an operation references a nonexistent id.
	ErrNotFound = errors.New("event not found")

	// ErrInvalidStatus is returned for a lifecycle state outside the four
	// recognized values.
	ErrInvalidStatus = errors.New("invalid event status")

	// ErrPersistence signals a durable-store read or write failure. On writes
	// it is reported after the in-memory mutation has applied; state is not
	// rolled back.
	ErrPersistence = errors.New("persistence failure")
)
