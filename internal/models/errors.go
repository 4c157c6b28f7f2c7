// ABOUTME: Typed error kinds shared by all storage backends.
// ABOUTME: Callers branch on these with errors.Is; everything else is wrapping.
package models

import "errors"

var (
	// ErrInvalidInput marks a rejected value (blank name, reps < 1,
	// negative weight). Nothing is persisted when this is returned.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a missing entity or a broken reference.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState marks an operation that is illegal in the
	// entity's current lifecycle state, e.g. logging a set into a
	// completed session.
	ErrInvalidState = errors.New("invalid state")

	// ErrPersistence marks a durable write that did not succeed.
	ErrPersistence = errors.New("persistence failure")
)
