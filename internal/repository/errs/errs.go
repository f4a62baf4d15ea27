// Package errs holds the repository sentinel errors in a leaf package so
// that both the repository interfaces (which import the domain types) and
// the domain services can reference them without an import cycle.
package errs

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConstraint is returned when a database constraint rejects a write
	ErrConstraint = errors.New("constraint violation")

	// ErrDuplicateKey is returned when a unique key is inserted twice
	ErrDuplicateKey = errors.New("duplicate key")
)
