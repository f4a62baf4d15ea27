package repository

import "github.com/tmorenz/tasktree/internal/repository/errs"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errs.ErrNotFound

	// ErrConstraint is returned when a database constraint rejects a write
	ErrConstraint = errs.ErrConstraint

	// ErrDuplicateKey is returned when a unique key is inserted twice
	ErrDuplicateKey = errs.ErrDuplicateKey
)
