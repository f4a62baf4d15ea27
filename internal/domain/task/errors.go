package task

import "errors"

var (
	// ErrTaskNotFound indicates the task doesn't exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrSearchUnavailable indicates no search repository is configured.
	ErrSearchUnavailable = errors.New("search not available")
)
