package main

import (
	"errors"
	"fmt"

	"github.com/hatvoni/hatvoni/internal/store"
)

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (unreadable global config)
	ExitDataError   = 3 // Data error (malformed data file, write failure)
	ExitNotFound    = 4 // No record with the given id
	ExitDuplicate   = 5 // A record with the given id already exists
)

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withExit(code int, err error) error {
	return &exitError{code: code, err: err}
}

// exitCode maps an error returned from a command to a process exit code.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, store.ErrDuplicateID):
		return ExitDuplicate
	case errors.Is(err, store.ErrCorrupt):
		return ExitDataError
	}
	return ExitError
}

// recordError turns a store error about one record into a CLI error with a
// readable message and the matching exit code.
func recordError(kind, id string, err error) error {
	switch {
	case errors.Is(err, store.ErrDuplicateID):
		return withExit(ExitDuplicate, fmt.Errorf("%s with ID '%s' already exists", kind, id))
	case errors.Is(err, store.ErrNotFound):
		return withExit(ExitNotFound, fmt.Errorf("%s with ID '%s' not found", kind, id))
	case errors.Is(err, store.ErrEmptyID):
		return withExit(ExitError, fmt.Errorf("%s ID must not be empty", kind))
	}
	return withExit(ExitDataError, err)
}
