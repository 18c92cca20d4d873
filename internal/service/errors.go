package service

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced to the HTTP boundary. Handlers translate each kind
// to a status code; anything not matching these is a storage failure.
var (
	ErrWorkerNotFound = errors.New("worker not found")
)

// ValidationError marks malformed or missing input, rejected before any
// mutation takes place.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError marks a write that would violate the one-record-per-date-
// per-worker uniqueness outside the controlled day-save replace path.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }
