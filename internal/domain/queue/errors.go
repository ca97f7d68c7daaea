package queue

import (
	"errors"
	"fmt"
)

var (
	// ErrEntryNotFound indicates no entry carries the requested token.
	ErrEntryNotFound = errors.New("queue entry not found")
	// ErrInvalidTransition indicates the lifecycle does not allow the move.
	ErrInvalidTransition = errors.New("invalid queue status transition")
	// ErrInvalidInput indicates a submission failed validation.
	ErrInvalidInput = errors.New("invalid queue input")
	// ErrUnknownStatus indicates a status name that is not part of the lifecycle.
	ErrUnknownStatus = errors.New("unknown queue status")
	// ErrQueueEmpty indicates nobody is waiting.
	ErrQueueEmpty = errors.New("no waiting entries")
)

var (
	ErrEmptyName       = fmt.Errorf("%w: name is required", ErrInvalidInput)
	ErrAgeOutOfRange   = fmt.Errorf("%w: age must be between %d and %d", ErrInvalidInput, MinAge, MaxAge)
	ErrUnknownCategory = fmt.Errorf("%w: unknown category", ErrInvalidInput)
)
