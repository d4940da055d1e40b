package stage

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyTerminal: the opportunity is closed; the call is a no-op,
	// not a failure. Handlers return the unchanged record.
	ErrAlreadyTerminal = errors.New("opportunity already closed")

	// ErrIllegalTransition: the requested move is not legal from the
	// current stage. Never partially applied.
	ErrIllegalTransition = errors.New("illegal stage transition")

	// ErrValidation is the sentinel matched by errors.Is for any
	// ValidationError.
	ErrValidation = errors.New("validation failed")
)

// ValidationError names the specific missing or invalid field so the caller
// can surface it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
