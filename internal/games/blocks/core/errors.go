package core

import (
	"errors"
	"fmt"
)

// Configuration errors. They abort a run before any action executes.
var (
	ErrNoStart           = errors.New("no start position found in level")
	ErrMultipleStarts    = errors.New("level has more than one start position")
	ErrDimensionMismatch = errors.New("terrain and objects dimensions differ")
	ErrEmptyLevel        = errors.New("level grid is empty")
	ErrStartOffPath      = errors.New("start position is not on a path cell")
	ErrRaggedRows        = errors.New("level rows have different lengths")
	ErrInvalidLoop       = errors.New("loop iterations must be positive")
	ErrLoopTooDeep       = errors.New("loop nesting too deep")
	ErrUnknownAction     = errors.New("unknown action")
	ErrActionNotAllowed  = errors.New("action not allowed in this level")
)

// ValidationError contains details about a validation failure.
// It unwraps to one of the sentinel errors above.
type ValidationError struct {
	Code    string
	Message string
	Err     error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

func invalid(code string, err error, format string, args ...any) ValidationError {
	return ValidationError{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}
