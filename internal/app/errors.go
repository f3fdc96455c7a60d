package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrNoFilePath indicates an action needs the file to be saved first.
	ErrNoFilePath = errors.New("file has not been saved")

	// ErrUnknownLanguage indicates an extension with no language profile.
	ErrUnknownLanguage = errors.New("unknown language")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "save", "open", "run")
	Target string // Target of the operation (e.g., file path)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is implements errors.Is for OperationError.
// Matches both the wrapper itself and the wrapped error.
func (e *OperationError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*OperationError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}
