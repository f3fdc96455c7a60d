package process

import "errors"

// Sentinel errors for process package.
var (
	// ErrUnsupportedKind is returned when the file type cannot be run.
	ErrUnsupportedKind = errors.New("only Python and batch files can be executed")

	// ErrLaunchFailed is returned when the interpreter or shell cannot be started.
	ErrLaunchFailed = errors.New("failed to launch process")

	// ErrNoTerminal is returned when no terminal emulator is available.
	ErrNoTerminal = errors.New("could not find a suitable terminal emulator")

	// ErrBatchUnsupported is wrapped by ErrLaunchFailed for batch files on
	// systems other than Windows.
	ErrBatchUnsupported = errors.New("batch files can only be executed on Windows")
)
