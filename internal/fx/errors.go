package fx

import "errors"

// Domain errors for engine lifecycle and lookup.
var (
	// ErrStopped indicates Start was called on a stopped runner. A new
	// runner must be created to animate again.
	ErrStopped = errors.New("fx: runner stopped (create a new instance)")

	// ErrRunning indicates Start was called twice.
	ErrRunning = errors.New("fx: runner already running")

	// ErrUnknownEngine indicates an engine name with no registered constructor.
	ErrUnknownEngine = errors.New("fx: unknown engine")

	// ErrUnknownTheme indicates a theme name with no palette.
	ErrUnknownTheme = errors.New("fx: unknown theme")

	// ErrBadSize indicates a non-positive surface dimension.
	ErrBadSize = errors.New("fx: surface dimensions must be positive")
)
