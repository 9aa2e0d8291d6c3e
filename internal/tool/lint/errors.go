package lint

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when the lint command exceeds its timeout.
	ErrTimeout = errors.New("lint command timeout")
	// ErrNoCommand is returned when a CommandLinter has no argv configured.
	ErrNoCommand = errors.New("no lint command configured")
)

// CommandError is returned when the lint command cannot be started.
type CommandError struct {
	Cmd   string
	Stage string
	Cause error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("lint command %s failed to %s: %v", e.Cmd, e.Stage, e.Cause)
}

func (e *CommandError) Unwrap() error {
	return e.Cause
}
