package editor

import (
	"errors"
	"fmt"
)

// Kind classifies the outcome of a command.
type Kind string

const (
	KindNone          Kind = ""
	NotFound          Kind = "not_found"
	AlreadyExists     Kind = "already_exists"
	NoMatch           Kind = "no_match"
	AmbiguousMatch    Kind = "ambiguous_match"
	InvalidLine       Kind = "invalid_line"
	NoHistory         Kind = "no_history"
	IOFailure         Kind = "io_failure"
	InvalidParameter  Kind = "invalid_parameter"
	DetectionFallback Kind = "detection_fallback" // informational, never a failure
)

// Error is a command failure carrying enough context for the caller to retry.
type Error struct {
	Kind    Kind
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the Kind of err, or IOFailure for errors not produced by the editor.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return IOFailure
}

func newError(kind Kind, path, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)}
}

// invalidInput is implemented by causes that stem from bad caller input.
type invalidInput interface {
	InvalidInput() bool
}

// wrapError reports a failed step with its cause. Causes marked as invalid
// input are an InvalidParameter, anything else an IOFailure.
func wrapError(path, msg string, cause error) *Error {
	kind := IOFailure
	var ii invalidInput
	if errors.As(cause, &ii) && ii.InvalidInput() {
		kind = InvalidParameter
	}
	return &Error{Kind: kind, Path: path, Message: msg, Cause: cause}
}
