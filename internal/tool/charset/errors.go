package charset

import (
	"errors"
	"fmt"
)

// ErrInvalidBytes is returned when data is not valid in the claimed encoding.
var ErrInvalidBytes = errors.New("invalid byte sequence")

// UnsupportedEncodingError is returned for encoding labels the codec does not know.
type UnsupportedEncodingError struct {
	Name string
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("unsupported encoding: %q", e.Name)
}

func (e *UnsupportedEncodingError) InvalidInput() bool {
	return true
}

// DecodeError is returned when bytes cannot be decoded.
type DecodeError struct {
	Encoding string
	Cause    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode content as %s: %v", e.Encoding, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// EncodeError is returned when text contains characters the target encoding lacks.
type EncodeError struct {
	Encoding string
	Cause    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode content as %s: %v", e.Encoding, e.Cause)
}

func (e *EncodeError) Unwrap() error {
	return e.Cause
}
