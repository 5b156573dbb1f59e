package authwire

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrInvalidFormat indicates a malformed frame.
	ErrInvalidFormat = errors.New("authwire: invalid format")

	// ErrLineTooLong indicates the buffered line exceeds the configured maximum.
	ErrLineTooLong = errors.New("authwire: line exceeds maximum length")
)

// FormatError provides detailed information about a decode error.
type FormatError struct {
	Offset int    // Byte offset of the start of the bad line in the stream
	Reason string // Human-readable explanation
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("authwire: format error at offset %d: %s", e.Offset, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}
