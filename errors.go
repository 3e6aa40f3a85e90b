// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is reported by Submit and Write after the buffer is closed.
	ErrClosed = errors.New("buffer is closed")

	// ErrInvalidLiteral is reported when true, false or null is misspelled.
	ErrInvalidLiteral = errors.New("invalid literal")

	// ErrInvalidNumber is reported for a malformed or out-of-range number.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrInvalidEscape is reported for a malformed escape in a string.
	ErrInvalidEscape = errors.New("invalid escape")

	// ErrMaxLength is reported when a string exceeds the length limit.
	ErrMaxLength = errors.New("maximum string length exceeded")

	// ErrUnrecognized is reported when no token begins with the next rune.
	ErrUnrecognized = errors.New("unrecognized token")
)

// ScanError is the concrete type of lexical errors reported by a Scanner.
// Use errors.Is to test for the kind of error, e.g., ErrInvalidNumber.
type ScanError struct {
	Offset int // rune offset at which the error was detected
	Err    error
}

// Error satisfies the error interface.
func (e *ScanError) Error() string {
	return fmt.Sprintf("%s (offset %d)", e.Err.Error(), e.Offset)
}

// Unwrap supports error wrapping.
func (e *ScanError) Unwrap() error { return e.Err }
