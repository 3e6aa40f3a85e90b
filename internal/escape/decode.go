// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting of JSON strings and decoding of the escape
// sequences that may appear inside them.
package escape

import (
	"fmt"
	"unicode/utf8"
)

// Simple maps the rune following a backslash to the rune it denotes, for the
// escapes that do not take an argument. It reports false for 'u' and for any
// rune that is not a valid escape.
func Simple(ch rune) (rune, bool) {
	switch ch {
	case '"', '\\', '/':
		return ch, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// HexValue reports the value of ch as a hexadecimal digit.
func HexValue(ch rune) (int, bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0'), true
	case 'a' <= ch && ch <= 'f':
		return int(ch-'a') + 10, true
	case 'A' <= ch && ch <= 'F':
		return int(ch-'A') + 10, true
	}
	return 0, false
}

// A Unicode accumulates the four hex digits of a \uXXXX escape, most
// significant digit first.
type Unicode struct {
	v, n int
}

// Add adds the next digit of the escape. It reports an error if ch is not a
// hex digit or if four digits have already been added.
func (u *Unicode) Add(ch rune) error {
	if u.n == 4 {
		return fmt.Errorf("extra digit %q in Unicode escape", ch)
	}
	d, ok := HexValue(ch)
	if !ok {
		return fmt.Errorf("not a hex digit: %q", ch)
	}
	u.v = u.v<<4 | d
	u.n++
	return nil
}

// Done reports whether all four digits have been added.
func (u *Unicode) Done() bool { return u.n == 4 }

// Rune returns the code point denoted by the escape. Surrogate halves are
// not valid standalone characters and are reported as errors.
func (u *Unicode) Rune() (rune, error) {
	if u.n != 4 {
		return 0, fmt.Errorf("incomplete Unicode escape (%d digits)", u.n)
	}
	r := rune(u.v)
	if !utf8.ValidRune(r) {
		return 0, fmt.Errorf("invalid code point U+%04X", u.v)
	}
	return r, nil
}
