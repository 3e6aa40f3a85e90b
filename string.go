// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"fmt"
	"io"

	"github.com/creachadair/jstream/internal/escape"
)

// scanString consumes a string whose opening quotation mark has already been
// read, decoding escape sequences into s.buf.
func (s *Scanner) scanString() error {
	var n int // runes decoded
	for {
		ch, err := s.rune()
		if err != nil {
			return s.unterminated(err)
		}
		switch ch {
		case '"':
			s.tok = String
			return nil
		case '\\':
			ch, err = s.scanEscape()
			if err != nil {
				return err
			}
		}
		if n == s.maxStr {
			return s.failf(ErrMaxLength, "string longer than %d runes", s.maxStr)
		}
		s.buf.WriteRune(ch)
		n++
	}
}

// scanEscape decodes an escape sequence whose backslash has already been
// read, and returns the rune it denotes.
func (s *Scanner) scanEscape() (rune, error) {
	ch, err := s.rune()
	if err != nil {
		return 0, s.unterminated(err)
	}
	if r, ok := escape.Simple(ch); ok {
		return r, nil
	} else if ch != 'u' {
		return 0, s.failf(ErrInvalidEscape, "invalid %q after escape", ch)
	}

	var u escape.Unicode
	for !u.Done() {
		ch, err := s.rune()
		if err != nil {
			return 0, s.unterminated(err)
		} else if err := u.Add(ch); err != nil {
			return 0, s.failf(ErrInvalidEscape, "invalid Unicode escape: %w", err)
		}
	}
	r, err := u.Rune()
	if err != nil {
		return 0, s.failf(ErrInvalidEscape, "invalid Unicode escape: %w", err)
	}
	return r, nil
}

// unterminated reports a buffer error encountered inside a string.
func (s *Scanner) unterminated(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return s.fail(fmt.Errorf("unterminated string: %w", err))
}
