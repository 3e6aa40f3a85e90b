// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"io"

	"go4.org/mem"
)

// literalTail maps each constant token to the text following its first rune.
var literalTail = map[Token]mem.RO{
	True:  mem.S("rue"),
	False: mem.S("alse"),
	Null:  mem.S("ull"),
}

// scanLiteral consumes the rest of the constant tok, whose first rune has
// already been read. Each remaining rune must match exactly.
func (s *Scanner) scanLiteral(first rune, tok Token) error {
	s.buf.WriteRune(first)
	tail := literalTail[tok]
	for i := 0; i < tail.Len(); i++ {
		want := rune(tail.At(i))
		ch, err := s.rune()
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return s.failf(ErrInvalidLiteral, "want %q in %v, got error: %w", want, tok, err)
		} else if ch != want {
			return s.failf(ErrInvalidLiteral, "want %q in %v, got %q", want, tok, ch)
		}
		s.buf.WriteRune(ch)
	}
	s.tok = tok
	return nil
}
