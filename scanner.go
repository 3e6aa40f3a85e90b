// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// DefaultMaxStringLength is the default limit on the length in runes of a
// decoded string value.
const DefaultMaxStringLength = 1 << 30

// A Scanner reads lexical tokens from a Buffer.  Each call to Next advances
// the scanner to the next token, or reports an error.
type Scanner struct {
	b      *Buffer
	maxStr int
	buf    bytes.Buffer // text of the current token
	tok    Token
	err    error

	ival int64   // value of an Integer token
	fval float64 // value of an Integer or Number token

	pos, end int // start and end offsets of current token

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
	lcol        int // ecol before the most recent rune

	// End of the current token, when it precedes the read position.
	mend, mline, mcol int
	marked            bool
}

// NewScanner constructs a new lexical scanner that consumes input from b.
func NewScanner(b *Buffer) *Scanner {
	return &Scanner{b: b, maxStr: DefaultMaxStringLength}
}

// SetMaxStringLength sets the maximum length in runes of a decoded string
// value. A string longer than n fails with ErrMaxLength. If n <= 0 the
// limit is reset to DefaultMaxStringLength.
func (s *Scanner) SetMaxStringLength(n int) {
	if n <= 0 {
		n = DefaultMaxStringLength
	}
	s.maxStr = n
}

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF. After an error, every call
// to Next reports the same error.
func (s *Scanner) Next() error {
	if s.err != nil {
		return s.err
	}
	s.buf.Reset()
	s.tok = Invalid
	s.ival, s.fval = 0, 0
	s.marked = false
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol

	for {
		ch, err := s.rune()
		if err == io.EOF {
			return s.setErr(err)
		} else if err != nil {
			return s.fail(err)
		}

		// Discard whitespace.
		if isSpace(ch) {
			s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
			continue
		}

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			s.buf.WriteRune(ch)
			s.tok = t
			return nil
		}

		switch {
		case ch == '"':
			return s.scanString()
		case isNumStart(ch):
			return s.scanNumber(ch)
		case ch == 't':
			return s.scanLiteral(ch, True)
		case ch == 'f':
			return s.scanLiteral(ch, False)
		case ch == 'n':
			return s.scanLiteral(ch, Null)
		}
		return s.failf(ErrUnrecognized, "unexpected %q", ch)
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the text of the current token. For a String token this is the
// decoded value without quotation marks; for other tokens it is the source
// text of the token.
func (s *Scanner) Text() string { return s.buf.String() }

// Bytes returns a view of the text of the current token, as Text.  The
// return value is only valid until the next call of Next.
func (s *Scanner) Bytes() []byte { return s.buf.Bytes() }

// Int returns the value of the current Integer token, or 0.
func (s *Scanner) Int() int64 { return s.ival }

// Float returns the value of the current Integer or Number token, or 0.
func (s *Scanner) Float() float64 { return s.fval }

// Bool reports whether the current token is True.
func (s *Scanner) Bool() bool { return s.tok == True }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span {
	end, _, _ := s.tokenEnd()
	return Span{Pos: s.pos, End: end}
}

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	_, line, col := s.tokenEnd()
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: line + 1, Column: col},
	}
}

// markEnd records the current read position as the end of the token.
func (s *Scanner) markEnd() {
	s.mend, s.mline, s.mcol, s.marked = s.end, s.eline, s.ecol, true
}

func (s *Scanner) tokenEnd() (end, line, col int) {
	if s.marked {
		return s.mend, s.mline, s.mcol
	}
	return s.end, s.eline, s.ecol
}

func (s *Scanner) rune() (rune, error) {
	ch, err := s.b.Next()
	if err != nil {
		return 0, err
	}
	s.end++
	s.lcol = s.ecol
	if ch == '\n' {
		s.eline++
		s.ecol = 0
	} else {
		s.ecol++
	}
	return ch, nil
}

// unrune returns ch, the most recently read rune, to the buffer.
func (s *Scanner) unrune(ch rune) {
	s.b.Pushback(ch)
	s.end--
	if ch == '\n' {
		s.eline--
	}
	s.ecol = s.lcol
}

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func (s *Scanner) fail(err error) error {
	return s.setErr(&ScanError{Offset: s.end, Err: err})
}

// failf reports an error of the given kind, described by msg and args.
func (s *Scanner) failf(kind error, msg string, args ...any) error {
	return s.fail(fmt.Errorf("%w: %w", kind, fmt.Errorf(msg, args...)))
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch rune) bool { return ch == '-' || ch == '+' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }

// isNumEnd reports whether ch is a delimiter that ends a number and belongs
// to the following token.
func isNumEnd(ch rune) bool { return ch == ',' || ch == '}' || ch == ']' }

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch rune) (Token, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
