// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/creachadair/mds/stack"
)

// An Anchor represents a token in source text. The methods of an Anchor
// report the location, token type, and value of the token.
type Anchor interface {
	Token() Token       // Returns the token type of the anchor
	Text() string       // Returns the text of the anchor; strings are decoded
	Int() int64         // Returns the value of an Integer anchor
	Float() float64     // Returns the value of an Integer or Number anchor
	Bool() bool         // Reports whether the anchor is True
	Location() Location // Returns the full location of the anchor
}

// A Handler handles events from parsing an input stream.  If a method reports
// an error, parsing stops and that error is returned to the caller.
// The parser ensures objects and arrays are correctly balanced.
//
// The Anchor argument to a Handler method is only valid for the duration of
// that method call. If the method needs to retain information about the
// token after it returns, it must copy the relevant data.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new object member, whose key is at loc. The text of the key
	// is already decoded.
	BeginMember(loc Anchor) error

	// End the current object member giving the location and type of the token
	// that terminated the member (either Comma or RBrace).
	EndMember(loc Anchor) error

	// Report a data value at the given location. The type of the value can be
	// recovered from the token.
	Value(loc Anchor) error

	// EndOfInput reports the end of the input stream.
	EndOfInput(loc Anchor)
}

// Stream is a stream parser that consumes input and delivers events to a
// Handler corresponding with the structure of the input.
type Stream struct {
	s *Scanner
}

// NewStream constructs a new Stream that consumes input from b.
func NewStream(b *Buffer) *Stream { return &Stream{s: NewScanner(b)} }

// NewStreamWithScanner constructs a new Stream that consumes input from s.
func NewStreamWithScanner(s *Scanner) *Stream { return &Stream{s: s} }

func (s *Stream) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		switch err := serr.(type) {
		case *SyntaxError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(serr)
		}
	}
}

// Parse parses the input stream and delivers events to h until either an error
// occurs or the input is exhausted. In case of a syntax error, the returned
// error has type [*SyntaxError].
func (s *Stream) Parse(h Handler) (err error) {
	defer s.recoverParseError(&err)

	for {
		err := s.s.Next()
		if err == io.EOF {
			h.EndOfInput(s.s)
			return nil
		} else if err != nil {
			s.syntaxError(err, "%v", err)
		}

		s.parseElement(h)
	}
}

// ParseOne parses a single value from the input stream and delivers events to
// h until the value is complete or an error occurs. If no further value is
// available from the input, ParseOne returns io.EOF. In case of a syntax
// error, the returned error has type [*SyntaxError].
func (s *Stream) ParseOne(h Handler) (err error) {
	defer s.recoverParseError(&err)

	if err := s.s.Next(); err == io.EOF {
		h.EndOfInput(s.s)
		return err
	} else if err != nil {
		s.syntaxError(err, "%v", err)
	}
	s.parseElement(h)
	return nil
}

// parseElement consumes one complete value, including any nested objects
// and arrays. Open containers are tracked on a stack rather than by
// recursion, so nesting depth is limited only by memory.
// Precondition: token != Invalid.
func (s *Stream) parseElement(h Handler) {
	open := stack.New[Token]()
	for {
		// The current token begins a value.
		switch tok := s.s.Token(); tok {
		case LBrace:
			s.checkError(h.BeginObject(s.s))
			if s.advance(RBrace, String) == String {
				open.Push(LBrace)
				s.beginMember(h)
				continue
			}
			s.checkError(h.EndObject(s.s))
		case LSquare:
			s.checkError(h.BeginArray(s.s))
			if s.advance() != RSquare {
				open.Push(LSquare)
				continue
			}
			s.checkError(h.EndArray(s.s))
		case Integer, Number, String, True, False, Null:
			s.checkError(h.Value(s.s))
		case RBrace, RSquare, Comma, Colon:
			s.syntaxError(nil, "unexpected %v", tok)
		default:
			s.syntaxError(nil, "unknown token %v", tok)
		}

		// A value is complete. Close each container it finishes, until one
		// continues with another member or element.
		if !s.closeValues(h, open) {
			return
		}
	}
}

// closeValues consumes the separator or closer following a complete value
// inside each open container. It reports true when the token after a comma
// begins another value, or false when every container is closed.
func (s *Stream) closeValues(h Handler, open *stack.Stack[Token]) bool {
	for {
		top, ok := open.Peek(0)
		if !ok {
			return false
		}
		if top == LBrace {
			tok := s.advance(RBrace, Comma)
			s.checkError(h.EndMember(s.s))
			if tok == Comma {
				s.advance(String)
				s.beginMember(h)
				return true
			}
			open.Pop()
			s.checkError(h.EndObject(s.s))
			continue
		}
		if s.advance(RSquare, Comma) == Comma {
			s.advance()
			return true
		}
		open.Pop()
		s.checkError(h.EndArray(s.s))
	}
}

// beginMember reports the key of an object member and advances to the start
// of its value.
// Precondition: token == String.
func (s *Stream) beginMember(h Handler) {
	s.checkError(h.BeginMember(s.s))
	s.advance(Colon)
	s.advance()
}

// advance scans the next token, which must be one of tokens if any are given.
// End of input is a syntax error here, since a value is incomplete.
func (s *Stream) advance(tokens ...Token) Token {
	if err := s.s.Next(); err != nil {
		s.syntaxError(err, "%v", tokLabel(tokens, "error: "+err.Error()))
	}
	tok := s.s.Token()
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		s.syntaxError(nil, "%v", tokLabel(tokens, tok))
	}
	return tok
}

func (s *Stream) syntaxError(err error, msg string, args ...any) {
	panic(&SyntaxError{
		Location: s.s.Location().First,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}

func (s *Stream) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprintf("expected more input, got %v", got)
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, last)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}

// SyntaxError is the concrete type of errors reported by the stream parser.
// A lexical error from the scanner is wrapped, so errors.Is reports its kind.
type SyntaxError struct {
	Location LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
