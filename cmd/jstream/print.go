// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/cmd/jstream/internal/jsonout"
	"github.com/creachadair/jstream/consumer"
)

// A printer writes tokens and selected values as tab-separated text, or
// as JSON lines.
type printer struct {
	w   *bufio.Writer
	enc *jsonout.Encoder // nil for text output
}

type record struct {
	Pos   string `json:"pos"`
	Token string `json:"token"`
	Path  string `json:"path,omitempty"`
	Value any    `json:"value"`
}

func newPrinter(w io.Writer, format string) *printer {
	p := &printer{w: bufio.NewWriter(w)}
	if format == "json" {
		p.enc = jsonout.NewEncoder(p.w)
	}
	return p
}

// Flush writes any buffered output.
func (p *printer) Flush() error { return p.w.Flush() }

func (p *printer) token(s *jstream.Scanner) error {
	tok := s.Token()
	var val any
	switch tok {
	case jstream.String:
		val = s.Text()
	case jstream.Integer:
		val = s.Int()
	case jstream.Number:
		val = s.Float()
	case jstream.True, jstream.False:
		val = s.Bool()
	case jstream.Null:
	default:
		val = s.Text()
	}
	if p.enc != nil {
		return p.enc.Encode(record{
			Pos:   s.Location().String(),
			Token: tokenName(tok),
			Value: val,
		})
	}
	text := s.Text()
	if tok == jstream.String {
		text = jstream.Quote(text)
	}
	_, err := fmt.Fprintf(p.w, "%s\t%s\t%s\n", s.Location(), tokenName(tok), text)
	return err
}

// selected returns a function that prints the values found at path.
func (p *printer) selected(path string) consumer.PrimitiveFunc {
	return func(v consumer.Value) error {
		if p.enc != nil {
			return p.enc.Encode(record{
				Pos:   v.Location.String(),
				Token: tokenName(v.Token),
				Path:  path,
				Value: v.Interface(),
			})
		}
		_, err := fmt.Fprintf(p.w, "%s\t%s\t%s\n", v.Location, path, v)
		return err
	}
}

var tokenNames = map[jstream.Token]string{
	jstream.LBrace:  "lbrace",
	jstream.RBrace:  "rbrace",
	jstream.LSquare: "lsquare",
	jstream.RSquare: "rsquare",
	jstream.Comma:   "comma",
	jstream.Colon:   "colon",
}

// tokenName returns a bare name for tok, suitable as a column of output.
func tokenName(tok jstream.Token) string {
	if s, ok := tokenNames[tok]; ok {
		return s
	}
	return tok.String()
}
