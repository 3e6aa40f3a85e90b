//go:build !amd64 && !arm64

// Package jsonout writes JSON-lines records.
package jsonout

import (
	"io"

	"github.com/goccy/go-json"
)

// Library names the JSON implementation in use.
const Library = "github.com/goccy/go-json"

// Encoder writes one JSON record per line, using go-json where Sonic is
// not available.
type Encoder struct {
	enc *json.Encoder
}

// NewEncoder creates an encoder that writes records to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: json.NewEncoder(w)}
}

// Encode writes v as a single line of JSON.
func (e *Encoder) Encode(v any) error {
	return e.enc.Encode(v)
}
