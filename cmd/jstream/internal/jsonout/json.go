//go:build amd64 || arm64

// Package jsonout writes JSON-lines records.
package jsonout

import (
	"io"

	"github.com/bytedance/sonic/encoder"
)

// Library names the JSON implementation in use.
const Library = "github.com/bytedance/sonic"

// Encoder writes one JSON record per line, using the Sonic encoder on
// architectures it supports.
type Encoder struct {
	enc *encoder.StreamEncoder
}

// NewEncoder creates an encoder that writes records to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: encoder.NewStreamEncoder(w)}
}

// Encode writes v as a single line of JSON.
func (e *Encoder) Encode(v any) error {
	return e.enc.Encode(v)
}
