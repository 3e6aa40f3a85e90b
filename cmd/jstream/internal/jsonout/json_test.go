package jsonout_test

import (
	"bytes"
	"testing"

	"github.com/creachadair/jstream/cmd/jstream/internal/jsonout"
	"github.com/google/go-cmp/cmp"
)

func TestEncoder(t *testing.T) {
	type record struct {
		Pos   string `json:"pos"`
		Token string `json:"token"`
		Value any    `json:"value"`
	}
	var buf bytes.Buffer
	enc := jsonout.NewEncoder(&buf)
	for _, r := range []record{
		{"1:0-1", "integer", int64(15)},
		{"1:3-5", "string", "a b"},
		{"2:0-4", "null", nil},
	} {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("Encode %+v: %v", r, err)
		}
	}
	const want = `{"pos":"1:0-1","token":"integer","value":15}
{"pos":"1:3-5","token":"string","value":"a b"}
{"pos":"2:0-4","token":"null","value":null}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Output (-want, +got):\n%s", diff)
	}
}
