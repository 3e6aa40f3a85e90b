// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jstream"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func runProcess(t *testing.T, input string, opts options) (string, error) {
	t.Helper()
	if opts.Format == "" {
		opts.Format = "text"
	}
	var out bytes.Buffer
	p := newPrinter(&out, opts.Format)
	err := process(context.Background(), quietLogger(), "test", strings.NewReader(input), opts, p)
	if ferr := p.Flush(); ferr != nil {
		t.Fatalf("Flush: %v", ferr)
	}
	return out.String(), err
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  options
		want  string
	}{
		{"Tokens", `{"a": [1, "x y"]}`, options{ChunkSize: 3}, `
1:0-1	lbrace	{
1:1-4	string	"a"
1:4-5	colon	:
1:6-7	lsquare	[
1:7-8	integer	1
1:8-9	comma	,
1:10-15	string	"x y"
1:15-16	rsquare	]
1:16-17	rbrace	}
`},
		{"TokensJSON", `[1, true, null]`, options{ChunkSize: 1, Format: "json"}, `
{"pos":"1:0-1","token":"lsquare","value":"["}
{"pos":"1:1-2","token":"integer","value":1}
{"pos":"1:2-3","token":"comma","value":","}
{"pos":"1:4-8","token":"true","value":true}
{"pos":"1:8-9","token":"comma","value":","}
{"pos":"1:10-14","token":"null","value":null}
{"pos":"1:14-15","token":"rsquare","value":"]"}
`},
		{"Select", `{"a": [1, "x"], "b": 2}`, options{ChunkSize: 4, Select: []string{"$.a[*]", "$.b"}}, `
1:7-8	$.a[*]	1
1:10-13	$.a[*]	"x"
1:21-22	$.b	2
`},
		{"SelectJSON", `{"a": {"b": "c"}}`, options{ChunkSize: 64, Format: "json", Select: []string{"$.a.b"}}, `
{"pos":"1:12-15","token":"string","path":"$.a.b","value":"c"}
`},
		{"JWCC", `{"a": 1, /* note */}`, options{ChunkSize: 64, JWCC: true, Select: []string{"$.a"}}, `
1:6-7	$.a	1
`},
		{"Empty", "", options{ChunkSize: 16}, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := runProcess(t, test.input, test.opts)
			if err != nil {
				t.Fatalf("process: unexpected error: %v", err)
			}
			if diff := cmp.Diff(strings.TrimPrefix(test.want, "\n"), got); diff != "" {
				t.Errorf("Output (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestProcessErrors(t *testing.T) {
	t.Run("Lexical", func(t *testing.T) {
		out, err := runProcess(t, `[1, 1e5]`, options{ChunkSize: 2})
		if !errors.Is(err, jstream.ErrInvalidNumber) {
			t.Errorf("process: got error %v, want %v", err, jstream.ErrInvalidNumber)
		}
		// Tokens before the error are still printed.
		if want := "1:0-1\tlsquare\t[\n"; !strings.HasPrefix(out, want) {
			t.Errorf("Output: got %q, want prefix %q", out, want)
		}
	})
	t.Run("TruncatedLiteral", func(t *testing.T) {
		for _, input := range []string{`[tru`, `{"a": nul`, `fals`} {
			out, err := runProcess(t, input, options{ChunkSize: 2})
			if !errors.Is(err, jstream.ErrInvalidLiteral) {
				t.Errorf("process %q: got error %v, want %v (output %q)", input, err, jstream.ErrInvalidLiteral, out)
			}
		}
	})
	t.Run("Syntax", func(t *testing.T) {
		_, err := runProcess(t, `{"a": [1, }`, options{ChunkSize: 4, Select: []string{"$.a[*]"}})
		var serr *jstream.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("process: got error %v, want *SyntaxError", err)
		}
	})
	t.Run("BadPath", func(t *testing.T) {
		if _, err := runProcess(t, `{}`, options{ChunkSize: 4, Select: []string{"$..a"}}); err == nil {
			t.Error("process: got nil, want error")
		}
	})
	t.Run("BadJWCC", func(t *testing.T) {
		if _, err := runProcess(t, `{"a": /* open`, options{ChunkSize: 4, JWCC: true}); err == nil {
			t.Error("process: got nil, want error")
		}
	})
	t.Run("MaxString", func(t *testing.T) {
		_, err := runProcess(t, `"abcdef"`, options{ChunkSize: 4, MaxString: 3})
		if !errors.Is(err, jstream.ErrMaxLength) {
			t.Errorf("process: got error %v, want %v", err, jstream.ErrMaxLength)
		}
	})
}

func TestOptionsCheck(t *testing.T) {
	if err := (options{ChunkSize: 1}).check(); err != nil {
		t.Errorf("check: unexpected error: %v", err)
	}
	for _, bad := range []options{{ChunkSize: 0}, {ChunkSize: 1, MaxString: -1}} {
		if err := bad.check(); err == nil {
			t.Errorf("check %+v: got nil, want error", bad)
		}
	}
}
