// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package consumer_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/consumer"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func bufferOf(t *testing.T, input string) *jstream.Buffer {
	t.Helper()
	b := jstream.NewBuffer()
	if err := b.Submit([]rune(input)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	b.Close()
	return b
}

// recorder accumulates a log of consumer callbacks.
type recorder struct{ log []string }

func (r *recorder) note(msg string) func() error {
	return func() error { r.log = append(r.log, msg); return nil }
}

func (r *recorder) value(tag string) consumer.PrimitiveFunc {
	return func(v consumer.Value) error {
		r.log = append(r.log, tag+": "+v.String())
		return nil
	}
}

func TestDispatch(t *testing.T) {
	const input = `{
  "name": "widget",
  "tags": ["a", "b\n"],
  "meta": {"n": 5, "skip": [1, {"name": "no"}], "x": 2.5},
  "other": {"name": "nope", "tags": ["z"]},
  "ok": true
}`
	var r recorder
	root := consumer.NewObject().
		OnEnter(r.note("enter root")).
		OnExit(r.note("exit root")).
		Primitive("name", r.value("name")).
		Array("tags", consumer.NewArray(r.value("tag")).
			OnEnter(r.note("enter tags")).
			OnExit(r.note("exit tags"))).
		Object("meta", consumer.NewObject().
			OnEnter(r.note("enter meta")).
			OnExit(r.note("exit meta")).
			Primitive("n", r.value("n")).
			Primitive("x", r.value("x"))).
		Primitive("ok", r.value("ok"))

	if err := consumer.Parse(bufferOf(t, input), root); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	want := []string{
		"enter root",
		`name: "widget"`,
		"enter tags",
		`tag: "a"`,
		`tag: "b\n"`,
		"exit tags",
		"enter meta",
		"n: 5",
		"x: 2.5",
		"exit meta",
		"ok: true",
		"exit root",
	}
	if diff := cmp.Diff(want, r.log); diff != "" {
		t.Errorf("Callbacks (-want, +got):\n%s", diff)
	}
}

func TestDispatchMismatch(t *testing.T) {
	// Values whose shape does not match the registered consumer are skipped.
	const input = `{"name": {"name": "inner"}, "tags": "flat", "meta": [{"n": 1}], "n": 3}`
	var r recorder
	root := consumer.NewObject().
		Primitive("name", r.value("name")).
		Array("tags", consumer.NewArray(r.value("tag"))).
		Object("meta", consumer.NewObject().Primitive("n", r.value("meta.n"))).
		Primitive("n", r.value("n"))

	if err := consumer.Parse(bufferOf(t, input), root); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"n: 3"}, r.log); diff != "" {
		t.Errorf("Callbacks (-want, +got):\n%s", diff)
	}
}

func TestDispatchTopLevel(t *testing.T) {
	const input = `{"a": 1} [{"a": 2}] "a" {"b": 0, "a": 3}`
	var r recorder
	root := consumer.NewObject().Primitive("a", r.value("a"))

	d := consumer.Dispatch(root)
	if err := jstream.NewStream(bufferOf(t, input)).Parse(d); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"a: 1", "a: 3"}, r.log); diff != "" {
		t.Errorf("Callbacks (-want, +got):\n%s", diff)
	}
	if n := d.Depth(); n != 0 {
		t.Errorf("Depth after parse: got %d, want 0", n)
	}
}

func TestDispatchError(t *testing.T) {
	errStop := errors.New("stop")
	var seen []int64
	root := consumer.NewObject().Array("v", consumer.NewArray(
		consumer.PrimitiveFunc(func(v consumer.Value) error {
			seen = append(seen, v.Int)
			if v.Int == 2 {
				return errStop
			}
			return nil
		})))

	err := consumer.Parse(bufferOf(t, `{"v": [1, 2, 3]}`), root)
	if err != errStop {
		t.Errorf("Parse: got error %v, want %v", err, errStop)
	}
	if diff := cmp.Diff([]int64{1, 2}, seen); diff != "" {
		t.Errorf("Values (-want, +got):\n%s", diff)
	}

	// Syntax errors are reported after partial delivery.
	seen = nil
	err = consumer.Parse(bufferOf(t, `{"v": [1, }`), root)
	var serr *jstream.SyntaxError
	if !errors.As(err, &serr) {
		t.Errorf("Parse: got error %v, want *SyntaxError", err)
	}
	if diff := cmp.Diff([]int64{1}, seen); diff != "" {
		t.Errorf("Values (-want, +got):\n%s", diff)
	}
}

func TestValue(t *testing.T) {
	var got []consumer.Value
	root := consumer.NewObject().Array("v", consumer.NewArray(
		consumer.PrimitiveFunc(func(v consumer.Value) error {
			got = append(got, v)
			return nil
		})))
	const input = `{"v": ["s\"t", -12, 2.5, true, false, null]}`
	if err := consumer.Parse(bufferOf(t, input), root); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}

	var ifaces []any
	var strs []string
	for _, v := range got {
		ifaces = append(ifaces, v.Interface())
		strs = append(strs, v.String())
	}
	if diff := cmp.Diff([]any{`s"t`, int64(-12), 2.5, true, false, nil}, ifaces); diff != "" {
		t.Errorf("Interface (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{`"s\"t"`, "-12", "2.5", "true", "false", "null"}, strs); diff != "" {
		t.Errorf("String (-want, +got):\n%s", diff)
	}
	if len(got) == 6 {
		if !got[3].Bool() || got[4].Bool() || !got[5].IsNull() {
			t.Errorf("Bool/IsNull: wrong results for %v", strs[3:])
		}
		if got[1].Float != -12 {
			t.Errorf("Float of integer: got %v, want -12", got[1].Float)
		}
		if pos := got[0].Location.First; pos != (jstream.LineCol{Line: 1, Column: 7}) {
			t.Errorf("Location: got %v, want 1:7", pos)
		}
	}
}

func TestSelect(t *testing.T) {
	const input = `{
  "store": {
    "book": [
      {"author": "Austen", "title": "Emma"},
      {"author": "Tolkien", "title": "The Hobbit", "price": 8.99}
    ],
    "owner name": "Ada"
  },
  "count": 2
}`
	var r recorder
	root := consumer.NewObject()
	for _, sel := range []string{
		"$.store.book[*].author",
		"$.store.book[*]['title']",
		"$.store['owner name']",
		"$.count",
	} {
		if err := root.Select(sel, r.value(sel)); err != nil {
			t.Fatalf("Select %q: unexpected error: %v", sel, err)
		}
	}
	// Paths sharing a prefix share the consumers along it.
	if n := root.Keys(); n != 2 {
		t.Errorf("Keys: got %d, want 2", n)
	}
	if err := consumer.Parse(bufferOf(t, input), root); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	want := []string{
		`$.store.book[*].author: "Austen"`,
		`$.store.book[*]['title']: "Emma"`,
		`$.store.book[*].author: "Tolkien"`,
		`$.store.book[*]['title']: "The Hobbit"`,
		`$.store['owner name']: "Ada"`,
		`$.count: 2`,
	}
	if diff := cmp.Diff(want, r.log); diff != "" {
		t.Errorf("Callbacks (-want, +got):\n%s", diff)
	}
}

func TestSelectErrors(t *testing.T) {
	nop := consumer.PrimitiveFunc(func(consumer.Value) error { return nil })
	root := consumer.NewObject().
		Primitive("leaf", nop).
		Array("list", consumer.NewArray(nil))
	if err := root.Select("$.a.b", nop); err != nil {
		t.Fatalf("Select: unexpected error: %v", err)
	}

	tests := []struct {
		path string
		want string
	}{
		{"", "missing root marker"},
		{"$", "empty path"},
		{"$..a", "recursive descent"},
		{"$[*]", "applied to object"},
		{"$.list.x", "applied to array"},
		{"$.leaf.x", "applied to primitive"},
		{"$.leaf", "already registered"},
		{"$.a.b", "already registered"},
		{"$.a[*]", "applied to object"},
	}
	for _, test := range tests {
		err := root.Select(test.path, nop)
		if err == nil {
			t.Errorf("Select %q: got nil, want error", test.path)
		} else if !strings.Contains(err.Error(), test.want) {
			t.Errorf("Select %q: got %v, want %q", test.path, err, test.want)
		}
	}
}

func TestRegisterPanics(t *testing.T) {
	nop := consumer.PrimitiveFunc(func(consumer.Value) error { return nil })
	mtest.MustPanic(t, func() {
		consumer.NewObject().Primitive("a", nop).Primitive("a", nop)
	})
	mtest.MustPanic(t, func() {
		consumer.NewObject().Primitive("a", nop).Object("a", consumer.NewObject())
	})
	mtest.MustPanic(t, func() { consumer.NewObject().Primitive("a", nil) })
	mtest.MustPanic(t, func() { consumer.NewObject().Member("a", nil) })
}

func ExampleObject_Select() {
	root := consumer.NewObject()
	root.Select("$.users[*].name", func(v consumer.Value) error {
		fmt.Println(v.Text)
		return nil
	})

	b := jstream.NewBuffer()
	b.Submit([]rune(`{"users": [{"name": "ann", "id": 1}, {"id": 2, "name": "bo"}]}`))
	b.Close()
	if err := consumer.Parse(b, root); err != nil {
		fmt.Println("error:", err)
	}
	// Output:
	// ann
	// bo
}
