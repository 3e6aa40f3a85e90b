// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package consumer implements a tree of typed callbacks that can be
// attached to the events of a [jstream.Stream].
//
// A consumer tree mirrors the expected shape of a document: an [Object]
// maps member keys to nested consumers, an [Array] applies one consumer to
// each of its elements, and a [PrimitiveFunc] receives scalar values.
// Parts of the document that no consumer is registered for are skipped.
package consumer

import (
	"fmt"

	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/keypath"
)

// A Consumer is one of [*Object], [*Array], or [PrimitiveFunc].
type Consumer interface {
	consumer()
}

// A PrimitiveFunc receives a scalar value (string, number, true, false, or
// null). If it reports an error, parsing stops with that error.
type PrimitiveFunc func(v Value) error

func (PrimitiveFunc) consumer() {}

// A Value is a snapshot of a scalar token, valid after the callback returns.
type Value struct {
	Token    jstream.Token
	Text     string // decoded for strings, source text otherwise
	Int      int64  // for Integer
	Float    float64
	Location jstream.Location
}

// ValueOf captures the scalar token at loc.
func ValueOf(loc jstream.Anchor) Value {
	v := Value{Token: loc.Token(), Text: loc.Text(), Location: loc.Location()}
	switch v.Token {
	case jstream.Integer:
		v.Int, v.Float = loc.Int(), loc.Float()
	case jstream.Number:
		v.Float = loc.Float()
	}
	return v
}

// Bool reports whether v is the constant true.
func (v Value) Bool() bool { return v.Token == jstream.True }

// IsNull reports whether v is the constant null.
func (v Value) IsNull() bool { return v.Token == jstream.Null }

// Interface returns the value of v as a Go value: string, int64, float64,
// bool, or nil.
func (v Value) Interface() any {
	switch v.Token {
	case jstream.String:
		return v.Text
	case jstream.Integer:
		return v.Int
	case jstream.Number:
		return v.Float
	case jstream.True, jstream.False:
		return v.Bool()
	}
	return nil
}

// String renders v as JSON source text.
func (v Value) String() string {
	if v.Token == jstream.String {
		return jstream.Quote(v.Text)
	}
	return v.Text
}

// An Object consumes the members of an object.
type Object struct {
	members map[string]Consumer
	enter   func() error
	exit    func() error
}

// NewObject constructs an empty object consumer.
func NewObject() *Object { return &Object{members: make(map[string]Consumer)} }

func (*Object) consumer() {}

// Member registers c to consume the value of the member with the given key,
// and returns o to permit chaining. It panics if c is nil or if key already
// has a consumer registered.
func (o *Object) Member(key string, c Consumer) *Object {
	if isNil(c) {
		panic(fmt.Sprintf("consumer: nil consumer for key %q", key))
	} else if _, ok := o.members[key]; ok {
		panic(fmt.Sprintf("consumer: duplicate key %q", key))
	}
	o.members[key] = c
	return o
}

// Primitive registers fn to receive the scalar value of key.
func (o *Object) Primitive(key string, fn PrimitiveFunc) *Object { return o.Member(key, fn) }

// Object registers sub to consume the object value of key.
func (o *Object) Object(key string, sub *Object) *Object { return o.Member(key, sub) }

// Array registers arr to consume the array value of key.
func (o *Object) Array(key string, arr *Array) *Object { return o.Member(key, arr) }

// OnEnter sets a function called when a matching object begins.
func (o *Object) OnEnter(fn func() error) *Object { o.enter = fn; return o }

// OnExit sets a function called when a matching object ends.
func (o *Object) OnExit(fn func() error) *Object { o.exit = fn; return o }

// Keys returns the number of member keys registered on o.
func (o *Object) Keys() int { return len(o.members) }

// Select registers fn to receive the scalar value at the given key path,
// relative to o, creating intermediate consumers as needed. The path must
// begin with a member step. Select reports an error if the path is invalid,
// conflicts with the type of a consumer already registered, or names a
// position that already has a primitive consumer.
func (o *Object) Select(path string, fn PrimitiveFunc) error {
	p, err := keypath.Parse(path)
	if err != nil {
		return fmt.Errorf("select %q: %w", path, err)
	} else if len(p) == 0 {
		return fmt.Errorf("select %q: empty path", path)
	}
	if err := attach(o, p, fn); err != nil {
		return fmt.Errorf("select %q: %w", path, err)
	}
	return nil
}

// attach walks p from cur, creating consumers for each step, and installs
// fn at the last one.
func attach(cur Consumer, p keypath.Path, fn PrimitiveFunc) error {
	for i, step := range p {
		last := i == len(p)-1

		var old Consumer
		switch c := cur.(type) {
		case *Object:
			if step.Op != keypath.Member {
				return fmt.Errorf("step %d: %v applied to object", i+1, step)
			}
			old = c.members[step.Name]
		case *Array:
			if step.Op != keypath.Elements {
				return fmt.Errorf("step %d: %v applied to array", i+1, step)
			}
			old = c.elem
		default:
			return fmt.Errorf("step %d: %v applied to primitive", i+1, step)
		}

		var next Consumer
		switch {
		case last && old != nil:
			return fmt.Errorf("step %d: %v is already registered", i+1, step)
		case last:
			next = fn
		case old != nil:
			next = old
		case p[i+1].Op == keypath.Elements:
			next = NewArray(nil)
		default:
			next = NewObject()
		}

		if old == nil {
			switch c := cur.(type) {
			case *Object:
				c.members[step.Name] = next
			case *Array:
				c.elem = next
			}
		}
		cur = next
	}
	return nil
}

// An Array consumes the elements of an array.
type Array struct {
	elem  Consumer
	enter func() error
	exit  func() error
}

// NewArray constructs an array consumer that applies elem to each element.
// If elem == nil, elements are skipped.
func NewArray(elem Consumer) *Array { return &Array{elem: elem} }

func (*Array) consumer() {}

// OnEnter sets a function called when a matching array begins.
func (a *Array) OnEnter(fn func() error) *Array { a.enter = fn; return a }

// OnExit sets a function called when a matching array ends.
func (a *Array) OnExit(fn func() error) *Array { a.exit = fn; return a }

func isNil(c Consumer) bool {
	switch t := c.(type) {
	case nil:
		return true
	case PrimitiveFunc:
		return t == nil
	case *Object:
		return t == nil
	case *Array:
		return t == nil
	}
	return false
}

func call(fn func() error) error {
	if fn == nil {
		return nil
	}
	return fn()
}
