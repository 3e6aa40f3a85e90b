// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package consumer

import (
	"github.com/creachadair/jstream"
	"github.com/creachadair/mds/stack"
)

// A Dispatcher is a [jstream.Handler] that routes stream events to the
// consumers of a tree rooted at an [Object].
type Dispatcher struct {
	root *Object
	stk  *stack.Stack[*frame]
}

// frame records the consumer for one open object or array. A frame with
// neither obj nor arr set belongs to a skipped subtree.
type frame struct {
	obj    *Object
	arr    *Array
	member Consumer // for obj, the consumer of the current member value
}

// Dispatch returns a handler that delivers events to the consumers of root.
// Each top-level value of the stream is matched against root.
func Dispatch(root *Object) *Dispatcher {
	return &Dispatcher{root: root, stk: stack.New[*frame]()}
}

// Parse parses all the values from b, delivering them to root.
func Parse(b *jstream.Buffer, root *Object) error {
	return jstream.NewStream(b).Parse(Dispatch(root))
}

// Depth reports the number of objects and arrays currently open.
func (d *Dispatcher) Depth() int { return d.stk.Len() }

// target returns the consumer for a value at the current position, or nil if
// the value should be skipped.
func (d *Dispatcher) target() Consumer {
	top, ok := d.stk.Peek(0)
	switch {
	case !ok:
		if d.root == nil {
			return nil
		}
		return d.root
	case top.obj != nil:
		return top.member
	case top.arr != nil:
		return top.arr.elem
	}
	return nil
}

// BeginObject implements part of [jstream.Handler].
func (d *Dispatcher) BeginObject(loc jstream.Anchor) error {
	f := new(frame)
	if o, ok := d.target().(*Object); ok {
		f.obj = o
	}
	d.stk.Push(f)
	if f.obj != nil {
		return call(f.obj.enter)
	}
	return nil
}

// EndObject implements part of [jstream.Handler].
func (d *Dispatcher) EndObject(loc jstream.Anchor) error {
	f, _ := d.stk.Pop()
	if f != nil && f.obj != nil {
		return call(f.obj.exit)
	}
	return nil
}

// BeginArray implements part of [jstream.Handler].
func (d *Dispatcher) BeginArray(loc jstream.Anchor) error {
	f := new(frame)
	if a, ok := d.target().(*Array); ok {
		f.arr = a
	}
	d.stk.Push(f)
	if f.arr != nil {
		return call(f.arr.enter)
	}
	return nil
}

// EndArray implements part of [jstream.Handler].
func (d *Dispatcher) EndArray(loc jstream.Anchor) error {
	f, _ := d.stk.Pop()
	if f != nil && f.arr != nil {
		return call(f.arr.exit)
	}
	return nil
}

// BeginMember implements part of [jstream.Handler].
func (d *Dispatcher) BeginMember(loc jstream.Anchor) error {
	if top, ok := d.stk.Peek(0); ok && top.obj != nil {
		top.member = top.obj.members[loc.Text()]
	}
	return nil
}

// EndMember implements part of [jstream.Handler].
func (d *Dispatcher) EndMember(loc jstream.Anchor) error {
	if top, ok := d.stk.Peek(0); ok {
		top.member = nil
	}
	return nil
}

// Value implements part of [jstream.Handler].
func (d *Dispatcher) Value(loc jstream.Anchor) error {
	if fn, ok := d.target().(PrimitiveFunc); ok {
		return fn(ValueOf(loc))
	}
	return nil
}

// EndOfInput implements part of [jstream.Handler].
func (d *Dispatcher) EndOfInput(loc jstream.Anchor) {}

var _ jstream.Handler = (*Dispatcher)(nil)
