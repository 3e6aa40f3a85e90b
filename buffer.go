// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"io"
	"sync"
	"unicode/utf8"

	"github.com/creachadair/mds/queue"
)

// A Buffer is an ordered source of runes fed in chunks by a producer and
// drained one rune at a time by a consumer. Next blocks while the buffer is
// empty until more input is submitted or the buffer is closed.
//
// A Buffer is safe for concurrent use by one producer and one consumer.
type Buffer struct {
	mu    sync.Mutex
	ready *sync.Cond

	// Invariant: pos < len(front chunk) unless chunks is empty.
	chunks *queue.Queue[[]rune]
	pos    int

	back    rune // pushed-back rune, if hasBack
	hasBack bool

	eof   bool
	nread int    // runes delivered, net of pushback
	part  []byte // incomplete UTF-8 held over from Write
}

// NewBuffer constructs a new empty Buffer.
func NewBuffer() *Buffer {
	b := &Buffer{chunks: queue.New[[]rune]()}
	b.ready = sync.NewCond(&b.mu)
	return b
}

// Submit adds chunk to the end of the buffer. The buffer takes ownership of
// chunk, and the caller must not modify it afterward. Submit reports
// ErrClosed if the buffer has already been closed, in which case the buffer
// is not modified.
func (b *Buffer) Submit(chunk []rune) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.eof {
		return ErrClosed
	}
	b.addLocked(chunk)
	return nil
}

// Write decodes p as UTF-8 and adds the resulting runes to the buffer.  An
// incomplete encoding at the end of p is held until the next call to Write.
// Write reports ErrClosed if the buffer has already been closed.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.eof {
		return 0, ErrClosed
	}

	data := p
	if len(b.part) != 0 {
		data = append(b.part, p...)
		b.part = nil
	}
	n := completePrefix(data)
	if n < len(data) {
		b.part = append([]byte(nil), data[n:]...)
	}
	b.addLocked([]rune(string(data[:n])))
	return len(p), nil
}

// Close marks the end of the input. After Close, Submit and Write report
// ErrClosed, and Next reports io.EOF once the remaining input is consumed.
// Any incomplete UTF-8 encoding held by Write is delivered as U+FFFD.
// Calling Close more than once is harmless. Close always returns nil.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.eof {
		return nil
	}
	if len(b.part) != 0 {
		b.addLocked([]rune{utf8.RuneError})
		b.part = nil
	}
	b.eof = true
	b.ready.Signal()
	return nil
}

// Next returns the next rune of the input. If no input is available and the
// buffer has not been closed, Next blocks until a chunk is submitted or the
// buffer is closed. Once the buffer is closed and empty, Next returns io.EOF.
func (b *Buffer) Next() (rune, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for {
		if b.hasBack {
			b.hasBack = false
			b.nread++
			return b.back, nil
		}
		if front, ok := b.chunks.Peek(0); ok {
			ch := front[b.pos]
			b.pos++
			if b.pos == len(front) {
				b.chunks.Pop()
				b.pos = 0
			}
			b.nread++
			return ch, nil
		}
		if b.eof {
			return 0, io.EOF
		}
		b.ready.Wait()
	}
}

// Pushback arranges for ch to be the next rune returned by Next, ahead of any
// buffered input. Pushback is permitted after Close. At most one rune may be
// pushed back between calls to Next; Pushback panics if a rune is already
// pending.
func (b *Buffer) Pushback(ch rune) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.hasBack {
		panic("jstream: pushback with a rune already pending")
	}
	b.back, b.hasBack = ch, true
	b.nread--
	b.ready.Signal()
}

// Offset reports the number of runes delivered by Next, less any that were
// pushed back and not yet re-read.
func (b *Buffer) Offset() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nread
}

// addLocked appends a non-empty chunk and wakes the reader.
// The caller must hold b.mu.
func (b *Buffer) addLocked(chunk []rune) {
	if len(chunk) == 0 {
		return
	}
	b.chunks.Add(chunk)
	b.ready.Signal()
}

// completePrefix returns the length of the longest prefix of data that does
// not end in the middle of a UTF-8 encoding.
func completePrefix(data []byte) int {
	i := len(data) - 1
	for i >= 0 && i > len(data)-utf8.UTFMax && !utf8.RuneStart(data[i]) {
		i--
	}
	if i >= 0 && utf8.RuneStart(data[i]) && !utf8.FullRune(data[i:]) {
		return i
	}
	return len(data)
}

var _ io.WriteCloser = (*Buffer)(nil)
