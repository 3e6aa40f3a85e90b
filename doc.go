// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jstream implements an incremental JSON scanner and stream parser
// that consumes its input in chunks as they arrive.
//
// # Buffering
//
// A Buffer holds chunks of input supplied by a producer. The producer calls
// Submit (or Write, for UTF-8 bytes) for each chunk as it arrives, and Close
// once there is no more input. A consumer reads one rune at a time with Next,
// which blocks while the buffer is empty and not yet closed:
//
//	buf := jstream.NewBuffer()
//	go func() {
//	   defer buf.Close()
//	   io.Copy(buf, conn)
//	}()
//
// Exactly one producer and one consumer may use a Buffer concurrently.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON.  Construct a scanner
// from a Buffer and call its Next method to iterate over the stream. Next
// advances to the next input token and returns nil, or reports an error:
//
//	s := jstream.NewScanner(buf)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the buffer is closed and fully consumed. Any other
// error indicates a lexical error in the input, and has concrete type
// *jstream.ScanError. Lexical errors are fatal: the scanner does not attempt
// to resynchronize, and every later call to Next reports the same error.
//
//	if err := s.Err(); err != io.EOF {
//	   log.Fatalf("Scanning failed: %v", err)
//	}
//
// The value of the current token is available from the Int, Float, Bool and
// Text methods. String values are fully decoded.
//
// # Streaming
//
// The Stream type implements an event-driven stream parser for JSON.  The
// parser works by calling methods on a Handler value to report the structure
// of the input. In case of error, parsing is terminated and an error of
// concrete type *jstream.SyntaxError is returned.
//
// Construct a Stream from a Buffer, and call its Parse method. Parse
// returns nil if the input was fully processed without error. If a Handler
// method reports an error, parsing stops and that error is returned.
//
//	s := jstream.NewStream(buf)
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// # Handlers
//
// The Handler interface accepts parser events from a Stream. The methods of
// a handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// The consumer package provides a Handler that dispatches values to
// callbacks registered against object keys.
package jstream
