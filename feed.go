// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// DefaultChunkSize is the read size used by Feed when none is given.
const DefaultChunkSize = 4096

// Feed copies r into b in chunks of at most size bytes, closing b when r is
// exhausted, when reading fails, or when ctx ends. It returns nil when r
// reached io.EOF, and otherwise the error that stopped it. If size <= 0,
// DefaultChunkSize is used.
//
// Feed is meant to run as the producer for a consumer reading from b.
func Feed(ctx context.Context, b *Buffer, r io.Reader, size int) error {
	defer b.Close()
	if size <= 0 {
		size = DefaultChunkSize
	}
	buf := make([]byte, size)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := b.Write(buf[:n]); werr != nil {
				return fmt.Errorf("write chunk: %w", werr)
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return fmt.Errorf("read chunk: %w", err)
		}
	}
}
