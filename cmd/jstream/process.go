// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/consumer"
	"github.com/sirupsen/logrus"
	"github.com/tailscale/hujson"
	"golang.org/x/sync/errgroup"
)

// options are the settings that control how an input is processed.
type options struct {
	ChunkSize int      `kong:"default='4096',help='Bytes read per chunk',env='JSTREAM_CHUNK_SIZE'"`
	MaxString int      `kong:"default='0',help='Maximum decoded string length in runes (0 for no practical limit)',env='JSTREAM_MAX_STRING'"`
	Format    string   `kong:"short='f',default='text',enum='text,json',help='Output format',env='JSTREAM_FORMAT'"`
	Select    []string `kong:"short='s',sep='none',help='Print the primitive values at this key path (repeatable)',env='JSTREAM_SELECT'"`
	JWCC      bool     `kong:"help='Accept comments and trailing commas (reads each input fully first)',env='JSTREAM_JWCC'"`
}

func (o options) check() error {
	if o.ChunkSize <= 0 {
		return fmt.Errorf("invalid chunk size %d", o.ChunkSize)
	} else if o.MaxString < 0 {
		return fmt.Errorf("invalid max string length %d", o.MaxString)
	}
	return nil
}

// process reads JSON text from r and writes the tokens, or the selected
// values, to p. A producer feeds r into a buffer in chunks while the
// scanner consumes it concurrently.
func process(ctx context.Context, log *logrus.Logger, name string, r io.Reader, opts options, p *printer) error {
	flog := log.WithField("file", name)

	if opts.JWCC {
		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		std, err := hujson.Standardize(data)
		if err != nil {
			return fmt.Errorf("standardize input: %w", err)
		}
		flog.WithFields(logrus.Fields{"in": len(data), "out": len(std)}).Debug("standardized JWCC input")
		r = bytes.NewReader(std)
	}

	var root *consumer.Object
	if len(opts.Select) != 0 {
		root = consumer.NewObject()
		for _, path := range opts.Select {
			if err := root.Select(path, p.selected(path)); err != nil {
				return err
			}
		}
	}

	b := jstream.NewBuffer()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return jstream.Feed(ctx, b, r, opts.ChunkSize)
	})
	g.Go(func() error {
		s := jstream.NewScanner(b)
		s.SetMaxStringLength(opts.MaxString)
		if root != nil {
			return jstream.NewStreamWithScanner(s).Parse(consumer.Dispatch(root))
		}
		n, err := printTokens(s, p)
		flog.WithField("tokens", n).Debug("scan complete")
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	flog.WithField("runes", b.Offset()).Debug("input complete")
	return nil
}

// printTokens writes each token of s to p until the input is exhausted,
// and returns the number of tokens printed.
func printTokens(s *jstream.Scanner, p *printer) (int, error) {
	var n int
	for {
		if err := s.Next(); err == io.EOF {
			return n, nil
		} else if err != nil {
			return n, err
		}
		if err := p.token(s); err != nil {
			return n, err
		}
		n++
	}
}
