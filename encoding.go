// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"github.com/creachadair/jstream/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added. Scanning the result yields src.
func Quote(src string) string { return string(escape.AppendQuote(nil, mem.S(src))) }
