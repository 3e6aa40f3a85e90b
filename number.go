// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Parts of a number, in the order they must appear.
const (
	intPart = iota
	fracPart
	expPart
)

// numState tracks the progress of a number through its parts.
type numState struct {
	part    int    // which part is being accumulated
	ndig    [3]int // digits seen in each part
	neg     bool   // mantissa is negative
	expSign bool   // exponent has an explicit sign
}

// step applies ch to the state and reports whether ch ends the number.
// A rune that ends the number is not part of it.
func (n *numState) step(ch rune) (bool, error) {
	switch {
	case isDigit(ch):
		n.ndig[n.part]++

	case ch == '.':
		if n.part != intPart {
			return false, errors.New("duplicate decimal point")
		} else if n.ndig[intPart] == 0 {
			return false, errors.New("decimal point must follow a digit")
		}
		n.part = fracPart

	case ch == 'e' || ch == 'E':
		if n.part == intPart {
			return false, errors.New("exponent must follow a decimal point")
		} else if n.part == expPart {
			return false, errors.New("duplicate exponent")
		} else if n.ndig[fracPart] == 0 {
			return false, errors.New("exponent must follow a fractional digit")
		}
		n.part = expPart

	case ch == '-' || ch == '+':
		switch n.part {
		case intPart:
			if ch == '+' {
				return false, errors.New("leading plus sign is not allowed")
			} else if n.neg || n.ndig[intPart] != 0 {
				return false, errors.New("misplaced sign")
			}
			n.neg = true
		case fracPart:
			return false, errors.New("sign in fractional part")
		case expPart:
			if n.expSign || n.ndig[expPart] != 0 {
				return false, errors.New("misplaced sign in exponent")
			}
			n.expSign = true
		}

	case isSpace(ch):
		// Whitespace does not end a number: "1 2" is 12.

	case isNumEnd(ch):
		return true, nil

	default:
		return false, fmt.Errorf("invalid next character %q", ch)
	}
	return false, nil
}

// check reports whether the state describes a complete number.
func (n *numState) check() error {
	if n.ndig[n.part] != 0 {
		return nil
	}
	switch n.part {
	case fracPart:
		return errors.New("missing digits after decimal point")
	case expPart:
		return errors.New("missing digits in exponent")
	}
	return errors.New("missing digits")
}

// scanNumber consumes a number whose first rune has already been read.  The
// number ends at a delimiter or at the end of the input, and a delimiter is
// returned to the buffer. Whitespace within the number is skipped, and is
// not part of its text or its span.
func (s *Scanner) scanNumber(first rune) error {
	var st numState
	ch := first
	for {
		end, err := st.step(ch)
		if err != nil {
			return s.failf(ErrInvalidNumber, "%w", err)
		} else if end {
			s.unrune(ch)
			break
		}
		if !isSpace(ch) {
			s.buf.WriteRune(ch)
			s.markEnd()
		}

		ch, err = s.rune()
		if err == io.EOF {
			break
		} else if err != nil {
			return s.fail(err)
		}
	}
	return s.finishNumber(&st)
}

// finishNumber computes the value of the number whose text is in s.buf.
func (s *Scanner) finishNumber(st *numState) error {
	if err := st.check(); err != nil {
		return s.failf(ErrInvalidNumber, "%w", err)
	}
	text := s.buf.Bytes()
	nint := st.ndig[intPart]
	if st.neg {
		nint++
	}
	if hasExtraLeadingZeroes(text[:nint]) {
		return s.failf(ErrInvalidNumber, "extra leading zeroes in %q", text)
	}

	if st.part == intPart {
		v, err := strconv.ParseInt(string(text), 10, 64)
		if err != nil {
			return s.failf(ErrInvalidNumber, "integer %s out of range", text)
		}
		s.ival, s.fval = v, float64(v)
		s.tok = Integer
		return nil
	}

	// The text is already in canonical form: [-]int.frac[e[±]exp].
	v, err := strconv.ParseFloat(string(text), 64)
	if err != nil {
		return s.failf(ErrInvalidNumber, "number %s out of range", text)
	}
	s.fval = v
	s.tok = Number
	return nil
}

// hasExtraLeadingZeroes reports whether the representation of an integer in
// buf has redundant leading zeroes, which RFC 8259 disallows.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf []byte) bool {
	if buf[0] == '-' {
		buf = buf[1:] // skip leading sign
	}
	if buf[0] == '0' {
		// A leading zero is OK if it's the only digit.
		return len(buf) > 1
	}
	return false
}
