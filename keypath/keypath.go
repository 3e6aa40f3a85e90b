// Package keypath implements a parser for the key paths used to register
// consumers against nested object members and array elements.
//
// A key path is a restricted form of JSONPath that names exactly one
// position in the structure of a document, allowing every element of an
// array to share the same position:
//
//	$.store.book[*].author
//	$['key with spaces'].value
package keypath

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

/*
Grammar:

  path = root steps
  root = "$"
 steps = step [steps]
  step = "." WORD
  step = "[" "'" QTEXT "'" "]"
  step = "[" "*" "]"

  WORD = RE `\w+`
 QTEXT = RE `([^'\\]|\\['\\])*`

Within QTEXT, a backslash escapes a quote or a backslash.

Other JSONPath forms (recursion, wildcards on objects, indices, slices,
scripts and filters) are rejected, since they do not name a single
position known before the document is read.
*/

// A Path is a parsed key path.
type Path []Step

// Parse parses s as a key path.
func Parse(s string) (Path, error) {
	t, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var p Path
	for t != "" {
		step, rest, err := parseStep(t)
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", len(s)-len(t), err)
		}
		p = append(p, step)
		t = rest
	}
	return p, nil
}

// MustParse parses s as a key path, and panics if it is invalid.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("keypath: parse %q: %v", s, err))
	}
	return p
}

func (p Path) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range p {
		buf.WriteString(s.String())
	}
	return buf.String()
}

func parseStep(s string) (_ Step, rest string, _ error) {
	if strings.HasPrefix(s, "..") {
		return Step{}, s, errors.New("recursive descent is not supported")
	}
	if t, ok := strings.CutPrefix(s, "."); ok {
		if strings.HasPrefix(t, "*") {
			return Step{}, s, errors.New("member wildcard is not supported")
		}
		m := wordRE.FindStringSubmatch(t)
		if m == nil {
			return Step{}, s, errors.New("invalid .name")
		}
		return Step{Op: Member, Name: m[1]}, t[len(m[0]):], nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		var out Step
		if u, ok := strings.CutPrefix(t, "*"); ok {
			out, t = Step{Op: Elements}, u
		} else if m := quoteRE.FindStringSubmatch(t); m != nil {
			out, t = Step{Op: Member, Name: unescapeRep.Replace(m[1]), Quoted: true}, t[len(m[0]):]
		} else {
			return Step{}, s, fmt.Errorf("unsupported subscript %q", t)
		}
		u, ok := strings.CutPrefix(t, "]")
		if !ok {
			return Step{}, t, errors.New("missing close bracket")
		}
		return out, u, nil
	}
	return Step{}, s, errors.New("invalid path step")
}

var (
	wordRE  = regexp.MustCompile(`^(\w+)`)
	nameRE  = regexp.MustCompile(`^\w+$`)
	quoteRE = regexp.MustCompile(`^'((?:[^'\\]|\\['\\])*)'`)

	escapeRep   = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	unescapeRep = strings.NewReplacer(`\\`, `\`, `\'`, `'`)
)

// An Op is a path operator.
type Op byte

const (
	Invalid  Op = iota // invalid operator
	Member             // object member with a given key
	Elements           // every element of an array
)

var opText = map[Op]string{
	Invalid:  "invalid",
	Member:   "member",
	Elements: "elements",
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return opText[Invalid]
}

// A Step is a single step of a key path.
type Step struct {
	Op     Op
	Name   string // for Member, the exact key
	Quoted bool   // for Member, whether the key was written quoted
}

func (s Step) String() string {
	switch {
	case s.Op == Elements:
		return "[*]"
	case s.Op == Member && (s.Quoted || !nameRE.MatchString(s.Name)):
		return "['" + escapeRep.Replace(s.Name) + "']"
	case s.Op == Member:
		return "." + s.Name
	}
	return "<invalid>"
}
