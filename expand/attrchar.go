// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package expand implements the word-expansion pipeline of §4.2: initial
// expansion of a Word into an attributed-character Phrase, parameter and
// command/arithmetic substitution, and the final field
// splitting/pathname-expansion/quote-removal pass that produces Fields.
package expand

import "github.com/mvdan-style/posh/ast"

// Origin tags where an AttrChar's value came from (§4.2.1).
type Origin int

const (
	// Literal is a character copied straight from source text.
	Literal Origin = iota
	// SoftExpansion is a character produced by a substitution
	// (parameter, command, or arithmetic); POSIX pathname expansion and
	// field splitting still apply to it unless it is also Quoted.
	SoftExpansion
	// FieldBoundary carries no character; it forces a field split at
	// this point regardless of IFS, used between the separately
	// expanded elements of "$@" and array parameters.
	FieldBoundary
)

// AttrChar is one character during expansion, carrying the four
// attributes of §4.2.1.
type AttrChar struct {
	Value rune
	Origin
	// Quoted marks a character that must not be subject to field
	// splitting or pathname expansion.
	Quoted bool
	// Quoting marks a character that is itself a quote mark and will be
	// dropped during quote removal.
	Quoting bool
	Loc     ast.Location
}

// Phrase is the intermediate product of initial expansion: an ordered
// AttrChar sequence, not yet split into fields.
type Phrase []AttrChar

// Field is the final, post-split, post-quote-removal form of one
// expanded argument (§4.2.5).
type Field struct {
	Value string
	Loc   ast.Location
}

func softChars(s string, quoted bool, loc ast.Location) Phrase {
	out := make(Phrase, 0, len(s))
	for _, r := range s {
		out = append(out, AttrChar{Value: r, Origin: SoftExpansion, Quoted: quoted, Loc: loc})
	}
	return out
}
