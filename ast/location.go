// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package ast defines the abstract syntax tree of the shell language: the
// word model, assignments, redirections, the command tree, and the
// Location/Code/Source machinery that carries diagnostics through every
// later phase.
package ast

// SourceKind tags the origin of a Code block (§3.1).
type SourceKind int

const (
	// SourceTopLevel is ordinary top-level input: a script file or an
	// interactive line.
	SourceTopLevel SourceKind = iota
	// SourceHereDoc is the body of a here-document.
	SourceHereDoc
	// SourceAlias is text substituted in from an alias expansion.
	SourceAlias
	// SourceTrap is a command string installed by the trap built-in.
	SourceTrap
	// SourceArith is the original `$((...))` the substituted expression
	// text of an arithmetic assignment refers back to.
	SourceArith
	// SourceCommandSubst is the captured output of a command substitution,
	// re-lexed as a word in the enclosing context.
	SourceCommandSubst
)

func (k SourceKind) String() string {
	switch k {
	case SourceTopLevel:
		return "TopLevel"
	case SourceHereDoc:
		return "HereDoc"
	case SourceAlias:
		return "Alias"
	case SourceTrap:
		return "Trap"
	case SourceArith:
		return "Arith"
	case SourceCommandSubst:
		return "CommandSubst"
	default:
		return "Unknown"
	}
}

// Source is a tagged variant describing where a Code block's bytes came
// from (§3.1). Only the fields relevant to Kind are meaningful.
type Source struct {
	Kind SourceKind

	// AliasName names the alias that produced this text, when Kind ==
	// SourceAlias.
	AliasName string

	// Condition names the trap condition text (e.g. "EXIT" or "signal(2)") that
	// installed this command, when Kind == SourceTrap.
	Condition string

	// Original points at the location in the enclosing source that this
	// Code was derived from (the `$((`...`))` for SourceArith, the alias
	// invocation for SourceAlias, the trap-setting command for
	// SourceTrap). It is a pointer so Source does not recursively embed a
	// Code by value.
	Original *Location
}

// Code is an immutable block of shell source bytes together with the line
// number its first byte starts at and its Source tag.
type Code struct {
	Value     string
	StartLine int
	Origin    Source

	// lineOffsets[i] is the byte offset of the first character of the
	// (i+1)-th line; lineOffsets[0] is always 0. Computed once so that
	// Position lookups are a binary search, mirroring the teacher's
	// File.Lines/Position split (syntax/nodes.go).
	lineOffsets []int
}

// NewCode builds a Code block, precomputing its line-offset table.
func NewCode(value string, startLine int, origin Source) *Code {
	c := &Code{Value: value, StartLine: startLine, Origin: origin}
	c.lineOffsets = []int{0}
	for i := 0; i < len(value); i++ {
		if value[i] == '\n' {
			c.lineOffsets = append(c.lineOffsets, i+1)
		}
	}
	return c
}

// Position is a line/column pair, both 1-based.
type Position struct {
	Line   int
	Column int
}

// NewLocation builds a Location spanning [start,end) of c.
func (c *Code) NewLocation(start, end int) Location {
	return Location{Code: c, Start: start, End: end}
}

// Position resolves a byte offset within c into a line/column pair. Lines
// are numbered starting at c.StartLine.
func (c *Code) Position(offset int) Position {
	i := searchOffsets(c.lineOffsets, offset)
	if i < 0 {
		i = 0
	}
	return Position{
		Line:   c.StartLine + i,
		Column: offset - c.lineOffsets[i] + 1,
	}
}

// inlined binary search, mirrors syntax.searchInts in the teacher.
func searchOffsets(a []int, x int) int {
	i, j := 0, len(a)
	for i < j {
		h := i + (j-i)/2
		if a[h] <= x {
			i = h + 1
		} else {
			j = h
		}
	}
	return i - 1
}

// Location is a byte range within an immutable Code block. Locations are
// purely informational and are never used for equality of semantic values
// (§3.1): two Words with identical Units but different Locations are the
// same Word for every purpose except diagnostics.
type Location struct {
	Code  *Code
	Start int
	End   int
}

// Text returns the source bytes the Location spans.
func (l Location) Text() string {
	if l.Code == nil || l.Start < 0 || l.End > len(l.Code.Value) || l.Start > l.End {
		return ""
	}
	return l.Code.Value[l.Start:l.End]
}

// StartPosition resolves the beginning of the range to a line/column pair.
func (l Location) StartPosition() Position {
	if l.Code == nil {
		return Position{}
	}
	return l.Code.Position(l.Start)
}

// withRange returns the Location of the byte range [start,end) of l's underlying
// Code, expressed as absolute offsets (not relative to l.Start).
func (l Location) withRange(start, end int) Location {
	return Location{Code: l.Code, Start: start, End: end}
}
