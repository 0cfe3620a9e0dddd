// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package ast

// Word is an ordered sequence of WordUnits plus the Location of its first
// character (§3.2).
type Word struct {
	Units []WordUnit
	Loc   Location
}

// WordUnit is one of Unquoted, DoubleQuoted or SingleQuoted (§3.2).
type WordUnit interface {
	wordUnit()
}

// Unquoted wraps a single DoubleQuotable appearing outside of any quoting.
type Unquoted struct {
	Value DoubleQuotable
}

// DoubleQuoted is an ordered sequence of DoubleQuotables inside "...".
type DoubleQuoted struct {
	Parts []DoubleQuotable
	Loc   Location
}

// SingleQuoted is a literal string inside '...': no expansion ever applies
// to it.
type SingleQuoted struct {
	Value string
	Loc   Location
}

func (*Unquoted) wordUnit()     {}
func (*DoubleQuoted) wordUnit() {}
func (*SingleQuoted) wordUnit() {}

// DoubleQuotable is one of: Literal, Backslashed, RawParam, BracedParam,
// CommandSubst, Backquote, ArithExpansion (§3.2).
type DoubleQuotable interface {
	doubleQuotable()
}

// Literal is a run of characters copied verbatim; the expansion pipeline
// turns each rune into its own AttrChar (§4.2.1), but the parser coalesces
// contiguous literal runs into a single unit for efficiency.
type Literal struct {
	Value string
	Loc   Location
}

// Backslashed is a single backslash-escaped character.
type Backslashed struct {
	Value rune
	Loc   Location
}

func (*Literal) doubleQuotable()     {}
func (*Backslashed) doubleQuotable() {}

// Text is an ordered sequence of DoubleQuotables: the representation of a
// word's content before it is wrapped in WordUnit quoting, used directly
// as the body of an arithmetic expansion (§4.2.4).
type Text []DoubleQuotable

// IsLiteral reports whether every element of t is a Literal, i.e. it is
// safe to read as a plain string without running expansion.
func (t Text) IsLiteral() bool {
	for _, dq := range t {
		if _, ok := dq.(*Literal); !ok {
			return false
		}
	}
	return true
}

// ToStringIfLiteral returns the concatenation of every Literal's Value, iff
// every unit of Word w is an unquoted Literal (§3.2 invariant, §8.1
// "Literal identity").
func ToStringIfLiteral(w *Word) (string, bool) {
	var out []byte
	for _, u := range w.Units {
		uq, ok := u.(*Unquoted)
		if !ok {
			return "", false
		}
		lit, ok := uq.Value.(*Literal)
		if !ok {
			return "", false
		}
		out = append(out, lit.Value...)
	}
	return string(out), true
}

// IsLiteral reports whether w satisfies the "literal" invariant of §3.2.
func (w *Word) IsLiteral() bool {
	_, ok := ToStringIfLiteral(w)
	return ok
}
