// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package ast

// RawParam is an unbraced parameter reference: `$name`, or one of the
// special one-character parameters (§3.2, §4.2.2).
type RawParam struct {
	Name string
	Loc  Location
}

// ParamModifier is the kind of POSIX braced-parameter modifier supported
// inside `${...}` (§4.2.2).
type ParamModifier int

const (
	ModNone ParamModifier = iota
	ModUseDefaultUnset    // ${name:-word}
	ModAssignDefaultUnset // ${name:=word}
	ModIndicateErrorUnset // ${name:?word}
	ModUseAlternativeSet  // ${name:+word}
	ModTrimPrefixShortest // ${name#word}
	ModTrimPrefixLongest  // ${name##word}
	ModTrimSuffixShortest // ${name%word}
	ModTrimSuffixLongest  // ${name%%word}
)

// HasColon reports whether the modifier is one of the ":"-prefixed forms,
// which additionally trigger on an empty (not just unset) value.
func (m ParamModifier) HasColon() bool {
	switch m {
	case ModUseDefaultUnset, ModAssignDefaultUnset, ModIndicateErrorUnset, ModUseAlternativeSet:
		return true
	default:
		return false
	}
}

// BracedParam is a braced parameter reference: `${name}`, `${#name}`, or
// `${name<modifier>word}` (§3.2, §4.2.2).
type BracedParam struct {
	Name string
	// Length requests the "${#name}" form: the length of the value
	// rather than the value itself. Mutually exclusive with Modifier.
	Length   bool
	Modifier ParamModifier
	// Operand is the word operand of Modifier; nil when Modifier ==
	// ModNone or Length is set.
	Operand *Word
	Loc     Location
}

// CommandSubst is a `$(...)` command substitution (§3.2, §4.2.3).
type CommandSubst struct {
	Body *List
	Loc  Location
}

// Backquote is a `` `...` `` command substitution (§3.2, §4.2.3). Its body
// is parsed after backslash-unescaping the raw text between backquotes,
// per POSIX.
type Backquote struct {
	Body *List
	Loc  Location
}

// ArithExpansion is a `$((...))` arithmetic expansion (§3.2, §4.2.4).
type ArithExpansion struct {
	Body Text
	Loc  Location
}

func (*RawParam) doubleQuotable()       {}
func (*BracedParam) doubleQuotable()    {}
func (*CommandSubst) doubleQuotable()   {}
func (*Backquote) doubleQuotable()      {}
func (*ArithExpansion) doubleQuotable() {}
