// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package ast

// SimpleCommand is an ordered collection of assignments, words and
// redirections (§3.5). The parser never produces an empty SimpleCommand.
type SimpleCommand struct {
	Assigns []*Assign
	Words   []*Word
	Redirs  []*Redir
	Loc     Location
}

// IsEmpty reports whether s has no assignments, words or redirections. A
// well-formed parse never returns such a SimpleCommand.
func (s *SimpleCommand) IsEmpty() bool {
	return len(s.Assigns) == 0 && len(s.Words) == 0 && len(s.Redirs) == 0
}

// CompoundCommand is one of: BraceGroup, Subshell, ForClause, WhileClause,
// IfClause, CaseClause (§3.5).
type CompoundCommand interface {
	compoundCommand()
}

// BraceGroup is `{ list; }`.
type BraceGroup struct {
	Body *List
	Loc  Location
}

// Subshell is `( list )`.
type Subshell struct {
	Body *List
	Loc  Location
}

// ForWords is the word-list form of a for-loop's iteration set. A loop
// with no `in` clause has a nil *ForWords and iterates over the positional
// parameters ("$@"); a ForWords with no Words (`for x in; do`) iterates
// zero times.
type ForWords struct {
	Words []*Word
}

// ForClause is `for name [in words...]; do list; done`.
type ForClause struct {
	Name  string
	Words *ForWords
	Body  *List
	Loc   Location
}

// LoopKind distinguishes while from until.
type LoopKind int

const (
	LoopWhile LoopKind = iota
	LoopUntil
)

// WhileClause is `while/until cond; do body; done`; Kind selects which
// keyword introduced it (the two only differ in how Cond's exit status
// gates continuation).
type WhileClause struct {
	Kind LoopKind
	Cond *List
	Body *List
	Loc  Location
}

// ElifClause is one `elif cond; then body` arm of an IfClause.
type ElifClause struct {
	Cond *List
	Then *List
}

// IfClause is `if cond; then body (elif ...)* (else ...)?; fi`.
type IfClause struct {
	Cond  *List
	Then  *List
	Elifs []*ElifClause
	Else  *List // nil when there is no else branch
	Loc   Location
}

// CaseArm is one `pattern|pattern) body ;;` arm of a CaseClause.
type CaseArm struct {
	Patterns []*Word
	Body     *List
}

// CaseClause is `case word in arms... esac`.
type CaseClause struct {
	Subject *Word
	Arms    []*CaseArm
	Loc     Location
}

func (*BraceGroup) compoundCommand()  {}
func (*Subshell) compoundCommand()    {}
func (*ForClause) compoundCommand()   {}
func (*WhileClause) compoundCommand() {}
func (*IfClause) compoundCommand()    {}
func (*CaseClause) compoundCommand()  {}

// FullCompoundCommand is a CompoundCommand plus its own redirections
// (§3.5).
type FullCompoundCommand struct {
	Body   CompoundCommand
	Redirs []*Redir
	Loc    Location
}

// FunctionDefinition declares a shell function (§3.5).
type FunctionDefinition struct {
	HasKeyword bool // true when introduced with the `function` keyword
	Name       *Word
	Body       *FullCompoundCommand
	Loc        Location
}

// Command is the sum of SimpleCommand, FullCompoundCommand and
// FunctionDefinition (§3.5).
type Command interface {
	command()
}

func (*SimpleCommand) command()       {}
func (*FullCompoundCommand) command() {}
func (*FunctionDefinition) command()  {}
