// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

import (
	"github.com/mvdan-style/posh/ast"
	"github.com/mvdan-style/posh/vars"
)

// CommandRunner is the execution-engine collaborator expand needs for
// command substitution (§4.2.3); interp.Env implements it. Keeping this
// as a narrow interface (rather than importing interp directly) avoids a
// package cycle, since interp in turn imports expand to run a
// SimpleCommand's words through the pipeline.
type CommandRunner interface {
	// RunCaptured executes list in a subshell with stdout captured,
	// returning the captured bytes and the pipeline's exit status.
	RunCaptured(list *ast.List) (output []byte, exitStatus int, err error)
}

// Config carries the context-dependent special-parameter values an
// Expander needs (§4.2.2): exit status, shell flags, PIDs and $0, mirrors
// the teacher's expand.Context grouping of ambient lookup state alongside
// the VariableSet (syntax/../expand/expand.go's Context.Env split).
type Config struct {
	ExitStatus   int
	Flags        string
	PID          int
	LastAsyncPID int
	Arg0         string
	NoGlob       bool
}

// Expander runs the word-expansion pipeline of §4.2 against one
// VariableSet, tracking the exit status of the most recent command
// substitution so it can propagate to the enclosing expression (§4.2.3).
type Expander struct {
	Vars   *vars.Set
	Runner CommandRunner
	Config Config

	// LastCommandSubstStatus is updated by every command substitution
	// this Expander performs.
	LastCommandSubstStatus int
}

// New builds an Expander bound to the given VariableSet and command
// runner.
func New(set *vars.Set, runner CommandRunner, cfg Config) *Expander {
	return &Expander{Vars: set, Runner: runner, Config: cfg}
}

// ExpandWord runs initial expansion (§4.2.1) over w, producing its
// unsplit Phrase.
func (e *Expander) ExpandWord(w *ast.Word) (Phrase, error) {
	var out Phrase
	for _, u := range w.Units {
		ph, err := e.expandWordUnit(u)
		if err != nil {
			return nil, err
		}
		out = append(out, ph...)
	}
	return out, nil
}

func (e *Expander) expandWordUnit(u ast.WordUnit) (Phrase, error) {
	switch v := u.(type) {
	case *ast.Unquoted:
		return e.expandDoubleQuotable(v.Value, false)
	case *ast.SingleQuoted:
		var out Phrase
		out = append(out, AttrChar{Value: '\'', Origin: Literal, Quoting: true, Loc: v.Loc})
		for _, r := range v.Value {
			out = append(out, AttrChar{Value: r, Origin: Literal, Quoted: true, Loc: v.Loc})
		}
		out = append(out, AttrChar{Value: '\'', Origin: Literal, Quoting: true, Loc: v.Loc})
		return out, nil
	case *ast.DoubleQuoted:
		var out Phrase
		out = append(out, AttrChar{Value: '"', Origin: Literal, Quoting: true, Loc: v.Loc})
		for _, part := range v.Parts {
			ph, err := e.expandDoubleQuotable(part, true)
			if err != nil {
				return nil, err
			}
			out = append(out, ph...)
		}
		out = append(out, AttrChar{Value: '"', Origin: Literal, Quoting: true, Loc: v.Loc})
		return out, nil
	}
	return nil, nil
}

// expandDoubleQuotable expands one DoubleQuotable; forceQuoted marks
// every character produced (even by a nested substitution) as quoted,
// which is how the double-quoted WordUnit case of §4.2.1 composes with
// the substitution rules of §4.2.2–§4.2.4.
func (e *Expander) expandDoubleQuotable(dq ast.DoubleQuotable, forceQuoted bool) (Phrase, error) {
	switch v := dq.(type) {
	case *ast.Literal:
		var out Phrase
		for _, r := range v.Value {
			out = append(out, AttrChar{Value: r, Origin: Literal, Quoted: forceQuoted, Loc: v.Loc})
		}
		return out, nil
	case *ast.Backslashed:
		return Phrase{
			{Value: '\\', Origin: Literal, Quoting: true, Loc: v.Loc},
			{Value: v.Value, Origin: Literal, Quoted: true, Loc: v.Loc},
		}, nil
	case *ast.RawParam:
		return e.expandRawParam(v, forceQuoted)
	case *ast.BracedParam:
		return e.expandBracedParam(v, forceQuoted)
	case *ast.CommandSubst:
		return e.expandCommandSubst(v.Body, v.Loc, forceQuoted)
	case *ast.Backquote:
		return e.expandCommandSubst(v.Body, v.Loc, forceQuoted)
	case *ast.ArithExpansion:
		return e.expandArithExpansion(v, forceQuoted)
	}
	return nil, nil
}
