// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package interp

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/mvdan-style/posh/ast"
	"github.com/mvdan-style/posh/vars"
)

// BuiltinKind distinguishes a POSIX special built-in (which, among other
// things, makes an assignment preceding it persist in the calling
// environment, and a failure of which exits a non-interactive shell) from
// an intrinsic (regular) built-in.
type BuiltinKind int

const (
	Intrinsic BuiltinKind = iota
	Special
)

// BuiltinFunc implements one built-in command's behaviour; it returns the
// exit status to set, and a Divert if running it should alter control flow
// (namely "exit", "return", "break" and "continue").
type BuiltinFunc func(e *Env, args []string) (int, Divert)

// Builtin is a named built-in command plus its Kind (§4.5 step 3/5).
type Builtin struct {
	Kind BuiltinKind
	Func BuiltinFunc
}

// BuiltinTable maps a command name to its Builtin, if any is defined.
type BuiltinTable map[string]Builtin

// Lookup reports the Builtin registered for name, if any.
func (t BuiltinTable) Lookup(name string) (Builtin, bool) {
	b, ok := t[name]
	return b, ok
}

// DefaultBuiltins returns the built-in set every new Env starts with,
// grounded on the teacher's builtin.go switch (a subset covering the
// commands the execution engine itself needs to dispatch through rather
// than exec(2): control-flow built-ins cannot be implemented any other
// way, since they must mutate the calling Env's Divert/ExitStatus
// directly).
func DefaultBuiltins() BuiltinTable {
	return BuiltinTable{
		":":        {Kind: Special, Func: builtinColon},
		"true":     {Kind: Intrinsic, Func: builtinColon},
		"false":    {Kind: Intrinsic, Func: builtinFalse},
		"exit":     {Kind: Special, Func: builtinExit},
		"return":   {Kind: Special, Func: builtinReturn},
		"break":    {Kind: Special, Func: builtinBreak},
		"continue": {Kind: Special, Func: builtinContinue},
		"export":   {Kind: Special, Func: builtinExport},
		"unset":    {Kind: Special, Func: builtinUnset},
		"readonly": {Kind: Special, Func: builtinReadonly},
		"shift":    {Kind: Special, Func: builtinShift},
		"cd":       {Kind: Intrinsic, Func: builtinCd},
		"echo":     {Kind: Intrinsic, Func: builtinEcho},
		"pwd":      {Kind: Intrinsic, Func: builtinPwd},
		"test":     {Kind: Intrinsic, Func: builtinTest},
		"[":        {Kind: Intrinsic, Func: builtinBracket},
	}
}

func builtinColon(e *Env, args []string) (int, Divert) { return 0, Divert{} }

func builtinFalse(e *Env, args []string) (int, Divert) { return 1, Divert{} }

// builtinExit implements "exit [n]" (§3.5): with no operand, the status of
// the last command run; with a non-numeric operand, status 2, per POSIX.
func builtinExit(e *Env, args []string) (int, Divert) {
	status := e.ExitStatus
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			status = 2
		} else {
			status = n
		}
	}
	s := status
	return status, Divert{Kind: DivertExit, Status: &s}
}

func builtinReturn(e *Env, args []string) (int, Divert) {
	status := e.ExitStatus
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			status = n
		}
	}
	s := status
	return status, Divert{Kind: DivertReturn, Status: &s}
}

func builtinBreak(e *Env, args []string) (int, Divert) {
	return 0, Divert{Kind: DivertBreak, N: loopCount(args)}
}

func builtinContinue(e *Env, args []string) (int, Divert) {
	return 0, Divert{Kind: DivertContinue, N: loopCount(args)}
}

func loopCount(args []string) int {
	if len(args) == 0 {
		return 1
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// builtinExport implements "export name[=value]...": an existing binding
// gains IsExported; a bare new name is exported with an empty value,
// mirroring the teacher's "export" case (interp/builtin.go).
func builtinExport(e *Env, args []string) (int, Divert) {
	for _, arg := range args {
		name, value, hasValue := cut(arg, '=')
		v, ok := e.Vars.Get(name)
		if !ok {
			v = vars.Variable{Value: vars.Scalar("")}
		}
		if hasValue {
			v.Value = vars.Scalar(value)
		}
		v.IsExported = true
		if _, err := e.Vars.Assign(vars.Global, name, v); err != nil {
			fmt.Fprintln(e.Stderr, err)
			return 1, Divert{}
		}
	}
	return 0, Divert{}
}

// builtinReadonly implements "readonly name[=value]...", tagging the
// binding with a non-nil but empty Location as its ReadOnly marker: a
// built-in receives only its arguments, not the command's Location.
func builtinReadonly(e *Env, args []string) (int, Divert) {
	loc := new(ast.Location)
	for _, arg := range args {
		name, value, hasValue := cut(arg, '=')
		v, ok := e.Vars.Get(name)
		if !ok {
			v = vars.Variable{Value: vars.Scalar("")}
		}
		if hasValue {
			v.Value = vars.Scalar(value)
		}
		v.ReadOnly = loc
		if _, err := e.Vars.Assign(vars.Global, name, v); err != nil {
			fmt.Fprintln(e.Stderr, err)
			return 1, Divert{}
		}
	}
	return 0, Divert{}
}

func builtinUnset(e *Env, args []string) (int, Divert) {
	for _, name := range args {
		if _, err := e.Vars.Assign(vars.Global, name, vars.Variable{Value: vars.Scalar("")}); err != nil {
			fmt.Fprintln(e.Stderr, err)
			return 1, Divert{}
		}
	}
	return 0, Divert{}
}

func builtinShift(e *Env, args []string) (int, Divert) {
	n := 1
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil {
			n = v
		}
	}
	pp := e.Vars.PositionalParamsMut()
	cur := pp.Value.Strings()
	if n > len(cur) {
		return 1, Divert{}
	}
	pp.Value = vars.Array(cur[n:])
	return 0, Divert{}
}

func builtinCd(e *Env, args []string) (int, Divert) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "-" {
		dir = e.Dir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(e.Dir, dir)
	}
	e.Dir = dir
	return 0, Divert{}
}

func builtinEcho(e *Env, args []string) (int, Divert) {
	for i, a := range args {
		if i > 0 {
			fmt.Fprint(e.Stdout, " ")
		}
		fmt.Fprint(e.Stdout, a)
	}
	fmt.Fprintln(e.Stdout)
	return 0, Divert{}
}

func builtinPwd(e *Env, args []string) (int, Divert) {
	fmt.Fprintln(e.Stdout, e.Dir)
	return 0, Divert{}
}

func cut(s string, sep byte) (before, after string, found bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}
