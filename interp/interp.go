// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package interp implements the execution engine of §4.5-§4.6: a tree
// walker over the AST that manages pipelines, subshells, redirections,
// exit status and the Divert control-flow signal, cooperating with the
// vars and trap packages for variable scoping and signal-trap dispatch.
package interp

import (
	"io"
	"os"

	"github.com/mvdan-style/posh/ast"
	"github.com/mvdan-style/posh/expand"
	"github.com/mvdan-style/posh/parser"
	"github.com/mvdan-style/posh/trap"
	"github.com/mvdan-style/posh/vars"
)

// Option configures a new Env, mirroring the teacher's RunnerOption
// pattern (interp.go's New/RunnerOption) of small functional options
// applied in sequence rather than a sprawling constructor argument list.
type Option func(*Env)

// StdIO overrides the standard streams; nil arguments leave the default
// (the process's own os.Stdin/Stdout/Stderr) untouched.
func StdIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(e *Env) {
		if stdin != nil {
			e.Stdin = stdin
		}
		if stdout != nil {
			e.Stdout = stdout
		}
		if stderr != nil {
			e.Stderr = stderr
		}
	}
}

// Dir overrides the initial working directory.
func Dir(dir string) Option {
	return func(e *Env) { e.Dir = dir }
}

// Params seeds the positional parameters.
func Params(args ...string) Option {
	return func(e *Env) { e.Vars.PositionalParamsMut().Value = vars.Array(args) }
}

// Host overrides the ProcessHost used for external commands.
func Host(host ProcessHost) Option {
	return func(e *Env) { e.Host = host }
}

// SignalFeed attaches the channel run_traps_for_caught_signals drains
// (§4.6); cmd/posh wires this to an os/signal.Notify channel.
func SignalFeed(feed <-chan trap.Signal) Option {
	return func(e *Env) { e.SignalFeed = feed }
}

// New builds an Env seeded from the process environment and a fresh
// signal-trap state, applying opts in order.
func New(opts ...Option) *Env {
	set := vars.NewSet()
	if err := expand.SeedOSEnviron(set, os.Environ()); err != nil {
		// Malformed process environment entries are skipped by
		// SeedOSEnviron itself; an error here means Assign rejected a
		// read-only binding, which never happens on a fresh Set.
		panic(err)
	}
	traps := trap.NewSet(trap.UnixSystem{})
	e := NewEnv(set, traps, OSProcessHost{})
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run parses and executes source, returning the exit status (§4.5, §6.1).
func (e *Env) Run(code *ast.Code) int {
	list, err := parser.Parse(code)
	if err != nil {
		if e.Stderr != nil {
			io.WriteString(e.Stderr, err.Error()+"\n")
		}
		return 2
	}
	return e.runList(list)
}
