// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package interp

import (
	"bytes"
	"io"
	"os"

	"github.com/mvdan-style/posh/ast"
	"github.com/mvdan-style/posh/expand"
	"github.com/mvdan-style/posh/trap"
	"github.com/mvdan-style/posh/vars"
)

// Frame marks one level of the execution stack (§4.6): a plain call frame,
// or a Trap frame, which run_traps_for_caught_signals uses to refuse
// reentering itself while a trap action is already running.
type FrameKind int

const (
	FrameCall FrameKind = iota
	FrameTrap
)

type Frame struct {
	Kind FrameKind
	// Condition names the trap condition text this frame is running the
	// action for, valid iff Kind == FrameTrap.
	Condition string
}

// ProcessHost is the OS-facing collaborator the executor uses to run
// external commands and manage the working directory (§4.5, §6.3), kept
// narrow so tests can substitute a fake one, the way the teacher's
// ExecHandlerFunc/OpenHandlerFunc let callers replace os/exec (handler.go).
type ProcessHost interface {
	// Run executes name with args in dir with the given environment and
	// standard streams, and returns its exit status. interrupt, when
	// non-nil, delivers a value each time the engine wants the running
	// command's process group interrupted, so a signal the shell itself
	// catches while an external command has the foreground still reaches
	// that command the way a POSIX shell's job-control signal forwarding
	// would.
	Run(dir string, env []string, name string, args []string, stdin io.Reader, stdout, stderr io.Writer, interrupt <-chan struct{}) (int, error)
	// LookPath resolves name against dir/PATH the way a shell locates an
	// external command.
	LookPath(dir string, env []string, name string) (string, error)
}

// Env is the execution engine's aggregate state (§4.5): the VariableSet,
// the TrapSet, the call stack, the exit status of the most recently
// completed command, and the I/O this Env's commands read and write.
type Env struct {
	Vars  *vars.Set
	Traps *trap.Set
	Host  ProcessHost

	Builtins  BuiltinTable
	Functions map[string]*ast.FullCompoundCommand

	Stack []Frame

	// SignalFeed, when non-nil, delivers OS signal numbers the host
	// process caught via os/signal.Notify; run_traps_for_caught_signals
	// drains it non-blockingly before consulting the TrapSet (§4.6,
	// §5 "Signal delivery semantics").
	SignalFeed <-chan trap.Signal

	ExitStatus   int
	LastAsyncPID int
	Dir          string

	Stdin          io.Reader
	Stdout, Stderr io.Writer

	Expand *expand.Expander
}

// NewEnv builds an Env around the given variable set, trap set and host,
// with the process's own standard streams and working directory.
func NewEnv(set *vars.Set, traps *trap.Set, host ProcessHost) *Env {
	dir, _ := os.Getwd()
	e := &Env{
		Vars:      set,
		Traps:     traps,
		Host:      host,
		Builtins:  DefaultBuiltins(),
		Functions: make(map[string]*ast.FullCompoundCommand),
		Dir:       dir,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
	e.Expand = expand.New(set, e, expand.Config{Arg0: "posh"})
	return e
}

// inTrapFrame reports whether a Trap frame is already on the stack, the
// reentrancy guard run_traps_for_caught_signals relies on (§4.6).
func (e *Env) inTrapFrame() bool {
	for _, f := range e.Stack {
		if f.Kind == FrameTrap {
			return true
		}
	}
	return false
}

// RunCaptured implements expand.CommandRunner: it runs list in a subshell
// copy of e with stdout captured to an in-memory buffer (§4.2.3).
func (e *Env) RunCaptured(list *ast.List) ([]byte, int, error) {
	var buf bytes.Buffer
	sub := e.subshell()
	sub.Stdout = &buf
	status := sub.runList(list)
	return buf.Bytes(), status, nil
}

// subshell builds a deep-enough copy of e to execute independently (§4.5
// EXPANSION note "subshells without fork"): a fresh Volatile-free
// VariableSet copy is not available from vars.Set directly, so instead we
// share the underlying Set (variable writes inside $( ) are already
// process-local to this single-goroutine interpreter) but give the trap
// state and I/O their own copies, matching EnterSubshell's job of
// resetting command traps to their defaults (§4.4 operation 2).
func (e *Env) subshell() *Env {
	sub := &Env{
		Vars:         e.Vars,
		Traps:        e.Traps,
		Host:         e.Host,
		Builtins:     e.Builtins,
		Functions:    e.Functions,
		Dir:          e.Dir,
		Stdin:        e.Stdin,
		Stdout:       e.Stdout,
		Stderr:       e.Stderr,
		ExitStatus:   e.ExitStatus,
		LastAsyncPID: e.LastAsyncPID,
		SignalFeed:   e.SignalFeed,
	}
	sub.Expand = expand.New(sub.Vars, sub, expand.Config{Arg0: "posh"})
	_ = e.Traps.EnterSubshell()
	return sub
}
