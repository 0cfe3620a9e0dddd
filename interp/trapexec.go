// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package interp

import (
	"fmt"

	"github.com/mvdan-style/posh/ast"
	"github.com/mvdan-style/posh/parser"
	"github.com/mvdan-style/posh/trap"
)

// drainSignalFeed moves every signal the host process has already caught
// (but this Env hasn't yet told the TrapSet about) into the TrapSet,
// without blocking; this is the "engine polls" half of §5's "Signal
// delivery semantics": the OS handler only sets a flag, and polling
// happens at the checkpoints §4.5's Command rule names.
func (e *Env) drainSignalFeed() {
	if e.SignalFeed == nil {
		return
	}
	for {
		select {
		case sig := <-e.SignalFeed:
			e.Traps.CatchSignal(sig)
		default:
			return
		}
	}
}

// runTrapsForCaughtSignals implements §4.6: it drains any newly delivered
// signals, then repeatedly takes a caught-and-pending trap and, if its
// action is a Command, parses and runs it with a Trap frame on the stack.
// Reentrant invocations (a Trap frame already on the stack) are refused
// outright, to avoid recursive trap storms.
func (e *Env) runTrapsForCaughtSignals() Divert {
	e.drainSignalFeed()
	if e.inTrapFrame() {
		return Divert{}
	}
	var merged Divert
	for {
		cond, state, ok := e.Traps.TakeCaughtSignal()
		if !ok {
			break
		}
		if state.Action.Kind != trap.ActionCommand {
			continue
		}
		merged = Merge(merged, e.runTrapCommand(cond.String(), state.Action.CommandText, state.InstallLoc))
	}
	return merged
}

func (e *Env) runTrapCommand(condition, text string, origin ast.Location) Divert {
	code := ast.NewCode(text, 1, ast.Source{
		Kind:      ast.SourceTrap,
		Condition: condition,
		Original:  &origin,
	})
	list, err := parser.Parse(code)
	if err != nil {
		fmt.Fprintf(e.Stderr, "trap %s: %v\n", condition, err)
		return Divert{}
	}
	saved := e.ExitStatus
	e.Stack = append(e.Stack, Frame{Kind: FrameTrap, Condition: condition})
	d := e.execList(list)
	e.Stack = e.Stack[:len(e.Stack)-1]
	e.ExitStatus = saved
	return d
}
