// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

//go:build unix

package trap

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/mvdan-style/posh/ast"
)

// fakeSystem is an in-memory System, standing in for trap/system_unix.go's
// sigaction-backed one so these tests don't depend on the host's actual
// signal dispositions.
type fakeSystem struct {
	disposition map[Signal]Handling
	initial     map[Signal]Handling
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{disposition: make(map[Signal]Handling), initial: make(map[Signal]Handling)}
}

func (f *fakeSystem) SetDisposition(sig Signal, handling Handling) (Handling, error) {
	prev := f.disposition[sig]
	f.disposition[sig] = handling
	return prev, nil
}

func (f *fakeSystem) Probe(sig Signal) (Handling, error) {
	return f.initial[sig], nil
}

const sigINT Signal = 2
const sigKillForTest Signal = 9
const sigStopForTest Signal = 19

func TestSetActionInstallsCommandAndSyncsCatch(t *testing.T) {
	c := qt.New(t)
	sys := newFakeSystem()
	s := NewSet(sys)
	cond := SignalCondition(sigINT)

	err := s.SetAction(cond, Action{Kind: ActionCommand, CommandText: "echo hi"}, ast.Location{}, false)
	c.Assert(err, qt.IsNil)
	c.Assert(sys.disposition[sigINT], qt.Equals, HandlingCatch)

	st := s.State(cond)
	c.Assert(st.Current.Kind, qt.Equals, UserSpecified)
	c.Assert(st.Current.State.Action.CommandText, qt.Equals, "echo hi")
}

func TestSetActionRefusesKillAndStop(t *testing.T) {
	c := qt.New(t)
	s := NewSet(newFakeSystem())

	err := s.SetAction(SignalCondition(sigKillForTest), Action{Kind: ActionIgnore}, ast.Location{}, false)
	var kserr *SigKillStopError
	c.Assert(err, qt.ErrorAs, &kserr)

	err = s.SetAction(SignalCondition(sigStopForTest), Action{Kind: ActionIgnore}, ast.Location{}, false)
	c.Assert(err, qt.ErrorAs, &kserr)
}

func TestSetActionInitiallyIgnoredRefusesWithoutOverride(t *testing.T) {
	c := qt.New(t)
	sys := newFakeSystem()
	sys.initial[sigINT] = HandlingIgnore
	s := NewSet(sys)
	cond := SignalCondition(sigINT)

	err := s.SetAction(cond, Action{Kind: ActionCommand, CommandText: "echo hi"}, ast.Location{}, false)
	var iierr *InitiallyIgnoredError
	c.Assert(err, qt.ErrorAs, &iierr)

	// A second SetAction call does not re-probe: it proceeds normally,
	// since wasProbed is now set.
	err = s.SetAction(cond, Action{Kind: ActionCommand, CommandText: "echo hi"}, ast.Location{}, false)
	c.Assert(err, qt.IsNil)
}

func TestSetActionInitiallyIgnoredOverride(t *testing.T) {
	c := qt.New(t)
	sys := newFakeSystem()
	sys.initial[sigINT] = HandlingIgnore
	s := NewSet(sys)
	cond := SignalCondition(sigINT)

	err := s.SetAction(cond, Action{Kind: ActionCommand, CommandText: "echo hi"}, ast.Location{}, true)
	c.Assert(err, qt.IsNil)
	c.Assert(sys.disposition[sigINT], qt.Equals, HandlingCatch)
}

func TestEnterSubshellResetsCommandTrapsToDefault(t *testing.T) {
	c := qt.New(t)
	sys := newFakeSystem()
	s := NewSet(sys)
	cond := SignalCondition(sigINT)
	err := s.SetAction(cond, Action{Kind: ActionCommand, CommandText: "echo hi"}, ast.Location{}, false)
	c.Assert(err, qt.IsNil)

	err = s.EnterSubshell()
	c.Assert(err, qt.IsNil)

	st := s.State(cond)
	c.Assert(st.Current.Kind, qt.Equals, InitiallyDefaulted)
	c.Assert(st.Parent, qt.Not(qt.IsNil))
	c.Assert(st.Parent.State.Action.CommandText, qt.Equals, "echo hi")
	c.Assert(sys.disposition[sigINT], qt.Equals, HandlingDefault)
}

func TestEnterSubshellPreservesIgnore(t *testing.T) {
	c := qt.New(t)
	sys := newFakeSystem()
	s := NewSet(sys)
	cond := SignalCondition(sigINT)
	err := s.SetAction(cond, Action{Kind: ActionIgnore}, ast.Location{}, false)
	c.Assert(err, qt.IsNil)

	err = s.EnterSubshell()
	c.Assert(err, qt.IsNil)

	st := s.State(cond)
	c.Assert(st.Current.Kind, qt.Equals, UserSpecified)
	c.Assert(st.Current.State.Action.Kind, qt.Equals, ActionIgnore)
}

func TestCatchAndTakeCaughtSignal(t *testing.T) {
	c := qt.New(t)
	s := NewSet(newFakeSystem())
	cond := SignalCondition(sigINT)
	err := s.SetAction(cond, Action{Kind: ActionCommand, CommandText: "echo caught"}, ast.Location{}, false)
	c.Assert(err, qt.IsNil)

	// Catching a signal that has no trap installed is a no-op (unknown condition).
	s.CatchSignal(Signal(99))
	_, _, ok := s.TakeCaughtSignal()
	c.Assert(ok, qt.IsFalse)

	s.CatchSignal(sigINT)
	gotCond, state, ok := s.TakeCaughtSignal()
	c.Assert(ok, qt.IsTrue)
	c.Assert(gotCond, qt.Equals, cond)
	c.Assert(state.Action.CommandText, qt.Equals, "echo caught")

	// Pending is now cleared; a second Take call finds nothing.
	_, _, ok = s.TakeCaughtSignal()
	c.Assert(ok, qt.IsFalse)
}

func TestEnableAndDisableSigchldHandler(t *testing.T) {
	c := qt.New(t)
	sys := newFakeSystem()
	s := NewSet(sys)

	err := s.EnableSigchldHandler()
	c.Assert(err, qt.IsNil)
	c.Assert(sys.disposition[sigchldSignal], qt.Equals, HandlingCatch)

	err = s.DisableInternalHandlers()
	c.Assert(err, qt.IsNil)
	c.Assert(sys.disposition[sigchldSignal], qt.Equals, HandlingDefault)
}

func TestExitConditionHasNoOSDisposition(t *testing.T) {
	c := qt.New(t)
	sys := newFakeSystem()
	s := NewSet(sys)
	err := s.SetAction(ExitCondition(), Action{Kind: ActionCommand, CommandText: "echo bye"}, ast.Location{}, false)
	c.Assert(err, qt.IsNil)
	c.Assert(sys.disposition, qt.HasLen, 0)
}
