// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package trap

import (
	"fmt"

	"github.com/mvdan-style/posh/ast"
)

// System is the OS-facing collaborator a Set drives to keep the invariant
// of §4.4. It is deliberately tiny so the state machine itself has no
// platform dependency; trap/system_unix.go supplies the default
// implementation, grounded on the teacher's interp/handler_unix.go split of
// unix-only signal code behind a build tag.
type System interface {
	// SetDisposition installs handling for sig and returns the disposition
	// that was in effect immediately beforehand.
	SetDisposition(sig Signal, handling Handling) (Handling, error)
	// Probe reports the disposition currently installed for sig, without
	// changing it. Used once per condition to detect a signal that was
	// already Ignore-disposed when the shell started (§4.4 step 1).
	Probe(sig Signal) (Handling, error)
}

// SigKillStopError is returned by SetAction for SIGKILL/SIGSTOP, which no
// process may alter the disposition of (§4.4 step 1, §7).
type SigKillStopError struct{ Signal Signal }

func (e *SigKillStopError) Error() string {
	return fmt.Sprintf("cannot set a trap for signal %d (SIGKILL/SIGSTOP)", e.Signal)
}

// InitiallyIgnoredError is returned by SetAction when the signal was
// already Ignore-disposed at shell startup and override_ignore was not
// requested (§4.4 step 1, §7).
type InitiallyIgnoredError struct{ Condition Condition }

func (e *InitiallyIgnoredError) Error() string {
	return fmt.Sprintf("%s was ignored on shell startup and cannot be trapped here", e.Condition)
}

// SystemError wraps a failure from the System collaborator.
type SystemError struct{ Err error }

func (e *SystemError) Error() string { return "trap: system error: " + e.Err.Error() }
func (e *SystemError) Unwrap() error { return e.Err }

// Set is the TrapSet of §3.8/§4.4: per-Condition GrandState plus the System
// collaborator kept in sync with the OS disposition invariant.
type Set struct {
	system System
	states map[Condition]*GrandState
}

// NewSet builds an empty Set bound to system.
func NewSet(system System) *Set {
	return &Set{system: system, states: make(map[Condition]*GrandState)}
}

func (s *Set) state(c Condition) *GrandState {
	g, ok := s.states[c]
	if !ok {
		g = newGrandState()
		s.states[c] = g
	}
	return g
}

// State returns the current GrandState for c (read-only use; callers must
// not mutate the returned value directly).
func (s *Set) State(c Condition) GrandState {
	return *s.state(c)
}

// sync reconciles the OS disposition for c with the invariant of §4.4,
// after a transition has updated g's logical fields.
func (s *Set) sync(c Condition, g *GrandState) error {
	if c.IsExit {
		return nil // Exit has no OS-level action.
	}
	if _, err := s.system.SetDisposition(c.Signal, g.effectiveHandling()); err != nil {
		return &SystemError{Err: err}
	}
	return nil
}

// SetAction implements §4.4 operation 1.
func (s *Set) SetAction(c Condition, action Action, origin ast.Location, overrideIgnore bool) error {
	if !c.IsExit && (c.Signal == killSignal || c.Signal == stopSignal) {
		return &SigKillStopError{Signal: c.Signal}
	}
	for _, g := range s.states {
		g.Parent = nil
	}
	g := s.state(c)

	if !c.IsExit && g.Current.Kind == InitiallyDefaulted && !g.wasProbed && !overrideIgnore {
		g.wasProbed = true
		prev, err := s.system.Probe(c.Signal)
		if err != nil {
			return &SystemError{Err: err}
		}
		if prev == HandlingIgnore {
			g.Current = ignoredSetting()
			return &InitiallyIgnoredError{Condition: c}
		}
	}

	newState := TrapState{Action: action, InstallLoc: origin}
	newSetting := Setting{Kind: UserSpecified, State: newState}

	if g.InternalHandlerEnabled {
		// Only the logical Setting changes; the OS disposition continues
		// to reflect what the internal handler needs.
		g.Current = newSetting
		return nil
	}
	if err := s.sync(c, &GrandState{Current: newSetting, InternalHandlerEnabled: false}); err != nil {
		return err
	}
	g.Current = newSetting
	return nil
}

// EnterSubshell implements §4.4 operation 2: called once at the start of
// executing a subshell.
func (s *Set) EnterSubshell() error {
	for c, g := range s.states {
		g.Parent = nil
		if g.Current.Kind == UserSpecified && g.Current.State.Action.Kind == ActionCommand {
			old := g.Current
			g.Parent = &old
			g.Current = defaultedSetting()
			if !g.InternalHandlerEnabled {
				if err := s.sync(c, g); err != nil {
					return err
				}
			}
		}
		// Ignore actions are preserved, per POSIX.
	}
	return nil
}

// CatchSignal implements §4.4 operation 3: called on actual OS delivery.
func (s *Set) CatchSignal(sig Signal) {
	c := SignalCondition(sig)
	g, ok := s.states[c]
	if !ok {
		return
	}
	if g.Current.Kind == UserSpecified {
		g.Current.State.Pending = true
	}
}

// TakeCaughtSignal implements §4.4 operation 4: finds any one
// UserSpecified+pending state, clears its pending flag, and returns it.
// Order between multiple pending signals is unspecified, but repeated
// calls eventually drain all of them (map iteration order in Go already
// varies call to call, which is sufficient fairness for this contract).
func (s *Set) TakeCaughtSignal() (Condition, TrapState, bool) {
	for c, g := range s.states {
		if g.Current.Kind == UserSpecified && g.Current.State.Pending {
			g.Current.State.Pending = false
			return c, g.Current.State, true
		}
	}
	return Condition{}, TrapState{}, false
}

// EnableSigchldHandler implements §4.4 operation 5 (install).
func (s *Set) EnableSigchldHandler() error {
	c := SignalCondition(sigchldSignal)
	g := s.state(c)
	if g.InternalHandlerEnabled {
		return nil
	}
	g.InternalHandlerEnabled = true
	return s.sync(c, g)
}

// DisableInternalHandlers implements §4.4 operation 5 (uninstall) for every
// condition with an enabled internal handler, restoring the OS disposition
// to whatever the user's current Setting requires.
func (s *Set) DisableInternalHandlers() error {
	for c, g := range s.states {
		if !g.InternalHandlerEnabled {
			continue
		}
		g.InternalHandlerEnabled = false
		if err := s.sync(c, g); err != nil {
			return err
		}
	}
	return nil
}
