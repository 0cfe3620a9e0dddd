// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package trap implements the signal-trap state machine of §3.8 and §4.4:
// user traps merged with shell-internal handlers, per-subshell parent
// state, and reentrancy control.
package trap

import (
	"fmt"

	"github.com/mvdan-style/posh/ast"
)

// Signal is a small abstraction over the OS signal numbers the trap
// machine cares about, kept independent of syscall so this package stays
// portable; a concrete System implementation maps Signal to the platform's
// numbering (trap/system_unix.go is grounded on the teacher's
// interp/handler_unix.go split of unix-only code behind a build tag).
type Signal int

// Condition is either Exit or a Signal (§3.8).
type Condition struct {
	IsExit bool
	Signal Signal
}

func ExitCondition() Condition        { return Condition{IsExit: true} }
func SignalCondition(s Signal) Condition { return Condition{Signal: s} }

func (c Condition) String() string {
	if c.IsExit {
		return "EXIT"
	}
	return fmt.Sprintf("signal(%d)", c.Signal)
}

// Action is one of Default, Ignore or Command(text) (§3.8).
type ActionKind int

const (
	ActionDefault ActionKind = iota
	ActionIgnore
	ActionCommand
)

type Action struct {
	Kind        ActionKind
	CommandText string // valid iff Kind == ActionCommand
}

// Handling is the disposition an Action (or the internal handler) asks the
// OS to install.
type Handling int

const (
	HandlingDefault Handling = iota
	HandlingIgnore
	HandlingCatch
)

// Handling returns the OS-facing Handling that a as a bare, unmerged
// Action would request.
func (a Action) Handling() Handling {
	switch a.Kind {
	case ActionIgnore:
		return HandlingIgnore
	case ActionCommand:
		return HandlingCatch
	default:
		return HandlingDefault
	}
}

// TrapState bundles an Action with provenance and delivery bookkeeping
// (§3.8).
type TrapState struct {
	Action     Action
	InstallLoc ast.Location
	Pending    bool
}

// SettingKind distinguishes the three Setting variants of §3.8.
type SettingKind int

const (
	InitiallyDefaulted SettingKind = iota
	InitiallyIgnored
	UserSpecified
)

// Setting is either InitiallyDefaulted, InitiallyIgnored, or
// UserSpecified(TrapState) (§3.8).
type Setting struct {
	Kind  SettingKind
	State TrapState // valid iff Kind == UserSpecified
}

func defaultedSetting() Setting { return Setting{Kind: InitiallyDefaulted} }
func ignoredSetting() Setting   { return Setting{Kind: InitiallyIgnored} }

// handling returns the OS-facing Handling the Setting alone (ignoring any
// internal handler) requests.
func (s Setting) handling() Handling {
	switch s.Kind {
	case InitiallyIgnored:
		return HandlingIgnore
	case UserSpecified:
		return s.State.Action.Handling()
	default:
		return HandlingDefault
	}
}

// GrandState is the full per-condition bookkeeping of §3.8.
type GrandState struct {
	Current                Setting
	Parent                 *Setting
	InternalHandlerEnabled bool
	// wasProbed records that SetAction already performed its one-time
	// "was this ignored at shell startup" probe for this condition, so
	// later SetAction calls don't re-probe (§4.4 step 1).
	wasProbed bool
}

func newGrandState() *GrandState {
	return &GrandState{Current: defaultedSetting()}
}

// effectiveHandling is the invariant of §4.4: the OS disposition is always
// the max of (Current Setting's disposition, Catch if
// InternalHandlerEnabled), under the ordering Default < Ignore < Catch
// (which is exactly the Handling iota order).
func (g *GrandState) effectiveHandling() Handling {
	h := g.Current.handling()
	if g.InternalHandlerEnabled && h < HandlingCatch {
		h = HandlingCatch
	}
	return h
}
