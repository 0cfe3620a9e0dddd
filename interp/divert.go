// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package interp

// DivertKind is the reason execution is unwinding out of the tree
// walker (§4.5): every node's execute either falls through or yields one
// of these.
type DivertKind int

const (
	// DivertNone means "fall through"; Merge returns a Divert with this
	// Kind only when both of its inputs have it, and an execute step with
	// no pending signal work returns it as a sentinel "nothing happened"
	// value.
	DivertNone DivertKind = iota
	DivertContinue
	DivertBreak
	DivertReturn
	DivertInterrupt
	DivertExit
)

// severity orders Divert kinds from least to most disruptive, used by
// Merge to decide which of two concurrent diverts a caller observes
// (§4.5 "Command" rule: "the caller gets the more severe one").
var severity = map[DivertKind]int{
	DivertNone:      0,
	DivertContinue:  1,
	DivertBreak:     2,
	DivertReturn:    3,
	DivertInterrupt: 4,
	DivertExit:      5,
}

// Divert carries one non-local-exit signal through the executor: Break/
// Continue carry a loop-nesting count, Interrupt/Exit carry an optional
// exit status override.
type Divert struct {
	Kind   DivertKind
	N      int
	Status *int
}

func (d Divert) isSet() bool { return d.Kind != DivertNone }

// Merge returns whichever of a, b is more severe, per the Exit > Interrupt
// > Return > Break > Continue > fall-through ordering.
func Merge(a, b Divert) Divert {
	if severity[b.Kind] > severity[a.Kind] {
		return b
	}
	return a
}
