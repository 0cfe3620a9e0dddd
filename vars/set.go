// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package vars

import (
	"sort"
	"strings"

	"github.com/mvdan-style/posh/ast"
)

// ContextType is Regular or Volatile (§3.7).
type ContextType int

const (
	Regular ContextType = iota
	Volatile
)

// Scope selects the target context of an Assign call (§4.3).
type Scope int

const (
	// Global assigns into the owning context of the topmost non-Volatile
	// binding for the name, or the base context if there is none.
	Global Scope = iota
	// Local assigns into the topmost Regular context.
	Local
	// VolatileScope assigns into the top context, which must be Volatile.
	VolatileScope
)

type binding struct {
	variable Variable
	ctxIndex int
}

type context struct {
	typ        ContextType
	positional Variable
}

// Set is a stack of Contexts (§3.7): the VariableSet. The stack is never
// empty; the bottom is always a Regular "base" context that cannot be
// popped.
type Set struct {
	contexts []*context
	bindings map[string][]binding
}

// NewSet builds a Set with just its base Regular context.
func NewSet() *Set {
	s := &Set{bindings: make(map[string][]binding)}
	s.contexts = []*context{{typ: Regular, positional: Variable{Value: Array(nil)}}}
	return s
}

// Get returns the top (highest context-index) binding for name, or !ok if
// there is none (§4.3 "get").
func (s *Set) Get(name string) (Variable, bool) {
	bs := s.bindings[name]
	if len(bs) == 0 {
		return Variable{}, false
	}
	return bs[len(bs)-1].variable, true
}

// ReadOnlyError reports an attempt to overwrite a read-only binding (§4.3,
// §7).
type ReadOnlyError struct {
	Name        string
	ReadOnlyLoc ast.Location
	NewValue    Variable
}

func (e *ReadOnlyError) Error() string {
	return "cannot assign to read-only variable " + e.Name
}

func (s *Set) readOnlyErr(name string, existing, newVar Variable) error {
	return &ReadOnlyError{Name: name, ReadOnlyLoc: *existing.ReadOnly, NewValue: newVar}
}

func (s *Set) topRegularIndex() int {
	for i := len(s.contexts) - 1; i >= 0; i-- {
		if s.contexts[i].typ == Regular {
			return i
		}
	}
	// The base context is always Regular and is never popped: unreachable.
	panic("vars: no Regular context on the stack")
}

// Assign implements §4.3 "assign": scope selects Global, Local or
// VolatileScope targeting, per §4.3's rules. It returns the previous
// binding (nil if there was none) or a *ReadOnlyError.
func (s *Set) Assign(scope Scope, name string, newVar Variable) (*Variable, error) {
	switch scope {
	case VolatileScope:
		top := len(s.contexts) - 1
		if s.contexts[top].typ != Volatile {
			panic("vars: VolatileScope assign requested without a Volatile top context")
		}
		if bs := s.bindings[name]; len(bs) > 0 {
			last := bs[len(bs)-1].variable
			if last.IsReadOnly() {
				return nil, s.readOnlyErr(name, last, newVar)
			}
		}
		return s.assignAt(name, newVar, top)
	case Local:
		return s.assignAt(name, newVar, s.topRegularIndex())
	case Global:
		target := 0
		if bs := s.bindings[name]; len(bs) > 0 {
			for i := len(bs) - 1; i >= 0; i-- {
				if s.contexts[bs[i].ctxIndex].typ != Volatile {
					target = bs[i].ctxIndex
					break
				}
			}
		}
		return s.assignAt(name, newVar, target)
	default:
		panic("vars: unknown scope")
	}
}

// assignAt performs the actual binding replacement at context index target,
// discarding any bindings above it (§4.3) and carrying export status
// forward from whatever it replaces (§4.3 "export inheritance").
func (s *Set) assignAt(name string, newVar Variable, target int) (*Variable, error) {
	bs := s.bindings[name]
	var previous *Variable
	kept := make([]binding, 0, len(bs)+1)
	for _, b := range bs {
		switch {
		case b.ctxIndex > target:
			// discarded: a Volatile binding stacked above the target
		case b.ctxIndex == target:
			pv := b.variable
			previous = &pv
		default:
			kept = append(kept, b)
		}
	}
	if previous != nil {
		if previous.IsReadOnly() {
			return nil, s.readOnlyErr(name, *previous, newVar)
		}
		if previous.IsExported {
			newVar.IsExported = true
		}
	}
	kept = append(kept, binding{variable: newVar, ctxIndex: target})
	s.bindings[name] = kept
	return previous, nil
}

// PositionalParams returns the positional-parameters Variable of the
// topmost Regular context (§4.3).
func (s *Set) PositionalParams() *Variable {
	return &s.contexts[s.topRegularIndex()].positional
}

// PositionalParamsMut is an alias of PositionalParams kept for symmetry
// with the spec's naming; both return the same mutable pointer.
func (s *Set) PositionalParamsMut() *Variable {
	return s.PositionalParams()
}

// EnvCStrings materializes the environment for a child-process exec (§4.3,
// §6.3): every exported top binding becomes "name=value" (scalars) or
// "name=v1:v2:..." (arrays); entries containing a NUL byte are dropped.
func (s *Set) EnvCStrings() []string {
	var out []string
	for name, bs := range s.bindings {
		if len(bs) == 0 {
			continue
		}
		top := bs[len(bs)-1].variable
		if !top.IsExported {
			continue
		}
		var valStr string
		switch v := top.Value.(type) {
		case Scalar:
			valStr = string(v)
		case Array:
			valStr = strings.Join(v, ":")
		}
		entry := name + "=" + valStr
		if strings.ContainsRune(entry, 0) {
			continue
		}
		out = append(out, entry)
	}
	sort.Strings(out)
	return out
}

// ContextGuard pops its Context when Pop is called; it is returned by
// PushContext so callers can defer the pop (§4.3 "Context lifecycle").
type ContextGuard struct {
	set    *Set
	depth  int
	popped bool
}

// PushContext pushes a new Context of the given type and returns a guard
// that pops it (§4.3).
func (s *Set) PushContext(typ ContextType) *ContextGuard {
	s.contexts = append(s.contexts, &context{typ: typ, positional: Variable{Value: Array(nil)}})
	return &ContextGuard{set: s, depth: len(s.contexts) - 1}
}

// Pop removes every binding whose owning context index is >= the popped
// depth, then pops the Context itself. Popping the base context, or
// popping contexts out of order, is a programming error and panics (§4.3,
// §7); popping the same guard a second time does nothing.
func (g *ContextGuard) Pop() {
	if g.popped {
		return
	}
	g.popped = true
	s := g.set
	if g.depth == 0 {
		panic("vars: cannot pop the base context")
	}
	if g.depth >= len(s.contexts) {
		panic("vars: context popped out of order")
	}
	s.contexts = s.contexts[:g.depth]
	for name, bs := range s.bindings {
		cut := len(bs)
		for i, b := range bs {
			if b.ctxIndex >= g.depth {
				cut = i
				break
			}
		}
		if cut == len(bs) {
			continue
		}
		if cut == 0 {
			delete(s.bindings, name)
		} else {
			s.bindings[name] = bs[:cut]
		}
	}
}
