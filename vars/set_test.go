// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package vars

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/mvdan-style/posh/ast"
)

func TestGlobalAssignAndGet(t *testing.T) {
	c := qt.New(t)
	s := NewSet()
	_, err := s.Assign(Global, "x", Variable{Value: Scalar("1")})
	c.Assert(err, qt.IsNil)
	v, ok := s.Get("x")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v.Value.Strings(), qt.DeepEquals, []string{"1"})
}

func TestGetMissing(t *testing.T) {
	c := qt.New(t)
	s := NewSet()
	_, ok := s.Get("nope")
	c.Assert(ok, qt.IsFalse)
}

func TestVolatileContextShadowsThenUnwinds(t *testing.T) {
	c := qt.New(t)
	s := NewSet()
	_, err := s.Assign(Global, "x", Variable{Value: Scalar("outer")})
	c.Assert(err, qt.IsNil)

	guard := s.PushContext(Volatile)
	_, err = s.Assign(VolatileScope, "x", Variable{Value: Scalar("inner")})
	c.Assert(err, qt.IsNil)

	v, _ := s.Get("x")
	c.Assert(v.Value.Strings(), qt.DeepEquals, []string{"inner"})

	guard.Pop()
	v, _ = s.Get("x")
	c.Assert(v.Value.Strings(), qt.DeepEquals, []string{"outer"})
}

func TestVolatileNewBindingDisappearsOnPop(t *testing.T) {
	c := qt.New(t)
	s := NewSet()
	guard := s.PushContext(Volatile)
	_, err := s.Assign(VolatileScope, "tmp", Variable{Value: Scalar("v")})
	c.Assert(err, qt.IsNil)
	guard.Pop()
	_, ok := s.Get("tmp")
	c.Assert(ok, qt.IsFalse)
}

func TestGlobalAssignReachesBelowVolatile(t *testing.T) {
	c := qt.New(t)
	s := NewSet()
	guard := s.PushContext(Volatile)
	_, err := s.Assign(Global, "x", Variable{Value: Scalar("1")})
	c.Assert(err, qt.IsNil)
	guard.Pop()
	v, ok := s.Get("x")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v.Value.Strings(), qt.DeepEquals, []string{"1"})
}

func TestLocalAssignsInTopRegularContext(t *testing.T) {
	c := qt.New(t)
	s := NewSet()
	regGuard := s.PushContext(Regular)
	volGuard := s.PushContext(Volatile)

	_, err := s.Assign(Local, "x", Variable{Value: Scalar("1")})
	c.Assert(err, qt.IsNil)

	volGuard.Pop()
	// Local assigned into the Regular context beneath the Volatile one,
	// so it survives popping the Volatile context.
	v, ok := s.Get("x")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v.Value.Strings(), qt.DeepEquals, []string{"1"})
	regGuard.Pop()
	_, ok = s.Get("x")
	c.Assert(ok, qt.IsFalse)
}

func TestReadOnlyRejectsReassign(t *testing.T) {
	c := qt.New(t)
	s := NewSet()
	_, err := s.Assign(Global, "x", Variable{Value: Scalar("1"), ReadOnly: &ast.Location{}})
	c.Assert(err, qt.IsNil)

	_, err = s.Assign(Global, "x", Variable{Value: Scalar("2")})
	c.Assert(err, qt.Not(qt.IsNil))
	var roErr *ReadOnlyError
	c.Assert(err, qt.ErrorAs, &roErr)
	c.Assert(roErr.Name, qt.Equals, "x")
}

func TestExportInheritedAcrossReassign(t *testing.T) {
	c := qt.New(t)
	s := NewSet()
	_, err := s.Assign(Global, "x", Variable{Value: Scalar("1"), IsExported: true})
	c.Assert(err, qt.IsNil)
	_, err = s.Assign(Global, "x", Variable{Value: Scalar("2")})
	c.Assert(err, qt.IsNil)
	v, _ := s.Get("x")
	c.Assert(v.IsExported, qt.IsTrue)
}

func TestEnvCStringsExportedOnly(t *testing.T) {
	c := qt.New(t)
	s := NewSet()
	_, err := s.Assign(Global, "A", Variable{Value: Scalar("1"), IsExported: true})
	c.Assert(err, qt.IsNil)
	_, err = s.Assign(Global, "B", Variable{Value: Scalar("2")})
	c.Assert(err, qt.IsNil)
	_, err = s.Assign(Global, "C", Variable{Value: Array{"x", "y"}, IsExported: true})
	c.Assert(err, qt.IsNil)

	out := s.EnvCStrings()
	c.Assert(out, qt.DeepEquals, []string{"A=1", "C=x:y"})
}

func TestPositionalParamsPerRegularContext(t *testing.T) {
	c := qt.New(t)
	s := NewSet()
	s.PositionalParamsMut().Value = Array{"a", "b"}
	c.Assert(s.PositionalParams().Value.Strings(), qt.DeepEquals, []string{"a", "b"})

	guard := s.PushContext(Regular)
	c.Assert(s.PositionalParams().Value.Strings(), qt.DeepEquals, []string(nil))
	s.PositionalParamsMut().Value = Array{"c"}
	c.Assert(s.PositionalParams().Value.Strings(), qt.DeepEquals, []string{"c"})
	guard.Pop()

	c.Assert(s.PositionalParams().Value.Strings(), qt.DeepEquals, []string{"a", "b"})
}

func TestPopBaseContextPanics(t *testing.T) {
	c := qt.New(t)
	s := NewSet()
	c.Assert(func() {
		(&ContextGuard{set: s, depth: 0}).Pop()
	}, qt.PanicMatches, "vars: cannot pop the base context")
}
