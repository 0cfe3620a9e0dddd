// Copyright (c) 2018, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/mvdan-style/posh/ast"
	"github.com/mvdan-style/posh/parser"
	"github.com/mvdan-style/posh/vars"
)

// stubRunner never actually runs anything; RunCaptured returns its fixed
// output, status and err, so tests of command substitution control the
// result directly.
type stubRunner struct {
	output []byte
	status int
	err    error
}

func (r stubRunner) RunCaptured(*ast.List) ([]byte, int, error) {
	return r.output, r.status, r.err
}

func firstWord(t *testing.T, src string) *ast.Word {
	t.Helper()
	code := ast.NewCode(src, 1, ast.Source{})
	list, err := parser.Parse(code)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	cmd, ok := list.Items[0].AndOrList.First.Commands[0].(*ast.SimpleCommand)
	if !ok || len(cmd.Words) == 0 {
		t.Fatalf("parse %q: no simple-command word", src)
	}
	return cmd.Words[0]
}

func newExpander(set *vars.Set) *Expander {
	if set == nil {
		set = vars.NewSet()
	}
	return New(set, stubRunner{}, Config{Arg0: "posh"})
}

func fieldStrings(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Value
	}
	return out
}

func TestExpandLiteral(t *testing.T) {
	c := qt.New(t)
	e := newExpander(nil)
	fields, err := e.ExpandWordToFields(firstWord(t, "foobar"))
	c.Assert(err, qt.IsNil)
	c.Assert(fieldStrings(fields), qt.DeepEquals, []string{"foobar"})
}

func TestExpandParameterDefaultUnset(t *testing.T) {
	c := qt.New(t)
	e := newExpander(nil)
	fields, err := e.ExpandWordToFields(firstWord(t, `${missing:-fallback}`))
	c.Assert(err, qt.IsNil)
	c.Assert(fieldStrings(fields), qt.DeepEquals, []string{"fallback"})
}

func TestExpandParameterAssignDefault(t *testing.T) {
	c := qt.New(t)
	set := vars.NewSet()
	e := newExpander(set)
	_, err := e.ExpandWordToFields(firstWord(t, `${missing:=fallback}`))
	c.Assert(err, qt.IsNil)
	v, ok := set.Get("missing")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v.Value.Strings(), qt.DeepEquals, []string{"fallback"})
}

func TestExpandParameterIndicateError(t *testing.T) {
	c := qt.New(t)
	e := newExpander(nil)
	_, err := e.ExpandWordToFields(firstWord(t, `${missing:?oops}`))
	c.Assert(err, qt.Not(qt.IsNil))
	var uerr *UnsetParameterError
	c.Assert(err, qt.ErrorAs, &uerr)
	c.Assert(uerr.Message, qt.Equals, "oops")
}

func TestExpandTrimPrefixSuffix(t *testing.T) {
	c := qt.New(t)
	set := vars.NewSet()
	set.Assign(vars.Global, "path", vars.Variable{Value: vars.Scalar("/usr/local/bin")})
	e := newExpander(set)

	fields, err := e.ExpandWordToFields(firstWord(t, `${path%/*}`))
	c.Assert(err, qt.IsNil)
	c.Assert(fieldStrings(fields), qt.DeepEquals, []string{"/usr/local"})

	fields, err = e.ExpandWordToFields(firstWord(t, `${path##*/}`))
	c.Assert(err, qt.IsNil)
	c.Assert(fieldStrings(fields), qt.DeepEquals, []string{"bin"})
}

func TestExpandFieldSplitting(t *testing.T) {
	c := qt.New(t)
	set := vars.NewSet()
	set.Assign(vars.Global, "words", vars.Variable{Value: vars.Scalar("one two  three")})
	e := newExpander(set)
	fields, err := e.ExpandWordToFields(firstWord(t, "$words"))
	c.Assert(err, qt.IsNil)
	c.Assert(fieldStrings(fields), qt.DeepEquals, []string{"one", "two", "three"})
}

func TestExpandQuotedNoSplitting(t *testing.T) {
	c := qt.New(t)
	set := vars.NewSet()
	set.Assign(vars.Global, "words", vars.Variable{Value: vars.Scalar("one two  three")})
	e := newExpander(set)
	fields, err := e.ExpandWordToFields(firstWord(t, `"$words"`))
	c.Assert(err, qt.IsNil)
	c.Assert(fieldStrings(fields), qt.DeepEquals, []string{"one two  three"})
}

func TestExpandAtVsStar(t *testing.T) {
	c := qt.New(t)
	set := vars.NewSet()
	set.PositionalParamsMut().Value = vars.Array{"one", "two three"}
	e := newExpander(set)

	atFields, err := e.ExpandWordToFields(firstWord(t, `"$@"`))
	c.Assert(err, qt.IsNil)
	c.Assert(fieldStrings(atFields), qt.DeepEquals, []string{"one", "two three"})

	starFields, err := e.ExpandWordToFields(firstWord(t, `"$*"`))
	c.Assert(err, qt.IsNil)
	c.Assert(fieldStrings(starFields), qt.DeepEquals, []string{"one two three"})
}

func TestExpandArithSimple(t *testing.T) {
	c := qt.New(t)
	e := newExpander(nil)
	fields, err := e.ExpandWordToFields(firstWord(t, "$((2 + 3 * 4))"))
	c.Assert(err, qt.IsNil)
	c.Assert(fieldStrings(fields), qt.DeepEquals, []string{"14"})
}

func TestExpandArithAssignment(t *testing.T) {
	c := qt.New(t)
	set := vars.NewSet()
	e := newExpander(set)
	fields, err := e.ExpandWordToFields(firstWord(t, "$((x = 7))"))
	c.Assert(err, qt.IsNil)
	c.Assert(fieldStrings(fields), qt.DeepEquals, []string{"7"})
	v, ok := set.Get("x")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v.Value.Strings(), qt.DeepEquals, []string{"7"})
}

func TestExpandArithDivisionByZero(t *testing.T) {
	c := qt.New(t)
	e := newExpander(nil)
	_, err := e.ExpandWordToFields(firstWord(t, "$((1 / 0))"))
	c.Assert(err, qt.Not(qt.IsNil))
	var aerr *ArithError
	c.Assert(err, qt.ErrorAs, &aerr)
	c.Assert(aerr.Kind, qt.Equals, DivisionByZero)
}

func TestExpandCommandSubst(t *testing.T) {
	c := qt.New(t)
	set := vars.NewSet()
	e := New(set, stubRunner{output: []byte("hello\n\n")}, Config{})
	fields, err := e.ExpandWordToFields(firstWord(t, "$(echo hello)"))
	c.Assert(err, qt.IsNil)
	c.Assert(fieldStrings(fields), qt.DeepEquals, []string{"hello"})
}
