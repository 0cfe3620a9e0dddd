// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package ast

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestCodePositionAcrossLines(t *testing.T) {
	c := qt.New(t)
	code := NewCode("echo a\necho b\n", 1, Source{})
	c.Assert(code.Position(0), qt.Equals, Position{Line: 1, Column: 1})
	c.Assert(code.Position(7), qt.Equals, Position{Line: 2, Column: 1})
	c.Assert(code.Position(12), qt.Equals, Position{Line: 2, Column: 6})
}

func TestCodePositionHonorsStartLine(t *testing.T) {
	c := qt.New(t)
	code := NewCode("a\nb\n", 10, Source{})
	c.Assert(code.Position(2), qt.Equals, Position{Line: 11, Column: 1})
}

func TestNewLocationSpansCode(t *testing.T) {
	c := qt.New(t)
	code := NewCode("echo hi", 1, Source{})
	loc := code.NewLocation(0, 4)
	c.Assert(loc.Code, qt.Equals, code)
	c.Assert(loc.Start, qt.Equals, 0)
	c.Assert(loc.End, qt.Equals, 4)
}

func literalWord(s string) *Word {
	return &Word{Units: []WordUnit{&Unquoted{Value: &Literal{Value: s}}}}
}

func TestWordIsLiteralForPlainText(t *testing.T) {
	c := qt.New(t)
	w := literalWord("foo")
	c.Assert(w.IsLiteral(), qt.IsTrue)
	s, ok := ToStringIfLiteral(w)
	c.Assert(ok, qt.IsTrue)
	c.Assert(s, qt.Equals, "foo")
}

func TestWordIsNotLiteralWhenQuoted(t *testing.T) {
	c := qt.New(t)
	w := &Word{Units: []WordUnit{&SingleQuoted{Value: "foo"}}}
	c.Assert(w.IsLiteral(), qt.IsFalse)
	_, ok := ToStringIfLiteral(w)
	c.Assert(ok, qt.IsFalse)
}

func TestWordIsNotLiteralWithParamExpansion(t *testing.T) {
	c := qt.New(t)
	w := &Word{Units: []WordUnit{&Unquoted{Value: &RawParam{Name: "x"}}}}
	c.Assert(w.IsLiteral(), qt.IsFalse)
}

func TestTextIsLiteral(t *testing.T) {
	c := qt.New(t)
	txt := Text{&Literal{Value: "a"}, &Literal{Value: "b"}}
	c.Assert(txt.IsLiteral(), qt.IsTrue)

	txt = append(txt, &Backslashed{Value: 'c'})
	c.Assert(txt.IsLiteral(), qt.IsFalse)
}
