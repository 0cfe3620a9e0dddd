// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package parser

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/mvdan-style/posh/ast"
)

func parse(t *testing.T, src string) *ast.List {
	t.Helper()
	list, err := Parse(ast.NewCode(src, 1, ast.Source{}))
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return list
}

func TestParseSimpleCommand(t *testing.T) {
	c := qt.New(t)
	list := parse(t, "echo foo bar")
	c.Assert(list.Items, qt.HasLen, 1)
	sc, ok := list.Items[0].AndOrList.First.Commands[0].(*ast.SimpleCommand)
	c.Assert(ok, qt.IsTrue)
	c.Assert(sc.Words, qt.HasLen, 3)
}

func TestParsePipeline(t *testing.T) {
	c := qt.New(t)
	list := parse(t, "echo foo | grep bar | wc -l")
	c.Assert(list.Items[0].AndOrList.First.Commands, qt.HasLen, 3)
}

func TestParseAndOrList(t *testing.T) {
	c := qt.New(t)
	list := parse(t, "true && echo yes || echo no")
	aol := list.Items[0].AndOrList
	c.Assert(aol.Rest, qt.HasLen, 2)
	c.Assert(aol.Rest[0].Op, qt.Equals, ast.AndThen)
	c.Assert(aol.Rest[1].Op, qt.Equals, ast.OrElse)
}

func TestParseIfClause(t *testing.T) {
	c := qt.New(t)
	list := parse(t, "if true; then echo yes; else echo no; fi")
	fc, ok := list.Items[0].AndOrList.First.Commands[0].(*ast.FullCompoundCommand)
	c.Assert(ok, qt.IsTrue)
	_, ok = fc.Body.(*ast.IfClause)
	c.Assert(ok, qt.IsTrue)
}

func TestParseForClause(t *testing.T) {
	c := qt.New(t)
	list := parse(t, "for x in a b c; do echo $x; done")
	fc, ok := list.Items[0].AndOrList.First.Commands[0].(*ast.FullCompoundCommand)
	c.Assert(ok, qt.IsTrue)
	fr, ok := fc.Body.(*ast.ForClause)
	c.Assert(ok, qt.IsTrue)
	c.Assert(fr.Name, qt.Equals, "x")
	c.Assert(fr.Words.Words, qt.HasLen, 3)
}

func TestParseFunctionDefinition(t *testing.T) {
	c := qt.New(t)
	list := parse(t, "greet() { echo hi; }")
	_, ok := list.Items[0].AndOrList.First.Commands[0].(*ast.FunctionDefinition)
	c.Assert(ok, qt.IsTrue)
}

func TestParseCaseClause(t *testing.T) {
	c := qt.New(t)
	list := parse(t, "case $x in a) echo a;; b|c) echo bc;; *) echo other;; esac")
	fc, ok := list.Items[0].AndOrList.First.Commands[0].(*ast.FullCompoundCommand)
	c.Assert(ok, qt.IsTrue)
	cc, ok := fc.Body.(*ast.CaseClause)
	c.Assert(ok, qt.IsTrue)
	c.Assert(cc.Arms, qt.HasLen, 3)
	c.Assert(cc.Arms[1].Patterns, qt.HasLen, 2)
}

func TestParseAssignmentBeforeCommand(t *testing.T) {
	c := qt.New(t)
	list := parse(t, "FOO=bar echo $FOO")
	sc, ok := list.Items[0].AndOrList.First.Commands[0].(*ast.SimpleCommand)
	c.Assert(ok, qt.IsTrue)
	c.Assert(sc.Assigns, qt.HasLen, 1)
	c.Assert(sc.Assigns[0].Name, qt.Equals, "FOO")
}

func TestParseRedirection(t *testing.T) {
	c := qt.New(t)
	list := parse(t, "echo hi > out.txt 2>&1")
	sc, ok := list.Items[0].AndOrList.First.Commands[0].(*ast.SimpleCommand)
	c.Assert(ok, qt.IsTrue)
	c.Assert(sc.Redirs, qt.HasLen, 2)
}

func TestParseAsyncItem(t *testing.T) {
	c := qt.New(t)
	list := parse(t, "sleep 1 &")
	c.Assert(list.Items[0].IsAsync, qt.IsTrue)
}

func TestParseErrorUnexpectedToken(t *testing.T) {
	c := qt.New(t)
	_, err := Parse(ast.NewCode("if true; then", 1, ast.Source{}))
	c.Assert(err, qt.Not(qt.IsNil))
	var perr *ParseError
	c.Assert(err, qt.ErrorAs, &perr)
}
