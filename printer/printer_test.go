// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package printer

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/mvdan-style/posh/ast"
	"github.com/mvdan-style/posh/parser"
)

func mustParse(t *testing.T, src string) *ast.List {
	t.Helper()
	list, err := parser.Parse(ast.NewCode(src, 1, ast.Source{}))
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return list
}

func TestFormatRoundTripsReparse(t *testing.T) {
	c := qt.New(t)
	srcs := []string{
		"echo foo bar",
		"echo foo | grep bar",
		"true && echo yes || echo no",
		"if true; then echo yes; else echo no; fi",
		"for x in a b c; do echo $x; done",
		"while true; do break; done",
		"case $x in a) echo a;; *) echo b;; esac",
		"FOO=bar echo $FOO",
		`echo "hello $name"`,
		"greet() { echo hi; }",
	}
	for _, src := range srcs {
		list := mustParse(t, src)
		out := String(list, Default)
		reparsed := mustParse(t, out)
		c.Assert(String(reparsed, Default), qt.Equals, out, qt.Commentf("round-trip of %q gave %q", src, out))
	}
}

func TestFormatAlternateModeTerminatesItems(t *testing.T) {
	c := qt.New(t)
	list := mustParse(t, "echo hi")
	out := String(list, Alternate)
	c.Assert(out, qt.Equals, "echo hi;")
}

func TestFormatAsyncItem(t *testing.T) {
	c := qt.New(t)
	list := mustParse(t, "sleep 1 &")
	out := String(list, Default)
	c.Assert(out, qt.Equals, "sleep 1 &")
}

func TestFormatSingleQuotedLiteral(t *testing.T) {
	c := qt.New(t)
	list := mustParse(t, `echo 'raw $text'`)
	out := String(list, Default)
	c.Assert(out, qt.Equals, `echo 'raw $text'`)
}
