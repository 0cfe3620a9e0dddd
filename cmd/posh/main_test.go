// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/mvdan-style/posh/interp"
)

func TestRunExecutesScriptFromReader(t *testing.T) {
	c := qt.New(t)
	var out bytes.Buffer
	e := interp.New(interp.StdIO(strings.NewReader(""), &out, &out))
	status := run(e, strings.NewReader("echo hi\n"), "")
	c.Assert(status, qt.Equals, 0)
	c.Assert(out.String(), qt.Equals, "hi\n")
}

func TestRunPathExecutesFile(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "script.sh")
	c.Assert(os.WriteFile(path, []byte("echo from file\n"), 0o644), qt.IsNil)

	var out bytes.Buffer
	e := interp.New(interp.StdIO(strings.NewReader(""), &out, &out))
	status := runPath(e, path)
	c.Assert(status, qt.Equals, 0)
	c.Assert(out.String(), qt.Equals, "from file\n")
}

func TestRunPathMissingFile(t *testing.T) {
	c := qt.New(t)
	var out bytes.Buffer
	e := interp.New(interp.StdIO(strings.NewReader(""), &out, &out))
	status := runPath(e, filepath.Join(t.TempDir(), "nope.sh"))
	c.Assert(status, qt.Equals, 1)
}

func TestRunInteractiveExecutesEachCompleteLine(t *testing.T) {
	c := qt.New(t)
	var out bytes.Buffer
	e := interp.New(interp.StdIO(strings.NewReader(""), &out, &out))
	status := runInteractive(e, strings.NewReader("echo one\necho two\n"), &out)
	c.Assert(status, qt.Equals, 0)
	c.Assert(out.String(), qt.Contains, "one\n")
	c.Assert(out.String(), qt.Contains, "two\n")
}

func TestRunInteractivePromptsOnUnclosedConstruct(t *testing.T) {
	c := qt.New(t)
	var out bytes.Buffer
	e := interp.New(interp.StdIO(strings.NewReader(""), &out, &out))
	status := runInteractive(e, strings.NewReader("if true; then\necho yes\nfi\n"), &out)
	c.Assert(status, qt.Equals, 0)
	c.Assert(out.String(), qt.Contains, "yes\n")
	c.Assert(out.String(), qt.Contains, "> ")
}
