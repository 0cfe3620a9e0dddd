// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package interp

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/mvdan-style/posh/ast"
)

func runSrc(t *testing.T, src string) (stdout, stderr string, status int) {
	t.Helper()
	var out, errBuf bytes.Buffer
	e := New(StdIO(strings.NewReader(""), &out, &errBuf))
	code := ast.NewCode(src, 1, ast.Source{Kind: ast.SourceTopLevel})
	status = e.Run(code)
	return out.String(), errBuf.String(), status
}

func TestRunSimpleCommandEcho(t *testing.T) {
	c := qt.New(t)
	out, _, status := runSrc(t, "echo foo bar")
	c.Assert(status, qt.Equals, 0)
	c.Assert(out, qt.Equals, "foo bar\n")
}

func TestRunExitStatusOfLastCommand(t *testing.T) {
	c := qt.New(t)
	_, _, status := runSrc(t, "false")
	c.Assert(status, qt.Equals, 1)
}

func TestRunExitStatusVariable(t *testing.T) {
	c := qt.New(t)
	out, _, _ := runSrc(t, "false; echo $?")
	c.Assert(out, qt.Equals, "1\n")
}

func TestRunPipelineTakesLastStageStatus(t *testing.T) {
	c := qt.New(t)
	_, _, status := runSrc(t, "true | false")
	c.Assert(status, qt.Equals, 1)
}

func TestRunAndOrList(t *testing.T) {
	c := qt.New(t)
	out, _, status := runSrc(t, "true && echo yes || echo no")
	c.Assert(status, qt.Equals, 0)
	c.Assert(out, qt.Equals, "yes\n")
}

func TestRunAndOrListShortCircuitsOnFailure(t *testing.T) {
	c := qt.New(t)
	out, _, _ := runSrc(t, "false && echo yes || echo no")
	c.Assert(out, qt.Equals, "no\n")
}

func TestRunIfClause(t *testing.T) {
	c := qt.New(t)
	out, _, _ := runSrc(t, "if true; then echo yes; else echo no; fi")
	c.Assert(out, qt.Equals, "yes\n")
}

func TestRunIfClauseElse(t *testing.T) {
	c := qt.New(t)
	out, _, _ := runSrc(t, "if false; then echo yes; else echo no; fi")
	c.Assert(out, qt.Equals, "no\n")
}

func TestRunForClause(t *testing.T) {
	c := qt.New(t)
	out, _, _ := runSrc(t, "for x in a b c; do echo $x; done")
	c.Assert(out, qt.Equals, "a\nb\nc\n")
}

func TestRunForClauseWithContinueAndBreak(t *testing.T) {
	c := qt.New(t)
	out, _, _ := runSrc(t, "for i in 1 2 3 4; do if [ $i = 2 ]; then continue; fi; if [ $i = 4 ]; then break; fi; echo $i; done")
	c.Assert(out, qt.Equals, "1\n3\n")
}

func TestRunWhileClause(t *testing.T) {
	c := qt.New(t)
	out, _, _ := runSrc(t, "i=0; while [ $i != 3 ]; do echo $i; i=$((i+1)); done")
	c.Assert(out, qt.Equals, "0\n1\n2\n")
}

func TestRunCaseClause(t *testing.T) {
	c := qt.New(t)
	out, _, _ := runSrc(t, "x=b; case $x in a) echo A;; b|c) echo BC;; *) echo other;; esac")
	c.Assert(out, qt.Equals, "BC\n")
}

func TestRunCaseClauseDefaultArm(t *testing.T) {
	c := qt.New(t)
	out, _, _ := runSrc(t, "x=z; case $x in a) echo A;; *) echo other;; esac")
	c.Assert(out, qt.Equals, "other\n")
}

func TestRunFunctionDefinitionAndCall(t *testing.T) {
	c := qt.New(t)
	out, _, status := runSrc(t, "greet() { echo hi; }; greet")
	c.Assert(status, qt.Equals, 0)
	c.Assert(out, qt.Equals, "hi\n")
}

func TestRunFunctionReturnOverridesStatusOnly(t *testing.T) {
	c := qt.New(t)
	out, _, status := runSrc(t, "f() { return 3; echo unreached; }; f; echo after")
	c.Assert(out, qt.Equals, "after\n")
	c.Assert(status, qt.Equals, 0)
}

func TestRunSubshellExitDoesNotEscape(t *testing.T) {
	c := qt.New(t)
	out, _, status := runSrc(t, "(exit 3); echo after")
	c.Assert(out, qt.Equals, "after\n")
	c.Assert(status, qt.Equals, 0)
}

func TestRunSubshellOwnStatus(t *testing.T) {
	c := qt.New(t)
	_, _, status := runSrc(t, "(exit 3)")
	c.Assert(status, qt.Equals, 3)
}

func TestRunVariableAssignmentPersists(t *testing.T) {
	c := qt.New(t)
	out, _, _ := runSrc(t, "x=hello; echo $x")
	c.Assert(out, qt.Equals, "hello\n")
}

// TestRunPrefixAssignmentDoesNotAffectItsOwnWordExpansion checks that a
// prefix assignment on a simple command takes effect only for the command
// itself (and is gone afterwards): $x in the command's own word list is
// expanded against the pre-assignment value, since word expansion runs
// before the prefix assigns are applied.
func TestRunPrefixAssignmentDoesNotAffectItsOwnWordExpansion(t *testing.T) {
	c := qt.New(t)
	out, _, _ := runSrc(t, "x=outer; x=inner echo $x; echo $x")
	c.Assert(out, qt.Equals, "outer\nouter\n")
}

func TestRunRedirectionWritesFile(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	_, _, status := runSrc(t, "echo hi > "+path)
	c.Assert(status, qt.Equals, 0)
	content, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(string(content), qt.Equals, "hi\n")
}

func TestBuiltinTestUnary(t *testing.T) {
	c := qt.New(t)
	_, _, status := runSrc(t, "[ -n foo ]")
	c.Assert(status, qt.Equals, 0)
	_, _, status = runSrc(t, "[ -z foo ]")
	c.Assert(status, qt.Equals, 1)
}

func TestBuiltinTestBinary(t *testing.T) {
	c := qt.New(t)
	_, _, status := runSrc(t, "test 1 -lt 2")
	c.Assert(status, qt.Equals, 0)
	_, _, status = runSrc(t, "test foo = bar")
	c.Assert(status, qt.Equals, 1)
}

func TestBuiltinBracketRequiresClosingBracket(t *testing.T) {
	c := qt.New(t)
	_, _, status := runSrc(t, "[ -n foo")
	c.Assert(status, qt.Equals, 2)
}

func TestRunExitBuiltinStopsList(t *testing.T) {
	c := qt.New(t)
	out, _, status := runSrc(t, "echo a; exit 5; echo b")
	c.Assert(out, qt.Equals, "a\n")
	c.Assert(status, qt.Equals, 5)
}

func TestRunCdBuiltinChangesDir(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	var out bytes.Buffer
	e := New(StdIO(strings.NewReader(""), &out, &out), Dir("/"))
	code := ast.NewCode("cd "+dir+"; pwd", 1, ast.Source{Kind: ast.SourceTopLevel})
	status := e.Run(code)
	c.Assert(status, qt.Equals, 0)
	c.Assert(strings.TrimSuffix(out.String(), "\n"), qt.Equals, dir)
}
