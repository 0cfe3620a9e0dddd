// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// posh is a thin CLI front end over [interp]: it wires a line reader, the
// default built-in table and process host together, the way the teacher's
// gosh wires its own interp.Runner.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/spf13/pflag"

	"github.com/mvdan-style/posh/ast"
	"github.com/mvdan-style/posh/interp"
	"github.com/mvdan-style/posh/parser"
	"github.com/mvdan-style/posh/trap"
)

var command = pflag.StringP("command", "c", "", "command to be executed")

func main() {
	pflag.Parse()
	os.Exit(runAll())
}

func runAll() int {
	feed := make(chan trap.Signal, 16)
	notify := make(chan os.Signal, 16)
	signal.Notify(notify, os.Interrupt, syscall.SIGTERM, syscall.SIGCHLD)
	go func() {
		for sig := range notify {
			if s, ok := sig.(syscall.Signal); ok {
				feed <- trap.Signal(s)
			}
		}
	}()

	e := interp.New(interp.StdIO(os.Stdin, os.Stdout, os.Stderr), interp.SignalFeed(feed))

	if *command != "" {
		return run(e, strings.NewReader(*command), "-c")
	}
	if pflag.NArg() == 0 {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return runInteractive(e, os.Stdin, os.Stdout)
		}
		return run(e, os.Stdin, "")
	}
	status := 0
	for _, path := range pflag.Args() {
		status = runPath(e, path)
	}
	return status
}

func run(e *interp.Env, reader io.Reader, name string) int {
	src, err := io.ReadAll(reader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	code := ast.NewCode(string(src), 1, ast.Source{Kind: ast.SourceTopLevel})
	return e.Run(code)
}

func runPath(e *interp.Env, path string) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer f.Close()
	return run(e, f, path)
}

// runInteractive reads one line at a time, feeding each complete statement
// list to e.Run as soon as the parser accepts it. The grammar doesn't
// expose an explicit "needs more input" signal, so a parse error just
// means "keep reading" — another line is appended and the whole buffer is
// reparsed, which covers an unclosed quote or a dangling "then"/"do"
// spanning any number of lines. Only at end of input is a still-failing
// buffer reported as a genuine error.
func runInteractive(e *interp.Env, stdin io.Reader, stdout io.Writer) int {
	scanner := bufio.NewScanner(stdin)
	var buf strings.Builder
	status := 0
	fmt.Fprint(stdout, "$ ")
	for scanner.Scan() {
		buf.WriteString(scanner.Text())
		buf.WriteByte('\n')
		code := ast.NewCode(buf.String(), 1, ast.Source{Kind: ast.SourceTopLevel})
		if _, err := parser.Parse(code); err != nil {
			fmt.Fprint(stdout, "> ")
			continue
		}
		status = e.Run(code)
		buf.Reset()
		fmt.Fprint(stdout, "$ ")
	}
	if buf.Len() > 0 {
		code := ast.NewCode(buf.String(), 1, ast.Source{Kind: ast.SourceTopLevel})
		if _, err := parser.Parse(code); err != nil {
			fmt.Fprintln(os.Stderr, err)
		} else {
			status = e.Run(code)
		}
	}
	return status
}
