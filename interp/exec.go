// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package interp

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/mvdan-style/posh/ast"
	"github.com/mvdan-style/posh/expand"
	"github.com/mvdan-style/posh/pattern"
	"github.com/mvdan-style/posh/vars"
)

// runList runs list to completion and returns the exit status a caller
// outside the executor should observe: the status of the last command
// run, or an Exit divert's overriding status.
func (e *Env) runList(list *ast.List) int {
	d := e.execList(list)
	if d.Kind == DivertExit && d.Status != nil {
		e.ExitStatus = *d.Status
	}
	return e.ExitStatus
}

// execList implements §4.5 "List": Items run in order, short-circuiting on
// the first Divert.
func (e *Env) execList(list *ast.List) Divert {
	for _, item := range list.Items {
		if d := e.execItem(item); d.isSet() {
			return d
		}
	}
	return Divert{}
}

var asyncCounter int64

// execItem implements §4.5 "Item": a backgrounded Item spawns an async
// subshell, reports exit status 0 to the caller, and records a synthetic
// pid as the "last async pid" (§9's resolved Open Question: there is no
// real fork here, so the pid is a monotonically increasing counter rather
// than an OS process id).
func (e *Env) execItem(item *ast.Item) Divert {
	if item.IsAsync {
		sub := e.subshell()
		pid := int(atomic.AddInt64(&asyncCounter, 1))
		e.LastAsyncPID = pid
		go func() { sub.execAndOrList(item.AndOrList) }()
		e.ExitStatus = 0
		return Divert{}
	}
	return e.execAndOrList(item.AndOrList)
}

// execAndOrList implements §4.5 "AndOrList": left-to-right evaluation,
// each pair gated on the accumulated exit status.
func (e *Env) execAndOrList(aol *ast.AndOrList) Divert {
	if d := e.execPipeline(aol.First); d.isSet() {
		return d
	}
	status := e.ExitStatus
	for _, pair := range aol.Rest {
		proceed := (pair.Op == ast.AndThen) == (status == 0)
		if !proceed {
			continue
		}
		if d := e.execPipeline(pair.Pipeline); d.isSet() {
			return d
		}
		status = e.ExitStatus
	}
	return Divert{}
}

// execPipeline implements §4.5 "Pipeline": a single command runs directly
// in the current Env; a multi-command pipeline forks one subshell per
// stage, wired together with pipes, grounded on the teacher's r.sub() plus
// io.Pipe approach to running pipeline stages concurrently (interp.go's
// stmts/pipeline handling) and its errgroup.Group use for joining
// concurrently-run shells (interp.go's bgShells).
func (e *Env) execPipeline(p *ast.Pipeline) Divert {
	var d Divert
	if len(p.Commands) == 1 {
		d = e.execCommand(p.Commands[0])
	} else {
		d = e.execPipelineStages(p.Commands)
	}
	if p.Negated {
		if e.ExitStatus == 0 {
			e.ExitStatus = 1
		} else {
			e.ExitStatus = 0
		}
	}
	return d
}

func (e *Env) execPipelineStages(cmds []ast.Command) Divert {
	n := len(cmds)
	stages := make([]*Env, n)
	for i := range stages {
		stages[i] = e.subshell()
	}
	var writers []*io.PipeWriter
	for i := 0; i < n-1; i++ {
		pr, pw := io.Pipe()
		stages[i].Stdout = pw
		stages[i+1].Stdin = pr
		writers = append(writers, pw)
	}

	var g errgroup.Group
	diverts := make([]Divert, n)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			diverts[i] = stages[i].execCommand(cmds[i])
			if i < n-1 {
				writers[i].Close()
			}
			return nil
		})
	}
	g.Wait()

	var merged Divert
	for _, d := range diverts {
		merged = Merge(merged, d)
	}
	e.ExitStatus = stages[n-1].ExitStatus
	return merged
}

// execCommand implements §4.5 "Command": after the body runs, pending
// signals are polled and any caught trap Commands dispatched, and the two
// Diverts merge by severity.
func (e *Env) execCommand(cmd ast.Command) Divert {
	var body Divert
	switch c := cmd.(type) {
	case *ast.SimpleCommand:
		body = e.execSimpleCommand(c)
	case *ast.FullCompoundCommand:
		body = e.execFullCompound(c)
	case *ast.FunctionDefinition:
		body = e.execFunctionDefinition(c)
	}
	trapDivert := e.runTrapsForCaughtSignals()
	return Merge(body, trapDivert)
}

func (e *Env) execFullCompound(fc *ast.FullCompoundCommand) Divert {
	restore, err := e.applyRedirs(fc.Redirs)
	if err != nil {
		fmt.Fprintln(e.Stderr, err)
		e.ExitStatus = 1
		return Divert{}
	}
	defer restore()
	return e.execCompoundBody(fc.Body)
}

func (e *Env) execCompoundBody(body ast.CompoundCommand) Divert {
	switch c := body.(type) {
	case *ast.BraceGroup:
		return e.execList(c.Body)
	case *ast.Subshell:
		return e.execSubshell(c)
	case *ast.ForClause:
		return e.execFor(c)
	case *ast.WhileClause:
		return e.execWhile(c)
	case *ast.IfClause:
		return e.execIf(c)
	case *ast.CaseClause:
		return e.execCase(c)
	}
	return Divert{}
}

// execSubshell runs s.Body in a subshell copy; an Exit divert only ends
// that subshell (its status becomes this command's exit status), since a
// subshell is a separate process that exiting cannot unwind past (§4.5
// EXPANSION note, §5 "Subshells").
func (e *Env) execSubshell(s *ast.Subshell) Divert {
	sub := e.subshell()
	d := sub.execList(s.Body)
	status := sub.ExitStatus
	if d.Kind == DivertExit && d.Status != nil {
		status = *d.Status
	}
	e.ExitStatus = status
	return Divert{}
}

func (e *Env) execFor(f *ast.ForClause) Divert {
	var words []string
	if f.Words == nil {
		words = e.Vars.PositionalParams().Value.Strings()
	} else {
		for _, w := range f.Words.Words {
			fs, err := e.Expand.ExpandWordToFields(w)
			if err != nil {
				fmt.Fprintln(e.Stderr, err)
				e.ExitStatus = 1
				return Divert{}
			}
			for _, fld := range fs {
				words = append(words, fld.Value)
			}
		}
	}
	for _, val := range words {
		if _, err := e.Vars.Assign(vars.Local, f.Name, vars.Variable{Value: vars.Scalar(val)}); err != nil {
			fmt.Fprintln(e.Stderr, err)
			e.ExitStatus = 1
			return Divert{}
		}
		d := e.execList(f.Body)
		switch d.Kind {
		case DivertBreak:
			if d.N > 1 {
				d.N--
				return d
			}
			return Divert{}
		case DivertContinue:
			if d.N > 1 {
				d.N--
				return d
			}
			continue
		default:
			if d.isSet() {
				return d
			}
		}
	}
	return Divert{}
}

func (e *Env) execWhile(w *ast.WhileClause) Divert {
	wantZero := w.Kind == ast.LoopWhile
	for {
		if d := e.execList(w.Cond); d.isSet() {
			return d
		}
		if (e.ExitStatus == 0) != wantZero {
			return Divert{}
		}
		d := e.execList(w.Body)
		switch d.Kind {
		case DivertBreak:
			if d.N > 1 {
				d.N--
				return d
			}
			return Divert{}
		case DivertContinue:
			if d.N > 1 {
				d.N--
				return d
			}
			continue
		default:
			if d.isSet() {
				return d
			}
		}
	}
}

func (e *Env) execIf(ic *ast.IfClause) Divert {
	if d := e.execList(ic.Cond); d.isSet() {
		return d
	}
	if e.ExitStatus == 0 {
		return e.execList(ic.Then)
	}
	for _, el := range ic.Elifs {
		if d := e.execList(el.Cond); d.isSet() {
			return d
		}
		if e.ExitStatus == 0 {
			return e.execList(el.Then)
		}
	}
	if ic.Else != nil {
		return e.execList(ic.Else)
	}
	e.ExitStatus = 0
	return Divert{}
}

func (e *Env) execCase(cc *ast.CaseClause) Divert {
	subject, err := e.Expand.ExpandWordNoSplit(cc.Subject)
	if err != nil {
		fmt.Fprintln(e.Stderr, err)
		e.ExitStatus = 1
		return Divert{}
	}
	for _, arm := range cc.Arms {
		for _, pat := range arm.Patterns {
			ph, err := e.Expand.ExpandWord(pat)
			if err != nil {
				continue
			}
			qb := expand.PhraseToQuotedBytes(ph)
			src, err := pattern.Compile(qb, pattern.EntireString)
			if err != nil {
				continue
			}
			re, err := regexp.Compile(src)
			if err != nil {
				continue
			}
			if re.MatchString(subject) {
				e.ExitStatus = 0
				return e.execList(arm.Body)
			}
		}
	}
	e.ExitStatus = 0
	return Divert{}
}

func (e *Env) execFunctionDefinition(fd *ast.FunctionDefinition) Divert {
	name, err := e.Expand.ExpandWordNoSplit(fd.Name)
	if err != nil {
		fmt.Fprintln(e.Stderr, err)
		e.ExitStatus = 1
		return Divert{}
	}
	e.Functions[name] = fd.Body
	e.ExitStatus = 0
	return Divert{}
}

// execSimpleCommand implements §4.5 "SimpleCommand" steps 1-5.
func (e *Env) execSimpleCommand(sc *ast.SimpleCommand) Divert {
	fields, err := e.expandWords(sc.Words)
	if err != nil {
		fmt.Fprintln(e.Stderr, err)
		e.ExitStatus = 1
		return Divert{}
	}

	if len(fields) == 0 {
		for _, a := range sc.Assigns {
			v, err := e.expandAssignVariable(a)
			if err != nil {
				fmt.Fprintln(e.Stderr, err)
				e.ExitStatus = 1
				return Divert{}
			}
			if _, err := e.Vars.Assign(vars.Global, a.Name, v); err != nil {
				fmt.Fprintln(e.Stderr, err)
				e.ExitStatus = 1
				return Divert{}
			}
		}
		e.ExitStatus = 0
		return Divert{}
	}

	// Classification order is Special built-in -> Regular built-in ->
	// Function -> External (§4.5 step 3): a built-in of either kind always
	// wins over a function of the same name, so a script can never shadow
	// "exit"/"return"/"break"/"export" (or any other built-in) by
	// defining a function with that name.
	name, args := fields[0], fields[1:]
	builtin, isBuiltin := e.Builtins.Lookup(name)
	fn, isFunc := e.Functions[name]
	persistent := (isBuiltin && builtin.Kind == Special) || (!isBuiltin && isFunc)

	if persistent {
		for _, a := range sc.Assigns {
			v, err := e.expandAssignVariable(a)
			if err != nil {
				fmt.Fprintln(e.Stderr, err)
				e.ExitStatus = 1
				return Divert{}
			}
			if _, err := e.Vars.Assign(vars.Global, a.Name, v); err != nil {
				fmt.Fprintln(e.Stderr, err)
				e.ExitStatus = 1
				return Divert{}
			}
		}
	} else {
		guard := e.Vars.PushContext(vars.Volatile)
		defer guard.Pop()
		for _, a := range sc.Assigns {
			v, err := e.expandAssignVariable(a)
			if err != nil {
				fmt.Fprintln(e.Stderr, err)
				e.ExitStatus = 1
				return Divert{}
			}
			if _, err := e.Vars.Assign(vars.VolatileScope, a.Name, v); err != nil {
				fmt.Fprintln(e.Stderr, err)
				e.ExitStatus = 1
				return Divert{}
			}
		}
	}

	restore, err := e.applyRedirs(sc.Redirs)
	if err != nil {
		fmt.Fprintln(e.Stderr, err)
		e.ExitStatus = 1
		return Divert{}
	}
	defer restore()

	switch {
	case isBuiltin:
		status, d := builtin.Func(e, args)
		e.ExitStatus = status
		return d
	case isFunc:
		return e.callFunction(fn, args)
	default:
		return e.execExternal(name, args)
	}
}

func (e *Env) callFunction(body *ast.FullCompoundCommand, args []string) Divert {
	guard := e.Vars.PushContext(vars.Regular)
	defer guard.Pop()
	e.Vars.PositionalParamsMut().Value = vars.Array(args)
	d := e.execFullCompound(body)
	if d.Kind == DivertReturn {
		if d.Status != nil {
			e.ExitStatus = *d.Status
		}
		return Divert{}
	}
	return d
}

// execExternal runs name as an external command, relaying any signal this
// Env catches while it has the foreground to its process group (so it
// reacts to, say, a caught SIGINT the way a POSIX shell's own foreground
// job would) while still registering the signal as caught on the TrapSet,
// so a trap for it still fires once the command returns.
func (e *Env) execExternal(name string, args []string) Divert {
	env := e.Vars.EnvCStrings()

	interrupt := make(chan struct{}, 1)
	done := make(chan struct{})
	if e.SignalFeed != nil {
		go func() {
			for {
				select {
				case sig, ok := <-e.SignalFeed:
					if !ok {
						return
					}
					e.Traps.CatchSignal(sig)
					select {
					case interrupt <- struct{}{}:
					default:
					}
				case <-done:
					return
				}
			}
		}()
	}

	status, err := e.Host.Run(e.Dir, env, name, args, e.Stdin, e.Stdout, e.Stderr, interrupt)
	close(done)
	if err != nil {
		fmt.Fprintln(e.Stderr, err)
		if status == 0 {
			status = 127
		}
	}
	e.ExitStatus = status
	return Divert{}
}

func (e *Env) expandWords(words []*ast.Word) ([]string, error) {
	e.Expand.Config.ExitStatus = e.ExitStatus
	var out []string
	for _, w := range words {
		fs, err := e.Expand.ExpandWordToFields(w)
		if err != nil {
			return nil, err
		}
		for _, f := range fs {
			out = append(out, f.Value)
		}
	}
	return out, nil
}

// expandAssignVariable expands an Assign's right-hand side: a Scalar gets
// no field splitting or pathname expansion (just quote removal), while an
// Array's elements are each expanded the way an ordinary word is (§3.3,
// §4.5 step 4).
func (e *Env) expandAssignVariable(a *ast.Assign) (vars.Variable, error) {
	loc := a.Loc
	switch v := a.Value.(type) {
	case *ast.Scalar:
		s, err := e.Expand.ExpandWordNoSplit(v.Value)
		if err != nil {
			return vars.Variable{}, err
		}
		return vars.Variable{Value: vars.Scalar(s), LastAssigned: &loc}, nil
	case *ast.Array:
		var all []string
		for _, w := range v.Values {
			fs, err := e.Expand.ExpandWordToFields(w)
			if err != nil {
				return vars.Variable{}, err
			}
			for _, f := range fs {
				all = append(all, f.Value)
			}
		}
		return vars.Variable{Value: vars.Array(all), LastAssigned: &loc}, nil
	default:
		return vars.Variable{}, fmt.Errorf("interp: unknown assignment value type %T", v)
	}
}

// applyRedirs opens and wires every Redir in order, returning a function
// that restores the previous streams (closing whatever it opened) in
// reverse order. Only fds 0, 1 and 2 are addressable, since Env keeps its
// standard streams directly rather than a general fd table (§6.3's
// "current working directory and standard streams" scope).
func (e *Env) applyRedirs(redirs []*ast.Redir) (func(), error) {
	var restores []func()
	restoreAll := func() {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
	}
	for _, r := range redirs {
		fd := r.FDOrDefault()
		switch body := r.Body.(type) {
		case *ast.NormalRedir:
			operand, err := e.Expand.ExpandWordNoSplit(body.Operand)
			if err != nil {
				restoreAll()
				return nil, err
			}
			restore, err := e.applyNormalRedir(fd, body.Op, operand)
			if err != nil {
				restoreAll()
				return nil, err
			}
			restores = append(restores, restore)
		case *ast.HereDocRedir:
			content, err := e.Expand.ExpandWordNoSplit(body.Content)
			if err != nil {
				restoreAll()
				return nil, err
			}
			restores = append(restores, e.redirectFD(fd, strings.NewReader(content)))
		}
	}
	return restoreAll, nil
}

func (e *Env) applyNormalRedir(fd int, op ast.RedirOp, operand string) (func(), error) {
	switch op {
	case ast.RedirLess:
		f, err := os.Open(operand)
		if err != nil {
			return nil, err
		}
		return e.redirectFDClosing(fd, f), nil
	case ast.RedirGreater, ast.RedirClobber:
		f, err := os.OpenFile(operand, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, err
		}
		return e.redirectFDClosing(fd, f), nil
	case ast.RedirDGreater, ast.RedirAppendClobber:
		f, err := os.OpenFile(operand, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		return e.redirectFDClosing(fd, f), nil
	case ast.RedirLessGreater:
		f, err := os.OpenFile(operand, os.O_RDWR|os.O_CREATE, 0o644)
		if err != nil {
			return nil, err
		}
		return e.redirectFDClosing(fd, f), nil
	case ast.RedirHereString:
		return e.redirectFD(fd, strings.NewReader(operand+"\n")), nil
	case ast.RedirLessAnd, ast.RedirGreaterAnd:
		return e.applyDup(fd, operand)
	default:
		return func() {}, nil
	}
}

func (e *Env) applyDup(fd int, operand string) (func(), error) {
	if operand == "-" {
		if fd == 0 {
			return e.redirectFD(fd, strings.NewReader("")), nil
		}
		return e.redirectFD(fd, io.Discard), nil
	}
	var src int
	if _, err := fmt.Sscanf(operand, "%d", &src); err != nil {
		return nil, fmt.Errorf("interp: invalid fd-duplication operand %q", operand)
	}
	switch src {
	case 0:
		return e.redirectFD(fd, e.Stdin), nil
	case 1:
		return e.redirectFD(fd, e.Stdout), nil
	case 2:
		return e.redirectFD(fd, e.Stderr), nil
	default:
		return nil, fmt.Errorf("interp: fd %d is not addressable", src)
	}
}

// redirectFD points fd at rw (a Reader for 0, a Writer for 1/2), returning
// a closure that restores the previous stream.
func (e *Env) redirectFD(fd int, rw any) func() {
	switch fd {
	case 0:
		old := e.Stdin
		if r, ok := rw.(io.Reader); ok {
			e.Stdin = r
		}
		return func() { e.Stdin = old }
	case 1:
		old := e.Stdout
		if w, ok := rw.(io.Writer); ok {
			e.Stdout = w
		}
		return func() { e.Stdout = old }
	case 2:
		old := e.Stderr
		if w, ok := rw.(io.Writer); ok {
			e.Stderr = w
		}
		return func() { e.Stderr = old }
	default:
		return func() {}
	}
}

// redirectFDClosing is redirectFD for a freshly opened *os.File, which must
// be closed (not just unreferenced) on restore.
func (e *Env) redirectFDClosing(fd int, f *os.File) func() {
	restore := e.redirectFD(fd, f)
	return func() {
		restore()
		f.Close()
	}
}
