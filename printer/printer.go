// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package printer formats an ast.List back to shell source text, grounded
// on the teacher's syntax.Printer (a single-pass writer reused across
// calls via sync.Pool to keep allocation-heavy printing fast under
// shfmt-style batch use).
package printer

import (
	"bytes"
	"io"
	"sync"

	"github.com/mvdan-style/posh/ast"
	"github.com/mvdan-style/posh/token"
)

// Mode selects between the default and alternate forms of §6.1: the
// alternate form terminates every Item with `;` or `&`, the default form
// omits the final `;`.
type Mode int

const (
	Default Mode = iota
	Alternate
)

var printerPool = sync.Pool{New: func() any { return new(printer) }}

type printer struct {
	bytes.Buffer
	mode Mode
}

// Format writes list to w in the given Mode (§6.1 "format(list)").
func Format(w io.Writer, list *ast.List, mode Mode) error {
	pr := printerPool.Get().(*printer)
	pr.Reset()
	pr.mode = mode
	pr.list(list)
	_, err := w.Write(pr.Bytes())
	printerPool.Put(pr)
	return err
}

// String is a convenience wrapper around Format for tests and tools.
func String(list *ast.List, mode Mode) string {
	var buf bytes.Buffer
	_ = Format(&buf, list, mode)
	return buf.String()
}

func (p *printer) list(l *ast.List) {
	for i, item := range l.Items {
		if i > 0 {
			p.WriteByte(' ')
		}
		p.item(item, i == len(l.Items)-1)
	}
}

func (p *printer) item(it *ast.Item, last bool) {
	p.andOrList(it.AndOrList)
	switch {
	case it.IsAsync:
		p.WriteString(" &")
	case !last:
		p.WriteByte(';')
	case p.mode == Alternate:
		p.WriteByte(';')
	}
}

func (p *printer) andOrList(aol *ast.AndOrList) {
	p.pipeline(aol.First)
	for _, pair := range aol.Rest {
		p.WriteByte(' ')
		p.WriteString(pair.Op.String())
		p.WriteByte(' ')
		p.pipeline(pair.Pipeline)
	}
}

func (p *printer) pipeline(pl *ast.Pipeline) {
	if pl.Negated {
		p.WriteString("! ")
	}
	for i, cmd := range pl.Commands {
		if i > 0 {
			p.WriteString(" | ")
		}
		p.command(cmd)
	}
}

func (p *printer) command(cmd ast.Command) {
	switch c := cmd.(type) {
	case *ast.SimpleCommand:
		p.simpleCommand(c)
	case *ast.FullCompoundCommand:
		p.fullCompound(c)
	case *ast.FunctionDefinition:
		p.functionDefinition(c)
	}
}

func (p *printer) simpleCommand(c *ast.SimpleCommand) {
	first := true
	sep := func() {
		if !first {
			p.WriteByte(' ')
		}
		first = false
	}
	for _, a := range c.Assigns {
		sep()
		p.assign(a)
	}
	for _, w := range c.Words {
		sep()
		p.word(w)
	}
	for _, r := range c.Redirs {
		sep()
		p.redir(r)
	}
}

func (p *printer) assign(a *ast.Assign) {
	p.WriteString(a.Name)
	p.WriteByte('=')
	switch v := a.Value.(type) {
	case *ast.Scalar:
		if v.Value != nil {
			p.word(v.Value)
		}
	case *ast.Array:
		p.WriteByte('(')
		for i, w := range v.Values {
			if i > 0 {
				p.WriteByte(' ')
			}
			p.word(w)
		}
		p.WriteByte(')')
	}
}

func (p *printer) redir(r *ast.Redir) {
	if r.FD != nil {
		p.WriteString(itoa(*r.FD))
	}
	switch b := r.Body.(type) {
	case *ast.NormalRedir:
		p.WriteString(b.Op.String())
		p.WriteByte(' ')
		p.word(b.Operand)
	case *ast.HereDocRedir:
		if b.RemoveTabs {
			p.WriteString(token.DHEREDOC.String())
		} else {
			p.WriteString(token.SHL.String())
		}
		// §6.1: disambiguate `<<- -` from `<<-` when the delimiter's
		// first unit is an unquoted literal '-' (scenario 2 in §8.2).
		if startsWithDash(b.Delimiter) {
			p.WriteByte(' ')
		}
		p.word(b.Delimiter)
	}
}

func startsWithDash(w *ast.Word) bool {
	if len(w.Units) == 0 {
		return false
	}
	uq, ok := w.Units[0].(*ast.Unquoted)
	if !ok {
		return false
	}
	lit, ok := uq.Value.(*ast.Literal)
	if !ok || lit.Value == "" {
		return false
	}
	return lit.Value[0] == '-'
}

func (p *printer) fullCompound(c *ast.FullCompoundCommand) {
	switch b := c.Body.(type) {
	case *ast.BraceGroup:
		p.WriteString("{ ")
		p.list(b.Body)
		p.WriteString("; }")
	case *ast.Subshell:
		p.WriteByte('(')
		p.list(b.Body)
		p.WriteByte(')')
	case *ast.ForClause:
		p.forClause(b)
	case *ast.WhileClause:
		p.whileClause(b)
	case *ast.IfClause:
		p.ifClause(b)
	case *ast.CaseClause:
		p.caseClause(b)
	}
	for _, r := range c.Redirs {
		p.WriteByte(' ')
		p.redir(r)
	}
}

func (p *printer) forClause(f *ast.ForClause) {
	p.WriteString("for ")
	p.WriteString(f.Name)
	if f.Words != nil {
		p.WriteString(" in")
		for _, w := range f.Words.Words {
			p.WriteByte(' ')
			p.word(w)
		}
	}
	p.WriteString("; do ")
	p.list(f.Body)
	p.WriteString("; done")
}

func (p *printer) whileClause(w *ast.WhileClause) {
	if w.Kind == ast.LoopWhile {
		p.WriteString("while ")
	} else {
		p.WriteString("until ")
	}
	p.list(w.Cond)
	p.WriteString("; do ")
	p.list(w.Body)
	p.WriteString("; done")
}

func (p *printer) ifClause(c *ast.IfClause) {
	p.WriteString("if ")
	p.list(c.Cond)
	p.WriteString("; then ")
	p.list(c.Then)
	for _, e := range c.Elifs {
		p.WriteString("; elif ")
		p.list(e.Cond)
		p.WriteString("; then ")
		p.list(e.Then)
	}
	if c.Else != nil {
		p.WriteString("; else ")
		p.list(c.Else)
	}
	p.WriteString("; fi")
}

func (p *printer) caseClause(c *ast.CaseClause) {
	p.WriteString("case ")
	p.word(c.Subject)
	p.WriteString(" in ")
	for i, arm := range c.Arms {
		if i > 0 {
			p.WriteByte(' ')
		}
		for j, pat := range arm.Patterns {
			if j > 0 {
				p.WriteByte('|')
			}
			p.word(pat)
		}
		p.WriteString(") ")
		p.list(arm.Body)
		p.WriteString(" ;;")
	}
	p.WriteString(" esac")
}

func (p *printer) functionDefinition(f *ast.FunctionDefinition) {
	if f.HasKeyword {
		p.WriteString("function ")
		p.word(f.Name)
	} else {
		p.word(f.Name)
		p.WriteString("()")
	}
	p.WriteByte(' ')
	p.fullCompound(f.Body)
}

func (p *printer) word(w *ast.Word) {
	for _, u := range w.Units {
		p.wordUnit(u)
	}
}

func (p *printer) wordUnit(u ast.WordUnit) {
	switch v := u.(type) {
	case *ast.Unquoted:
		p.doubleQuotable(v.Value)
	case *ast.SingleQuoted:
		p.WriteByte('\'')
		p.WriteString(v.Value)
		p.WriteByte('\'')
	case *ast.DoubleQuoted:
		p.WriteByte('"')
		for _, part := range v.Parts {
			p.doubleQuotable(part)
		}
		p.WriteByte('"')
	}
}

func (p *printer) doubleQuotable(dq ast.DoubleQuotable) {
	switch v := dq.(type) {
	case *ast.Literal:
		p.WriteString(v.Value)
	case *ast.Backslashed:
		p.WriteByte('\\')
		p.WriteRune(v.Value)
	case *ast.RawParam:
		p.WriteByte('$')
		p.WriteString(v.Name)
	case *ast.BracedParam:
		p.bracedParam(v)
	case *ast.CommandSubst:
		p.WriteString("$(")
		p.list(v.Body)
		p.WriteByte(')')
	case *ast.Backquote:
		p.WriteByte('`')
		p.list(v.Body)
		p.WriteByte('`')
	case *ast.ArithExpansion:
		p.WriteString("$((")
		for _, part := range v.Body {
			p.doubleQuotable(part)
		}
		p.WriteString("))")
	}
}

func (p *printer) bracedParam(bp *ast.BracedParam) {
	p.WriteString("${")
	if bp.Length {
		p.WriteByte('#')
		p.WriteString(bp.Name)
		p.WriteByte('}')
		return
	}
	p.WriteString(bp.Name)
	if bp.Modifier != ast.ModNone {
		p.WriteString(modifierSpelling(bp.Modifier))
		if bp.Operand != nil {
			p.word(bp.Operand)
		}
	}
	p.WriteByte('}')
}

func modifierSpelling(m ast.ParamModifier) string {
	switch m {
	case ast.ModUseDefaultUnset:
		return ":-"
	case ast.ModAssignDefaultUnset:
		return ":="
	case ast.ModIndicateErrorUnset:
		return ":?"
	case ast.ModUseAlternativeSet:
		return ":+"
	case ast.ModTrimPrefixShortest:
		return "#"
	case ast.ModTrimPrefixLongest:
		return "##"
	case ast.ModTrimSuffixShortest:
		return "%"
	case ast.ModTrimSuffixLongest:
		return "%%"
	default:
		return ""
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
