// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package parser implements the lexer and recursive-descent parser of §4.1:
// it turns an ast.Code's source text into an ast.List, deferring here-doc
// body parsing until the end of the logical line that introduced them
// (§3.5's "here-doc deferral invariant"), and resolving aliases through an
// injected AliasResolver rather than baking alias lookup into the grammar.
package parser

import (
	"fmt"
	"strings"

	"github.com/mvdan-style/posh/ast"
	"github.com/mvdan-style/posh/token"
)

// AliasResolver looks up a simple command's leading word as a potential
// alias and returns its literal expansion text, grounded on the teacher's
// syntax package Parser.Interactive-style optional hooks (the teacher has
// no alias support; this hook is this package's own addition per the
// expanded scope, since aliasing is a standard POSIX interactive feature
// the distilled spec only gestures at via Source's Alias tag).
type AliasResolver interface {
	Resolve(name string) (expansion string, ok bool)
}

// ParseError is a parse failure annotated with the offending Location
// (§7 "Parse error").
type ParseError struct {
	Loc ast.Location
	Msg string
}

func (e *ParseError) Error() string {
	pos := e.Loc.StartPosition()
	return fmt.Sprintf("%d:%d: %s", pos.Line, pos.Column, e.Msg)
}

type pendingHeredoc struct {
	delim      *ast.Word
	removeTabs bool
	redir      *ast.Redir
}

// Parser holds the mutable state of one parse of one ast.Code.
type Parser struct {
	code *ast.Code
	src  []byte
	pos  int

	tok    token.Token
	tokLen int

	aliases AliasResolver

	pendingHeredocs []*pendingHeredoc
}

// Option configures a Parser.
type Option func(*Parser)

// WithAliasResolver installs r as the alias lookup hook.
func WithAliasResolver(r AliasResolver) Option {
	return func(p *Parser) { p.aliases = r }
}

// Parse parses code's full text as a List (§4.1 "Parser contract").
func Parse(code *ast.Code, opts ...Option) (*ast.List, error) {
	p := &Parser{code: code, src: []byte(code.Value)}
	for _, o := range opts {
		o(p)
	}
	p.advance()
	list, err := p.parseList(token.EOF)
	if err != nil {
		return nil, err
	}
	if p.tok != token.EOF {
		return nil, &ParseError{Loc: p.here(), Msg: "unexpected token " + p.tok.String()}
	}
	return list, nil
}

func (p *Parser) here() ast.Location {
	return p.code.NewLocation(p.pos, p.pos)
}

func (p *Parser) locFrom(start int) ast.Location {
	return p.code.NewLocation(start, p.pos)
}

func (p *Parser) errf(start int, format string, args ...any) error {
	return &ParseError{Loc: p.locFrom(start), Msg: fmt.Sprintf(format, args...)}
}

// skipBlank advances over spaces, tabs, comments, and line continuations,
// but stops at newline (the caller decides whether a newline terminates
// the current production).
func (p *Parser) skipBlank() {
	for p.pos < len(p.src) {
		b := p.src[p.pos]
		switch {
		case b == ' ' || b == '\t' || b == '\r':
			p.pos++
		case b == '\\' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '\n':
			p.pos += 2
		case b == '#':
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

// advance recognizes the next operator token, or WORD if the next byte
// starts a word.
func (p *Parser) advance() {
	p.skipBlank()
	if p.pos >= len(p.src) {
		p.tok, p.tokLen = token.EOF, 0
		return
	}
	if tok, n := p.peekOperator(); n > 0 {
		p.tok, p.tokLen = tok, n
		return
	}
	p.tok, p.tokLen = token.WORD, 0
}

func (p *Parser) consumeOp() ast.Location {
	start := p.pos
	p.pos += p.tokLen
	loc := p.locFrom(start)
	p.advance()
	return loc
}

func (p *Parser) at(t token.Token) bool { return p.tok == t }

func (p *Parser) expectOp(t token.Token) (ast.Location, error) {
	if p.tok != t {
		return ast.Location{}, p.errf(p.pos, "expected %s, found %s", t, p.tok)
	}
	return p.consumeOp(), nil
}

// skipNewlines consumes any run of blank lines, used between list
// separators where POSIX grammar allows arbitrary newlines.
func (p *Parser) skipNewlines() {
	for p.tok == token.NEWLINE {
		p.consumeOp()
	}
}

// parseList parses a sequence of Items until EOF or a recognized
// terminator word (a reserved word like "fi"/"done"/"esac"/"}"/")" etc,
// passed by the caller as stopTok for operator terminators, with reserved
// words checked via peekKeyword).
func (p *Parser) parseList(stopTok token.Token) (*ast.List, error) {
	var items []*ast.Item
	p.skipNewlines()
	for {
		if p.tok == stopTok || p.tok == token.EOF {
			break
		}
		if kw, ok := p.peekKeyword(); ok && isListTerminatorKeyword(kw) {
			break
		}
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		p.skipNewlines()
	}
	return &ast.List{Items: items}, nil
}

func isListTerminatorKeyword(t token.Token) bool {
	switch t {
	case token.FI, token.DO, token.DONE, token.ELIF, token.ELSE, token.ESAC, token.THEN:
		return true
	}
	return false
}

// parseItem parses one AndOrList plus its optional `;`/`&` terminator
// (§3.5 Item).
func (p *Parser) parseItem() (*ast.Item, error) {
	start := p.pos
	aol, err := p.parseAndOrList()
	if err != nil {
		return nil, err
	}
	async := false
	switch p.tok {
	case token.AND:
		async = true
		p.consumeOp()
	case token.SEMI:
		p.consumeOp()
	}
	if p.tok == token.NEWLINE {
		if err := p.resolveHeredocs(); err != nil {
			return nil, err
		}
		p.consumeOp()
	}
	return &ast.Item{AndOrList: aol, IsAsync: async, Loc: p.locFrom(start)}, nil
}

func (p *Parser) parseAndOrList() (*ast.AndOrList, error) {
	start := p.pos
	first, err := p.parsePipeline()
	if err != nil {
		return nil, err
	}
	var rest []*ast.AndOrPair
	for p.tok == token.ANDAND || p.tok == token.OROR {
		opTok := p.tok
		p.consumeOp()
		p.skipNewlines()
		op, err := ast.AndOrOpFromToken(opTok)
		if err != nil {
			return nil, err
		}
		next, err := p.parsePipeline()
		if err != nil {
			return nil, err
		}
		rest = append(rest, &ast.AndOrPair{Op: op, Pipeline: next})
	}
	return &ast.AndOrList{First: first, Rest: rest, Loc: p.locFrom(start)}, nil
}

func (p *Parser) parsePipeline() (*ast.Pipeline, error) {
	start := p.pos
	negated := false
	if p.peekBangWord() {
		negated = true
		p.advance()
	}
	cmd, err := p.parseCommand()
	if err != nil {
		return nil, err
	}
	cmds := []ast.Command{cmd}
	for p.tok == token.PIPE {
		p.consumeOp()
		p.skipNewlines()
		next, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, next)
	}
	return &ast.Pipeline{Commands: cmds, Negated: negated, Loc: p.locFrom(start)}, nil
}

// peekBangWord reports whether the upcoming WORD token is the literal
// pipeline-negation keyword "!".
func (p *Parser) peekBangWord() bool {
	if p.tok != token.WORD {
		return false
	}
	return p.pos < len(p.src) && p.src[p.pos] == '!' &&
		(p.pos+1 >= len(p.src) || wordBreak(p.src[p.pos+1]))
}

// peekKeyword reports whether the upcoming WORD is a reserved word in
// command-start position (POSIX keyword recognition is position-
// sensitive; this parser only ever calls it there).
func (p *Parser) peekKeyword() (token.Token, bool) {
	if p.tok != token.WORD {
		return token.ILLEGAL, false
	}
	end := p.pos
	for end < len(p.src) && !wordBreak(p.src[end]) {
		end++
	}
	word := string(p.src[p.pos:end])
	if t, ok := token.Keywords[word]; ok {
		return t, true
	}
	return token.ILLEGAL, false
}

func (p *Parser) consumeKeyword() ast.Location {
	start := p.pos
	for p.pos < len(p.src) && !wordBreak(p.src[p.pos]) {
		p.pos++
	}
	loc := p.locFrom(start)
	p.advance()
	return loc
}

func (p *Parser) parseCommand() (ast.Command, error) {
	if kw, ok := p.peekKeyword(); ok {
		switch kw {
		case token.IF, token.FOR, token.WHILE, token.UNTIL, token.CASE:
			return p.parseFullCompound()
		case token.FUNCTION:
			return p.parseFunctionDefinition(true)
		}
	}
	if p.tok == token.LBRACE || p.tok == token.LPAREN {
		return p.parseFullCompound()
	}
	if name, ok := p.peekFunctionHeader(); ok {
		_ = name
		return p.parseFunctionDefinition(false)
	}
	return p.parseSimpleCommand()
}

// peekFunctionHeader detects the POSIX `name()` function-definition form
// without consuming input.
func (p *Parser) peekFunctionHeader() (string, bool) {
	if p.tok != token.WORD {
		return "", false
	}
	i := p.pos
	start := i
	for i < len(p.src) && !wordBreak(p.src[i]) && p.src[i] != '(' {
		i++
	}
	if i == start || i+1 >= len(p.src) || p.src[i] != '(' || p.src[i+1] != ')' {
		return "", false
	}
	return string(p.src[start:i]), true
}

func (p *Parser) parseFunctionDefinition(hasKeyword bool) (*ast.FunctionDefinition, error) {
	start := p.pos
	if hasKeyword {
		p.consumeKeyword() // "function"
	}
	nameStart := p.pos
	for p.pos < len(p.src) && !wordBreak(p.src[p.pos]) && p.src[p.pos] != '(' {
		p.pos++
	}
	name := &ast.Word{
		Units: []ast.WordUnit{&ast.Unquoted{Value: &ast.Literal{Value: string(p.src[nameStart:p.pos]), Loc: p.locFrom(nameStart)}}},
		Loc:   p.locFrom(nameStart),
	}
	p.advance()
	if p.tok == token.LPAREN {
		p.consumeOp()
		if _, err := p.expectOp(token.RPAREN); err != nil {
			return nil, err
		}
	}
	p.skipNewlines()
	body, err := p.parseFullCompound()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDefinition{HasKeyword: hasKeyword, Name: name, Body: body, Loc: p.locFrom(start)}, nil
}

func (p *Parser) parseFullCompound() (*ast.FullCompoundCommand, error) {
	start := p.pos
	body, err := p.parseCompoundBody()
	if err != nil {
		return nil, err
	}
	redirs, err := p.parseRedirs()
	if err != nil {
		return nil, err
	}
	return &ast.FullCompoundCommand{Body: body, Redirs: redirs, Loc: p.locFrom(start)}, nil
}

func (p *Parser) parseCompoundBody() (ast.CompoundCommand, error) {
	if kw, ok := p.peekKeyword(); ok {
		switch kw {
		case token.IF:
			return p.parseIf()
		case token.FOR:
			return p.parseFor()
		case token.WHILE:
			return p.parseLoop(ast.LoopWhile)
		case token.UNTIL:
			return p.parseLoop(ast.LoopUntil)
		case token.CASE:
			return p.parseCase()
		}
	}
	switch p.tok {
	case token.LBRACE:
		return p.parseBraceGroup()
	case token.LPAREN:
		return p.parseSubshell()
	}
	return nil, p.errf(p.pos, "expected a compound command, found %s", p.tok)
}

func (p *Parser) parseBraceGroup() (*ast.BraceGroup, error) {
	start := p.pos
	p.consumeOp() // {
	list, err := p.parseList(token.RBRACE)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.BraceGroup{Body: list, Loc: p.locFrom(start)}, nil
}

func (p *Parser) parseSubshell() (*ast.Subshell, error) {
	start := p.pos
	p.consumeOp() // (
	list, err := p.parseList(token.RPAREN)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.Subshell{Body: list, Loc: p.locFrom(start)}, nil
}

func (p *Parser) parseIf() (*ast.IfClause, error) {
	start := p.pos
	p.consumeKeyword() // if
	cond, err := p.parseList(token.EOF)
	if err != nil {
		return nil, err
	}
	if _, ok := p.peekKeyword(); !ok {
		return nil, p.errf(p.pos, "expected then")
	}
	p.consumeKeyword() // then
	then, err := p.parseList(token.EOF)
	if err != nil {
		return nil, err
	}
	var elifs []*ast.ElifClause
	var elseList *ast.List
	for {
		kw, ok := p.peekKeyword()
		if !ok {
			return nil, p.errf(p.pos, "expected elif, else or fi")
		}
		switch kw {
		case token.ELIF:
			p.consumeKeyword()
			econd, err := p.parseList(token.EOF)
			if err != nil {
				return nil, err
			}
			p.consumeKeyword() // then
			ethen, err := p.parseList(token.EOF)
			if err != nil {
				return nil, err
			}
			elifs = append(elifs, &ast.ElifClause{Cond: econd, Then: ethen})
			continue
		case token.ELSE:
			p.consumeKeyword()
			elseList, err = p.parseList(token.EOF)
			if err != nil {
				return nil, err
			}
		case token.FI:
		default:
			return nil, p.errf(p.pos, "expected elif, else or fi, found %s", kw)
		}
		break
	}
	p.consumeKeyword() // fi
	return &ast.IfClause{Cond: cond, Then: then, Elifs: elifs, Else: elseList, Loc: p.locFrom(start)}, nil
}

func (p *Parser) parseFor() (*ast.ForClause, error) {
	start := p.pos
	p.consumeKeyword() // for
	if p.tok != token.WORD {
		return nil, p.errf(p.pos, "expected a name after for")
	}
	name := p.consumeBareName()
	p.skipNewlines()
	var words *ast.ForWords
	if kw, ok := p.peekKeyword(); ok && kw == token.IN {
		p.consumeKeyword()
		var ws []*ast.Word
		for p.tok == token.WORD {
			w, err := p.parseWord()
			if err != nil {
				return nil, err
			}
			ws = append(ws, w)
		}
		words = &ast.ForWords{Words: ws}
		if p.tok == token.SEMI {
			p.consumeOp()
		}
		p.skipNewlines()
	}
	if _, ok := p.peekKeyword(); !ok {
		return nil, p.errf(p.pos, "expected do")
	}
	p.consumeKeyword() // do
	body, err := p.parseList(token.EOF)
	if err != nil {
		return nil, err
	}
	if _, ok := p.peekKeyword(); !ok {
		return nil, p.errf(p.pos, "expected done")
	}
	p.consumeKeyword() // done
	return &ast.ForClause{Name: name, Words: words, Body: body, Loc: p.locFrom(start)}, nil
}

func (p *Parser) consumeBareName() string {
	start := p.pos
	for p.pos < len(p.src) && !wordBreak(p.src[p.pos]) {
		p.pos++
	}
	name := string(p.src[start:p.pos])
	p.advance()
	return name
}

func (p *Parser) parseLoop(kind ast.LoopKind) (*ast.WhileClause, error) {
	start := p.pos
	p.consumeKeyword() // while/until
	cond, err := p.parseList(token.EOF)
	if err != nil {
		return nil, err
	}
	if _, ok := p.peekKeyword(); !ok {
		return nil, p.errf(p.pos, "expected do")
	}
	p.consumeKeyword() // do
	body, err := p.parseList(token.EOF)
	if err != nil {
		return nil, err
	}
	if _, ok := p.peekKeyword(); !ok {
		return nil, p.errf(p.pos, "expected done")
	}
	p.consumeKeyword() // done
	return &ast.WhileClause{Kind: kind, Cond: cond, Body: body, Loc: p.locFrom(start)}, nil
}

func (p *Parser) parseCase() (*ast.CaseClause, error) {
	start := p.pos
	p.consumeKeyword() // case
	subject, err := p.parseWord()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if _, ok := p.peekKeyword(); !ok {
		return nil, p.errf(p.pos, "expected in")
	}
	p.consumeKeyword() // in
	p.skipNewlines()
	var arms []*ast.CaseArm
	for {
		if kw, ok := p.peekKeyword(); ok && kw == token.ESAC {
			break
		}
		if p.tok == token.EOF {
			return nil, p.errf(p.pos, "unterminated case: expected esac")
		}
		if p.tok == token.LPAREN {
			p.consumeOp()
		}
		var patterns []*ast.Word
		for {
			w, err := p.parseWord()
			if err != nil {
				return nil, err
			}
			patterns = append(patterns, w)
			if p.tok != token.PIPE {
				break
			}
			p.consumeOp()
		}
		if _, err := p.expectOp(token.RPAREN); err != nil {
			return nil, err
		}
		p.skipNewlines()
		body, err := p.parseList(token.DSEMI)
		if err != nil {
			return nil, err
		}
		arms = append(arms, &ast.CaseArm{Patterns: patterns, Body: body})
		if p.tok == token.DSEMI {
			p.consumeOp()
			p.skipNewlines()
		}
	}
	p.consumeKeyword() // esac
	return &ast.CaseClause{Subject: subject, Arms: arms, Loc: p.locFrom(start)}, nil
}

func (p *Parser) parseSimpleCommand() (*ast.SimpleCommand, error) {
	start := p.pos
	var assigns []*ast.Assign
	var words []*ast.Word
	var redirs []*ast.Redir

	// Leading assignments (§4.1): literal NAME=... words before the first
	// ordinary word.
	for p.tok == token.WORD {
		if r, ok, err := p.tryParseRedir(); err != nil {
			return nil, err
		} else if ok {
			redirs = append(redirs, r)
			continue
		}
		w, err := p.parseWord()
		if err != nil {
			return nil, err
		}
		if len(words) == 0 {
			if a, ok := ast.TryIntoAssign(w); ok {
				assigns = append(assigns, a)
				continue
			}
		}
		words = append(words, w)
		for {
			if r, ok, err := p.tryParseRedir(); err != nil {
				return nil, err
			} else if ok {
				redirs = append(redirs, r)
				continue
			}
			break
		}
	}
	for {
		if r, ok, err := p.tryParseRedir(); err != nil {
			return nil, err
		} else if ok {
			redirs = append(redirs, r)
			continue
		}
		break
	}
	if len(assigns) == 0 && len(words) == 0 && len(redirs) == 0 {
		return nil, p.errf(p.pos, "expected a command, found %s", p.tok)
	}
	if name, ok := p.aliasExpand(words); ok {
		words[0] = name
	}
	return &ast.SimpleCommand{Assigns: assigns, Words: words, Redirs: redirs, Loc: p.locFrom(start)}, nil
}

// aliasExpand consults the injected AliasResolver for the command's
// leading word, splicing its expansion text back into the token stream is
// out of scope for this lightweight hook (real alias expansion needs
// lexer-level reentry); instead it only rewrites a literal leading word in
// place when the resolver reports a literal one-word replacement, which
// covers the common `alias ll=ls` case without a second parse pass.
func (p *Parser) aliasExpand(words []*ast.Word) (*ast.Word, bool) {
	if p.aliases == nil || len(words) == 0 {
		return nil, false
	}
	name, ok := ast.ToStringIfLiteral(words[0])
	if !ok {
		return nil, false
	}
	expansion, ok := p.aliases.Resolve(name)
	if !ok {
		return nil, false
	}
	loc := words[0].Loc
	return &ast.Word{
		Units: []ast.WordUnit{&ast.Unquoted{Value: &ast.Literal{Value: expansion, Loc: loc}}},
		Loc:   loc,
	}, true
}

func (p *Parser) parseRedirs() ([]*ast.Redir, error) {
	var redirs []*ast.Redir
	for {
		r, ok, err := p.tryParseRedir()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		redirs = append(redirs, r)
	}
	return redirs, nil
}

// tryParseRedir attempts `[fd]op operand` or `[fd]heredocop delim` at the
// current position (§4.1 "preceded by an optional fd digit sequence").
func (p *Parser) tryParseRedir() (*ast.Redir, bool, error) {
	start := p.pos
	var fd *int
	if p.tok == token.WORD {
		if n, consumed, ok := p.peekFDDigits(); ok {
			p.pos += consumed
			p.advance()
			fd = &n
		}
	}
	if !token.IsRedirOperator(p.tok) && p.tok != token.SHL && p.tok != token.DHEREDOC {
		if fd != nil {
			return nil, false, p.errf(start, "expected a redirection operator after fd")
		}
		return nil, false, nil
	}
	opTok := p.tok
	p.consumeOp()
	if opTok == token.SHL || opTok == token.DHEREDOC {
		delim, err := p.parseWord()
		if err != nil {
			return nil, false, err
		}
		redir := &ast.Redir{FD: fd, Loc: p.locFrom(start)}
		redir.Body = &ast.HereDocRedir{Delimiter: delim, RemoveTabs: opTok == token.DHEREDOC}
		p.pendingHeredocs = append(p.pendingHeredocs, &pendingHeredoc{
			delim:      delim,
			removeTabs: opTok == token.DHEREDOC,
			redir:      redir,
		})
		return redir, true, nil
	}
	op, err := ast.RedirOpFromToken(opTok)
	if err != nil {
		return nil, false, err
	}
	operand, err := p.parseWord()
	if err != nil {
		return nil, false, err
	}
	return &ast.Redir{FD: fd, Body: &ast.NormalRedir{Op: op, Operand: operand}, Loc: p.locFrom(start)}, true, nil
}

// peekFDDigits reports whether the upcoming WORD is a bare digit run
// immediately followed (no space) by a redirection operator.
func (p *Parser) peekFDDigits() (int, int, bool) {
	i := p.pos
	j := i
	for j < len(p.src) && p.src[j] >= '0' && p.src[j] <= '9' {
		j++
	}
	if j == i || j >= len(p.src) || (p.src[j] != '<' && p.src[j] != '>') {
		return 0, 0, false
	}
	n := 0
	fmt.Sscanf(string(p.src[i:j]), "%d", &n)
	return n, j - i, true
}

// resolveHeredocs implements the §3.5/§4.1 deferral: at the first
// unparsed newline after one or more heredoc operators, consume the
// following lines as each delimiter's content.
func (p *Parser) resolveHeredocs() error {
	if len(p.pendingHeredocs) == 0 {
		return nil
	}
	pending := p.pendingHeredocs
	p.pendingHeredocs = nil
	lineStart := p.pos + 1 // past the newline we are about to consume
	for _, ph := range pending {
		delimText, _ := ast.ToStringIfLiteral(ph.delim)
		var lines []string
		for {
			if lineStart > len(p.src) {
				return p.errf(lineStart, "unterminated here-document: expected %q", delimText)
			}
			end := lineStart
			for end < len(p.src) && p.src[end] != '\n' {
				end++
			}
			line := string(p.src[lineStart:end])
			cmp := line
			if ph.removeTabs {
				cmp = strings.TrimLeft(line, "\t")
			}
			if cmp == delimText {
				lineStart = end + 1
				break
			}
			if ph.removeTabs {
				line = strings.TrimLeft(line, "\t")
			}
			lines = append(lines, line)
			if end >= len(p.src) {
				return p.errf(lineStart, "unterminated here-document: expected %q", delimText)
			}
			lineStart = end + 1
		}
		content := strings.Join(lines, "\n")
		if len(lines) > 0 {
			content += "\n"
		}
		quoted := !ph.delim.IsLiteral()
		hd := ph.redir.Body.(*ast.HereDocRedir)
		if quoted {
			hd.Content = &ast.Word{
				Units: []ast.WordUnit{&ast.SingleQuoted{Value: content, Loc: ph.delim.Loc}},
				Loc:   ph.delim.Loc,
			}
		} else {
			hereDocCode := ast.NewCode(content, 0, ast.Source{Kind: ast.SourceHereDoc})
			w, err := parseWordBody(hereDocCode, content)
			if err != nil {
				return err
			}
			hd.Content = w
		}
	}
	// Resume scanning after the consumed heredoc-body lines.
	p.pos = lineStart - 1 // back up onto the newline so the caller's consumeOp() still sees it
	p.advance()
	return nil
}
