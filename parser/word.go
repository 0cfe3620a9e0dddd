// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package parser

import (
	"strings"

	"github.com/mvdan-style/posh/ast"
)

// parseWordBody scans a standalone piece of text (a here-document body
// once it's known to be unquoted) as Text, used for the Content of an
// unquoted HereDocRedir. It shares scanning logic with parseWord's inner
// loop but never stops at word-break bytes, since the whole body is one
// Word.
func parseWordBody(code *ast.Code, content string) (*ast.Word, error) {
	p := &Parser{code: code, src: []byte(content)}
	units, err := p.scanDoubleQuotableRun(func(b byte) bool { return false })
	if err != nil {
		return nil, err
	}
	var wu []ast.WordUnit
	for _, u := range units {
		wu = append(wu, &ast.Unquoted{Value: u})
	}
	return &ast.Word{Units: wu, Loc: code.NewLocation(0, len(content))}, nil
}

// parseWord scans one Word starting at the parser's current WORD token
// (§3.2, §4.1).
func (p *Parser) parseWord() (*ast.Word, error) {
	start := p.pos
	var units []ast.WordUnit
	for p.pos < len(p.src) {
		b := p.src[p.pos]
		if wordBreak(b) {
			break
		}
		switch b {
		case '\'':
			u, err := p.scanSingleQuoted()
			if err != nil {
				return nil, err
			}
			units = append(units, u)
		case '"':
			u, err := p.scanDoubleQuoted()
			if err != nil {
				return nil, err
			}
			units = append(units, u)
		case '\\':
			dq, err := p.scanBackslash()
			if err != nil {
				return nil, err
			}
			units = append(units, &ast.Unquoted{Value: dq})
		case '$':
			dq, err := p.scanDollar()
			if err != nil {
				return nil, err
			}
			if dq != nil {
				units = append(units, &ast.Unquoted{Value: dq})
			}
		case '`':
			dq, err := p.scanBackquote()
			if err != nil {
				return nil, err
			}
			units = append(units, &ast.Unquoted{Value: dq})
		default:
			lit := p.scanLiteralRun()
			units = append(units, &ast.Unquoted{Value: lit})
		}
	}
	loc := p.locFrom(start)
	p.advance()
	return &ast.Word{Units: units, Loc: loc}, nil
}

func (p *Parser) scanLiteralRun() *ast.Literal {
	start := p.pos
	for p.pos < len(p.src) {
		b := p.src[p.pos]
		if wordBreak(b) || b == '\'' || b == '"' || b == '\\' || b == '$' || b == '`' {
			break
		}
		p.pos++
	}
	return &ast.Literal{Value: string(p.src[start:p.pos]), Loc: p.locFrom(start)}
}

func (p *Parser) scanSingleQuoted() (*ast.SingleQuoted, error) {
	start := p.pos
	p.pos++ // opening '
	contentStart := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '\'' {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return nil, p.errf(start, "unterminated single-quoted string")
	}
	value := string(p.src[contentStart:p.pos])
	p.pos++ // closing '
	return &ast.SingleQuoted{Value: value, Loc: p.locFrom(start)}, nil
}

func (p *Parser) scanDoubleQuoted() (*ast.DoubleQuoted, error) {
	start := p.pos
	p.pos++ // opening "
	parts, err := p.scanDoubleQuotableRun(func(b byte) bool { return b == '"' })
	if err != nil {
		return nil, err
	}
	if p.pos >= len(p.src) {
		return nil, p.errf(start, "unterminated double-quoted string")
	}
	p.pos++ // closing "
	return &ast.DoubleQuoted{Parts: parts, Loc: p.locFrom(start)}, nil
}

// scanDoubleQuotableRun scans DoubleQuotables until stop(b) is true for
// the upcoming byte or input is exhausted; it is shared by double-quote
// scanning and unquoted here-document body scanning.
func (p *Parser) scanDoubleQuotableRun(stop func(byte) bool) ([]ast.DoubleQuotable, error) {
	var parts []ast.DoubleQuotable
	for p.pos < len(p.src) {
		b := p.src[p.pos]
		if stop(b) {
			break
		}
		switch b {
		case '\\':
			dq, err := p.scanBackslash()
			if err != nil {
				return nil, err
			}
			parts = append(parts, dq)
		case '$':
			dq, err := p.scanDollar()
			if err != nil {
				return nil, err
			}
			if dq != nil {
				parts = append(parts, dq)
			}
		case '`':
			dq, err := p.scanBackquote()
			if err != nil {
				return nil, err
			}
			parts = append(parts, dq)
		default:
			start := p.pos
			for p.pos < len(p.src) {
				b := p.src[p.pos]
				if stop(b) || b == '\\' || b == '$' || b == '`' {
					break
				}
				p.pos++
			}
			parts = append(parts, &ast.Literal{Value: string(p.src[start:p.pos]), Loc: p.locFrom(start)})
		}
	}
	return parts, nil
}

func (p *Parser) scanBackslash() (ast.DoubleQuotable, error) {
	start := p.pos
	p.pos++ // backslash
	if p.pos >= len(p.src) {
		return nil, p.errf(start, "trailing backslash")
	}
	r := rune(p.src[p.pos])
	p.pos++
	return &ast.Backslashed{Value: r, Loc: p.locFrom(start)}, nil
}

func (p *Parser) scanBackquote() (ast.DoubleQuotable, error) {
	start := p.pos
	p.pos++ // opening `
	contentStart := p.pos
	for p.pos < len(p.src) {
		if p.src[p.pos] == '\\' && p.pos+1 < len(p.src) {
			p.pos += 2
			continue
		}
		if p.src[p.pos] == '`' {
			break
		}
		p.pos++
	}
	if p.pos >= len(p.src) {
		return nil, p.errf(start, "unterminated backquote substitution")
	}
	raw := string(p.src[contentStart:p.pos])
	p.pos++ // closing `
	unescaped := strings.NewReplacer("\\`", "`", "\\\\", "\\", "\\$", "$").Replace(raw)
	sub := ast.NewCode(unescaped, 0, ast.Source{Kind: ast.SourceCommandSubst, Original: ptrLoc(p.locFrom(start))})
	body, err := Parse(sub)
	if err != nil {
		return nil, err
	}
	return &ast.Backquote{Body: body, Loc: p.locFrom(start)}, nil
}

func ptrLoc(l ast.Location) *ast.Location { return &l }

// scanDollar scans any `$`-introduced construct: a raw parameter, a
// braced parameter, a command substitution, or an arithmetic expansion
// (§3.2, §4.2.2–§4.2.4). A bare `$` not followed by anything special is
// returned as a literal `$` (POSIX: `$` alone, or before a byte that
// cannot start a parameter name, is not special).
func (p *Parser) scanDollar() (ast.DoubleQuotable, error) {
	start := p.pos
	p.pos++ // $
	if p.pos >= len(p.src) {
		return &ast.Literal{Value: "$", Loc: p.locFrom(start)}, nil
	}
	switch p.src[p.pos] {
	case '(':
		if p.pos+1 < len(p.src) && p.src[p.pos+1] == '(' {
			return p.scanArith(start)
		}
		return p.scanCommandSubst(start)
	case '{':
		return p.scanBracedParam(start)
	}
	if isNameStart(p.src[p.pos]) || isDigit(p.src[p.pos]) || isSpecialParam(p.src[p.pos]) {
		nstart := p.pos
		if isDigit(p.src[p.pos]) || isSpecialParam(p.src[p.pos]) {
			p.pos++
		} else {
			for p.pos < len(p.src) && (isNameStart(p.src[p.pos]) || isDigit(p.src[p.pos])) {
				p.pos++
			}
		}
		name := string(p.src[nstart:p.pos])
		return &ast.RawParam{Name: name, Loc: p.locFrom(start)}, nil
	}
	return &ast.Literal{Value: "$", Loc: p.locFrom(start)}, nil
}

func isNameStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isSpecialParam(b byte) bool {
	switch b {
	case '@', '*', '#', '?', '-', '$', '!':
		return true
	}
	return false
}

func (p *Parser) scanCommandSubst(start int) (ast.DoubleQuotable, error) {
	p.pos++ // (
	contentStart := p.pos
	depth := 1
	for p.pos < len(p.src) && depth > 0 {
		switch p.src[p.pos] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				goto done
			}
		case '\'':
			p.pos++
			for p.pos < len(p.src) && p.src[p.pos] != '\'' {
				p.pos++
			}
		}
		p.pos++
	}
done:
	if depth != 0 {
		return nil, p.errf(start, "unterminated command substitution")
	}
	raw := string(p.src[contentStart:p.pos])
	p.pos++ // )
	sub := ast.NewCode(raw, 0, ast.Source{Kind: ast.SourceCommandSubst, Original: ptrLoc(p.locFrom(start))})
	body, err := Parse(sub)
	if err != nil {
		return nil, err
	}
	return &ast.CommandSubst{Body: body, Loc: p.locFrom(start)}, nil
}

func (p *Parser) scanArith(start int) (ast.DoubleQuotable, error) {
	p.pos += 2 // ((
	contentStart := p.pos
	depth := 1
	for p.pos < len(p.src)-1 && depth > 0 {
		if p.src[p.pos] == '(' {
			depth++
		} else if p.src[p.pos] == ')' && p.src[p.pos+1] == ')' && depth == 1 {
			depth = 0
			break
		} else if p.src[p.pos] == ')' {
			depth--
		}
		p.pos++
	}
	if depth != 0 {
		return nil, p.errf(start, "unterminated arithmetic expansion")
	}
	raw := string(p.src[contentStart:p.pos])
	p.pos += 2 // ))
	code := ast.NewCode(raw, 0, ast.Source{Kind: ast.SourceArith, Original: ptrLoc(p.locFrom(start))})
	sp := &Parser{code: code, src: []byte(raw)}
	parts, err := sp.scanDoubleQuotableRun(func(byte) bool { return false })
	if err != nil {
		return nil, err
	}
	return &ast.ArithExpansion{Body: ast.Text(parts), Loc: p.locFrom(start)}, nil
}

func (p *Parser) scanBracedParam(start int) (ast.DoubleQuotable, error) {
	p.pos++ // {
	length := false
	if p.pos < len(p.src) && p.src[p.pos] == '#' {
		// Ambiguous with the ModTrimPrefix modifiers; POSIX resolves it as
		// length only when `#` is immediately followed by a name then `}`.
		save := p.pos
		p.pos++
		nstart := p.pos
		for p.pos < len(p.src) && (isNameStart(p.src[p.pos]) || isDigit(p.src[p.pos])) {
			p.pos++
		}
		if p.pos < len(p.src) && p.src[p.pos] == '}' && p.pos > nstart {
			length = true
			p.pos = nstart // rescan the name below
		} else {
			p.pos = save
		}
	}
	nstart := p.pos
	for p.pos < len(p.src) {
		b := p.src[p.pos]
		if p.pos == nstart && (isDigit(b) || isSpecialParam(b)) {
			p.pos++
			break
		}
		if !isNameStart(b) && !isDigit(b) {
			break
		}
		p.pos++
	}
	name := string(p.src[nstart:p.pos])
	bp := &ast.BracedParam{Name: name, Length: length, Loc: p.locFrom(start)}
	if length {
		p.pos++ // }
		bp.Loc = p.locFrom(start)
		return bp, nil
	}
	if p.pos < len(p.src) && p.src[p.pos] == '}' {
		p.pos++
		return bp, nil
	}
	mod, err := p.scanParamModifier()
	if err != nil {
		return nil, err
	}
	bp.Modifier = mod
	opStart := p.pos
	operandParts, err := p.scanDoubleQuotableRun(func(b byte) bool { return b == '}' })
	if err != nil {
		return nil, err
	}
	var ou []ast.WordUnit
	for _, part := range operandParts {
		ou = append(ou, &ast.Unquoted{Value: part})
	}
	bp.Operand = &ast.Word{Units: ou, Loc: p.locFrom(opStart)}
	if p.pos >= len(p.src) || p.src[p.pos] != '}' {
		return nil, p.errf(start, "unterminated braced parameter expansion")
	}
	p.pos++ // }
	bp.Loc = p.locFrom(start)
	return bp, nil
}

func (p *Parser) scanParamModifier() (ast.ParamModifier, error) {
	colon := false
	if p.pos < len(p.src) && p.src[p.pos] == ':' {
		colon = true
		p.pos++
	}
	if p.pos >= len(p.src) {
		return ast.ModNone, p.errf(p.pos, "expected a parameter modifier")
	}
	b := p.src[p.pos]
	switch b {
	case '-':
		p.pos++
		return ast.ModUseDefaultUnset, requireColonConsistency(colon)
	case '=':
		p.pos++
		return ast.ModAssignDefaultUnset, requireColonConsistency(colon)
	case '?':
		p.pos++
		return ast.ModIndicateErrorUnset, requireColonConsistency(colon)
	case '+':
		p.pos++
		return ast.ModUseAlternativeSet, requireColonConsistency(colon)
	case '#':
		p.pos++
		if p.pos < len(p.src) && p.src[p.pos] == '#' {
			p.pos++
			return ast.ModTrimPrefixLongest, nil
		}
		return ast.ModTrimPrefixShortest, nil
	case '%':
		p.pos++
		if p.pos < len(p.src) && p.src[p.pos] == '%' {
			p.pos++
			return ast.ModTrimSuffixLongest, nil
		}
		return ast.ModTrimSuffixShortest, nil
	}
	return ast.ModNone, p.errf(p.pos, "invalid parameter modifier %q", string(b))
}

// requireColonConsistency is a no-op placeholder: the colon-prefixed and
// bare forms share the same ParamModifier constant, so parsing never
// rejects either spelling. The distinction is not kept: expansion treats
// both spellings as the colon form, and the printer writes the colon form.
func requireColonConsistency(bool) error { return nil }
