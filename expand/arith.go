// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mvdan-style/posh/ast"
	"github.com/mvdan-style/posh/vars"
)

// ArithErrorKind classifies a failure from the arithmetic evaluator
// (§4.2.4's error taxonomy).
type ArithErrorKind int

const (
	InvalidNumericConstant ArithErrorKind = iota
	InvalidCharacter
	IncompleteExpression
	MissingOperator
	UnclosedParen
	QuestionWithoutColon
	ColonWithoutQuestion
	InvalidOperator
	InvalidVariableValue
	Overflow
	DivisionByZero
	NegativeLeftShift
	NegativeShiftCount
	AssignToNonLvalue
	AssignToReadOnly
)

// ArithError is the typed error surfaced by arithmetic expansion, with an
// optional secondary location (e.g. the opening paren of an unclosed
// group, or the '?' of a ternary missing its ':').
type ArithError struct {
	Kind    ArithErrorKind
	Msg     string
	Pos     int
	Related *int
}

func (e *ArithError) Error() string { return e.Msg }

// expandArithExpansion expands a `$((...))` unit (§4.2.4): the body text
// is expanded like any double-quoted content, then the resulting string
// is evaluated as an integer expression.
func (e *Expander) expandArithExpansion(ae *ast.ArithExpansion, forceQuoted bool) (Phrase, error) {
	var exprPh Phrase
	for _, part := range ae.Body {
		ph, err := e.expandDoubleQuotable(part, false)
		if err != nil {
			return nil, err
		}
		exprPh = append(exprPh, ph...)
	}
	src := phraseToString(exprPh)

	code := ast.NewCode(src, ae.Loc.StartPosition().Line, ast.Source{
		Kind:     ast.SourceArith,
		Original: &ae.Loc,
	})

	ap := &arithParser{src: src, e: e, code: code}
	n, err := ap.run()
	if err != nil {
		return nil, err
	}
	return softChars(strconv.FormatInt(n, 10), forceQuoted, ae.Loc), nil
}

// arithParser is a small recursive-descent/precedence-climbing evaluator
// over the plain string an arithmetic expansion reduces to; POSIX gives
// that string no further quoting structure, so unlike the rest of the
// expander it works directly on bytes rather than AttrChars.
type arithParser struct {
	src  string
	pos  int
	e    *Expander
	code *ast.Code

	tokKind tokKind
	tokText string
	tokPos  int
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokNum
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokQuestion
	tokColon
	tokComma
)

func (ap *arithParser) errAt(kind ArithErrorKind, pos int, format string, args ...any) *ArithError {
	return &ArithError{Kind: kind, Msg: fmt.Sprintf(format, args...), Pos: pos}
}

func (ap *arithParser) run() (int64, error) {
	ap.next()
	if ap.tokKind == tokEOF {
		return 0, ap.errAt(IncompleteExpression, 0, "empty arithmetic expression")
	}
	v, err := ap.parseComma()
	if err != nil {
		return 0, err
	}
	if ap.tokKind != tokEOF {
		return 0, ap.errAt(MissingOperator, ap.tokPos, "unexpected %v after expression", ap.tokText)
	}
	return v, nil
}

func isArithSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool { return isIdentStart(b) || isDigit(b) }

// next advances to the following token, recognizing the longest operator
// spelling at each position.
func (ap *arithParser) next() {
	for ap.pos < len(ap.src) && isArithSpace(ap.src[ap.pos]) {
		ap.pos++
	}
	start := ap.pos
	if ap.pos >= len(ap.src) {
		ap.tokKind, ap.tokText, ap.tokPos = tokEOF, "", start
		return
	}
	b := ap.src[ap.pos]
	switch {
	case isDigit(b):
		ap.pos++
		for ap.pos < len(ap.src) && (isHexDigit(ap.src[ap.pos]) || ap.src[ap.pos] == 'x' || ap.src[ap.pos] == 'X') {
			ap.pos++
		}
		ap.tokKind, ap.tokText, ap.tokPos = tokNum, ap.src[start:ap.pos], start
	case isIdentStart(b):
		ap.pos++
		for ap.pos < len(ap.src) && isIdentCont(ap.src[ap.pos]) {
			ap.pos++
		}
		ap.tokKind, ap.tokText, ap.tokPos = tokIdent, ap.src[start:ap.pos], start
	case b == '(':
		ap.pos++
		ap.tokKind, ap.tokText, ap.tokPos = tokLParen, "(", start
	case b == ')':
		ap.pos++
		ap.tokKind, ap.tokText, ap.tokPos = tokRParen, ")", start
	case b == '?':
		ap.pos++
		ap.tokKind, ap.tokText, ap.tokPos = tokQuestion, "?", start
	case b == ':':
		ap.pos++
		ap.tokKind, ap.tokText, ap.tokPos = tokColon, ":", start
	case b == ',':
		ap.pos++
		ap.tokKind, ap.tokText, ap.tokPos = tokComma, ",", start
	default:
		ap.pos += ap.scanOpLen()
		ap.tokKind, ap.tokText, ap.tokPos = tokOp, ap.src[start:ap.pos], start
	}
}

// scanOpLen returns the length of the longest operator spelling starting
// at the current position, or 1 (leaving the invalid-character check to
// the parser, since an unrecognized single byte is still consumed as a
// one-character "operator" that no grammar rule will accept).
func (ap *arithParser) scanOpLen() int {
	rest := ap.src[ap.pos:]
	for _, op := range []string{
		"<<=", ">>=", "**",
		"==", "!=", "<=", ">=", "&&", "||", "<<", ">>",
		"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
		"+", "-", "*", "/", "%", "<", ">", "!", "~", "&", "|", "^", "=",
	} {
		if strings.HasPrefix(rest, op) {
			return len(op)
		}
	}
	return 1
}

func (ap *arithParser) expectRParen(openPos int) error {
	if ap.tokKind != tokRParen {
		err := ap.errAt(UnclosedParen, ap.tokPos, "unclosed parenthesis")
		err.Related = &openPos
		return err
	}
	ap.next()
	return nil
}

// parseComma handles the lowest-precedence comma operator: `a, b`
// evaluates both and yields b.
func (ap *arithParser) parseComma() (int64, error) {
	v, err := ap.parseAssign()
	if err != nil {
		return 0, err
	}
	for ap.tokKind == tokComma {
		ap.next()
		v, err = ap.parseAssign()
		if err != nil {
			return 0, err
		}
	}
	return v, nil
}

var compoundAssignOps = map[string]string{
	"+=": "+", "-=": "-", "*=": "*", "/=": "/", "%=": "%",
	"&=": "&", "|=": "|", "^=": "^", "<<=": "<<", ">>=": ">>",
}

func (ap *arithParser) parseAssign() (int64, error) {
	if ap.tokKind == tokIdent {
		name := ap.tokText
		namePos := ap.tokPos
		save := *ap
		ap.next()
		if ap.tokKind == tokOp && (ap.tokText == "=" || compoundAssignOps[ap.tokText] != "") {
			op := ap.tokText
			ap.next()
			rhs, err := ap.parseAssign()
			if err != nil {
				return 0, err
			}
			var result int64
			if op == "=" {
				result = rhs
			} else {
				cur, err := ap.readVar(name, namePos)
				if err != nil {
					return 0, err
				}
				result, err = applyBinOp(compoundAssignOps[op], cur, rhs)
				if err != nil {
					if ae, ok := err.(*ArithError); ok {
						ae.Pos = namePos
					}
					return 0, err
				}
			}
			if err := ap.assign(name, result, namePos); err != nil {
				return 0, err
			}
			return result, nil
		}
		*ap = save
	}
	return ap.parseTernary()
}

func (ap *arithParser) assign(name string, v int64, pos int) error {
	existing, _ := ap.e.Vars.Get(name)
	loc := ap.code.NewLocation(pos, pos+len(name))
	if existing.IsReadOnly() {
		return &ArithError{Kind: AssignToReadOnly, Msg: name + " is read-only", Pos: pos}
	}
	variable := vars.Variable{Value: vars.Scalar(strconv.FormatInt(v, 10)), LastAssigned: &loc}
	if _, err := ap.e.Vars.Assign(vars.Global, name, variable); err != nil {
		return &ArithError{Kind: AssignToReadOnly, Msg: err.Error(), Pos: pos}
	}
	return nil
}

func (ap *arithParser) parseTernary() (int64, error) {
	cond, err := ap.parseBinary(precLogicalOr)
	if err != nil {
		return 0, err
	}
	if ap.tokKind != tokQuestion {
		return cond, nil
	}
	qPos := ap.tokPos
	ap.next()
	thenV, err := ap.parseAssign()
	if err != nil {
		return 0, err
	}
	if ap.tokKind != tokColon {
		err := ap.errAt(QuestionWithoutColon, ap.tokPos, "'?' without matching ':'")
		err.Related = &qPos
		return 0, err
	}
	ap.next()
	elseV, err := ap.parseTernary()
	if err != nil {
		return 0, err
	}
	if cond != 0 {
		return thenV, nil
	}
	return elseV, nil
}

type precLevel int

const (
	precLogicalOr precLevel = iota
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
)

var precOps = map[precLevel][]string{
	precLogicalOr:      {"||"},
	precLogicalAnd:     {"&&"},
	precBitOr:          {"|"},
	precBitXor:         {"^"},
	precBitAnd:         {"&"},
	precEquality:       {"==", "!="},
	precRelational:     {"<", ">", "<=", ">="},
	precShift:          {"<<", ">>"},
	precAdditive:       {"+", "-"},
	precMultiplicative: {"*", "/", "%"},
}

func (ap *arithParser) parseBinary(level precLevel) (int64, error) {
	if level > precMultiplicative {
		return ap.parsePow()
	}
	left, err := ap.parseBinary(level + 1)
	if err != nil {
		return 0, err
	}
	for ap.tokKind == tokOp && containsOp(precOps[level], ap.tokText) {
		op := ap.tokText
		opPos := ap.tokPos
		ap.next()
		right, err := ap.parseBinary(level + 1)
		if err != nil {
			return 0, err
		}
		left, err = applyBinOp(op, left, right)
		if err != nil {
			if ae, ok := err.(*ArithError); ok {
				ae.Pos = opPos
			}
			return 0, err
		}
	}
	return left, nil
}

func containsOp(ops []string, s string) bool {
	for _, o := range ops {
		if o == s {
			return true
		}
	}
	return false
}

// parsePow handles right-associative "**", between multiplicative and
// unary precedence, a POSIX extension common across the corpus's shells.
func (ap *arithParser) parsePow() (int64, error) {
	base, err := ap.parseUnary()
	if err != nil {
		return 0, err
	}
	if ap.tokKind == tokOp && ap.tokText == "**" {
		ap.next()
		exp, err := ap.parsePow()
		if err != nil {
			return 0, err
		}
		return intPow(base, exp)
	}
	return base, nil
}

func (ap *arithParser) parseUnary() (int64, error) {
	if ap.tokKind == tokOp {
		switch ap.tokText {
		case "+":
			ap.next()
			return ap.parseUnary()
		case "-":
			ap.next()
			v, err := ap.parseUnary()
			if err != nil {
				return 0, err
			}
			if v == -v && v != 0 {
				return 0, ap.errAt(Overflow, ap.tokPos, "arithmetic overflow")
			}
			return -v, nil
		case "!":
			ap.next()
			v, err := ap.parseUnary()
			if err != nil {
				return 0, err
			}
			return boolInt(v == 0), nil
		case "~":
			ap.next()
			v, err := ap.parseUnary()
			if err != nil {
				return 0, err
			}
			return ^v, nil
		}
	}
	return ap.parsePrimary()
}

func (ap *arithParser) parsePrimary() (int64, error) {
	switch ap.tokKind {
	case tokNum:
		v, err := parseArithNumber(ap.tokText)
		if err != nil {
			return 0, ap.errAt(InvalidNumericConstant, ap.tokPos, "invalid numeric constant %v", ap.tokText)
		}
		ap.next()
		return v, nil
	case tokIdent:
		name := ap.tokText
		pos := ap.tokPos
		ap.next()
		return ap.readVar(name, pos)
	case tokLParen:
		openPos := ap.tokPos
		ap.next()
		v, err := ap.parseComma()
		if err != nil {
			return 0, err
		}
		if err := ap.expectRParen(openPos); err != nil {
			return 0, err
		}
		return v, nil
	case tokEOF:
		return 0, ap.errAt(IncompleteExpression, ap.tokPos, "incomplete arithmetic expression")
	case tokColon:
		return 0, ap.errAt(ColonWithoutQuestion, ap.tokPos, "':' without matching '?'")
	default:
		return 0, ap.errAt(InvalidOperator, ap.tokPos, "unexpected operator %v", ap.tokText)
	}
}

func (ap *arithParser) readVar(name string, pos int) (int64, error) {
	v, ok := ap.e.Vars.Get(name)
	if !ok {
		return 0, nil
	}
	strs := v.Value.Strings()
	if len(strs) == 0 || strs[0] == "" {
		return 0, nil
	}
	n, err := parseArithNumber(strings.TrimSpace(strs[0]))
	if err != nil {
		return 0, ap.errAt(InvalidVariableValue, pos, "invalid variable value %v", strs[0])
	}
	return n, nil
}

// parseArithNumber parses a decimal, 0x-hex, or leading-0 octal integer
// constant, the three forms POSIX arithmetic recognizes.
func parseArithNumber(s string) (int64, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	if len(s) > 1 && (s[1] == 'x' || s[1] == 'X') && s[0] == '0' {
		return strconv.ParseInt(s[2:], 16, 64)
	}
	if len(s) > 1 && s[0] == '0' {
		return strconv.ParseInt(s[1:], 8, 64)
	}
	return strconv.ParseInt(s, 10, 64)
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func intPow(base, exp int64) (int64, error) {
	if exp < 0 {
		return 0, &ArithError{Kind: InvalidOperator, Msg: "negative exponent"}
	}
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		if mulOverflows(result, base) {
			return 0, &ArithError{Kind: Overflow, Msg: "arithmetic overflow"}
		}
		result *= base
	}
	return result, nil
}

// addOverflows, subOverflows and mulOverflows detect int64 overflow the
// standard checked-arithmetic way: compare the signs of the operands
// against the sign of the result, since Go gives no built-in signed
// overflow check.
func addOverflows(x, y int64) bool {
	sum := x + y
	return ((x ^ sum) & (y ^ sum)) < 0
}

func subOverflows(x, y int64) bool {
	diff := x - y
	return ((x ^ y) & (x ^ diff)) < 0
}

func mulOverflows(x, y int64) bool {
	if x == 0 || y == 0 {
		return false
	}
	result := x * y
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return true
	}
	return result/y != x
}

func applyBinOp(op string, x, y int64) (int64, error) {
	switch op {
	case "+":
		if addOverflows(x, y) {
			return 0, &ArithError{Kind: Overflow, Msg: "arithmetic overflow"}
		}
		return x + y, nil
	case "-":
		if subOverflows(x, y) {
			return 0, &ArithError{Kind: Overflow, Msg: "arithmetic overflow"}
		}
		return x - y, nil
	case "*":
		if mulOverflows(x, y) {
			return 0, &ArithError{Kind: Overflow, Msg: "arithmetic overflow"}
		}
		return x * y, nil
	case "/":
		if y == 0 {
			return 0, &ArithError{Kind: DivisionByZero, Msg: "division by zero"}
		}
		return x / y, nil
	case "%":
		if y == 0 {
			return 0, &ArithError{Kind: DivisionByZero, Msg: "division by zero"}
		}
		return x % y, nil
	case "<<":
		if x < 0 {
			return 0, &ArithError{Kind: NegativeLeftShift, Msg: "left-shift of a negative value"}
		}
		if y < 0 {
			return 0, &ArithError{Kind: NegativeShiftCount, Msg: "negative shift count"}
		}
		if y >= 64 {
			if x != 0 {
				return 0, &ArithError{Kind: Overflow, Msg: "arithmetic overflow"}
			}
			return 0, nil
		}
		result := x << uint(y)
		if result>>uint(y) != x {
			return 0, &ArithError{Kind: Overflow, Msg: "arithmetic overflow"}
		}
		return result, nil
	case ">>":
		if y < 0 {
			return 0, &ArithError{Kind: NegativeShiftCount, Msg: "negative shift count"}
		}
		return x >> uint(y), nil
	case "<":
		return boolInt(x < y), nil
	case ">":
		return boolInt(x > y), nil
	case "<=":
		return boolInt(x <= y), nil
	case ">=":
		return boolInt(x >= y), nil
	case "==":
		return boolInt(x == y), nil
	case "!=":
		return boolInt(x != y), nil
	case "&":
		return x & y, nil
	case "|":
		return x | y, nil
	case "^":
		return x ^ y, nil
	case "&&":
		return boolInt(x != 0 && y != 0), nil
	case "||":
		return boolInt(x != 0 || y != 0), nil
	default:
		return 0, &ArithError{Kind: InvalidOperator, Msg: "invalid operator " + op}
	}
}
