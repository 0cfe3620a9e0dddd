// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package ast

import "github.com/mvdan-style/posh/token"

// RedirOp is one of the nine Normal redirection operators (§3.4).
type RedirOp int

const (
	RedirLess          RedirOp = iota // <
	RedirLessGreater                  // <>
	RedirGreater                      // >
	RedirDGreater                     // >>
	RedirClobber                      // >|
	RedirLessAnd                      // <&
	RedirGreaterAnd                   // >&
	RedirAppendClobber                // >>|
	RedirHereString                   // <<<
)

var redirOpNames = [...]string{"<", "<>", ">", ">>", ">|", "<&", ">&", ">>|", "<<<"}

func (op RedirOp) String() string {
	if int(op) < 0 || int(op) >= len(redirOpNames) {
		return "?"
	}
	return redirOpNames[op]
}

var redirOpTokens = [...]token.Token{
	token.LSS, token.RDRINOUT, token.GTR, token.SHR, token.CLOBBER,
	token.DPLIN, token.DPLOUT, token.APPEND_CLOBBER, token.HEREDOC_STR,
}

// Token returns the bijective token.Token for op (§4.1).
func (op RedirOp) Token() token.Token {
	return redirOpTokens[op]
}

// RedirOpFromToken is the inverse of RedirOp.Token; it fails (the "failed
// conversion is the specified error" of §4.1) for any token that is not one
// of the nine Normal redirection operators.
func RedirOpFromToken(t token.Token) (RedirOp, error) {
	for i, rt := range redirOpTokens {
		if rt == t {
			return RedirOp(i), nil
		}
	}
	return 0, &InvalidConversionError{What: "redirection operator", Token: t}
}

// DefaultFD returns 0 for input-class operators, 1 for output-class ones
// (§3.4).
func (op RedirOp) DefaultFD() int {
	switch op {
	case RedirLess, RedirLessGreater, RedirLessAnd, RedirHereString:
		return 0
	default:
		return 1
	}
}

// RedirBody is one of Normal or HereDoc (§3.4).
type RedirBody interface {
	redirBody()
	DefaultFD() int
}

// NormalRedir is an operator plus an operand Word.
type NormalRedir struct {
	Op      RedirOp
	Operand *Word
}

func (*NormalRedir) redirBody()        {}
func (n *NormalRedir) DefaultFD() int { return n.Op.DefaultFD() }

// HereDocRedir is a here-document: a delimiter Word, a remove_tabs flag
// (<<- vs <<), and a content Word that starts out empty and is filled in
// by the deferred here-doc resolution pass (§3.5 "here-doc deferral
// invariant", §4.1).
type HereDocRedir struct {
	Delimiter  *Word
	RemoveTabs bool
	Content    *Word
}

func (*HereDocRedir) redirBody()        {}
func (*HereDocRedir) DefaultFD() int { return 0 }

// Redir is an optional file descriptor plus a RedirBody (§3.4).
type Redir struct {
	FD   *int
	Body RedirBody
	Loc  Location
}

// FDOrDefault returns the explicit fd if present, else the body's default.
func (r *Redir) FDOrDefault() int {
	if r.FD != nil {
		return *r.FD
	}
	return r.Body.DefaultFD()
}

// InvalidConversionError is returned by the Token<->operator conversions of
// §4.1 when a token does not correspond to any member of the enum being
// converted into.
type InvalidConversionError struct {
	What  string
	Token token.Token
}

func (e *InvalidConversionError) Error() string {
	return "not a valid " + e.What + ": " + e.Token.String()
}
