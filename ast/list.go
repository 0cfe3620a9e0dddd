// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package ast

import "github.com/mvdan-style/posh/token"

// Pipeline is a non-empty ordered list of Commands plus a negation flag
// (§3.5).
type Pipeline struct {
	Commands []Command
	Negated  bool
	Loc      Location
}

// AndOrOp is && (AndThen) or || (OrElse).
type AndOrOp int

const (
	AndThen AndOrOp = iota
	OrElse
)

func (op AndOrOp) String() string {
	if op == AndThen {
		return "&&"
	}
	return "||"
}

// Token returns the bijective token.Token for op (§4.1).
func (op AndOrOp) Token() token.Token {
	if op == AndThen {
		return token.ANDAND
	}
	return token.OROR
}

// AndOrOpFromToken is the inverse of AndOrOp.Token (§4.1).
func AndOrOpFromToken(t token.Token) (AndOrOp, error) {
	switch t {
	case token.ANDAND:
		return AndThen, nil
	case token.OROR:
		return OrElse, nil
	default:
		return 0, &InvalidConversionError{What: "and-or operator", Token: t}
	}
}

// AndOrPair is one `(op, Pipeline)` continuation of an AndOrList.
type AndOrPair struct {
	Op       AndOrOp
	Pipeline *Pipeline
}

// AndOrList is a first Pipeline followed by zero or more AndOrPairs
// (§3.5).
type AndOrList struct {
	First *Pipeline
	Rest  []*AndOrPair
	Loc   Location
}

// Item is an AndOrList and whether it runs asynchronously (§3.5).
type Item struct {
	AndOrList *AndOrList
	IsAsync   bool
	Loc       Location
}

// List is an ordered sequence of Items (§3.5).
type List struct {
	Items []*Item
}
