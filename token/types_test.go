// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package token

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestStringKnownToken(t *testing.T) {
	c := qt.New(t)
	c.Assert(ANDAND.String(), qt.Equals, "&&")
	c.Assert(IF.String(), qt.Equals, "if")
}

func TestStringUnknownToken(t *testing.T) {
	c := qt.New(t)
	c.Assert(Token(9999).String(), qt.Equals, "ILLEGAL")
}

func TestKeywordsRoundTripToName(t *testing.T) {
	c := qt.New(t)
	for word, tok := range Keywords {
		c.Assert(tok.String(), qt.Equals, word)
	}
}

func TestIsRedirOperator(t *testing.T) {
	c := qt.New(t)
	for _, tok := range RedirOperators {
		c.Assert(IsRedirOperator(tok), qt.IsTrue)
	}
	c.Assert(IsRedirOperator(SHL), qt.IsFalse)
	c.Assert(IsRedirOperator(ANDAND), qt.IsFalse)
}
