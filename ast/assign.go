// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package ast

// Value is either a Scalar or an Array (§3.3).
type Value interface {
	valueNode()
}

// Scalar is a possibly-empty Word value.
type Scalar struct {
	Value *Word
}

// Array is an ordered list of non-empty Words.
type Array struct {
	Values []*Word
}

func (*Scalar) valueNode() {}
func (*Array) valueNode()  {}

// Assign is an assignment to a variable: a non-empty name, a Value, and a
// Location (§3.3).
type Assign struct {
	Name  string
	Value Value
	Loc   Location
}

// ValidName reports whether s is a legal POSIX variable name: non-empty,
// composed of letters, digits and underscores, and not starting with a
// digit.
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == '_', b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
		case b >= '0' && b <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// TryIntoAssign implements the Word→Assign conversion of §3.3 and the
// "Assignment classification" property of §8.1: it succeeds iff w contains
// an unquoted '=' at some position k>0 and w's units up to k form a
// literal, valid-name prefix. On success name = w[0..k] and
// value = Scalar(w[k+1..]).
func TryIntoAssign(w *Word) (*Assign, bool) {
	var name []byte
	for ui, unit := range w.Units {
		uq, ok := unit.(*Unquoted)
		if !ok {
			return nil, false
		}
		lit, ok := uq.Value.(*Literal)
		if !ok {
			return nil, false
		}
		for i := 0; i < len(lit.Value); i++ {
			b := lit.Value[i]
			if b == '=' {
				if len(name) == 0 || !ValidName(string(name)) {
					return nil, false
				}
				rest := restWord(w, ui, lit, i+1)
				return &Assign{
					Name:  string(name),
					Value: &Scalar{Value: rest},
					Loc:   w.Loc,
				}, true
			}
			name = append(name, b)
		}
	}
	return nil, false
}

// restWord builds the Word covering everything in w after the '=' found at
// byte offset cut within lit, which is itself unit index ui of w.
func restWord(w *Word, ui int, lit *Literal, cut int) *Word {
	var units []WordUnit
	loc := w.Loc
	if cut < len(lit.Value) {
		tailLoc := lit.Loc
		if tailLoc.Code != nil {
			tailLoc.Start += cut
		}
		units = append(units, &Unquoted{Value: &Literal{Value: lit.Value[cut:], Loc: tailLoc}})
		loc = tailLoc
	}
	units = append(units, w.Units[ui+1:]...)
	return &Word{Units: units, Loc: loc}
}
