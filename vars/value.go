// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package vars implements the variable-scoping model of §3.6–§3.7 and
// §4.3: a stacked VariableSet of Regular/Volatile Contexts, each variable
// binding tracked per owning context so that a popped context reveals the
// binding beneath it again.
package vars

import "github.com/mvdan-style/posh/ast"

// Value is a variable's runtime value: either a Scalar string or an Array
// of strings. Unlike ast.Value (which still holds unexpanded Words), this
// is the fully-expanded form stored after a SimpleCommand's word expansion
// completes.
type Value interface {
	valueNode()
	// Strings returns the value's fields: one for a Scalar, len(v) for an
	// Array.
	Strings() []string
}

// Scalar is a single string value.
type Scalar string

func (Scalar) valueNode()        {}
func (s Scalar) Strings() []string { return []string{string(s)} }

// Array is an ordered list of string values.
type Array []string

func (Array) valueNode()          {}
func (a Array) Strings() []string { return []string(a) }

// Variable is a named value together with provenance and access-control
// metadata (§3.6).
type Variable struct {
	Value        Value
	LastAssigned *ast.Location
	IsExported   bool
	// ReadOnly is non-nil iff the variable is read-only; its value is the
	// location of the command that made it so.
	ReadOnly *ast.Location
}

// IsReadOnly reports whether v is read-only.
func (v Variable) IsReadOnly() bool {
	return v.ReadOnly != nil
}
