// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

import (
	"strconv"
	"strings"

	"github.com/mvdan-style/posh/ast"
	"github.com/mvdan-style/posh/vars"
)

// expandRawParam expands an unbraced `$name` reference (§4.2.2).
func (e *Expander) expandRawParam(p *ast.RawParam, quoted bool) (Phrase, error) {
	return e.lookupParam(p.Name, quoted, p.Loc)
}

// ifsFirstByteOrSpace returns the first character of $IFS, ' ' when IFS
// is unset, or 0 when IFS is set but empty, for "$*"-style joining
// (§4.2.5 uses the same variable for field splitting).
func (e *Expander) ifsFirstByteOrSpace() rune {
	v, ok := e.Vars.Get("IFS")
	if !ok {
		return ' '
	}
	strs := v.Value.Strings()
	if len(strs) == 0 {
		return 0
	}
	for _, r := range strs[0] {
		return r
	}
	return 0
}

func (e *Expander) positionalStrings() []string {
	return e.Vars.PositionalParams().Value.Strings()
}

// lookupParam resolves name (bare or braced, without modifiers) to a
// Phrase, handling the dedicated special parameters of §4.2.2.
func (e *Expander) lookupParam(name string, quoted bool, loc ast.Location) (Phrase, error) {
	switch name {
	case "@":
		return e.expandArrayParam(e.positionalStrings(), quoted, loc, true), nil
	case "*":
		return e.expandArrayParam(e.positionalStrings(), quoted, loc, false), nil
	case "#":
		return softChars(strconv.Itoa(len(e.positionalStrings())), quoted, loc), nil
	case "?":
		return softChars(strconv.Itoa(e.Config.ExitStatus), quoted, loc), nil
	case "-":
		return softChars(e.Config.Flags, quoted, loc), nil
	case "$":
		return softChars(strconv.Itoa(e.Config.PID), quoted, loc), nil
	case "!":
		return softChars(strconv.Itoa(e.Config.LastAsyncPID), quoted, loc), nil
	case "0":
		return softChars(e.Config.Arg0, quoted, loc), nil
	}
	if n, err := strconv.Atoi(name); err == nil {
		params := e.positionalStrings()
		if n >= 1 && n <= len(params) {
			return softChars(params[n-1], quoted, loc), nil
		}
		return nil, nil
	}
	v, ok := e.Vars.Get(name)
	if !ok {
		return nil, nil
	}
	switch val := v.Value.(type) {
	case vars.Scalar:
		return softChars(string(val), quoted, loc), nil
	case vars.Array:
		return e.expandArrayParam(val.Strings(), quoted, loc, true), nil
	}
	return nil, nil
}

// expandArrayParam implements the "$@"/"$*" split described informally
// in §4.2.2: unquoted, both forms split on IFS like any other expansion,
// but quoted "$@" produces one field per element (via FieldBoundary
// markers) while quoted "$*" joins elements with the first IFS character
// into a single field.
func (e *Expander) expandArrayParam(values []string, quoted bool, loc ast.Location, atForm bool) Phrase {
	if len(values) == 0 {
		return nil
	}
	if !quoted || !atForm {
		sep := ""
		if r := e.ifsFirstByteOrSpace(); r != 0 {
			sep = string(r)
		}
		joined := strings.Join(values, sep)
		return softChars(joined, quoted, loc)
	}
	var out Phrase
	for i, v := range values {
		if i > 0 {
			out = append(out, AttrChar{Origin: FieldBoundary, Loc: loc})
		}
		out = append(out, softChars(v, true, loc)...)
	}
	return out
}

// expandBracedParam expands `${...}` forms, including the length form and
// the POSIX modifiers (§4.2.2).
func (e *Expander) expandBracedParam(bp *ast.BracedParam, quoted bool) (Phrase, error) {
	if bp.Length {
		ph, err := e.lookupParam(bp.Name, false, bp.Loc)
		if err != nil {
			return nil, err
		}
		n := 0
		for _, c := range ph {
			if c.Origin != FieldBoundary {
				n++
			}
		}
		return softChars(strconv.Itoa(n), quoted, bp.Loc), nil
	}

	ph, err := e.lookupParam(bp.Name, quoted, bp.Loc)
	if err != nil {
		return nil, err
	}
	isSet := e.paramIsSet(bp.Name)
	empty := len(ph) == 0

	switch bp.Modifier {
	case ast.ModNone:
		return ph, nil
	case ast.ModUseDefaultUnset:
		if !isSet || empty {
			return e.expandOperand(bp.Operand, quoted)
		}
		return ph, nil
	case ast.ModAssignDefaultUnset:
		if !isSet || empty {
			opPh, err := e.expandOperand(bp.Operand, quoted)
			if err != nil {
				return nil, err
			}
			val := phraseToString(opPh)
			loc := bp.Loc
			if _, err := e.Vars.Assign(vars.Global, bp.Name, vars.Variable{Value: vars.Scalar(val), LastAssigned: &loc}); err != nil {
				return nil, err
			}
			return opPh, nil
		}
		return ph, nil
	case ast.ModIndicateErrorUnset:
		if !isSet || empty {
			opPh, err := e.expandOperand(bp.Operand, quoted)
			if err != nil {
				return nil, err
			}
			msg := phraseToString(opPh)
			if msg == "" {
				msg = bp.Name + ": parameter null or not set"
			}
			return nil, &UnsetParameterError{Name: bp.Name, Message: msg, Loc: bp.Loc}
		}
		return ph, nil
	case ast.ModUseAlternativeSet:
		if isSet && !empty {
			return e.expandOperand(bp.Operand, quoted)
		}
		return nil, nil
	case ast.ModTrimPrefixShortest, ast.ModTrimPrefixLongest,
		ast.ModTrimSuffixShortest, ast.ModTrimSuffixLongest:
		opPh, err := e.expandOperand(bp.Operand, false)
		if err != nil {
			return nil, err
		}
		return trimModifier(ph, opPh, bp.Modifier), nil
	}
	return ph, nil
}

// paramIsSet reports whether name (which may be a special parameter) has
// a value at all, as opposed to being merely empty; it governs the
// unset-vs-set distinction the ":-"/":="/":?"/":+" modifiers make.
func (e *Expander) paramIsSet(name string) bool {
	switch name {
	case "@", "*":
		return len(e.positionalStrings()) > 0
	case "#", "?", "-", "$", "!", "0":
		return true
	}
	if n, err := strconv.Atoi(name); err == nil {
		return n >= 1 && n <= len(e.positionalStrings())
	}
	_, ok := e.Vars.Get(name)
	return ok
}

// UnsetParameterError is raised by the ":?" modifier (§4.2.2) when its
// parameter is unset or empty.
type UnsetParameterError struct {
	Name    string
	Message string
	Loc     ast.Location
}

func (e *UnsetParameterError) Error() string { return e.Message }

func (e *Expander) expandOperand(w *ast.Word, quoted bool) (Phrase, error) {
	if w == nil {
		return nil, nil
	}
	ph, err := e.ExpandWord(w)
	if err != nil {
		return nil, err
	}
	if !quoted {
		return ph, nil
	}
	out := make(Phrase, len(ph))
	for i, c := range ph {
		c.Quoted = true
		out[i] = c
	}
	return out, nil
}

func phraseToString(ph Phrase) string {
	var sb strings.Builder
	for _, c := range ph {
		if c.Origin == FieldBoundary || c.Quoting {
			continue
		}
		sb.WriteRune(c.Value)
	}
	return sb.String()
}
