// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/mvdan-style/posh/ast"
	"github.com/mvdan-style/posh/pattern"
)

// expandCommandSubst runs body via the Runner, captures its stdout,
// strips trailing newlines, and appends the remainder as SoftExpansion
// characters (§4.2.3).
func (e *Expander) expandCommandSubst(body *ast.List, loc ast.Location, forceQuoted bool) (Phrase, error) {
	out, status, err := e.Runner.RunCaptured(body)
	if err != nil {
		return nil, err
	}
	e.LastCommandSubstStatus = status
	s := strings.TrimRight(string(out), "\n")
	return softChars(s, forceQuoted, loc), nil
}

// trimModifier implements the "#", "##", "%", "%%" modifiers (§4.2.2):
// opPh is the (already expanded, unquoted) pattern operand; value is
// matched against it as a prefix or suffix, greedily or not, and the
// matched run is removed from value.
func trimModifier(value, opPh Phrase, mod ast.ParamModifier) Phrase {
	qb := phraseToQuotedBytes(value)
	pat := phraseToQuotedBytes(opPh)
	suffix := mod == ast.ModTrimSuffixShortest || mod == ast.ModTrimSuffixLongest
	longest := mod == ast.ModTrimPrefixLongest || mod == ast.ModTrimSuffixLongest

	cut := findTrim(qb, pat, suffix, longest)
	if cut < 0 {
		return value
	}
	// cut counts bytes of qb; turn it into a count of value's AttrChars.
	chars := 0
	for seen := 0; seen < cut; chars++ {
		c := value[chars]
		if suffix {
			c = value[len(value)-1-chars]
		}
		if c.Origin != FieldBoundary && !c.Quoting {
			seen += len(string(c.Value))
		}
	}
	if suffix {
		return value[:len(value)-chars]
	}
	return value[chars:]
}

// findTrim returns the number of leading (or, if suffix, trailing)
// bytes of qb that a compiled pat matches, trying every candidate
// length and keeping the shortest or longest match depending on longest.
func findTrim(qb, pat []pattern.QuotedByte, suffix, longest bool) int {
	if len(pat) == 0 {
		return 0
	}
	best := -1
	n := len(qb)
	tryLen := func(l int) bool {
		var sub []pattern.QuotedByte
		if suffix {
			sub = qb[n-l:]
		} else {
			sub = qb[:l]
		}
		re, err := compileAnchored(sub, pat)
		if err != nil {
			return false
		}
		return re
	}
	if longest {
		for l := n; l >= 0; l-- {
			if tryLen(l) {
				best = l
				break
			}
		}
	} else {
		for l := 0; l <= n; l++ {
			if tryLen(l) {
				best = l
				break
			}
		}
	}
	return best
}

// compileAnchored reports whether pat (compiled as an entire-string
// pattern) matches the literal bytes sub exactly.
func compileAnchored(sub, pat []pattern.QuotedByte) (bool, error) {
	src, err := pattern.Compile(pat, pattern.EntireString)
	if err != nil {
		return false, err
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return false, err
	}
	return re.MatchString(quotedBytesToString(sub)), nil
}

// phraseToQuotedBytes flattens a Phrase's rune values into UTF-8 bytes,
// tagging every byte of a rune as Quoted iff the source AttrChar was
// Quoted; this is the bridge between the expander's AttrChar model and
// the pattern package's quote-aware glob compiler.
func phraseToQuotedBytes(ph Phrase) []pattern.QuotedByte {
	var out []pattern.QuotedByte
	for _, c := range ph {
		if c.Origin == FieldBoundary || c.Quoting {
			continue
		}
		for _, b := range []byte(string(c.Value)) {
			out = append(out, pattern.QuotedByte{B: b, Quoted: c.Quoted})
		}
	}
	return out
}

func quotedBytesToString(qb []pattern.QuotedByte) string {
	buf := make([]byte, len(qb))
	for i, b := range qb {
		buf[i] = b.B
	}
	return string(buf)
}

// ExpandWordToFields runs the complete pipeline of §4.2 over w: initial
// expansion, then field splitting, pathname expansion and quote removal.
func (e *Expander) ExpandWordToFields(w *ast.Word) ([]Field, error) {
	ph, err := e.ExpandWord(w)
	if err != nil {
		return nil, err
	}
	return e.splitAndGlob(ph)
}

// ExpandWordNoSplit runs initial expansion over w and quote removal, but
// skips field splitting and pathname expansion: the expansion a scalar
// assignment's right-hand side and a case subject get (§4.5 step 4, and
// POSIX's case-statement matching rule).
func (e *Expander) ExpandWordNoSplit(w *ast.Word) (string, error) {
	ph, err := e.ExpandWord(w)
	if err != nil {
		return "", err
	}
	return quoteRemove(ph), nil
}

// PhraseToQuotedBytes exposes phraseToQuotedBytes for callers (such as the
// execution engine's case-pattern matching) that need a Phrase's
// quote-aware byte sequence without going through field splitting.
func PhraseToQuotedBytes(ph Phrase) []pattern.QuotedByte {
	return phraseToQuotedBytes(ph)
}

// ifsClasses splits $IFS into its whitespace and non-whitespace members
// (§4.2.5); an unset IFS defaults to " \t\n".
func (e *Expander) ifsClasses() (ws, other string) {
	v, ok := e.Vars.Get("IFS")
	if !ok {
		return " \t\n", ""
	}
	strs := v.Value.Strings()
	val := ""
	if len(strs) > 0 {
		val = strs[0]
	}
	for _, r := range val {
		switch r {
		case ' ', '\t', '\n':
			ws += string(r)
		default:
			other += string(r)
		}
	}
	return ws, other
}

func (e *Expander) splitAndGlob(ph Phrase) ([]Field, error) {
	parts := e.splitFields(ph)
	var fields []Field
	for _, part := range parts {
		expanded, err := e.globField(part)
		if err != nil {
			return nil, err
		}
		fields = append(fields, expanded...)
	}
	return fields, nil
}

// splitFields implements the field-splitting half of §4.2.5: unquoted
// SoftExpansion characters that belong to IFS delimit fields, with IFS
// whitespace runs collapsing and trimming the way POSIX specifies, while
// every other IFS character always introduces a split (and so can
// produce empty fields). FieldBoundary AttrChars always force a split,
// regardless of IFS, so that "$@" keeps its per-element field identity.
func (e *Expander) splitFields(ph Phrase) []Phrase {
	ws, other := e.ifsClasses()
	var fields []Phrase
	var cur Phrase
	sawWS := false

	isWS := func(r rune) bool { return strings.ContainsRune(ws, r) }
	isOther := func(r rune) bool { return strings.ContainsRune(other, r) }

	for _, c := range ph {
		if c.Origin == FieldBoundary {
			fields = append(fields, cur)
			cur = nil
			sawWS = false
			continue
		}
		splittable := !c.Quoted && c.Origin == SoftExpansion
		if splittable && isWS(c.Value) {
			sawWS = true
			continue
		}
		if splittable && isOther(c.Value) {
			fields = append(fields, cur)
			cur = nil
			sawWS = false
			continue
		}
		if sawWS && len(cur) > 0 {
			fields = append(fields, cur)
			cur = nil
		}
		sawWS = false
		cur = append(cur, c)
	}
	if len(cur) > 0 || (len(fields) > 0 && !sawWS) {
		fields = append(fields, cur)
	}
	return fields
}

// globField runs pathname expansion (§4.2.5) over one already-split
// field, then quote removal. If the field has no unquoted glob
// metacharacters, or globbing is disabled, or no path matches, it passes
// through as a single literal field.
func (e *Expander) globField(part Phrase) ([]Field, error) {
	loc := fieldLoc(part)
	if e.Config.NoGlob {
		return []Field{{Value: quoteRemove(part), Loc: loc}}, nil
	}
	qb := phraseToQuotedBytes(part)
	if !pattern.HasMeta(qb) {
		return []Field{{Value: quoteRemove(part), Loc: loc}}, nil
	}
	matches, err := globMatches(qb)
	if err != nil || len(matches) == 0 {
		return []Field{{Value: quoteRemove(part), Loc: loc}}, nil
	}
	sort.Strings(matches)
	out := make([]Field, len(matches))
	for i, m := range matches {
		out[i] = Field{Value: m, Loc: loc}
	}
	return out, nil
}

func fieldLoc(part Phrase) ast.Location {
	for _, c := range part {
		if c.Origin != FieldBoundary {
			return c.Loc
		}
	}
	return ast.Location{}
}

// quoteRemove drops every Quoting AttrChar and every FieldBoundary
// marker, yielding the final string value of a field (§4.2.5).
func quoteRemove(part Phrase) string {
	var sb strings.Builder
	for _, c := range part {
		if c.Quoting || c.Origin == FieldBoundary {
			continue
		}
		sb.WriteRune(c.Value)
	}
	return sb.String()
}

// globMatches expands a pattern that may contain an embedded "/" by
// walking each path segment in turn, matching unquoted metacharacters
// against directory entries and literal (quote-removed) segments
// against themselves, mirroring how a POSIX pathname-expansion walk
// descends one directory level per slash-separated component.
func globMatches(qb []pattern.QuotedByte) ([]string, error) {
	segments := splitQuotedBytes(qb, '/')
	absolute := len(segments) > 0 && len(segments[0]) == 0
	cur := []string{"."}
	if absolute {
		cur = []string{"/"}
		segments = segments[1:]
	}
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var next []string
		segLiteral := !pattern.HasMeta(seg)
		for _, dir := range cur {
			if segLiteral {
				candidate := joinPath(dir, quotedBytesToString(seg))
				if _, err := os.Lstat(candidate); err == nil {
					next = append(next, candidate)
				}
				continue
			}
			src, err := pattern.Compile(seg, pattern.EntireString|pattern.Filenames)
			if err != nil {
				return nil, err
			}
			re, err := regexp.Compile(src)
			if err != nil {
				return nil, err
			}
			entries, err := os.ReadDir(dir)
			if err != nil {
				continue
			}
			for _, ent := range entries {
				name := ent.Name()
				if strings.HasPrefix(name, ".") && !strings.HasPrefix(quotedBytesToString(seg), ".") {
					continue
				}
				if re.MatchString(name) {
					next = append(next, joinPath(dir, name))
				}
			}
		}
		cur = next
	}
	return cur, nil
}

func joinPath(dir, name string) string {
	if dir == "." {
		return name
	}
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}

func splitQuotedBytes(qb []pattern.QuotedByte, sep byte) [][]pattern.QuotedByte {
	var out [][]pattern.QuotedByte
	start := 0
	for i, b := range qb {
		if b.B == sep && !b.Quoted {
			out = append(out, qb[start:i])
			start = i + 1
		}
	}
	out = append(out, qb[start:])
	return out
}
