// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package pattern

import (
	"regexp"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestCompileLiteral(t *testing.T) {
	c := qt.New(t)
	got, err := Compile(FromString("foo"), 0)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, "(?s)foo")
}

func TestCompileStar(t *testing.T) {
	c := qt.New(t)
	got, err := Compile(FromString("foo*bar"), EntireString)
	c.Assert(err, qt.IsNil)
	re := regexp.MustCompile(got)
	c.Assert(re.MatchString("foo-baz-bar"), qt.IsTrue)
	c.Assert(re.MatchString("foobar-extra"), qt.IsFalse)
}

func TestCompileQuotedStarIsLiteral(t *testing.T) {
	c := qt.New(t)
	src := FromString("foo*bar")
	src[3].Quoted = true // the '*' is quoted: must match itself
	got, err := Compile(src, EntireString)
	c.Assert(err, qt.IsNil)
	re := regexp.MustCompile(got)
	c.Assert(re.MatchString("foo*bar"), qt.IsTrue)
	c.Assert(re.MatchString("foo-bar"), qt.IsFalse)
}

func TestCompileFilenamesStarSkipsSlash(t *testing.T) {
	c := qt.New(t)
	got, err := Compile(FromString("*.go"), Filenames|EntireString)
	c.Assert(err, qt.IsNil)
	re := regexp.MustCompile(got)
	c.Assert(re.MatchString("main.go"), qt.IsTrue)
	c.Assert(re.MatchString("sub/main.go"), qt.IsFalse)
}

func TestCompileBracket(t *testing.T) {
	c := qt.New(t)
	got, err := Compile(FromString("[abc]"), EntireString)
	c.Assert(err, qt.IsNil)
	re := regexp.MustCompile(got)
	c.Assert(re.MatchString("b"), qt.IsTrue)
	c.Assert(re.MatchString("d"), qt.IsFalse)
}

func TestCompileBracketNegated(t *testing.T) {
	c := qt.New(t)
	got, err := Compile(FromString("[!abc]"), EntireString)
	c.Assert(err, qt.IsNil)
	re := regexp.MustCompile(got)
	c.Assert(re.MatchString("d"), qt.IsTrue)
	c.Assert(re.MatchString("a"), qt.IsFalse)
}

func TestCompileUnterminatedBracket(t *testing.T) {
	c := qt.New(t)
	_, err := Compile(FromString("[abc"), 0)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestHasMeta(t *testing.T) {
	c := qt.New(t)
	c.Assert(HasMeta(FromString("foo*bar")), qt.IsTrue)
	c.Assert(HasMeta(FromString("foobar")), qt.IsFalse)
	quoted := FromString("foo*bar")
	quoted[3].Quoted = true
	c.Assert(HasMeta(quoted), qt.IsFalse)
}
