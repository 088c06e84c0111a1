package engine

import (
	"regexp"
	"strings"
)

// RE2Name is the registered name of the stdlib engine.
const RE2Name = "re2"

// RE2 compiles patterns with the standard library's regexp package.
//
// RE2 syntax has no look-around, so only the word-boundary and empty boundary
// configurations can be compiled; others fail with the stdlib parse error.
type RE2 struct{}

// Name implements Engine.
func (RE2) Name() string { return RE2Name }

// Source returns pattern with flags rendered as an inline group, the form
// handed to regexp.Compile.
func (RE2) Source(pattern string, flags Flags) string {
	if flags&FlagIgnoreCase != 0 {
		return "(?i)" + pattern
	}
	return pattern
}

// Compile implements Engine.
func (e RE2) Compile(pattern string, flags Flags) (Regexp, error) {
	re, err := regexp.Compile(e.Source(pattern, flags))
	if err != nil {
		return nil, err
	}
	return &re2Regexp{re: re}, nil
}

type re2Regexp struct {
	re *regexp.Regexp
}

func (r *re2Regexp) String() string {
	return r.re.String()
}

func (r *re2Regexp) MatchString(s string) bool {
	return r.re.MatchString(s)
}

func (r *re2Regexp) FindAllString(s string, n int) []string {
	return r.re.FindAllString(s, n)
}

func (r *re2Regexp) ReplaceAllStringFunc(s string, n int, repl func(string) string) string {
	if n == 0 {
		return s
	}
	matches := r.re.FindAllStringIndex(s, n)
	if matches == nil {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])
		b.WriteString(repl(s[m[0]:m[1]]))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
