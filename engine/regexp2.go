package engine

import (
	"time"

	"github.com/dlclark/regexp2"
)

// Regexp2Name is the registered name of the regexp2 engine.
const Regexp2Name = "regexp2"

// Regexp2 compiles patterns with github.com/dlclark/regexp2.
//
// It supports the look-behind and look-ahead assertions retrie emits for
// custom boundary tokens.
type Regexp2 struct {
	// MatchTimeout bounds a single match operation. Zero means no limit.
	// When a timeout fires the operation reports no (further) match.
	MatchTimeout time.Duration
}

// Name implements Engine.
func (Regexp2) Name() string { return Regexp2Name }

// Options translates flags into regexp2 options.
func (Regexp2) Options(flags Flags) regexp2.RegexOptions {
	opts := regexp2.None
	if flags&FlagIgnoreCase != 0 {
		opts |= regexp2.IgnoreCase
	}
	return opts
}

// Compile implements Engine.
func (e Regexp2) Compile(pattern string, flags Flags) (Regexp, error) {
	re, err := regexp2.Compile(pattern, e.Options(flags))
	if err != nil {
		return nil, err
	}
	if e.MatchTimeout > 0 {
		re.MatchTimeout = e.MatchTimeout
	}
	return &regexp2Regexp{re: re}, nil
}

type regexp2Regexp struct {
	re *regexp2.Regexp
}

func (r *regexp2Regexp) String() string {
	return r.re.String()
}

// The regexp2 entry points only fail on MatchTimeout; the adapter treats a
// timed-out search as finding nothing more.

func (r *regexp2Regexp) MatchString(s string) bool {
	ok, err := r.re.MatchString(s)
	return err == nil && ok
}

func (r *regexp2Regexp) FindAllString(s string, n int) []string {
	var out []string
	m, err := r.re.FindStringMatch(s)
	for err == nil && m != nil && (n < 0 || len(out) < n) {
		out = append(out, m.String())
		m, err = r.re.FindNextMatch(m)
	}
	return out
}

func (r *regexp2Regexp) ReplaceAllStringFunc(s string, n int, repl func(string) string) string {
	if n == 0 {
		return s
	}
	if n < 0 {
		n = -1
	}
	out, err := r.re.ReplaceFunc(s, func(m regexp2.Match) string {
		return repl(m.String())
	}, -1, n)
	if err != nil {
		return s
	}
	return out
}
