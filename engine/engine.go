// Package engine adapts external regular-expression engines to the small
// surface retrie needs: compile a pattern with a flag set, test for a match,
// collect matched spans, and substitute matches through a callback.
//
// Two engines are provided:
//   - Regexp2 (github.com/dlclark/regexp2): backtracking, supports look-behind
//     and look-ahead, Unicode-aware \w and \b. This is the default.
//   - RE2 (stdlib regexp): linear time, no look-around, ASCII \b.
//
// Patterns are passed through unmodified apart from flag translation, and
// compilation errors are returned exactly as the engine reports them.
package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Flags selects matching semantics.
type Flags uint8

const (
	// FlagIgnoreCase enables case-insensitive matching.
	FlagIgnoreCase Flags = 1 << iota

	// FlagUnicode requests Unicode-aware character classes. Regexp2 is
	// always Unicode-aware; RE2 ignores the flag.
	FlagUnicode
)

// String returns the flag set as "ignorecase|unicode", or "none".
func (f Flags) String() string {
	var parts []string
	if f&FlagIgnoreCase != 0 {
		parts = append(parts, "ignorecase")
	}
	if f&FlagUnicode != 0 {
		parts = append(parts, "unicode")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Regexp is a compiled pattern.
//
// Implementations are safe for concurrent use.
type Regexp interface {
	// String returns the source pattern as handed to the engine.
	String() string

	// MatchString reports whether s contains any match.
	MatchString(s string) bool

	// FindAllString returns successive non-overlapping matches of s.
	// At most n matches are returned; n < 0 means all.
	FindAllString(s string, n int) []string

	// ReplaceAllStringFunc replaces at most n non-overlapping matches,
	// left to right, with the return value of repl applied to the matched
	// text. n < 0 means all.
	ReplaceAllStringFunc(s string, n int, repl func(string) string) string
}

// Engine compiles patterns into Regexps.
type Engine interface {
	// Name identifies the engine in configuration and generated code.
	Name() string

	// Compile compiles pattern with the given flags.
	Compile(pattern string, flags Flags) (Regexp, error)
}

// ErrUnknownEngine is returned by Lookup for unregistered names.
var ErrUnknownEngine = errors.New("unknown regex engine")

// Default returns the engine used when none is configured.
func Default() Engine {
	return Regexp2{}
}

// Lookup returns the engine registered under name. The empty name selects
// the default engine.
func Lookup(name string) (Engine, error) {
	switch strings.ToLower(name) {
	case "", Regexp2Name:
		return Regexp2{}, nil
	case RE2Name, "regexp", "stdlib":
		return RE2{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}
