// Package retrie builds compact, trie-shaped regular expressions from sets of
// literal strings and uses them for membership tests, filtering, and
// single-pass search-and-replace.
//
// A Retrie wraps a trie.Trie: the trie folds its words into an
// alternation-minimized fragment such as (?:ab[cs]|foo), and the Retrie
// surrounds that fragment with boundary assertions and hands it, with its
// flags, to a regex engine. Matching itself is done by the engine
// (github.com/dlclark/regexp2 by default, or the stdlib regexp package).
//
// Basic usage:
//
//	deny, err := retrie.NewDenylist([]string{"abc", "foo", "abs"}, retrie.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	deny.IsDenied("a foobar")          // false: "foo" is not a whole word here
//	deny.CleanseText("good abc foobar") // "good  foobar"
//
//	repl, err := retrie.NewReplacer(map[string]string{"abc": "new1", "foo": "new2"}, retrie.DefaultConfig())
//	repl.Replace("ABC ...foo...", 0) // "new1 ...new2..."
//
// Configuration:
//
//	config := retrie.DefaultConfig()
//	config.MatchSubstrings = true  // no boundary, match inside words
//	config.Flags = 0               // case-sensitive
//	config.Engine = engine.RE2{}   // stdlib regexp, no look-around
//
// Although the trie itself is case-sensitive, matching is case-insensitive by
// default. Set Config.Flags to 0 for case-sensitive matching.
package retrie

import (
	"iter"
	"sync"

	"github.com/coregx/retrie/engine"
	"github.com/coregx/retrie/literal"
	"github.com/coregx/retrie/prefilter"
	"github.com/coregx/retrie/trie"
)

// WordBoundary is the engine's zero-width word-boundary assertion. It is
// placed around the pattern as is; any other boundary token is wrapped in
// look-behind and look-ahead groups.
const WordBoundary = `\b`

// Flags selects matching semantics. See engine.Flags.
type Flags = engine.Flags

const (
	FlagIgnoreCase = engine.FlagIgnoreCase
	FlagUnicode    = engine.FlagUnicode

	// DefaultFlags is case-insensitive, Unicode-aware matching.
	DefaultFlags = FlagIgnoreCase | FlagUnicode
)

// Config controls how a Retrie wraps and compiles its pattern.
type Config struct {
	// WordBoundary is the token placed before and after the pattern.
	// WordBoundary (`\b`) is used verbatim; any other non-empty token t
	// becomes (?<=t) before and (?=t) after; "" adds nothing.
	// Default: `\b`
	WordBoundary string

	// Flags are passed to the engine. 0 means case-sensitive matching.
	// Default: FlagIgnoreCase | FlagUnicode
	Flags Flags

	// MatchSubstrings forces the boundary empty so that words match
	// inside longer words.
	// Default: false
	MatchSubstrings bool

	// Engine compiles the wrapped pattern. nil selects engine.Default().
	// Default: engine.Regexp2
	Engine engine.Engine

	// Prefilter enables literal prefiltering of membership tests. It only
	// takes effect for case-sensitive matching.
	// Default: true
	Prefilter bool
}

// DefaultConfig returns the default configuration: word boundaries,
// case-insensitive Unicode matching on the regexp2 engine, prefilter enabled.
func DefaultConfig() Config {
	return Config{
		WordBoundary: WordBoundary,
		Flags:        DefaultFlags,
		Engine:       engine.Default(),
		Prefilter:    true,
	}
}

// boundary returns the effective boundary token.
func (c Config) boundary() string {
	if c.MatchSubstrings {
		return ""
	}
	return c.WordBoundary
}

func (c Config) engine() engine.Engine {
	if c.Engine == nil {
		return engine.Default()
	}
	return c.Engine
}

// CompileOption overrides part of the stored configuration for a single
// Compile call.
type CompileOption func(*compileOptions)

type compileOptions struct {
	boundary string
	flags    Flags
}

// WithBoundary overrides the boundary token for one call. "" disables
// boundaries.
func WithBoundary(boundary string) CompileOption {
	return func(o *compileOptions) {
		o.boundary = boundary
	}
}

// WithFlags overrides the flags for one call. 0 means case-sensitive.
func WithFlags(flags Flags) CompileOption {
	return func(o *compileOptions) {
		o.flags = flags
	}
}

// Retrie owns a trie and compiles it into a boundary-wrapped pattern.
//
// The compiled pattern is cached and recomputed when the trie changes. Cache
// access is synchronized, so concurrent matching through Compiled is safe;
// mutating the trie concurrently with anything else is not.
type Retrie struct {
	trie   *trie.Trie
	config Config

	mu    sync.Mutex
	state *compiled
}

// compiled is the cached result for one trie generation.
type compiled struct {
	gen     uint64
	re      engine.Regexp
	tracker *prefilter.Tracker

	// nullable is set when the pattern can match the empty string, that is
	// when the trie is empty or holds "". Checklists ignore empty matches.
	nullable bool
}

// New creates a Retrie with an empty trie.
func New(config Config) *Retrie {
	return &Retrie{
		trie:   trie.New(),
		config: config,
	}
}

// Trie returns the underlying trie. Words added to it are picked up by the
// next Compiled call.
func (r *Retrie) Trie() *trie.Trie {
	return r.trie
}

// Config returns the stored configuration.
func (r *Retrie) Config() Config {
	return r.config
}

// Boundary returns the effective boundary token.
func (r *Retrie) Boundary() string {
	return r.config.boundary()
}

// Flags returns the stored flags.
func (r *Retrie) Flags() Flags {
	return r.config.Flags
}

// Engine returns the engine patterns are compiled with.
func (r *Retrie) Engine() engine.Engine {
	return r.config.engine()
}

// Pattern returns the trie's pattern fragment, without boundaries.
// An empty trie yields "".
func (r *Retrie) Pattern() string {
	return r.trie.Pattern()
}

// Source returns the full pattern handed to the engine: the fragment
// wrapped in the (possibly overridden) boundary.
//
// Example:
//
//	r := retrie.New(retrie.DefaultConfig())
//	r.Trie().Add("abc", "foo", "abs")
//	r.Source()                         // \b(?:ab[cs]|foo)\b
//	r.Source(retrie.WithBoundary(" ")) // (?<= )(?:ab[cs]|foo)(?= )
func (r *Retrie) Source(opts ...CompileOption) string {
	return wrap(r.Pattern(), r.options(opts).boundary)
}

func (r *Retrie) options(opts []CompileOption) compileOptions {
	o := compileOptions{
		boundary: r.config.boundary(),
		flags:    r.config.Flags,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func wrap(pattern, boundary string) string {
	switch boundary {
	case "":
		return pattern
	case WordBoundary:
		// \b is zero-width already; no group needed
		return boundary + pattern + boundary
	default:
		return "(?<=" + boundary + ")" + pattern + "(?=" + boundary + ")"
	}
}

// Compile compiles the current trie. Options override the stored boundary
// and flags for this call only; nothing is cached. Engine errors, such as
// those caused by an invalid custom boundary, are returned unmodified.
//
// Example:
//
//	r := retrie.New(retrie.DefaultConfig())
//	r.Trie().Add("foo")
//	re, _ := r.Compile(retrie.WithBoundary(""), retrie.WithFlags(0))
//	re.MatchString("afoobar") // true
//	re.MatchString("a FOObar") // false
func (r *Retrie) Compile(opts ...CompileOption) (engine.Regexp, error) {
	o := r.options(opts)
	return r.Engine().Compile(wrap(r.Pattern(), o.boundary), o.flags)
}

// Compiled returns the pattern compiled with the stored configuration.
// The result is cached and recomputed only after the trie has been mutated.
func (r *Retrie) Compiled() (engine.Regexp, error) {
	st, err := r.compiledState()
	if err != nil {
		return nil, err
	}
	return st.re, nil
}

// Recompile compiles the pattern with the stored configuration and replaces
// the cached result unconditionally.
func (r *Retrie) Recompile() (engine.Regexp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = nil
	st, err := r.buildLocked()
	if err != nil {
		return nil, err
	}
	return st.re, nil
}

func (r *Retrie) compiledState() (*compiled, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != nil && r.state.gen == r.trie.Generation() {
		return r.state, nil
	}
	return r.buildLocked()
}

func (r *Retrie) buildLocked() (*compiled, error) {
	pattern := r.Pattern()
	re, err := r.Engine().Compile(wrap(pattern, r.config.boundary()), r.config.Flags)
	if err != nil {
		return nil, err
	}
	st := &compiled{
		gen:      r.trie.Generation(),
		re:       re,
		nullable: pattern == "" || r.trie.Contains(""),
	}
	if r.config.Prefilter && r.config.Flags&FlagIgnoreCase == 0 {
		seq := literal.FromWords(nonEmpty(r.trie.Words()))
		st.tracker = prefilter.NewTracker(prefilter.NewBuilder(seq).Build())
	}
	r.state = st
	return st, nil
}

// nonEmpty drops "" from words.
func nonEmpty(words iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for w := range words {
			if w != "" && !yield(w) {
				return
			}
		}
	}
}
