// Package prefilter provides fast rejection of texts that cannot contain a
// checklist match.
//
// A prefilter scans for the literal words of a checklist. When matching is
// case-sensitive, every match of the compiled pattern contains one of those
// literals verbatim, so a text without any literal occurrence can be rejected
// without running the regex engine at all. Boundary assertions only restrict
// matches further, so the rejection is valid for every boundary setting.
//
// Strategy selection:
//   - Single byte → memchr (bytes.IndexByte)
//   - Single literal, or a long shared prefix → memmem (bytes.Index)
//   - Many literals → Aho-Corasick automaton (github.com/coregx/ahocorasick)
//
// Example usage:
//
//	seq := literal.FromWords(trie.New("hello", "world").Words())
//	pf := prefilter.NewBuilder(seq).Build()
//	if pf != nil && !pf.IsMatch([]byte("foo bar")) {
//	    // no word occurs, the pattern cannot match
//	}
package prefilter

import (
	"bytes"
	"strconv"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/retrie/literal"
)

// MinPrefixLen is the shortest shared prefix worth searching for instead of
// building an automaton over all literals.
const MinPrefixLen = 3

// Prefilter tells whether some literal occurs in a text.
//
// A candidate is necessary but not sufficient for a pattern match: the caller
// must still confirm with the regex engine.
type Prefilter interface {
	// IsMatch reports whether haystack contains any candidate.
	IsMatch(haystack []byte) bool

	// String names the strategy, for debugging and tests.
	String() string
}

// Builder selects a prefilter strategy for a literal sequence.
type Builder struct {
	seq *literal.Seq
}

// NewBuilder creates a builder over seq. The sequence is not modified.
func NewBuilder(seq *literal.Seq) *Builder {
	return &Builder{seq: seq}
}

// Build constructs the prefilter, or returns nil when no literal set can
// reject anything: the sequence is empty or contains the empty literal.
func (b *Builder) Build() Prefilter {
	if b.seq.IsEmpty() || b.seq.HasEmpty() {
		return nil
	}

	seq := b.seq.Clone()
	seq.Minimize()

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return &memchrPrefilter{needle: lit.Bytes[0]}
		}
		return newMemmemPrefilter(lit.Bytes)
	}

	if prefix := seq.LongestCommonPrefix(); len(prefix) >= MinPrefixLen {
		return newMemmemPrefilter(prefix)
	}

	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{auto: auto, patterns: seq.Len()}
}

// memchrPrefilter searches for a single byte.
type memchrPrefilter struct {
	needle byte
}

func (p *memchrPrefilter) IsMatch(haystack []byte) bool {
	return bytes.IndexByte(haystack, p.needle) >= 0
}

func (p *memchrPrefilter) String() string {
	return "memchr(" + string(p.needle) + ")"
}

// memmemPrefilter searches for a single substring.
type memmemPrefilter struct {
	needle []byte
}

// newMemmemPrefilter copies needle so the prefilter never aliases the sequence.
func newMemmemPrefilter(needle []byte) Prefilter {
	n := make([]byte, len(needle))
	copy(n, needle)
	return &memmemPrefilter{needle: n}
}

func (p *memmemPrefilter) IsMatch(haystack []byte) bool {
	return bytes.Contains(haystack, p.needle)
}

func (p *memmemPrefilter) String() string {
	return "memmem(" + string(p.needle) + ")"
}

// ahoCorasickPrefilter searches for many literals at once.
type ahoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	patterns int
}

func (p *ahoCorasickPrefilter) IsMatch(haystack []byte) bool {
	return p.auto.IsMatch(haystack)
}

func (p *ahoCorasickPrefilter) String() string {
	return "ahocorasick(" + strconv.Itoa(p.patterns) + ")"
}
