// Package literal provides literal byte sequences extracted from a trie's word
// list and the operations needed to turn them into a prefilter.
//
// Every word of a checklist is a literal that a match must contain verbatim
// when matching is case-sensitive. If none of the literals occurs in a text,
// the compiled pattern cannot match it either, whatever boundary wraps it.
//
// Key concepts:
//   - A Literal is one word as bytes
//   - A Seq is the set of alternative literals of one checklist
//   - Minimize drops literals whose presence is implied by a shorter one
package literal

import (
	"bytes"
	"iter"
	"sort"
)

// Literal is a concrete byte sequence that every match of its word contains.
type Literal struct {
	Bytes []byte
}

// NewLiteral creates a Literal from b.
func NewLiteral(b []byte) Literal {
	return Literal{Bytes: b}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns the literal as text, for debugging.
func (l Literal) String() string {
	return "literal{" + string(l.Bytes) + "}"
}

// Seq is a set of alternative literals.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo")),
//	    literal.NewLiteral([]byte("bar")),
//	)
//	fmt.Println(seq.Len()) // 2
type Seq struct {
	literals []Literal
}

// NewSeq creates a sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// FromWords collects the words produced by words into a Seq, iterating once.
//
// Example:
//
//	seq := literal.FromWords(trie.New("abc", "foo").Words())
//	fmt.Println(seq.Strings()) // [abc foo]
func FromWords(words iter.Seq[string]) *Seq {
	s := &Seq{}
	for w := range words {
		s.literals = append(s.literals, Literal{Bytes: []byte(w)})
	}
	return s
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i. Panics if i is out of range.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// HasEmpty reports whether any literal is empty. An empty literal occurs
// everywhere, which makes the sequence useless as a filter.
func (s *Seq) HasEmpty() bool {
	if s == nil {
		return false
	}
	for _, lit := range s.literals {
		if len(lit.Bytes) == 0 {
			return true
		}
	}
	return false
}

// Strings returns the literals as strings, in sequence order.
func (s *Seq) Strings() []string {
	if s.IsEmpty() {
		return nil
	}
	out := make([]string, len(s.literals))
	for i, lit := range s.literals {
		out[i] = string(lit.Bytes)
	}
	return out
}

// Clone returns a deep copy of the sequence.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}

	cloned := make([]Literal, len(s.literals))
	for i, lit := range s.literals {
		b := make([]byte, len(lit.Bytes))
		copy(b, lit.Bytes)
		cloned[i] = Literal{Bytes: b}
	}
	return &Seq{literals: cloned}
}

// Minimize removes redundant literals from the sequence.
//
// For occurrence testing, a literal L is redundant if a shorter kept literal S
// occurs inside it: any text containing L also contains S. In ["foo",
// "foobar", "xfoo"], only "foo" is kept.
//
// Algorithm:
//  1. Sort literals by length (shortest first), ties by content
//  2. Keep a literal unless some already kept literal occurs inside it
//
// Time complexity: O(n² * m) where n = number of literals, m = average literal length
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foobar")),
//	    literal.NewLiteral([]byte("foo")),
//	)
//	seq.Minimize()
//	fmt.Println(seq.Len()) // 1
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	sort.SliceStable(s.literals, func(i, j int) bool {
		a, b := s.literals[i].Bytes, s.literals[j].Bytes
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return bytes.Compare(a, b) < 0
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, current := range s.literals {
		redundant := false
		for _, k := range kept {
			if bytes.Contains(current.Bytes, k.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, current)
		}
	}

	s.literals = kept
}

// LongestCommonPrefix returns the longest prefix shared by all literals.
// Returns an empty slice for an empty sequence.
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}

	prefix := s.literals[0].Bytes
	for i := 1; i < len(s.literals); i++ {
		prefix = commonPrefix(prefix, s.literals[i].Bytes)
		if len(prefix) == 0 {
			return []byte{}
		}
	}

	result := make([]byte, len(prefix))
	copy(result, prefix)
	return result
}

// commonPrefix returns the longest common prefix of a and b.
func commonPrefix(a, b []byte) []byte {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
