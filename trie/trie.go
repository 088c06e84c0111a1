// Package trie builds prefix trees over strings and folds them into compact,
// alternation-minimized regular-expression fragments.
//
// A naive union of N literals, (?:abc|abs|foo|...), grows with the sum of the
// literal lengths and makes a backtracking engine try every alternative in turn.
// The fragment produced by Trie.Pattern grows with the number of branch points
// instead: common prefixes are emitted once and single-character leaves are
// collapsed into character classes, so the engine commits to a branch after
// looking at one character per trie level.
//
// Basic usage:
//
//	t := trie.New("abc", "foo", "abs")
//	fmt.Println(t.Pattern()) // (?:ab[cs]|foo)
//
//	t.Add("absolute")
//	fmt.Println(t.Pattern()) // (?:ab(?:c|s(?:olute)?)|foo)
//
// A Trie is not safe for concurrent mutation. Pattern does not mutate the trie,
// so concurrent calls to Pattern on an unchanging trie are fine.
package trie

import (
	"iter"
	"slices"
	"strings"
)

// node is a single trie level. The end flag is the end-of-word sentinel: some
// inserted string terminates here. A node may be an end and still have children.
type node struct {
	children map[rune]*node
	end      bool
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// clone returns a deep copy of n. Nodes are never shared between tries.
func (n *node) clone() *node {
	c := &node{
		children: make(map[rune]*node, len(n.children)),
		end:      n.end,
	}
	for r, child := range n.children {
		c.children[r] = child.clone()
	}
	return c
}

// merge folds a copy of other into n.
func (n *node) merge(other *node) {
	if other.end {
		n.end = true
	}
	for r, oc := range other.children {
		if child, ok := n.children[r]; ok {
			child.merge(oc)
			continue
		}
		n.children[r] = oc.clone()
	}
}

func (n *node) equal(other *node) bool {
	if n.end != other.end || len(n.children) != len(other.children) {
		return false
	}
	for r, child := range n.children {
		oc, ok := other.children[r]
		if !ok || !child.equal(oc) {
			return false
		}
	}
	return true
}

// keys returns the child runes in ascending order.
func (n *node) keys() []rune {
	keys := make([]rune, 0, len(n.children))
	for r := range n.children {
		keys = append(keys, r)
	}
	slices.Sort(keys)
	return keys
}

// Trie is a prefix tree over the runes of the inserted strings.
//
// The zero value is not usable; create tries with New.
type Trie struct {
	root *node

	// gen is bumped on every mutation so that owners caching a compiled
	// pattern can tell when it went stale.
	gen uint64
}

// New creates a Trie holding the given words.
//
// Example:
//
//	t := trie.New("abc", "foo")
//	fmt.Println(t.Len()) // 2
func New(words ...string) *Trie {
	t := &Trie{root: newNode()}
	return t.Add(words...)
}

// Add inserts zero or more words and returns t for chaining.
// Inserting a word that is already present changes nothing.
//
// Example:
//
//	t := trie.New().Add("abc").Add("foo", "abs")
//	fmt.Println(t.Pattern()) // (?:ab[cs]|foo)
func (t *Trie) Add(words ...string) *Trie {
	for _, w := range words {
		t.insert(w)
	}
	return t
}

// AddSeq inserts every word produced by seq. The sequence is iterated once
// and never materialized, which suits large word lists streamed from disk.
func (t *Trie) AddSeq(seq iter.Seq[string]) *Trie {
	for w := range seq {
		t.insert(w)
	}
	return t
}

func (t *Trie) insert(word string) {
	ref := t.root
	for _, r := range word {
		child, ok := ref.children[r]
		if !ok {
			child = newNode()
			ref.children[r] = child
		}
		ref = child
	}
	ref.end = true
	t.gen++
}

// Merge returns a new Trie holding the union of t and other.
// Neither operand is modified and the result shares no nodes with them.
// A nil other is treated as an empty trie.
//
// Example:
//
//	a, b := trie.New("abc"), trie.New("foo")
//	fmt.Println(a.Merge(b).Equal(b.Merge(a))) // true
func (t *Trie) Merge(other *Trie) *Trie {
	merged := t.Clone()
	return merged.MergeInPlace(other)
}

// MergeInPlace folds other into t and returns t.
// Nodes taken from other are deep-copied, so later mutation of either trie
// never affects the other.
func (t *Trie) MergeInPlace(other *Trie) *Trie {
	if other == nil {
		return t
	}
	t.root.merge(other.root)
	t.gen++
	return t
}

// Clone returns a deep copy of t.
func (t *Trie) Clone() *Trie {
	return &Trie{root: t.root.clone()}
}

// Equal reports whether other is a *Trie with the same structure as t.
// Comparing against any other type returns false.
func (t *Trie) Equal(other any) bool {
	o, ok := other.(*Trie)
	if !ok || o == nil {
		return false
	}
	return t.root.equal(o.root)
}

// Contains reports whether word was inserted.
func (t *Trie) Contains(word string) bool {
	ref := t.root
	for _, r := range word {
		child, ok := ref.children[r]
		if !ok {
			return false
		}
		ref = child
	}
	return ref.end
}

// Len returns the number of distinct words in t.
func (t *Trie) Len() int {
	return count(t.root)
}

func count(n *node) int {
	c := 0
	if n.end {
		c++
	}
	for _, child := range n.children {
		c += count(child)
	}
	return c
}

// Generation returns a counter that changes whenever t is mutated.
func (t *Trie) Generation() uint64 {
	return t.gen
}

// Words yields the inserted words in ascending rune order.
// A word is yielded before the longer words it prefixes.
func (t *Trie) Words() iter.Seq[string] {
	return func(yield func(string) bool) {
		var buf []rune
		walk(t.root, &buf, yield)
	}
}

func walk(n *node, buf *[]rune, yield func(string) bool) bool {
	if n.end && !yield(string(*buf)) {
		return false
	}
	for _, r := range n.keys() {
		*buf = append(*buf, r)
		ok := walk(n.children[r], buf, yield)
		*buf = (*buf)[:len(*buf)-1]
		if !ok {
			return false
		}
	}
	return true
}

// Pattern compiles t into a non-capturing regular-expression fragment that
// matches exactly the inserted words. The empty trie yields "".
//
// The result is deterministic for a given set of words: children are visited
// in rune order and alternatives are sorted.
//
// Example:
//
//	t := trie.New("abc", "foo", "abs", "absolute")
//	fmt.Println(t.Pattern()) // (?:ab(?:c|s(?:olute)?)|foo)
func (t *Trie) Pattern() string {
	p, ok := pattern(t.root)
	if !ok {
		return ""
	}
	return p
}

// pattern returns the fragment for n. ok is false when n contributes nothing
// beyond what its parent emits: n has no children at all.
func pattern(n *node) (string, bool) {
	if len(n.children) == 0 {
		return "", false
	}

	var deeper, current []string
	for _, r := range n.keys() {
		char := QuoteMeta(string(r))
		if sub, ok := pattern(n.children[r]); ok {
			deeper = append(deeper, char+sub)
		} else {
			current = append(current, char)
		}
	}

	final := deeper
	switch len(current) {
	case 0:
	case 1:
		final = append(final, current[0])
	default:
		final = append(final, "["+strings.Join(current, "")+"]")
	}

	var result string
	if len(final) == 1 {
		result = final[0]
	} else {
		slices.Sort(final)
		result = "(?:" + strings.Join(final, "|") + ")"
	}

	if n.end {
		if len(deeper) == 0 {
			result += "?"
		} else {
			result = "(?:" + result + ")?"
		}
	}
	return result, true
}
