package retrie

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
	"unsafe"

	"github.com/coregx/retrie/engine"
)

// Policy selects what a Checklist does with matches.
type Policy int

const (
	// Deny treats listed words as unwanted: Filter drops texts that
	// contain them and CleanseText deletes them.
	Deny Policy = iota

	// Allow treats listed words as the only wanted content: Filter keeps
	// texts that contain them and CleanseText keeps only them.
	Allow

	// Replace substitutes every listed word with its mapped value.
	Replace
)

// String returns the lowercase policy name.
func (p Policy) String() string {
	switch p {
	case Deny:
		return "deny"
	case Allow:
		return "allow"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ErrInvalidPolicy is returned for unknown policies, and for Replace when no
// replacement mapping is given.
var ErrInvalidPolicy = errors.New("invalid checklist policy")

// ParsePolicy parses a policy name as returned by Policy.String.
// "blacklist" and "whitelist" are accepted as aliases.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "deny", "denylist", "blacklist":
		return Deny, nil
	case "allow", "allowlist", "whitelist":
		return Allow, nil
	case "replace", "replacer":
		return Replace, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// Checklist checks and mutates texts against a set of words.
//
// All policies share the same matching: IsListed reports whether the compiled
// pattern matches anywhere in a text. The policy decides what Filter and
// CleanseText do with that.
//
// The pattern is compiled when the checklist is created. Words may be added
// later through Trie(); the pattern is recompiled on next use.
type Checklist struct {
	*Retrie

	policy  Policy
	mapping map[string]string
}

// NewChecklist creates a Deny or Allow checklist over keys.
// Use NewReplacer for the Replace policy.
func NewChecklist(policy Policy, keys []string, config Config) (*Checklist, error) {
	return NewChecklistSeq(policy, slices.Values(keys), config)
}

// NewChecklistSeq is like NewChecklist but reads the keys from a sequence,
// iterating it once.
func NewChecklistSeq(policy Policy, keys iter.Seq[string], config Config) (*Checklist, error) {
	if policy != Deny && policy != Allow {
		return nil, fmt.Errorf("%w: %s checklist needs a replacement mapping", ErrInvalidPolicy, policy)
	}
	c := &Checklist{Retrie: New(config), policy: policy}
	c.trie.AddSeq(keys)
	if _, err := c.Compiled(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewDenylist creates a Deny checklist.
//
// Example:
//
//	deny, _ := retrie.NewDenylist([]string{"abc", "foo", "abs"}, retrie.DefaultConfig())
//	deny.IsDenied("a foobar") // false
func NewDenylist(keys []string, config Config) (*Checklist, error) {
	return NewChecklist(Deny, keys, config)
}

// NewAllowlist creates an Allow checklist.
//
// Example:
//
//	allow, _ := retrie.NewAllowlist([]string{"abc", "foo", "abs"}, retrie.DefaultConfig())
//	allow.CleanseText("bad abc foobar") // "abc"
func NewAllowlist(keys []string, config Config) (*Checklist, error) {
	return NewChecklist(Allow, keys, config)
}

// Policy returns the checklist's policy.
func (c *Checklist) Policy() Policy {
	return c.policy
}

// state returns the cached compiled pattern. Construction already compiled
// it once with the same boundary and flags, and trie fragments are always
// valid syntax, so a failure here is a broken invariant.
func (c *Checklist) state() *compiled {
	st, err := c.compiledState()
	if err != nil {
		panic("retrie: recompiling checklist pattern: " + err.Error())
	}
	return st
}

// IsListed reports whether any word matches anywhere in text. Empty matches
// do not count: a checklist without words, or one whose only word is "",
// lists nothing, and "" never makes a text listed.
func (c *Checklist) IsListed(text string) bool {
	st := c.state()
	if candidate, ok := st.tracker.Check(bytesOf(text)); ok && !candidate {
		return false
	}
	if !st.nullable {
		return st.re.MatchString(text)
	}
	return slices.ContainsFunc(st.re.FindAllString(text, -1), func(m string) bool { return m != "" })
}

// NotListed is the negation of IsListed.
func (c *Checklist) NotListed(text string) bool {
	return !c.IsListed(text)
}

// IsDenied reports whether text contains a listed word. Same as IsListed.
func (c *Checklist) IsDenied(text string) bool {
	return c.IsListed(text)
}

// IsAllowed reports whether text contains a listed word. Same as IsListed.
func (c *Checklist) IsAllowed(text string) bool {
	return c.IsListed(text)
}

// Filter returns a lazy, order-preserving sequence over texts:
//   - Deny yields the texts that are not listed
//   - Allow yields the texts that are listed
//   - Replace yields every text with its matches replaced
//
// texts is iterated once per iteration of the result.
func (c *Checklist) Filter(texts iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for text := range texts {
			switch c.policy {
			case Deny:
				if c.IsListed(text) {
					continue
				}
			case Allow:
				if !c.IsListed(text) {
					continue
				}
			case Replace:
				text = c.Replace(text, 0)
			}
			if !yield(text) {
				return
			}
		}
	}
}

// FilterSlice applies Filter to a slice and collects the result.
//
// Example:
//
//	deny, _ := retrie.NewDenylist([]string{"abc", "foo", "abs"}, retrie.DefaultConfig())
//	deny.FilterSlice([]string{"good", "abc", "foobar"}) // [good foobar]
func (c *Checklist) FilterSlice(texts []string) []string {
	return slices.Collect(c.Filter(slices.Values(texts)))
}

// CleanseText mutates text according to the policy:
//   - Deny deletes every match, leaving the surrounding text untouched
//   - Allow returns the concatenation of all matches, in order
//   - Replace replaces every match, as Replace(text, 0)
func (c *Checklist) CleanseText(text string) string {
	st := c.state()
	switch c.policy {
	case Allow:
		return strings.Join(st.re.FindAllString(text, -1), "")
	case Replace:
		return c.Replace(text, 0)
	default:
		return st.re.ReplaceAllStringFunc(text, -1, func(string) string { return "" })
	}
}

// Matches returns up to n non-overlapping, non-empty matches in text, left
// to right. n < 0 returns all.
func (c *Checklist) Matches(text string, n int) []string {
	st := c.state()
	if !st.nullable {
		return st.re.FindAllString(text, n)
	}
	var out []string
	for _, m := range st.re.FindAllString(text, -1) {
		if n >= 0 && len(out) == n {
			break
		}
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}

// Regexp returns the compiled pattern, for direct use with the engine API.
func (c *Checklist) Regexp() engine.Regexp {
	return c.state().re
}

// PrefilterStats describes the literal prefilter of a checklist.
type PrefilterStats struct {
	// Strategy names the search used, such as "memmem(foo)" or
	// "ahocorasick(12)".
	Strategy string

	// Checks counts the texts scanned; Rejects those without any literal.
	Checks  uint64
	Rejects uint64

	// Efficiency is Rejects/Checks, or 0 before the first check.
	Efficiency float64

	// Active is false once the prefilter was retired for rejecting too few
	// texts.
	Active bool
}

// PrefilterStats reports how the prefilter of the current pattern performs.
// ok is false when there is no prefilter: Config.Prefilter is off, matching
// is case-insensitive, or the words have no usable literal set.
func (c *Checklist) PrefilterStats() (stats PrefilterStats, ok bool) {
	tr := c.state().tracker
	if tr == nil {
		return PrefilterStats{}, false
	}
	stats.Strategy = tr.Inner().String()
	stats.Checks, stats.Rejects, stats.Efficiency, stats.Active = tr.Stats()
	return stats, true
}

// bytesOf views s as a byte slice without copying. The prefilter only reads.
func bytesOf(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
