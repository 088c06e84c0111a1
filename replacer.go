package retrie

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"
)

// ErrAmbiguousMapping is returned when case-folding the keys of a replacement
// mapping for case-insensitive matching makes two keys collide.
var ErrAmbiguousMapping = errors.New("ambiguous replacement mapping: case-folding keys yields duplicate keys")

// MappingError reports the keys that collide after case folding.
type MappingError struct {
	// Folded is the shared folded form, see FoldKey.
	Folded string

	// Keys are the original keys, sorted.
	Keys []string
}

// Error implements the error interface.
func (e *MappingError) Error() string {
	return fmt.Sprintf("ambiguous replacement mapping: keys %q all fold to %q", e.Keys, e.Folded)
}

// Unwrap returns ErrAmbiguousMapping.
func (e *MappingError) Unwrap() error {
	return ErrAmbiguousMapping
}

// NewReplacer creates a Replace checklist that substitutes occurrences of the
// keys of mapping with the corresponding values in a single pass.
//
// With FlagIgnoreCase, keys are folded with FoldKey up front and matches are
// looked up by their folded text. Two keys that differ only in case are then
// ambiguous and NewReplacer fails with a *MappingError.
//
// Example:
//
//	mapping := map[string]string{"abc": "new1", "foo": "new2", "abs": "new3"}
//	config := retrie.DefaultConfig()
//	config.MatchSubstrings = true
//	r, _ := retrie.NewReplacer(mapping, config)
//	r.Replace("ABS ...foo... foobar", 0) // "new3 ...new2... new2bar"
func NewReplacer(mapping map[string]string, config Config) (*Checklist, error) {
	effective := maps.Clone(mapping)
	if effective == nil {
		effective = map[string]string{}
	}
	if config.Flags&FlagIgnoreCase != 0 {
		folded, err := foldKeys(mapping)
		if err != nil {
			return nil, err
		}
		effective = folded
	}

	c := &Checklist{Retrie: New(config), policy: Replace, mapping: effective}
	c.trie.AddSeq(maps.Keys(mapping))
	if _, err := c.Compiled(); err != nil {
		return nil, err
	}
	return c, nil
}

// FoldKey returns the case-folded form of s that replacers use as lookup key
// under FlagIgnoreCase. Two strings that a case-insensitive match of either
// engine treats as equal fold to the same key: each rune is lowercased, then
// mapped to the lowercase of the smallest rune of its simple case-folding
// orbit, so 's', 'S' and 'ſ' all become 's' and the Kelvin sign becomes 'k'.
func FoldKey(s string) string {
	return strings.Map(foldRune, s)
}

func foldRune(r rune) rune {
	r = unicode.ToLower(r)
	least := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		least = min(least, f)
	}
	return unicode.ToLower(least)
}

// foldKeys returns mapping with folded keys. Collisions are reported for the
// smallest colliding folded key, so the error is deterministic.
func foldKeys(mapping map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(mapping))
	groups := make(map[string][]string, len(mapping))
	for k, v := range mapping {
		fk := FoldKey(k)
		out[fk] = v
		groups[fk] = append(groups[fk], k)
	}
	if len(out) == len(mapping) {
		return out, nil
	}

	for _, fk := range slices.Sorted(maps.Keys(groups)) {
		if keys := groups[fk]; len(keys) > 1 {
			slices.Sort(keys)
			return nil, &MappingError{Folded: fk, Keys: keys}
		}
	}
	return nil, ErrAmbiguousMapping
}

// Mapping returns a copy of the effective replacement mapping; with
// FlagIgnoreCase its keys are folded with FoldKey. It is nil for Deny and Allow
// checklists.
func (c *Checklist) Mapping() map[string]string {
	return maps.Clone(c.mapping)
}

// Replace substitutes occurrences of the mapping's keys with their values,
// left to right. At most count occurrences are replaced; count <= 0 replaces
// all of them.
//
// Replace panics when called on a Deny or Allow checklist, or when a match has
// no mapping entry. The latter cannot happen for a checklist built by
// NewReplacer unless words are added to its trie directly.
func (c *Checklist) Replace(text string, count int) string {
	if c.policy != Replace {
		panic("retrie: Replace called on " + c.policy.String() + " checklist")
	}
	st := c.state()
	if count <= 0 {
		count = -1
	}
	limit := count
	if st.nullable {
		// Empty matches are kept as is and must not use up count.
		limit = -1
	}
	fold := c.config.Flags&FlagIgnoreCase != 0
	replaced := 0
	return st.re.ReplaceAllStringFunc(text, limit, func(match string) string {
		if st.nullable {
			if match == "" || replaced == count {
				return match
			}
			replaced++
		}
		key := match
		if fold {
			key = FoldKey(match)
		}
		v, ok := c.mapping[key]
		if !ok {
			panic(fmt.Sprintf("retrie: match %q has no replacement (key %q)", match, key))
		}
		return v
	})
}
