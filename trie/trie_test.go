package trie

import (
	"regexp"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPatternIncremental(t *testing.T) {
	tr := New()
	if got := tr.Pattern(); got != "" {
		t.Fatalf("empty Pattern() = %q, want \"\"", got)
	}

	steps := []struct {
		add  []string
		want string
	}{
		{[]string{"abc", "foo", "abs"}, "(?:ab[cs]|foo)"},
		{[]string{"absolute"}, "(?:ab(?:c|s(?:olute)?)|foo)"},
		{[]string{"abx"}, "(?:ab(?:[cx]|s(?:olute)?)|foo)"},
		{[]string{"abxy"}, "(?:ab(?:c|s(?:olute)?|xy?)|foo)"},
		{[]string{"foe"}, "(?:ab(?:c|s(?:olute)?|xy?)|fo[eo])"},
		{[]string{"fo"}, "(?:ab(?:c|s(?:olute)?|xy?)|fo[eo]?)"},
	}

	for _, st := range steps {
		tr.Add(st.add...)
		if got := tr.Pattern(); got != st.want {
			t.Errorf("after Add(%q): Pattern() = %q, want %q", st.add, got, st.want)
		}
	}
}

func TestPattern(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		want  string
	}{
		{"single word", []string{"foo"}, "foo"},
		{"single char", []string{"a"}, "a"},
		{"char class", []string{"a", "b", "c"}, "[abc]"},
		{"empty word only", []string{""}, ""},
		{"empty word and word", []string{"", "abc"}, "(?:abc)?"},
		{"empty word and chars", []string{"", "a", "b"}, "[ab]?"},
		{"prefix word", []string{"ab", "abc"}, "abc?"},
		{"escaped metachars", []string{"a.b", "a*b"}, `a(?:\*b|\.b)`},
		{"escaped class", []string{"-", "]", "^"}, `[\-\]\^]`},
		{"unicode", []string{"über", "übel"}, "übe[lr]"},
		{"duplicates", []string{"foo", "foo"}, "foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.words...).Pattern(); got != tt.want {
				t.Errorf("Pattern() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestPatternMatchesUnion checks that the compiled fragment finds exactly the
// same leftmost-longest spans as a naive alternation of the words.
func TestPatternMatchesUnion(t *testing.T) {
	words := []string{"abc", "abs", "absolute", "abx", "abxy", "foo", "fo", "foe", "a.b", "x-y", "[z]"}
	inputs := []string{
		"abc absolute abxyz foo fo foe",
		"zzabsolutely a.b x-y [z] axb",
		"nothing here",
		"",
	}

	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	naive := regexp.MustCompile("(?:" + joinAlt(quoted) + ")")
	naive.Longest()
	compiled := regexp.MustCompile(New(words...).Pattern())
	compiled.Longest()

	for _, in := range inputs {
		want := naive.FindAllStringIndex(in, -1)
		got := compiled.FindAllStringIndex(in, -1)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("spans for %q differ (-naive +trie):\n%s", in, diff)
		}
	}
}

func joinAlt(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "|"
		}
		out += p
	}
	return out
}

func TestAddChaining(t *testing.T) {
	want := New("abc", "foo")

	candidates := []*Trie{
		New().MergeInPlace(New("abc")).Merge(New().Add("foo")),
		New([]string{"abc", "foo"}...),
		New().Add([]string{"abc", "foo"}...),
		New().Add("abc", "foo"),
		New().Add("abc").Add("foo"),
		New().AddSeq(slices.Values([]string{"foo", "abc"})),
	}

	for i, c := range candidates {
		if !c.Equal(want) {
			t.Errorf("candidate %d: not equal to New(\"abc\", \"foo\"); pattern %q", i, c.Pattern())
		}
	}
}

func TestAddIdempotent(t *testing.T) {
	a := New("abc", "abs")
	b := New("abc", "abs").Add("abc", "abs")
	if !a.Equal(b) {
		t.Errorf("re-inserting words changed the trie: %q vs %q", a.Pattern(), b.Pattern())
	}
	if a.Len() != 2 {
		t.Errorf("Len() = %d, want 2", a.Len())
	}
}

func TestMergeCommutative(t *testing.T) {
	a, b := New("abc"), New("foo")
	ab, ba := a.Merge(b), b.Merge(a)
	if ab.Pattern() != ba.Pattern() {
		t.Errorf("a+b = %q, b+a = %q", ab.Pattern(), ba.Pattern())
	}
	if !ab.Equal(ba) {
		t.Error("a+b not Equal to b+a")
	}
	if ab.Pattern() != "(?:abc|foo)" {
		t.Errorf("merged Pattern() = %q, want %q", ab.Pattern(), "(?:abc|foo)")
	}
}

func TestMergeAssociative(t *testing.T) {
	a, b, c := New("abc"), New("abs", "x"), New("foo", "ab")
	left := a.Merge(b).Merge(c)
	right := a.Merge(b.Merge(c))
	if !left.Equal(right) {
		t.Errorf("(a+b)+c = %q, a+(b+c) = %q", left.Pattern(), right.Pattern())
	}
}

func TestMergeNoAliasing(t *testing.T) {
	a, b := New("abc"), New("foo")
	merged := a.Merge(b)
	before := merged.Pattern()

	a.Add("abd")
	b.Add("food")
	if got := merged.Pattern(); got != before {
		t.Errorf("mutating operands changed merged trie: %q -> %q", before, got)
	}

	merged.Add("fox")
	if got := b.Pattern(); got != "food?" {
		t.Errorf("mutating merged trie changed operand: %q", got)
	}

	c := New("ab")
	c.MergeInPlace(b)
	b.Add("fob")
	if c.Contains("fob") {
		t.Error("in-place merge aliases operand nodes")
	}
}

func TestMergeNil(t *testing.T) {
	a := New("abc")
	if !a.Merge(nil).Equal(a) {
		t.Error("Merge(nil) should equal receiver")
	}
}

func TestEqual(t *testing.T) {
	a := New("abc")
	tests := []struct {
		name  string
		other any
		want  bool
	}{
		{"same words", New("abc"), true},
		{"different words", New("abd"), false},
		{"prefix only", New("ab"), false},
		{"string", "abc", false},
		{"nil", nil, false},
		{"nil trie", (*Trie)(nil), false},
		{"int", 42, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Equal(tt.other); got != tt.want {
				t.Errorf("Equal(%v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestWords(t *testing.T) {
	tr := New("foo", "abs", "abc", "absolute", "", "fo")
	got := slices.Collect(tr.Words())
	want := []string{"", "abc", "abs", "absolute", "fo", "foo"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Words() mismatch (-want +got):\n%s", diff)
	}

	var first []string
	for w := range tr.Words() {
		first = append(first, w)
		if len(first) == 2 {
			break
		}
	}
	if diff := cmp.Diff([]string{"", "abc"}, first); diff != "" {
		t.Errorf("early break mismatch (-want +got):\n%s", diff)
	}
}

func TestContains(t *testing.T) {
	tr := New("abc", "absolute")
	for _, w := range []string{"abc", "absolute"} {
		if !tr.Contains(w) {
			t.Errorf("Contains(%q) = false", w)
		}
	}
	for _, w := range []string{"ab", "abs", "abcd", ""} {
		if tr.Contains(w) {
			t.Errorf("Contains(%q) = true", w)
		}
	}
}

func TestGeneration(t *testing.T) {
	tr := New()
	g0 := tr.Generation()
	tr.Add("a")
	g1 := tr.Generation()
	if g1 == g0 {
		t.Error("Add did not change generation")
	}
	tr.MergeInPlace(New("b"))
	if tr.Generation() == g1 {
		t.Error("MergeInPlace did not change generation")
	}
	_ = tr.Pattern()
	if tr.Generation() == g0 {
		t.Error("generation went back")
	}
}

func TestPatternDeterministic(t *testing.T) {
	words := []string{"zeta", "alpha", "alp", "beta", "bet", "gamma", "g"}
	want := New(words...).Pattern()
	for i := 0; i < 20; i++ {
		shuffled := slices.Clone(words)
		slices.Reverse(shuffled)
		if i%2 == 0 {
			slices.Sort(shuffled)
		}
		if got := New(shuffled...).Pattern(); got != want {
			t.Fatalf("Pattern() depends on insertion order: %q vs %q", got, want)
		}
	}
}
