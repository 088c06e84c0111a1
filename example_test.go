package retrie_test

import (
	"fmt"

	"github.com/coregx/retrie"
)

// ExampleNewDenylist demonstrates whole-word denial.
func ExampleNewDenylist() {
	deny, err := retrie.NewDenylist([]string{"abc", "foo", "abs"}, retrie.DefaultConfig())
	if err != nil {
		panic(err)
	}

	fmt.Println(deny.IsDenied("a foobar"))
	fmt.Println(deny.FilterSlice([]string{"good", "abc", "foobar"}))
	fmt.Printf("%q\n", deny.CleanseText("good abc foobar"))
	// Output:
	// false
	// [good foobar]
	// "good  foobar"
}

// ExampleNewAllowlist demonstrates substring allowing.
func ExampleNewAllowlist() {
	config := retrie.DefaultConfig()
	config.MatchSubstrings = true
	allow, err := retrie.NewAllowlist([]string{"abc", "foo", "abs"}, config)
	if err != nil {
		panic(err)
	}

	fmt.Println(allow.IsAllowed("a foobar"))
	fmt.Println(allow.FilterSlice([]string{"bad", "abc", "foobar"}))
	fmt.Println(allow.CleanseText("good abc foobar"))
	// Output:
	// true
	// [abc foobar]
	// abcfoo
}

// ExampleNewReplacer demonstrates single-pass replacement.
func ExampleNewReplacer() {
	mapping := map[string]string{"abc": "new1", "foo": "new2", "abs": "new3"}
	r, err := retrie.NewReplacer(mapping, retrie.DefaultConfig())
	if err != nil {
		panic(err)
	}

	fmt.Println(r.Replace("ABS ...foo... foobar", 0))
	// Output: new3 ...new2... foobar
}

// ExampleRetrie_Source demonstrates boundary wrapping.
func ExampleRetrie_Source() {
	r := retrie.New(retrie.DefaultConfig())
	r.Trie().Add("abc", "foo", "abs")

	fmt.Println(r.Pattern())
	fmt.Println(r.Source())
	fmt.Println(r.Source(retrie.WithBoundary(" ")))
	// Output:
	// (?:ab[cs]|foo)
	// \b(?:ab[cs]|foo)\b
	// (?<= )(?:ab[cs]|foo)(?= )
}

// ExampleRetrie_Compile demonstrates call-scoped overrides.
func ExampleRetrie_Compile() {
	r := retrie.New(retrie.DefaultConfig())
	r.Trie().Add("foo")

	re, err := r.Compile(retrie.WithBoundary(""), retrie.WithFlags(0))
	if err != nil {
		panic(err)
	}
	fmt.Println(re.MatchString("afoobar"))
	fmt.Println(re.MatchString("a FOObar"))
	// Output:
	// true
	// false
}
