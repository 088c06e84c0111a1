package trie

// special lists the characters that carry meaning in a pattern, either outside
// a character class or inside one ('-' forms ranges, ']' closes the class).
// '#', '&' and '~' are escaped too so fragments stay literal under
// free-spacing and set-operation extensions of other engines.
const special = `\.+*?()|[]{}^$-#&~`

// QuoteMeta escapes every character of s that is special in a pattern, so the
// result matches s literally. It is safe both inside and outside a character
// class, and the escapes it produces are accepted by RE2 and by .NET-style
// engines alike.
//
// Example:
//
//	fmt.Println(trie.QuoteMeta("a.b-c")) // a\.b\-c
func QuoteMeta(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i]) {
			n++
		}
	}

	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i]) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

// isSpecial reports whether c must be escaped. All special characters are
// ASCII, so multi-byte UTF-8 sequences pass through untouched.
func isSpecial(c byte) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}
