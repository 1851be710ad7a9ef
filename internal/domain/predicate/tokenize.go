package predicate

import (
	"strings"
	"unicode"
)

// Tokenize splits free text into lowercase search tokens. Characters common
// in technology names ('+', '#', '.') count as word characters so terms
// like "c++" and "node.js" survive tokenization intact. Trailing dots are
// stripped.
func Tokenize(text string) []string {
	var tokens []string
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if w != "" {
			tokens = append(tokens, w)
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}
