package reference

import "strings"

// smallWords are the connective words kept lowercase when title-casing a slug
// into an event name, unless they open the name.
var smallWords = map[string]bool{
	"a":    true,
	"an":   true,
	"and":  true,
	"at":   true,
	"but":  true,
	"by":   true,
	"for":  true,
	"in":   true,
	"of":   true,
	"on":   true,
	"or":   true,
	"the":  true,
	"to":   true,
	"with": true,
}

// IsSmallWord reports whether a token stays lowercase in title case.
func IsSmallWord(token string) bool {
	return smallWords[strings.ToLower(token)]
}

// TitleCaseTokens joins word tokens into a display name: every word gets a
// leading capital except recognized small words, which stay lowercase unless
// they come first.
func TitleCaseTokens(tokens []string) string {
	cased := make([]string, 0, len(tokens))

	for i, token := range tokens {
		if token == "" {
			continue
		}
		lower := strings.ToLower(token)
		if i > 0 && IsSmallWord(lower) {
			cased = append(cased, lower)
			continue
		}
		cased = append(cased, strings.ToUpper(lower[:1])+lower[1:])
	}

	return strings.Join(cased, " ")
}
