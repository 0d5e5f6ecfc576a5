package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ligatures are expanded before diacritics are stripped
var ligatures = map[rune]string{
	'œ': "oe", 'Œ': "oe",
	'æ': "ae", 'Æ': "ae",
	'ß': "ss",
}

var (
	nonSlugRegex = regexp.MustCompile(`[^a-z0-9]+`)
)

// Fold lowercases s, expands ligatures and drops diacritics.
// Example: "Tablier plombé Œdème" -> "tablier plombe oedeme"
func Fold(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if lig, ok := ligatures[r]; ok {
			b.WriteString(lig)
			continue
		}
		b.WriteRune(r)
	}

	// transform chains carry state, build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, b.String())
	if err != nil {
		return b.String()
	}
	return out
}

// Make generates a URL-friendly slug from a title
// Example: "Tablier plombé Premium" -> "tablier-plombe-premium"
func Make(title string) string {
	s := nonSlugRegex.ReplaceAllString(Fold(title), "-")
	return strings.Trim(s, "-")
}

// IsCanonical reports whether s is already in slug form
func IsCanonical(s string) bool {
	return s != "" && Make(s) == s
}
