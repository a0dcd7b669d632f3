package textutil

import (
	"regexp"
	"strings"
)

// Patterns are applied in declaration order; Normalize runs on every scored
// title pair, so all of them compile once at package load.
var (
	separatorPattern    = regexp.MustCompile(`\s*[:;-]\s*`)
	leadingThePattern   = regexp.MustCompile(`^(?:the\s+)+`)
	romanNumeralPattern = regexp.MustCompile(`\b(?:viii|vii|vi|v|iv|iii|ii)\b`)
	qualifierPattern    = regexp.MustCompile(`\s+(?:edition|version|release|remaster|hd|complete|special|limited|directors?)\b`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
)

var romanNumerals = map[string]string{
	"ii":   "2",
	"iii":  "3",
	"iv":   "4",
	"v":    "5",
	"vi":   "6",
	"vii":  "7",
	"viii": "8",
}

// Normalize canonicalizes a title for comparison. The pipeline lower-cases
// and trims, replaces subtitle separators (":", ";", "-") with spaces, strips
// a leading "The", maps Roman numerals II-VIII to digits as whole words,
// drops marketing qualifiers, and collapses whitespace. The function is pure
// and idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	if s == "" {
		return ""
	}
	s = separatorPattern.ReplaceAllString(s, " ")
	// Trim before the prefix strip so a separator-born leading space cannot
	// shield a "the" from removal.
	s = strings.TrimSpace(s)
	s = leadingThePattern.ReplaceAllString(s, "")
	s = romanNumeralPattern.ReplaceAllStringFunc(s, func(m string) string {
		return romanNumerals[m]
	})
	s = qualifierPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
