package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Separator joins words in a derived slug.
const Separator = '-'

var pattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// letters without a canonical decomposition to an ASCII base.
var replacer = strings.NewReplacer(
	"ß", "ss",
	"ẞ", "SS",
	"æ", "ae",
	"Æ", "AE",
	"œ", "oe",
	"Œ", "OE",
	"ø", "o",
	"Ø", "O",
	"ł", "l",
	"Ł", "L",
	"đ", "d",
	"Đ", "D",
	"þ", "th",
	"Þ", "TH",
)

// Derive maps a title to a slug. It returns "" when the title contains no
// letters or digits.
func Derive(title string) string {
	if title == "" {
		return ""
	}

	s := strings.ToLower(fold(title))

	var b strings.Builder
	b.Grow(len(s))

	pending := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteRune(Separator)
			}
			pending = false
			b.WriteRune(r)
		case r == Separator, r == '_', unicode.IsSpace(r):
			pending = true
		}
	}

	return b.String()
}

// Valid reports whether s is a well-formed slug.
func Valid(s string) bool {
	return pattern.MatchString(s)
}

// fold strips combining marks after canonical decomposition, so "é" becomes "e".
// A fresh transformer is built per call because transform chains keep state.
func fold(s string) string {
	s = replacer.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
