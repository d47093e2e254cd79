package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy  *bluemonday.Policy
	wordsPolicy   *bluemonday.Policy
	articlePolicy *bluemonday.Policy
	initOnce      sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// Block boundaries must not glue words together when counting.
		wordsPolicy = bluemonday.StrictPolicy()
		wordsPolicy.AddSpaceWhenStrippingTag(true)

		// Rich-text editor output: headings, images, tables and links on top of
		// the UGC baseline. Links get rel="nofollow".
		articlePolicy = bluemonday.UGCPolicy()
		articlePolicy.AllowElements("figure", "figcaption", "mark", "u", "s")
		articlePolicy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")
		articlePolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
}

// StripHTML removes every tag and returns trimmed plain text with entities decoded.
// The result must still be escaped when rendered.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	initPolicies()
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// SanitizeHTML keeps the formatting an article body needs and strips scripts,
// event handlers, inline styles and dangerous URL schemes.
func SanitizeHTML(s string) string {
	if s == "" {
		return ""
	}
	initPolicies()
	return articlePolicy.Sanitize(s)
}

// PlainTextWords counts whitespace-separated words in the text content of s.
func PlainTextWords(s string) int {
	if s == "" {
		return 0
	}
	initPolicies()
	return len(strings.Fields(html.UnescapeString(wordsPolicy.Sanitize(s))))
}
