package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/folio/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips script injection",
			input:    `<p>Hello</p><script>alert('xss')</script>`,
			expected: "Hello",
		},
		{
			name:     "strips all HTML tags",
			input:    `<p>Hello <strong>world</strong></p>`,
			expected: "Hello world",
		},
		{
			name:     "strips event handlers",
			input:    `<img src="x" onerror="alert('xss')">`,
			expected: "",
		},
		{
			name:     "strips javascript URLs",
			input:    `<a href="javascript:alert('xss')">click</a>`,
			expected: "click",
		},
		{
			name:     "decodes entities",
			input:    `Tom &amp; Jerry's "Show"`,
			expected: `Tom & Jerry's "Show"`,
		},
		{
			name:     "keeps ampersand as plain text",
			input:    "Salt & Pepper",
			expected: "Salt & Pepper",
		},
		{
			name:     "trims surrounding whitespace",
			input:    "  <b> Launch Day </b>  ",
			expected: "Launch Day",
		},
		{
			name:     "strips style tags",
			input:    `Hello <STYLE>.XSS{background-image:url("javascript:alert('XSS')");}</STYLE>World`,
			expected: "Hello World",
		},
		{
			name:     "handles empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips script injection but keeps safe tags",
			input:    `<p>Hello</p><script>alert('xss')</script>`,
			expected: "<p>Hello</p>",
		},
		{
			name:     "allows basic formatting",
			input:    `<p>Hello <strong>world</strong></p>`,
			expected: "<p>Hello <strong>world</strong></p>",
		},
		{
			name:     "allows headings",
			input:    `<h2>Section</h2><p>text</p>`,
			expected: `<h2>Section</h2><p>text</p>`,
		},
		{
			name:     "allows lists",
			input:    `<ul><li>item 1</li><li>item 2</li></ul>`,
			expected: "<ul><li>item 1</li><li>item 2</li></ul>",
		},
		{
			name:     "allows code language class",
			input:    `<pre><code class="language-go">func main() {}</code></pre>`,
			expected: `<pre><code class="language-go">func main() {}</code></pre>`,
		},
		{
			name:     "allows blockquote",
			input:    `<blockquote>quoted text</blockquote>`,
			expected: "<blockquote>quoted text</blockquote>",
		},
		{
			name:     "strips event handlers",
			input:    `<p onclick="alert('xss')">content</p>`,
			expected: "<p>content</p>",
		},
		{
			name:     "strips style attribute",
			input:    `<p style="background:url(javascript:alert('xss'))">content</p>`,
			expected: "<p>content</p>",
		},
		{
			name:     "handles empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.SanitizeHTML(tt.input))
		})
	}
}

func TestSanitizeHTML_Links(t *testing.T) {
	t.Parallel()

	out := sanitizer.SanitizeHTML(`<a href="https://example.com">link</a>`)
	assert.Contains(t, out, `href="https://example.com"`)
	assert.Contains(t, out, "nofollow")
	assert.Contains(t, out, `target="_blank"`)

	out = sanitizer.SanitizeHTML(`<a href="javascript:alert('xss')">click</a>`)
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "click")
}

func TestSanitizeHTML_Images(t *testing.T) {
	t.Parallel()

	out := sanitizer.SanitizeHTML(`<img src="https://cdn.example.com/a.png" alt="cover" onerror="alert('xss')">`)
	assert.Contains(t, out, `src="https://cdn.example.com/a.png"`)
	assert.Contains(t, out, `alt="cover"`)
	assert.NotContains(t, out, "onerror")
}

func TestHTMLSanitizationXSSVectors(t *testing.T) {
	t.Parallel()

	vectors := []struct {
		name  string
		input string
	}{
		{name: "script tag", input: `<script>alert('XSS')</script>`},
		{name: "script tag with src", input: `<script src="https://evil.com/xss.js"></script>`},
		{name: "img onerror", input: `<img src="x" onerror="alert('XSS')">`},
		{name: "svg onload", input: `<svg onload="alert('XSS')">`},
		{name: "javascript protocol", input: `<a href="javascript:alert('XSS')">click</a>`},
		{name: "javascript protocol case variation", input: `<a href="JaVaScRiPt:alert('XSS')">click</a>`},
		{name: "vbscript protocol", input: `<a href="vbscript:msgbox('XSS')">click</a>`},
		{name: "style expression", input: `<div style="width:expression(alert('XSS'))">`},
		{name: "meta refresh", input: `<meta http-equiv="refresh" content="0;url=javascript:alert('XSS')">`},
		{name: "iframe", input: `<iframe src="javascript:alert('XSS')"></iframe>`},
		{name: "embed tag", input: `<embed src="javascript:alert('XSS')">`},
		{name: "form action", input: `<form action="javascript:alert('XSS')"><input type="submit"></form>`},
		{name: "details ontoggle", input: `<details open ontoggle="alert('XSS')">`},
	}

	for _, v := range vectors {
		t.Run("StripHTML_"+v.name, func(t *testing.T) {
			t.Parallel()

			result := sanitizer.StripHTML(v.input)
			assert.NotContains(t, result, "<script")
			assert.NotContains(t, result, "javascript:")
			assert.NotContains(t, result, "onerror=")
			assert.NotContains(t, result, "onload=")
			assert.NotContains(t, result, "alert(")
		})

		t.Run("SanitizeHTML_"+v.name, func(t *testing.T) {
			t.Parallel()

			result := sanitizer.SanitizeHTML(v.input)
			assert.NotContains(t, result, "<script")
			assert.NotContains(t, result, "javascript:")
			assert.NotContains(t, result, "onerror=")
			assert.NotContains(t, result, "onload=")
			assert.NotContains(t, result, "ontoggle=")
		})
	}
}

func TestPlainTextWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, sanitizer.PlainTextWords(""))
	assert.Equal(t, 4, sanitizer.PlainTextWords(`<p>one <b>two</b></p><p>three four</p>`))
	assert.Equal(t, 2, sanitizer.PlainTextWords("<script>a b c</script>hello world"))
}
