// Package canonical builds and validates the canonical URLs of blog articles.
//
// A canonical URL is the single authoritative absolute URL of an article,
// conventionally {origin}/blog/{slug}:
//
//	u, err := canonical.Build("hello-world", "https://example.com/")
//	// u == "https://example.com/blog/hello-world"
//
// The origin is always passed in explicitly. Servers resolve it from
// configuration through a [Builder] and never infer it from the request.
package canonical

import (
	"errors"
	"net/url"
	"strings"
)

// PathPrefix is the path under which articles are served.
const PathPrefix = "/blog/"

// ErrNoOrigin is returned when no base origin is available to build a URL.
var ErrNoOrigin = errors.New("canonical: no base origin configured")

// Build returns {origin}/blog/{slug} using the first non-empty origin.
// Exactly one trailing slash is stripped from the origin.
// An empty slug yields "{origin}/blog/".
func Build(slug string, origins ...string) (string, error) {
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		return strings.TrimSuffix(origin, "/") + PathPrefix + slug, nil
	}
	return "", ErrNoOrigin
}

// Valid reports whether u is an absolute http or https URL.
func Valid(u string) bool {
	if u == "" {
		return false
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}

// Builder resolves canonical URLs against a configured base URL.
// The zero value has no base URL and only succeeds with an explicit origin.
type Builder struct {
	baseURL string
}

// NewBuilder creates a Builder for the given base URL.
func NewBuilder(baseURL string) Builder {
	return Builder{baseURL: strings.TrimSpace(baseURL)}
}

// BaseURL returns the configured base URL without a trailing slash.
func (b Builder) BaseURL() string {
	return strings.TrimSuffix(b.baseURL, "/")
}

// Build returns the canonical URL for slug under the configured base URL.
func (b Builder) Build(slug string) (string, error) {
	return Build(slug, b.baseURL)
}

// BuildWith prefers origin over the configured base URL.
func (b Builder) BuildWith(slug, origin string) (string, error) {
	return Build(slug, origin, b.baseURL)
}
