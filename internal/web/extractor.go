package web

import "strings"

// ExtractorSource reads a value from the request.
type ExtractorSource = func(Context) (string, bool)

// Extractor tries sources in order and returns the first non-empty value.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor from sources.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract returns the first non-empty value.
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := c.Header(name)
		return v, v != ""
	}
}

// FromCookieSigned reads a verified signed cookie. Tampered cookies are ignored.
func FromCookieSigned(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v, err := c.CookieSigned(name)
		if err != nil || v == "" {
			return "", false
		}
		return v, true
	}
}

// FromBearerToken reads the token of an "Authorization: Bearer <token>" header.
func FromBearerToken() ExtractorSource {
	return func(c Context) (string, bool) {
		h := c.Header("Authorization")
		if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
			return "", false
		}
		token := strings.TrimSpace(h[7:])
		return token, token != ""
	}
}
