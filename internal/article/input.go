package article

import (
	"slices"
	"strings"

	"github.com/dmitrymomot/folio/pkg/sanitizer"
)

// CreateInput is the payload accepted by Service.Create.
// Empty Slug and CanonicalURL are derived.
type CreateInput struct {
	Title           string   `json:"title" yaml:"title"`
	Slug            string   `json:"slug" yaml:"slug"`
	CanonicalURL    string   `json:"canonicalUrl" yaml:"canonicalUrl"`
	Status          Status   `json:"status" yaml:"status"`
	Categories      []string `json:"categories" yaml:"categories"`
	Keywords        []string `json:"keywords" yaml:"keywords"`
	Content         string   `json:"content" yaml:"content"`
	Excerpt         string   `json:"excerpt" yaml:"excerpt"`
	MetaTitle       string   `json:"metaTitle" yaml:"metaTitle"`
	MetaDescription string   `json:"metaDescription" yaml:"metaDescription"`
	FeaturedImage   *Image   `json:"featuredImage" yaml:"featuredImage"`
	// Set from the authenticated principal, never from the request body.
	AuthorID string `json:"-" yaml:"-"`
}

// UpdateInput is the payload accepted by Service.Update.
// A nil field is absent and left untouched. A non-nil empty string means the
// caller deliberately cleared the field; it is stored as is and never
// replaced by a derived value.
type UpdateInput struct {
	Title           *string   `json:"title"`
	Slug            *string   `json:"slug"`
	CanonicalURL    *string   `json:"canonicalUrl"`
	Status          *Status   `json:"status"`
	Categories      *[]string `json:"categories"`
	Keywords        *[]string `json:"keywords"`
	Content         *string   `json:"content"`
	Excerpt         *string   `json:"excerpt"`
	MetaTitle       *string   `json:"metaTitle"`
	MetaDescription *string   `json:"metaDescription"`
	// {"url": ""} removes the featured image.
	FeaturedImage *Image `json:"featuredImage"`
}

func plainText(s string) string {
	return sanitizer.StripHTML(s)
}

func plainTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := plainText(*s)
	return &v
}

func htmlPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := sanitizer.SanitizeHTML(*s)
	return &v
}

// cleanCategories trims labels, drops empties and duplicates, keeps order.
func cleanCategories(in []string) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		c = plainText(c)
		if c == "" || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// cleanKeywords trims terms and drops empties, keeps order and repeats.
func cleanKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, k := range in {
		if k = plainText(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func cleanImage(img *Image) *Image {
	if img == nil {
		return nil
	}
	return &Image{
		URL: strings.TrimSpace(img.URL),
		Alt: plainText(img.Alt),
	}
}
