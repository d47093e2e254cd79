// Package article holds the article domain: the record shape, the storage
// contract and the service that runs the slug and canonical URL pipeline on
// create and update.
package article

import (
	"slices"
	"time"
)

// Status is the publication state of an article.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Image is an optional featured image.
type Image struct {
	URL string `json:"url" yaml:"url"`
	Alt string `json:"alt" yaml:"alt"`
}

// Article is a persisted blog post.
type Article struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	CanonicalURL    string    `json:"canonicalUrl"`
	Status          Status    `json:"status"`
	Categories      []string  `json:"categories"`
	Keywords        []string  `json:"keywords"`
	Content         string    `json:"content"`
	Excerpt         string    `json:"excerpt"`
	MetaTitle       string    `json:"metaTitle"`
	MetaDescription string    `json:"metaDescription"`
	FeaturedImage   *Image    `json:"featuredImage,omitempty"`
	AuthorID        string    `json:"authorId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Published reports whether the article is publicly visible.
func (a *Article) Published() bool {
	return a.Status == StatusPublished
}

// Clone returns a deep copy.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	c := *a
	c.Categories = slices.Clone(a.Categories)
	c.Keywords = slices.Clone(a.Keywords)
	if a.FeaturedImage != nil {
		img := *a.FeaturedImage
		c.FeaturedImage = &img
	}
	return &c
}

// HasCategory reports whether any of the given categories is set on the article.
func (a *Article) HasCategory(categories ...string) bool {
	for _, c := range categories {
		if slices.Contains(a.Categories, c) {
			return true
		}
	}
	return false
}

// Patch is a partial update. A nil field is left untouched; a non-nil field
// replaces the stored value, including with the empty value.
type Patch struct {
	Title           *string
	Slug            *string
	CanonicalURL    *string
	Status          *Status
	Categories      *[]string
	Keywords        *[]string
	Content         *string
	Excerpt         *string
	MetaTitle       *string
	MetaDescription *string
	// A non-nil image with an empty URL clears the featured image.
	FeaturedImage *Image
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p == Patch{}
}

// Apply merges p into a. Timestamps are the store's responsibility.
func (p Patch) Apply(a *Article) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Slug != nil {
		a.Slug = *p.Slug
	}
	if p.CanonicalURL != nil {
		a.CanonicalURL = *p.CanonicalURL
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Categories != nil {
		a.Categories = slices.Clone(*p.Categories)
	}
	if p.Keywords != nil {
		a.Keywords = slices.Clone(*p.Keywords)
	}
	if p.Content != nil {
		a.Content = *p.Content
	}
	if p.Excerpt != nil {
		a.Excerpt = *p.Excerpt
	}
	if p.MetaTitle != nil {
		a.MetaTitle = *p.MetaTitle
	}
	if p.MetaDescription != nil {
		a.MetaDescription = *p.MetaDescription
	}
	if p.FeaturedImage != nil {
		if p.FeaturedImage.URL == "" {
			a.FeaturedImage = nil
		} else {
			img := *p.FeaturedImage
			a.FeaturedImage = &img
		}
	}
}

// Filter narrows List results. Zero fields do not filter.
type Filter struct {
	Status   Status
	AuthorID string
	// Matches articles sharing at least one of the categories.
	Categories []string
	ExcludeID  string
	Limit      int
	Offset     int
}

// Match reports whether a satisfies every set field of f. Limit and Offset
// are ignored.
func (f Filter) Match(a *Article) bool {
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.AuthorID != "" && a.AuthorID != f.AuthorID {
		return false
	}
	if len(f.Categories) > 0 && !a.HasCategory(f.Categories...) {
		return false
	}
	if f.ExcludeID != "" && a.ID == f.ExcludeID {
		return false
	}
	return true
}
