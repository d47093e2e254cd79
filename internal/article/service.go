package article

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/folio/internal/store"
	"github.com/dmitrymomot/folio/pkg/canonical"
	"github.com/dmitrymomot/folio/pkg/sanitizer"
	"github.com/dmitrymomot/folio/pkg/slug"
)

// Service runs the slug and canonical URL pipeline in front of a Store.
// It holds no per-request state.
type Service struct {
	store     Store
	canonical canonical.Builder
}

// NewService creates a Service. The builder carries the configured base URL.
func NewService(s Store, b canonical.Builder) *Service {
	return &Service{store: s, canonical: b}
}

// Create validates input, fills in a derived slug and canonical URL when they
// are empty, and inserts the article.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Article, error) {
	title := plainText(in.Title)
	if title == "" {
		return nil, invalid("title", "title is required")
	}

	sl := strings.TrimSpace(in.Slug)
	if sl == "" {
		sl = slug.Derive(title)
		if sl == "" {
			return nil, invalid("slug", "title produces empty slug")
		}
	} else if !slug.Valid(sl) {
		return nil, invalid("slug", "must contain only lowercase letters, digits and single hyphens")
	}

	canon := strings.TrimSpace(in.CanonicalURL)
	if canon == "" {
		var err error
		if canon, err = s.canonical.Build(sl); err != nil {
			return nil, fmt.Errorf("article: build canonical url: %w", err)
		}
	} else if !canonical.Valid(canon) {
		return nil, invalid("canonicalUrl", "must be an absolute http or https URL")
	}

	status := in.Status
	if status == "" {
		status = StatusDraft
	}
	if !status.Valid() {
		return nil, invalid("status", "must be draft or published")
	}

	a := &Article{
		Title:           title,
		Slug:            sl,
		CanonicalURL:    canon,
		Status:          status,
		Categories:      cleanCategories(in.Categories),
		Keywords:        cleanKeywords(in.Keywords),
		Content:         sanitizer.SanitizeHTML(in.Content),
		Excerpt:         plainText(in.Excerpt),
		MetaTitle:       plainText(in.MetaTitle),
		MetaDescription: plainText(in.MetaDescription),
		AuthorID:        in.AuthorID,
	}
	if img := cleanImage(in.FeaturedImage); img != nil && img.URL != "" {
		a.FeaturedImage = img
	}

	created, err := s.store.Insert(ctx, a)
	if err != nil {
		return nil, translate(err, sl)
	}
	return created, nil
}

// Update applies a partial update. Slug is derived from Title only when Slug
// is absent and Title is present. The canonical URL is rebuilt only when it is
// absent and the slug changes to a non-empty value.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Article, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	p, err := s.patch(in)
	if err != nil {
		return nil, err
	}

	if p.Empty() {
		return s.store.Get(ctx, id)
	}

	updated, err := s.store.Update(ctx, id, p)
	if err != nil {
		var sl string
		if p.Slug != nil {
			sl = *p.Slug
		}
		return nil, translate(err, sl)
	}
	return updated, nil
}

func (s *Service) patch(in UpdateInput) (Patch, error) {
	p := Patch{
		Content:         htmlPtr(in.Content),
		Excerpt:         plainTextPtr(in.Excerpt),
		MetaTitle:       plainTextPtr(in.MetaTitle),
		MetaDescription: plainTextPtr(in.MetaDescription),
		FeaturedImage:   cleanImage(in.FeaturedImage),
	}

	if in.Title != nil {
		title := plainText(*in.Title)
		if title == "" {
			return Patch{}, invalid("title", "title is required")
		}
		p.Title = &title
	}

	switch {
	case in.Slug != nil:
		sl := strings.TrimSpace(*in.Slug)
		if sl != "" && !slug.Valid(sl) {
			return Patch{}, invalid("slug", "must contain only lowercase letters, digits and single hyphens")
		}
		p.Slug = &sl
	case p.Title != nil:
		sl := slug.Derive(*p.Title)
		if sl == "" {
			return Patch{}, invalid("slug", "title produces empty slug")
		}
		p.Slug = &sl
	}

	switch {
	case in.CanonicalURL != nil:
		canon := strings.TrimSpace(*in.CanonicalURL)
		if canon != "" && !canonical.Valid(canon) {
			return Patch{}, invalid("canonicalUrl", "must be an absolute http or https URL")
		}
		p.CanonicalURL = &canon
	case p.Slug != nil && *p.Slug != "":
		canon, err := s.canonical.Build(*p.Slug)
		if err != nil {
			return Patch{}, fmt.Errorf("article: build canonical url: %w", err)
		}
		p.CanonicalURL = &canon
	}

	if in.Status != nil {
		if !in.Status.Valid() {
			return Patch{}, invalid("status", "must be draft or published")
		}
		st := *in.Status
		p.Status = &st
	}
	if in.Categories != nil {
		c := cleanCategories(*in.Categories)
		p.Categories = &c
	}
	if in.Keywords != nil {
		k := cleanKeywords(*in.Keywords)
		p.Keywords = &k
	}

	return p, nil
}

// Delete removes an article permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	return s.store.Delete(ctx, id)
}

// Get returns an article by id.
func (s *Service) Get(ctx context.Context, id string) (*Article, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	return s.store.Get(ctx, id)
}

// List returns articles matching f, newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]*Article, error) {
	return s.store.List(ctx, f)
}

// Published returns the published article with the given slug. Drafts are
// reported as ErrNotFound.
func (s *Service) Published(ctx context.Context, sl string) (*Article, error) {
	if !slug.Valid(sl) {
		return nil, ErrNotFound
	}
	a, err := s.store.GetBySlug(ctx, sl)
	if err != nil {
		return nil, err
	}
	if !a.Published() {
		return nil, ErrNotFound
	}
	return a, nil
}

// Related returns up to limit published articles sharing a category with a.
func (s *Service) Related(ctx context.Context, a *Article, limit int) ([]*Article, error) {
	if len(a.Categories) == 0 || limit <= 0 {
		return nil, nil
	}
	return s.store.List(ctx, Filter{
		Status:     StatusPublished,
		Categories: a.Categories,
		ExcludeID:  a.ID,
		Limit:      limit,
	})
}

// Preview reports the slug and canonical URL a save would produce, without
// touching the store. An explicit slug takes precedence over the title.
func (s *Service) Preview(title, explicit string) (sl, canon string, valid bool, err error) {
	sl = strings.TrimSpace(explicit)
	if sl == "" {
		sl = slug.Derive(plainText(title))
	}
	valid = slug.Valid(sl)
	if canon, err = s.canonical.Build(sl); err != nil {
		return sl, "", valid, fmt.Errorf("article: build canonical url: %w", err)
	}
	return sl, canon, valid, nil
}

// translate maps a duplicate slug to ErrSlugConflict.
func translate(err error, sl string) error {
	if errors.Is(err, store.ErrDuplicateKey) && store.DuplicateField(err) == "slug" {
		return fmt.Errorf("%w: %q", ErrSlugConflict, sl)
	}
	return err
}

func validID(id string) bool {
	return uuid.Validate(id) == nil
}
