// Package memory provides mutex-guarded in-process stores. They back the
// STORE_DRIVER=memory mode and the service tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/folio/internal/article"
	"github.com/dmitrymomot/folio/internal/store"
)

// ArticleStore keeps articles in a map with a slug index. The uniqueness
// check and the write happen under the same lock.
type ArticleStore struct {
	mu     sync.RWMutex
	byID   map[string]*article.Article
	bySlug map[string]string
	clock  clock
}

// NewArticleStore creates an empty store.
func NewArticleStore() *ArticleStore {
	return &ArticleStore{
		byID:   make(map[string]*article.Article),
		bySlug: make(map[string]string),
	}
}

func (s *ArticleStore) Insert(_ context.Context, a *article.Article) (*article.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.bySlug[a.Slug]; taken {
		return nil, store.Duplicate("article", "slug", a.Slug)
	}

	rec := a.Clone()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if _, exists := s.byID[rec.ID]; exists {
		return nil, store.Duplicate("article", "id", rec.ID)
	}
	now := s.clock.tick()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	s.byID[rec.ID] = rec
	s.bySlug[rec.Slug] = rec.ID
	return rec.Clone(), nil
}

func (s *ArticleStore) Update(_ context.Context, id string, p article.Patch) (*article.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if p.Slug != nil {
		if owner, taken := s.bySlug[*p.Slug]; taken && owner != id {
			return nil, store.Duplicate("article", "slug", *p.Slug)
		}
	}

	oldSlug := rec.Slug
	p.Apply(rec)
	rec.UpdatedAt = s.clock.tick()

	if rec.Slug != oldSlug {
		delete(s.bySlug, oldSlug)
		s.bySlug[rec.Slug] = id
	}
	return rec.Clone(), nil
}

func (s *ArticleStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.byID, id)
	delete(s.bySlug, rec.Slug)
	return nil
}

func (s *ArticleStore) Get(_ context.Context, id string) (*article.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *ArticleStore) GetBySlug(_ context.Context, slug string) (*article.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.bySlug[slug]
	if !ok {
		return nil, store.ErrNotFound
	}
	return s.byID[id].Clone(), nil
}

func (s *ArticleStore) List(_ context.Context, f article.Filter) ([]*article.Article, error) {
	s.mu.RLock()
	out := make([]*article.Article, 0, len(s.byID))
	for _, rec := range s.byID {
		if f.Match(rec) {
			out = append(out, rec.Clone())
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *article.Article) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return paginate(out, f.Offset, f.Limit), nil
}

// clock hands out strictly increasing timestamps at microsecond precision,
// matching what Postgres stores. Callers hold the store lock.
type clock struct {
	last time.Time
}

func (c *clock) tick() time.Time {
	now := time.Now().UTC().Truncate(time.Microsecond)
	if !now.After(c.last) {
		now = c.last.Add(time.Microsecond)
	}
	c.last = now
	return now
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
