package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/folio/internal/media"
	"github.com/dmitrymomot/folio/internal/store"
)

// MediaStore keeps media items with unique file names and URLs.
type MediaStore struct {
	mu     sync.RWMutex
	byID   map[string]*media.Item
	byName map[string]string
	byURL  map[string]string
	clock  clock
}

// NewMediaStore creates an empty store.
func NewMediaStore() *MediaStore {
	return &MediaStore{
		byID:   make(map[string]*media.Item),
		byName: make(map[string]string),
		byURL:  make(map[string]string),
	}
}

func (s *MediaStore) Insert(_ context.Context, item *media.Item) (*media.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byName[item.FileName]; taken {
		return nil, store.Duplicate("media", "fileName", item.FileName)
	}
	if _, taken := s.byURL[item.URL]; taken {
		return nil, store.Duplicate("media", "url", item.URL)
	}

	rec := item.Clone()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.UploadedAt = s.clock.tick()

	s.byID[rec.ID] = rec
	s.byName[rec.FileName] = rec.ID
	s.byURL[rec.URL] = rec.ID
	return rec.Clone(), nil
}

func (s *MediaStore) Get(_ context.Context, id string) (*media.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *MediaStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.byID, id)
	delete(s.byName, rec.FileName)
	delete(s.byURL, rec.URL)
	return nil
}

func (s *MediaStore) List(_ context.Context, uploadedBy string) ([]*media.Item, error) {
	s.mu.RLock()
	out := make([]*media.Item, 0, len(s.byID))
	for _, rec := range s.byID {
		if uploadedBy == "" || rec.UploadedBy == uploadedBy {
			out = append(out, rec.Clone())
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *media.Item) int {
		if c := b.UploadedAt.Compare(a.UploadedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}
