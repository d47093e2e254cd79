package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/folio/internal/store"
	"github.com/dmitrymomot/folio/internal/user"
)

// UserStore keeps users with unique emails.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]*user.User
	byEmail map[string]string
	clock   clock
}

// NewUserStore creates an empty store.
func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]*user.User),
		byEmail: make(map[string]string),
	}
}

func (s *UserStore) Insert(_ context.Context, u *user.User) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[u.Email]; taken {
		return nil, store.Duplicate("user", "email", u.Email)
	}

	rec := *u
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.CreatedAt = s.clock.tick()

	s.byID[rec.ID] = &rec
	s.byEmail[rec.Email] = rec.ID
	out := rec
	return &out, nil
}

func (s *UserStore) Get(_ context.Context, id string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *rec
	return &out, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mu.RLock()
	id, ok := s.byEmail[email]
	s.mu.RUnlock()
	if !ok {
		return nil, store.ErrNotFound
	}
	return s.Get(ctx, id)
}
