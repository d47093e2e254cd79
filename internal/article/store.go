package article

import "context"

// Store persists articles. Implementations enforce slug uniqueness atomically
// and report collisions as store.ErrDuplicateKey, missing records as
// store.ErrNotFound.
type Store interface {
	Insert(ctx context.Context, a *Article) (*Article, error)
	Update(ctx context.Context, id string, p Patch) (*Article, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Article, error)
	GetBySlug(ctx context.Context, slug string) (*Article, error)
	// List returns matching articles, newest first.
	List(ctx context.Context, f Filter) ([]*Article, error)
}
