// Package media manages the media library: externally hosted images
// registered by URL and images uploaded to object storage.
package media

import (
	"context"
	"time"
)

// Item is a media library entry. FileName and URL are each unique.
type Item struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	URL         string    `json:"url"`
	AltText     string    `json:"altText"`
	UploadedBy  string    `json:"uploadedBy,omitempty"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType,omitempty"`
	StorageKey  string    `json:"-"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// Clone returns a copy.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// Store persists media items. Duplicate file names or URLs are reported as
// store.ErrDuplicateKey.
type Store interface {
	Insert(ctx context.Context, item *Item) (*Item, error)
	Get(ctx context.Context, id string) (*Item, error)
	Delete(ctx context.Context, id string) error
	// List returns items newest first; an empty uploadedBy lists everything.
	List(ctx context.Context, uploadedBy string) ([]*Item, error)
}
