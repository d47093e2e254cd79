package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/folio/internal/media"
	"github.com/dmitrymomot/folio/internal/store"
)

var mediaColumns = []string{
	"id::text", "file_name", "url", "alt_text", "uploaded_by::text",
	"size", "content_type", "storage_key", "uploaded_at",
}

// MediaStore implements media.Store.
type MediaStore struct {
	db DBTX
}

// NewMediaStore creates a MediaStore.
func NewMediaStore(db DBTX) *MediaStore {
	return &MediaStore{db: db}
}

func (s *MediaStore) Insert(ctx context.Context, item *media.Item) (*media.Item, error) {
	id := item.ID
	if id == "" {
		id = uuid.NewString()
	}

	query, args, err := psql.Insert("media_items").
		Columns("id", "file_name", "url", "alt_text", "uploaded_by", "size", "content_type", "storage_key").
		Values(id, item.FileName, item.URL, item.AltText, nullable(item.UploadedBy), item.Size, item.ContentType, item.StorageKey).
		Suffix("RETURNING " + strings.Join(mediaColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres: build insert media: %w", err)
	}

	out, err := scanMedia(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translate(err, "media", map[string]string{
			"fileName": item.FileName,
			"url":      item.URL,
			"id":       id,
		})
	}
	return out, nil
}

func (s *MediaStore) Get(ctx context.Context, id string) (*media.Item, error) {
	query, args, err := psql.Select(mediaColumns...).From("media_items").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres: build select media: %w", err)
	}
	out, err := scanMedia(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translate(err, "media", nil)
	}
	return out, nil
}

func (s *MediaStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM media_items WHERE id = $1`, id)
	if err != nil {
		return translate(err, "media", nil)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *MediaStore) List(ctx context.Context, uploadedBy string) ([]*media.Item, error) {
	q := psql.Select(mediaColumns...).From("media_items").OrderBy("uploaded_at DESC", "id")
	if uploadedBy != "" {
		if uuid.Validate(uploadedBy) != nil {
			return []*media.Item{}, nil
		}
		q = q.Where(sq.Eq{"uploaded_by": uploadedBy})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres: build list media: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "media", nil)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*media.Item, error) {
		return scanMedia(row)
	})
	if err != nil {
		return nil, translate(err, "media", nil)
	}
	return items, nil
}

func scanMedia(row pgx.Row) (*media.Item, error) {
	var (
		item       media.Item
		uploadedBy *string
	)
	err := row.Scan(
		&item.ID, &item.FileName, &item.URL, &item.AltText, &uploadedBy,
		&item.Size, &item.ContentType, &item.StorageKey, &item.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	item.UploadedBy = deref(uploadedBy)
	return &item, nil
}
