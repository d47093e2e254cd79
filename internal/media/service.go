package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/folio/internal/store"
	"github.com/dmitrymomot/folio/pkg/canonical"
	"github.com/dmitrymomot/folio/pkg/sanitizer"
	"github.com/dmitrymomot/folio/pkg/storage"
)

// DefaultMaxUploadSize caps uploads when no limit is configured.
const DefaultMaxUploadSize = 10 << 20

// RegisterInput registers an image already hosted elsewhere.
type RegisterInput struct {
	FileName string `json:"fileName"`
	URL      string `json:"url"`
	AltText  string `json:"altText"`
	Size     int64  `json:"size"`
}

// Service manages the media library. Uploads need a Storage; without one
// UploadConfigured reports false and Upload fails with ErrNotConfigured.
type Service struct {
	store     Store
	storage   storage.Storage
	maxUpload int64
	log       *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithStorage enables uploads.
func WithStorage(s storage.Storage) Option {
	return func(svc *Service) {
		svc.storage = s
	}
}

// WithMaxUploadSize sets the upload size limit in bytes.
func WithMaxUploadSize(n int64) Option {
	return func(svc *Service) {
		if n > 0 {
			svc.maxUpload = n
		}
	}
}

// WithLogger sets the logger used for non-fatal cleanup failures.
func WithLogger(l *slog.Logger) Option {
	return func(svc *Service) {
		svc.log = l
	}
}

// NewService creates a Service.
func NewService(st Store, opts ...Option) *Service {
	s := &Service{
		store:     st,
		maxUpload: DefaultMaxUploadSize,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UploadConfigured reports whether Upload can store files.
func (s *Service) UploadConfigured() bool {
	return s.storage != nil
}

// MaxUploadSize returns the upload limit in bytes.
func (s *Service) MaxUploadSize() int64 {
	return s.maxUpload
}

// Register records an externally hosted image.
func (s *Service) Register(ctx context.Context, uploadedBy string, in RegisterInput) (*Item, error) {
	fileName := strings.TrimSpace(in.FileName)
	url := strings.TrimSpace(in.URL)
	alt := sanitizer.StripHTML(in.AltText)

	switch {
	case fileName == "":
		return nil, fmt.Errorf("%w: fileName is required", ErrInvalidInput)
	case url == "":
		return nil, fmt.Errorf("%w: url is required", ErrInvalidInput)
	case alt == "":
		return nil, fmt.Errorf("%w: altText is required", ErrInvalidInput)
	case !canonical.Valid(url):
		return nil, fmt.Errorf("%w: url must be an absolute http or https URL", ErrInvalidInput)
	case in.Size < 0:
		return nil, fmt.Errorf("%w: size must not be negative", ErrInvalidInput)
	}

	return s.insert(ctx, &Item{
		FileName:   fileName,
		URL:        url,
		AltText:    alt,
		UploadedBy: uploadedBy,
		Size:       in.Size,
	})
}

// Upload stores an image in object storage with public-read access and
// records it. The alt text defaults to the file name. The stored object is
// removed again when the record cannot be inserted.
func (s *Service) Upload(ctx context.Context, uploadedBy string, fh *multipart.FileHeader, altText string) (*Item, error) {
	if s.storage == nil {
		return nil, ErrNotConfigured
	}
	if fh == nil {
		return nil, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}

	info, err := storage.PutFile(ctx, s.storage, fh,
		storage.WithACL(storage.ACLPublicRead),
		storage.WithValidation(
			storage.NotEmpty(),
			storage.MaxSize(s.maxUpload),
			storage.ImageOnly(),
		),
	)
	if err != nil {
		return nil, err
	}

	alt := sanitizer.StripHTML(altText)
	if alt == "" {
		alt = fileName(fh.Filename)
	}

	item, err := s.insert(ctx, &Item{
		FileName:    uniqueFileName(fh.Filename, info.Key),
		URL:         info.URL,
		AltText:     alt,
		UploadedBy:  uploadedBy,
		Size:        info.Size,
		ContentType: info.ContentType,
		StorageKey:  info.Key,
	})
	if err != nil {
		if derr := s.storage.Delete(context.WithoutCancel(ctx), info.Key); derr != nil {
			s.log.ErrorContext(ctx, "failed to remove orphaned upload",
				slog.String("key", info.Key),
				slog.String("error", derr.Error()),
			)
		}
		return nil, err
	}
	return item, nil
}

// List returns media items, newest first.
func (s *Service) List(ctx context.Context, uploadedBy string) ([]*Item, error) {
	return s.store.List(ctx, uploadedBy)
}

// Get returns one media item.
func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	return s.store.Get(ctx, id)
}

// Delete removes the record and, for uploaded items, the stored object.
// Failing to remove the object is logged and does not fail the call.
func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if item.StorageKey != "" && s.storage != nil {
		if err := s.storage.Delete(ctx, item.StorageKey); err != nil && !storage.IsNotFound(err) {
			s.log.ErrorContext(ctx, "failed to remove stored object",
				slog.String("media_id", id),
				slog.String("key", item.StorageKey),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

func (s *Service) insert(ctx context.Context, item *Item) (*Item, error) {
	created, err := s.store.Insert(ctx, item)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, store.DuplicateField(err))
		}
		return nil, err
	}
	return created, nil
}

// fileName returns the base name of a client-supplied file name.
func fileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return "upload"
	}
	return name
}

// uniqueFileName keeps the client's name readable while staying unique:
// "cover.png" stored at "blog-uploads/3f2c....png" becomes "cover-3f2c....png".
func uniqueFileName(original, key string) string {
	base := fileName(original)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	id := strings.TrimSuffix(filepath.Base(key), filepath.Ext(key))
	return stem + "-" + id + ext
}
