package media

import (
	"errors"

	"github.com/dmitrymomot/folio/internal/store"
)

var (
	ErrDuplicate     = errors.New("media: file name or URL already exists")
	ErrInvalidInput  = errors.New("media: invalid input")
	ErrNotConfigured = errors.New("media: upload storage is not configured")
	ErrNotFound      = store.ErrNotFound
)
