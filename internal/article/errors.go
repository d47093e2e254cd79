package article

import (
	"errors"

	"github.com/dmitrymomot/folio/internal/store"
)

var (
	ErrValidation   = errors.New("article: validation failed")
	ErrSlugConflict = errors.New("article: slug already exists")
	ErrNotFound     = store.ErrNotFound
)

// ValidationError describes malformed or missing input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "article: " + e.Message
	}
	return "article: " + e.Field + ": " + e.Message
}

// Is makes errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
