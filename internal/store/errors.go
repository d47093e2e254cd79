// Package store holds the error contract shared by the persistence
// implementations in store/postgres and store/memory.
package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("store: record not found")
	ErrDuplicateKey = errors.New("store: duplicate key")
)

// DuplicateKeyError reports which unique field collided.
type DuplicateKeyError struct {
	Entity string
	Field  string
	Value  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("store: duplicate %s %s %q", e.Entity, e.Field, e.Value)
}

// Is makes errors.Is(err, ErrDuplicateKey) match any DuplicateKeyError.
func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// Duplicate is shorthand for building a DuplicateKeyError.
func Duplicate(entity, field, value string) error {
	return &DuplicateKeyError{Entity: entity, Field: field, Value: value}
}

// DuplicateField returns the colliding field name, or "" if err is not a
// duplicate-key error.
func DuplicateField(err error) string {
	var dup *DuplicateKeyError
	if errors.As(err, &dup) {
		return dup.Field
	}
	return ""
}
