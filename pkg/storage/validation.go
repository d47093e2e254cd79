package storage

import (
	"fmt"
)

// FileValidationError reports why an upload was rejected.
type FileValidationError struct {
	Details map[string]any
	Field   string
	Code    string
	Message string
}

func (e *FileValidationError) Error() string {
	return e.Message
}

const (
	ErrCodeFileTooLarge = "file_too_large"
	ErrCodeInvalidMIME  = "invalid_mime"
	ErrCodeEmptyFile    = "empty_file"
)

// ValidationRule checks an upload before it is stored.
type ValidationRule interface {
	Validate(size int64, mimeType string) error
}

// ValidateReader runs rules in order and returns the first failure.
func ValidateReader(size int64, mimeType string, rules ...ValidationRule) error {
	for _, rule := range rules {
		if err := rule.Validate(size, mimeType); err != nil {
			return err
		}
	}
	return nil
}

type ruleFunc func(size int64, mimeType string) error

func (f ruleFunc) Validate(size int64, mimeType string) error { return f(size, mimeType) }

// MaxSize rejects uploads larger than limit bytes.
func MaxSize(limit int64) ValidationRule {
	return ruleFunc(func(size int64, _ string) error {
		if size <= limit {
			return nil
		}
		return &FileValidationError{
			Field:   "file",
			Code:    ErrCodeFileTooLarge,
			Message: fmt.Sprintf("file size %d exceeds limit of %d bytes", size, limit),
			Details: map[string]any{"limit": limit, "got": size},
		}
	})
}

// NotEmpty rejects zero-byte uploads.
func NotEmpty() ValidationRule {
	return ruleFunc(func(size int64, _ string) error {
		if size > 0 {
			return nil
		}
		return &FileValidationError{
			Field:   "file",
			Code:    ErrCodeEmptyFile,
			Message: "file is empty",
			Details: map[string]any{},
		}
	})
}

// AllowedTypes accepts only the given MIME patterns, e.g. "image/*".
func AllowedTypes(patterns ...string) ValidationRule {
	return ruleFunc(func(_ int64, mimeType string) error {
		if matchesMIME(mimeType, patterns) {
			return nil
		}
		return &FileValidationError{
			Field:   "file",
			Code:    ErrCodeInvalidMIME,
			Message: fmt.Sprintf("file type %q is not allowed", normalizeMIME(mimeType)),
			Details: map[string]any{"type": mimeType, "allowed": patterns},
		}
	})
}

// ImageOnly accepts image/* uploads.
func ImageOnly() ValidationRule {
	return AllowedTypes("image/*")
}
