package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaxSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		limit     int64
		size      int64
		wantError bool
	}{
		{"under limit", 1024, 512, false},
		{"at limit", 1024, 1024, false},
		{"over limit", 1024, 2048, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := MaxSize(tt.limit).Validate(tt.size, "image/png")
			if !tt.wantError {
				require.NoError(t, err)
				return
			}
			var verr *FileValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, ErrCodeFileTooLarge, verr.Code)
			require.Equal(t, "file", verr.Field)
			require.Equal(t, tt.limit, verr.Details["limit"])
			require.Equal(t, tt.size, verr.Details["got"])
		})
	}
}

func TestNotEmpty(t *testing.T) {
	t.Parallel()

	require.NoError(t, NotEmpty().Validate(1, ""))

	var verr *FileValidationError
	require.True(t, errors.As(NotEmpty().Validate(0, ""), &verr))
	require.Equal(t, ErrCodeEmptyFile, verr.Code)
}

func TestAllowedTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		patterns []string
		mimeType string
		allowed  bool
	}{
		{"exact match", []string{"image/png"}, "image/png", true},
		{"wildcard", []string{"image/*"}, "image/webp", true},
		{"parameters ignored", []string{"image/*"}, "image/svg+xml; charset=utf-8", true},
		{"case insensitive", []string{"IMAGE/*"}, "Image/JPEG", true},
		{"other family", []string{"image/*"}, "text/html; charset=utf-8", false},
		{"octet stream", []string{"image/*"}, MIMEOctetStream, false},
		{"bare star is not a wildcard", []string{"*"}, "image/png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := AllowedTypes(tt.patterns...).Validate(10, tt.mimeType)
			if tt.allowed {
				require.NoError(t, err)
				return
			}
			var verr *FileValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, ErrCodeInvalidMIME, verr.Code)
		})
	}
}

func TestValidateReader_FirstFailureWins(t *testing.T) {
	t.Parallel()

	err := ValidateReader(0, "text/plain", NotEmpty(), ImageOnly())
	var verr *FileValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, ErrCodeEmptyFile, verr.Code)

	require.NoError(t, ValidateReader(10, "image/gif"))
}
