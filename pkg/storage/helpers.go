package storage

import (
	"context"
	"fmt"
	"mime/multipart"
)

// PutFile uploads a multipart file. The content type is sniffed from the
// file's bytes, never taken from its name or the client header.
func PutFile(ctx context.Context, s Storage, fh *multipart.FileHeader, opts ...Option) (*FileInfo, error) {
	if fh == nil || fh.Size == 0 {
		return nil, ErrEmptyFile
	}

	o := &putOptions{}
	for _, opt := range opts {
		opt(o)
	}
	contentType := o.contentType
	if contentType == "" {
		contentType = DetectMIME(fh)
		opts = append(opts, WithContentType(contentType))
	}
	// Fail before opening the file; Put checks the rules again.
	if err := ValidateReader(fh.Size, contentType, o.rules...); err != nil {
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("storage: open file: %w", err)
	}
	defer f.Close()

	return s.Put(ctx, f, fh.Size, opts...)
}
