package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// S3Storage implements Storage on S3-compatible object storage.
type S3Storage struct {
	client *s3.Client
	cfg    Config
}

// New creates an S3Storage. It returns ErrInvalidConfig when the bucket or
// credentials are missing.
func New(cfg Config) (*S3Storage, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client := s3.New(s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		}
	})

	return &S3Storage{client: client, cfg: cfg}, nil
}

// Put uploads r. The content type is sniffed from the first bytes unless
// WithContentType is given.
func (s *S3Storage) Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error) {
	o := &putOptions{acl: ACLPrivate, prefix: s.cfg.Prefix}
	for _, opt := range opts {
		opt(o)
	}

	contentType, body, err := seekable(r, o.contentType)
	if err != nil {
		return nil, err
	}
	if err := ValidateReader(size, contentType, o.rules...); err != nil {
		return nil, err
	}

	key := o.key
	if key == "" {
		key = buildKey(o.prefix, contentType)
	}

	acl := types.ObjectCannedACLPrivate
	if o.acl == ACLPublicRead {
		acl = types.ObjectCannedACLPublicRead
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           acl,
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrUploadFailed)
	}

	return &FileInfo{
		Key:         key,
		URL:         s.PublicURL(key),
		Size:        size,
		ContentType: contentType,
		ACL:         o.acl,
	}, nil
}

// Delete removes the object at key.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return wrapS3Error(err, ErrDeleteFailed)
	}
	return nil
}

// PublicURL returns the CDN URL when configured, otherwise the bucket URL.
func (s *S3Storage) PublicURL(key string) string {
	return publicURL(s.cfg, key)
}

// Healthcheck returns a readiness probe that checks bucket access.
func (s *S3Storage) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.cfg.Bucket)})
		if err != nil {
			return wrapS3Error(err, ErrAccessDenied)
		}
		return nil
	}
}

func publicURL(cfg Config, key string) string {
	if cfg.PublicURL != "" {
		return strings.TrimSuffix(cfg.PublicURL, "/") + "/" + key
	}
	if cfg.Endpoint != "" {
		endpoint := strings.TrimSuffix(cfg.Endpoint, "/")
		if cfg.PathStyle {
			return fmt.Sprintf("%s/%s/%s", endpoint, cfg.Bucket, key)
		}
		return fmt.Sprintf("%s/%s", endpoint, key)
	}
	region := cfg.Region
	if region == "" {
		region = DefaultRegion
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", cfg.Bucket, region, key)
}

// buildKey returns {prefix}/{uuid}{ext}.
func buildKey(prefix, contentType string) string {
	ext := ExtFromMIME(contentType)
	if ext == "" {
		ext = ".bin"
	}
	name := uuid.NewString() + ext
	if prefix = sanitizePathSegment(prefix); prefix != "" {
		return prefix + "/" + name
	}
	return name
}

// seekable returns a content type and an io.ReadSeeker over r.
// The AWS SDK needs to seek the body to compute the payload hash.
func seekable(r io.Reader, contentType string) (string, io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		if contentType == "" {
			contentType = detectMIMEFromReader(rs)
			if _, err := rs.Seek(0, io.SeekStart); err != nil {
				return "", nil, fmt.Errorf("storage: rewind input: %w", err)
			}
		}
		return contentType, rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("storage: read input: %w", err)
	}
	if len(data) == 0 {
		return "", nil, ErrEmptyFile
	}
	if contentType == "" {
		contentType = detectMIMEFromReader(bytes.NewReader(data))
	}
	return contentType, bytes.NewReader(data), nil
}

var pathSegmentRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizePathSegment strips traversal sequences and unsafe characters.
func sanitizePathSegment(segment string) string {
	segment = strings.Trim(segment, " /\\")
	segment = strings.ReplaceAll(segment, "..", "")
	segment = pathSegmentRegex.ReplaceAllString(segment, "_")
	return url.PathEscape(segment)
}

// IsNotFound reports whether err means the object does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

var _ Storage = (*S3Storage)(nil)
