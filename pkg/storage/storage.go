package storage

import (
	"context"
	"io"
)

// Storage stores media objects.
type Storage interface {
	// Put uploads size bytes from r and returns where they landed.
	Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error)

	// Delete removes the object at key.
	Delete(ctx context.Context, key string) error

	// PublicURL returns the unsigned URL of a public-read object.
	PublicURL(key string) string
}

// Config holds S3-compatible storage settings.
// An empty Bucket means uploads are not configured.
type Config struct {
	Bucket    string `env:"STORAGE_BUCKET"`
	AccessKey string `env:"STORAGE_ACCESS_KEY"`
	SecretKey string `env:"STORAGE_SECRET_KEY"`
	// Custom endpoint for MinIO, R2 and other S3-compatible services.
	Endpoint string `env:"STORAGE_ENDPOINT"`
	Region   string `env:"STORAGE_REGION" envDefault:"us-east-1"`
	// CDN prefix for public URLs.
	PublicURL string `env:"STORAGE_PUBLIC_URL"`
	// Key prefix for uploaded media.
	Prefix string `env:"STORAGE_PREFIX" envDefault:"blog-uploads"`
	// Path-style addressing, required by MinIO.
	PathStyle bool `env:"STORAGE_PATH_STYLE" envDefault:"false"`
}

// Configured reports whether enough is set to create a client.
func (c Config) Configured() bool {
	return c.Bucket != ""
}

// FileInfo describes an uploaded object.
type FileInfo struct {
	Key         string
	URL         string
	ContentType string
	ACL         ACL
	Size        int64
}

// ACL is the canned access control of an object.
type ACL string

const (
	ACLPrivate    ACL = "private"
	ACLPublicRead ACL = "public-read"
)

const DefaultRegion = "us-east-1"

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}
