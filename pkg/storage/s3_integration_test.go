//go:build integration

package storage_test

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/storage"
)

// Run against MinIO:
//
//	STORAGE_TEST_ENDPOINT=http://localhost:9000 go test -tags integration ./pkg/storage/...
func TestS3Storage_Integration(t *testing.T) {
	endpoint := os.Getenv("STORAGE_TEST_ENDPOINT")
	if endpoint == "" {
		t.Skip("STORAGE_TEST_ENDPOINT not set")
	}

	s, err := storage.New(storage.Config{
		Bucket:    envOr("STORAGE_TEST_BUCKET", "folio-test"),
		AccessKey: envOr("STORAGE_TEST_ACCESS_KEY", "minioadmin"),
		SecretKey: envOr("STORAGE_TEST_SECRET_KEY", "minioadmin"),
		Endpoint:  endpoint,
		PathStyle: true,
		Prefix:    "integration",
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Healthcheck()(ctx))

	info, err := s.Put(ctx, bytes.NewReader(pngHeader), int64(len(pngHeader)), storage.WithACL(storage.ACLPublicRead))
	require.NoError(t, err)
	require.Equal(t, "image/png", info.ContentType)
	require.Contains(t, info.Key, "integration/")

	resp, err := http.Get(info.URL)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, s.Delete(ctx, info.Key))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
