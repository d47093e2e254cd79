// Package storage uploads media to S3-compatible object storage using
// [github.com/aws/aws-sdk-go-v2].
//
// Configuration is read from the environment:
//
//	STORAGE_BUCKET      - bucket name; empty disables uploads
//	STORAGE_ACCESS_KEY  - access key id
//	STORAGE_SECRET_KEY  - secret access key
//	STORAGE_ENDPOINT    - custom endpoint (MinIO, R2)
//	STORAGE_REGION      - region (default: us-east-1)
//	STORAGE_PUBLIC_URL  - CDN prefix for public URLs
//	STORAGE_PREFIX      - key prefix (default: blog-uploads)
//	STORAGE_PATH_STYLE  - path-style addressing
//
// Uploading a validated image from a form:
//
//	info, err := storage.PutFile(ctx, store, fh,
//		storage.WithACL(storage.ACLPublicRead),
//		storage.WithValidation(
//			storage.NotEmpty(),
//			storage.MaxSize(10<<20),
//			storage.ImageOnly(),
//		),
//	)
//
// Content types are detected from magic bytes. A failed rule returns a
// *[FileValidationError]; S3 failures are mapped onto sentinel errors such
// as [ErrUploadFailed] and [ErrNotFound].
package storage
