package storage

import (
	"context"
	"fmt"
	"io"
	"path"
)

// Storage is a key-addressed blob store. Keys are slash separated, e.g.
// "category/3f1c.png".
type Storage interface {
	// Save stores the content of reader under key, replacing any existing blob.
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes the blob at key. A missing blob is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a blob is stored at key.
	Exists(ctx context.Context, key string) (bool, error)

	// URL returns the public URL of key. It does not check existence.
	URL(key string) string
}

// Config holds storage configuration
type Config struct {
	Type            string // local, s3, gcs
	BasePath        string // local root directory
	PublicURL       string // public URL base
	Bucket          string // s3, gcs
	Endpoint        string // custom S3 endpoint (R2, MinIO) or GCS emulator
	Region          string // s3
	AccessKey       string // s3
	SecretKey       string // s3
	CredentialsFile string // gcs service account key
}

// New creates the backend selected by cfg.Type.
func New(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(ctx, cfg)
	case "gcs":
		return NewGCSStorage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// Key joins a namespace directory and a file name into a blob key.
func Key(dir, name string) string {
	return path.Join(dir, name)
}
