// Package storage provides file storage for label scan images and their
// thumbnails.
//
// Two implementations back the Storage interface:
// - LocalStorage: filesystem storage for development
// - R2Storage: Cloudflare R2 (S3-compatible) object storage for production
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Storage defines the interface for file storage operations. All methods are
// context-aware for timeout and cancellation support.
type Storage interface {
	// Put stores data at the specified key. Returns ErrKeyExists if the key
	// is taken and opts.Overwrite is false, ErrTooLarge if the data exceeds
	// opts.MaxSize.
	Put(ctx context.Context, key string, data io.Reader, opts PutOptions) error

	// Get retrieves the data at the specified key. The caller must close the
	// returned reader. Returns ErrNotFound if the key doesn't exist.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)

	// Delete removes the object at the specified key. Idempotent: deleting a
	// missing key is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns a URL for accessing the object: a permanent URL for public
	// objects, otherwise a presigned URL valid for the given duration.
	URL(ctx context.Context, key string, expires time.Duration) (string, error)

	// Exists checks if an object exists at the specified key.
	Exists(ctx context.Context, key string) (bool, error)
}

// =============================================================================
// Data Types
// =============================================================================

// PutOptions configures how an object is stored.
type PutOptions struct {
	// ContentType is the MIME type of the object. If empty, it is detected
	// from the key's extension or the content.
	ContentType string

	// MaxSize caps the object size in bytes. Zero means no limit.
	MaxSize int64

	// Overwrite allows replacing an existing object at the same key.
	Overwrite bool

	// Public marks the object publicly accessible. R2 sets a public-read
	// ACL; local storage treats every object as public anyway.
	Public bool
}

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	Key          string    // Object key/path
	Size         int64     // Size in bytes
	ContentType  string    // MIME type
	LastModified time.Time // Last modification time
	ETag         string    // Entity tag (if available)
}

// =============================================================================
// Configuration Types
// =============================================================================

// LocalConfig holds configuration for local filesystem storage.
type LocalConfig struct {
	// BasePath is the root directory where files are stored.
	BasePath string

	// BaseURL is the public URL prefix for accessing files.
	// Example: "http://localhost:8080/files"
	BaseURL string
}

// R2Config holds configuration for Cloudflare R2 storage.
type R2Config struct {
	// AccountID is the Cloudflare account ID.
	AccountID string

	// AccessKeyID and SecretAccessKey are the R2 API credentials.
	AccessKeyID     string
	SecretAccessKey string

	// BucketName is the R2 bucket to use.
	BucketName string

	// PublicURL is the bucket's public URL when served through a custom
	// domain. If empty, all access goes through presigned URLs.
	PublicURL string

	// Region is required by the AWS SDK; R2 accepts any value.
	// Default: "auto"
	Region string
}

// =============================================================================
// Provider Constants
// =============================================================================

const (
	// ProviderLocal identifies the local filesystem storage provider.
	ProviderLocal = "local"

	// ProviderR2 identifies the Cloudflare R2 storage provider.
	ProviderR2 = "r2"
)

// =============================================================================
// Key Generation Helpers
// =============================================================================

// ImageKey generates a storage key for an uploaded label photo.
// Format: scans/{scanID}/images/{uuid}.{ext}
func ImageKey(scanID uuid.UUID, filename string) string {
	ext := filepath.Ext(filename)
	imageID := uuid.New()
	return fmt.Sprintf("scans/%s/images/%s%s", scanID, imageID, ext)
}

// ThumbnailKey generates a storage key for a label photo thumbnail.
// Format: scans/{scanID}/thumbnails/{uuid}.{ext}
func ThumbnailKey(scanID uuid.UUID, filename string) string {
	ext := filepath.Ext(filename)
	thumbnailID := uuid.New()
	return fmt.Sprintf("scans/%s/thumbnails/%s%s", scanID, thumbnailID, ext)
}
