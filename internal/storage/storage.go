package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Package storage contains the file storage collaborator: an S3-compatible
// object store for remote mode and a plain directory for local mode. The
// lifecycle engine only sees the Storage interface and the locator each
// implementation returns.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and
// the implementation will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
// Location is the locator persisted on the document row: an absolute URL for
// remote storage, a relative path for local storage. Implementations must
// never return a success with an empty Location.
type ObjectInfo struct {
	Key          string
	Location     string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the backend that persists file bytes.
// Methods use context and streaming readers/writers.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// ResolveURL translates a stored locator to a caller-usable address. Absolute
// URLs (remote storage) pass through unchanged; anything else resolves to the
// locally served path derived from the basename.
func ResolveURL(locator string) string {
	if strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://") {
		return locator
	}
	return "/uploads/" + filepath.Base(locator)
}
