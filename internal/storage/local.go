package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// localStorage implements the Storage interface on a plain directory.
// The locator it returns is the file path relative to the process working
// directory (e.g. "uploads/abc.pdf"); the HTTP layer serves that directory
// at /uploads.
type localStorage struct {
	dir string
}

// NewLocal creates a directory-backed storage under dir, creating it if needed.
func NewLocal(dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("local storage dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &localStorage{dir: dir}, nil
}

// Put writes the object to disk. The key's basename is used as the file name;
// path traversal in the key is neutralized.
func (l *localStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}
	name := filepath.Base(filepath.Clean(key))
	if name == "." || name == string(filepath.Separator) {
		return ObjectInfo{}, fmt.Errorf("invalid object key %q", key)
	}
	path := filepath.Join(l.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create file: %w", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return ObjectInfo{}, fmt.Errorf("write file: %w", err)
	}

	return ObjectInfo{
		Key:          name,
		Location:     filepath.ToSlash(path),
		Size:         n,
		ContentType:  opt.ContentType,
		LastModified: time.Now(),
		Metadata:     opt.Metadata,
	}, nil
}

// Get opens the object for streaming reads.
func (l *localStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, ObjectInfo{}, err
	}
	name := filepath.Base(filepath.Clean(key))
	path := filepath.Join(l.dir, name)

	f, err := os.Open(path)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, err
	}
	info := ObjectInfo{
		Key:          name,
		Location:     filepath.ToSlash(path),
		Size:         st.Size(),
		LastModified: st.ModTime(),
	}
	return f, info, nil
}

// Delete removes the object file. Deleting a missing object is not an error.
func (l *localStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := filepath.Base(filepath.Clean(key))
	err := os.Remove(filepath.Join(l.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// PresignGet returns the locally servable path; there is nothing to sign.
func (l *localStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	name := filepath.Base(filepath.Clean(key))
	if strings.TrimSpace(name) == "" || name == "." {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return "/uploads/" + name, nil
}
