// Package media stores uploaded files (note attachments) on local disk
// and serves them back by URL. The Store interface keeps handlers
// independent of where the bytes actually live.
package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PutOptions carries optional metadata for a stored object.
type PutOptions struct {
	ContentType string
}

// Store is the minimal surface handlers need for uploads.
type Store interface {
	// Put writes the object at the given storage path.
	Put(ctx context.Context, objectPath string, r io.Reader, opts PutOptions) error
	// URL returns the public URL for a stored object.
	URL(objectPath string) string
	// GetFullPath returns the filesystem location of a stored object.
	GetFullPath(objectPath string) string
}

// ObjectPath builds a collision-free storage path for an upload,
// preserving the original extension: <prefix>/<uuid><ext>.
func ObjectPath(prefix, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return path.Join(prefix, uuid.NewString()+ext)
}

// Local stores objects under a root directory on disk.
type Local struct {
	root    string
	baseURL string
}

// NewLocal creates a Local store rooted at dir, serving objects under
// baseURL (e.g. "/media").
func NewLocal(dir, baseURL string) (*Local, error) {
	if dir == "" {
		return nil, fmt.Errorf("media: root directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: create root: %w", err)
	}
	return &Local{root: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root returns the filesystem root objects are stored under.
func (l *Local) Root() string {
	return l.root
}

func (l *Local) Put(ctx context.Context, objectPath string, r io.Reader, opts PutOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	full, err := l.resolve(objectPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("media: create directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("media: create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return fmt.Errorf("media: write file: %w", err)
	}
	return nil
}

func (l *Local) URL(objectPath string) string {
	return l.baseURL + "/" + strings.TrimLeft(objectPath, "/")
}

func (l *Local) GetFullPath(objectPath string) string {
	full, err := l.resolve(objectPath)
	if err != nil {
		return ""
	}
	return full
}

// resolve joins the object path under the root and rejects traversal
// outside of it.
func (l *Local) resolve(objectPath string) (string, error) {
	clean := filepath.Clean("/" + objectPath)
	full := filepath.Join(l.root, clean)
	if !strings.HasPrefix(full, filepath.Clean(l.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("media: invalid object path %q", objectPath)
	}
	return full, nil
}
