package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/libhub/internal/filex"
)

// DiskURLPrefix is where the HTTP server exposes DiskStore contents.
const DiskURLPrefix = "/uploads/"

// DiskStore writes objects below a root directory.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	abs, err := filex.EnsureDir(root)
	if err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &DiskStore{root: abs}, nil
}

func (d *DiskStore) Root() string { return d.root }

// Put writes body to a temp file next to the target and renames it into
// place, so readers never see a partial object.
func (d *DiskStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	clean := path.Clean("/" + key)[1:]
	if clean == "" || clean != key || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := filepath.Join(d.root, filepath.FromSlash(clean))
	if _, err := filex.EnsureDir(filepath.Dir(dst)); err != nil {
		return "", fmt.Errorf("create object directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close object: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("rename object: %w", err)
	}

	return DiskURLPrefix + clean, nil
}
