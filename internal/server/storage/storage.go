// Package storage holds the object stores uploaded images are written to.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/libhub/internal/server/config"
)

// ObjectStore persists an object under key and returns the URL clients use
// to fetch it.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// New returns the backend selected by cfg.UploadBackend.
func New(ctx context.Context, cfg *config.Config) (ObjectStore, error) {
	switch cfg.UploadBackend {
	case config.UploadBackendDisk, "":
		return NewDiskStore(cfg.UploadDir)
	case config.UploadBackendS3:
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.UploadBackend)
	}
}
