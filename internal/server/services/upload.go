package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/libhub/internal/common"
	"github.com/dmitrijs2005/libhub/internal/server/auth"
	"github.com/dmitrijs2005/libhub/internal/server/storage"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// imageTypes maps accepted file extensions to the content type their bytes
// must sniff as.
var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var imageMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadService validates library cover images and hands them to an
// ObjectStore.
type UploadService struct {
	store   storage.ObjectStore
	maxSize int64
	now     func() time.Time
}

func NewUploadService(store storage.ObjectStore, maxSize int64) *UploadService {
	if maxSize <= 0 {
		maxSize = common.MaxUploadSize
	}
	return &UploadService{store: store, maxSize: maxSize, now: time.Now}
}

func (s *UploadService) MaxSize() int64 { return s.maxSize }

// Store reads the image from r and returns its public URL. The extension of
// filename, the declared MIME type and the sniffed content must all name an
// accepted image type, and the content must match the extension.
func (s *UploadService) Store(ctx context.Context, id auth.Identity, r io.Reader, declaredMIME, filename string) (string, error) {
	if !auth.Authorize(id, auth.ActionUploadsCreate, auth.Resource{OwnerID: id.UserID}) {
		return "", common.Fail(common.ErrorForbidden, "Access denied")
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("error reading upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return "", common.Fail(common.ErrFileTooLarge, fmt.Sprintf("File too large (max %dMB)", s.maxSize>>20))
	}
	if len(data) == 0 {
		return "", common.Fail(common.ErrorValidation, "No image uploaded")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, err := checkImage(data, ext, declaredMIME)
	if err != nil {
		return "", err
	}

	url, err := s.store.Put(ctx, s.objectKey(filename, ext), bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return "", fmt.Errorf("error storing upload: %w", err)
	}
	return url, nil
}

func checkImage(data []byte, ext, declaredMIME string) (string, error) {
	invalid := common.Fail(common.ErrInvalidFile, "Only image files are allowed")

	want, ok := imageTypes[ext]
	if !ok {
		return "", invalid
	}

	declared, _, err := mime.ParseMediaType(declaredMIME)
	if err != nil || !imageMIMEs[strings.ToLower(declared)] {
		return "", invalid
	}

	if http.DetectContentType(data) != want {
		return "", invalid
	}
	return want, nil
}

// objectKey is libraries/YYYY/MM/DD/<slug>-<uuid><ext>.
func (s *UploadService) objectKey(filename, ext string) string {
	stem := slug.Make(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if stem == "" {
		stem = "image"
	}
	d := s.now().UTC()
	return fmt.Sprintf("libraries/%04d/%02d/%02d/%s-%s%s", d.Year(), d.Month(), d.Day(), stem, uuid.New(), ext)
}
