package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/libhub/internal/common"
	"github.com/dmitrijs2005/libhub/internal/server/auth"
	"github.com/dmitrijs2005/libhub/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0}, 32)...)
	gifBytes  = append([]byte("GIF89a"), bytes.Repeat([]byte{0}, 32)...)
	webpBytes = append([]byte("RIFF\x00\x00\x00\x00WEBPVP8 "), bytes.Repeat([]byte{0}, 32)...)
	exeBytes  = append([]byte("MZ\x90\x00"), bytes.Repeat([]byte{0}, 32)...)
)

type fakeStore struct {
	key         string
	contentType string
	body        []byte
	err         error
}

func (f *fakeStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.key, f.contentType = key, contentType
	f.body, _ = io.ReadAll(body)
	return "/uploads/" + key, nil
}

var uploader = auth.Identity{UserID: "u-1", Role: models.RoleAdmin}

func newUploadService(store *fakeStore) *UploadService {
	s := NewUploadService(store, common.MaxUploadSize)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestUploadStore_AcceptsImages(t *testing.T) {
	tests := []struct {
		file string
		mime string
		data []byte
		want string
	}{
		{"cover.png", "image/png", pngBytes, "image/png"},
		{"Photo.JPG", "image/jpeg", jpegBytes, "image/jpeg"},
		{"photo.jpeg", "image/jpeg; charset=binary", jpegBytes, "image/jpeg"},
		{"anim.gif", "image/gif", gifBytes, "image/gif"},
		{"pic.webp", "image/webp", webpBytes, "image/webp"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			store := &fakeStore{}
			url, err := newUploadService(store).Store(context.Background(), uploader, bytes.NewReader(tt.data), tt.mime, tt.file)
			require.NoError(t, err)

			assert.Equal(t, "/uploads/"+store.key, url)
			assert.Equal(t, tt.want, store.contentType)
			assert.Equal(t, tt.data, store.body)
		})
	}
}

func TestUploadStore_ObjectKey(t *testing.T) {
	store := &fakeStore{}
	_, err := newUploadService(store).Store(context.Background(), uploader, bytes.NewReader(pngBytes), "image/png", "My Cover Art!.PNG")
	require.NoError(t, err)

	assert.Regexp(t,
		regexp.MustCompile(`^libraries/2024/05/01/my-cover-art-[0-9a-f-]{36}\.png$`),
		store.key)
}

func TestUploadStore_EmptyStemFallsBack(t *testing.T) {
	store := &fakeStore{}
	_, err := newUploadService(store).Store(context.Background(), uploader, bytes.NewReader(pngBytes), "image/png", "!!!.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(store.key, "libraries/2024/05/01/image-"), store.key)
}

func TestUploadStore_RejectsTooLarge(t *testing.T) {
	store := &fakeStore{}
	data := append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{0}, 6<<20)...)

	_, err := newUploadService(store).Store(context.Background(), uploader, bytes.NewReader(data), "image/png", "big.png")
	assert.ErrorIs(t, err, common.ErrFileTooLarge)
	assert.Empty(t, store.key)
}

func TestUploadStore_ExactlyMaxSizeAccepted(t *testing.T) {
	store := &fakeStore{}
	data := append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{0}, common.MaxUploadSize-len(pngBytes))...)

	_, err := newUploadService(store).Store(context.Background(), uploader, bytes.NewReader(data), "image/png", "edge.png")
	assert.NoError(t, err)
}

func TestUploadStore_RejectsNonImages(t *testing.T) {
	tests := []struct {
		name string
		file string
		mime string
		data []byte
	}{
		{"exe renamed png", "virus.png", "image/png", exeBytes},
		{"exe extension", "virus.exe", "image/png", pngBytes},
		{"no extension", "cover", "image/png", pngBytes},
		{"wrong declared mime", "cover.png", "application/octet-stream", pngBytes},
		{"garbage mime", "cover.png", ";;", pngBytes},
		{"content mismatches extension", "cover.gif", "image/gif", pngBytes},
		{"svg", "cover.svg", "image/svg+xml", []byte("<svg></svg>")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			_, err := newUploadService(store).Store(context.Background(), uploader, bytes.NewReader(tt.data), tt.mime, tt.file)
			assert.ErrorIs(t, err, common.ErrInvalidFile)
			assert.Equal(t, "Only image files are allowed", failureMessage(t, err))
			assert.Empty(t, store.key)
		})
	}
}

func TestUploadStore_Empty(t *testing.T) {
	_, err := newUploadService(&fakeStore{}).Store(context.Background(), uploader, bytes.NewReader(nil), "image/png", "a.png")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestUploadStore_StoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	_, err := newUploadService(store).Store(context.Background(), uploader, bytes.NewReader(pngBytes), "image/png", "a.png")
	assert.ErrorContains(t, err, "disk full")
}

func TestUploadStore_RequiresIdentity(t *testing.T) {
	_, err := newUploadService(&fakeStore{}).Store(context.Background(), auth.Identity{}, bytes.NewReader(pngBytes), "image/png", "a.png")
	assert.ErrorIs(t, err, common.ErrorForbidden)
}

func TestNewUploadService_DefaultsMaxSize(t *testing.T) {
	assert.Equal(t, int64(common.MaxUploadSize), NewUploadService(&fakeStore{}, 0).MaxSize())
}
