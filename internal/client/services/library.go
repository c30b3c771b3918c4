package services

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/libhub/internal/client/client"
	"github.com/dmitrijs2005/libhub/internal/client/models"
	"github.com/dmitrijs2005/libhub/internal/client/session"
)

// LibraryService manages the signed-in user's libraries.
type LibraryService interface {
	List(ctx context.Context) ([]*models.Library, error)
	Active(ctx context.Context) (*models.Library, error)
	Create(ctx context.Context, name string) (*models.Library, error)
	Switch(ctx context.Context, id string) (*models.Library, error)
	Rename(ctx context.Context, id, name string) (*models.Library, error)
	// SetImage uploads the file at path and stores its URL on the library.
	// An empty path clears the image.
	SetImage(ctx context.Context, id, path string) (*models.Library, error)
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, path string) (string, error)
}

type libraryService struct {
	client  client.Client
	session *session.Session
}

func NewLibraryService(c client.Client, s *session.Session) LibraryService {
	return &libraryService{client: c, session: s}
}

func (l *libraryService) List(ctx context.Context) ([]*models.Library, error) {
	token, err := guard(l.session)
	if err != nil {
		return nil, err
	}
	libs, err := l.client.Libraries(ctx, token)
	if err := checkAuth(ctx, l.session, err); err != nil {
		return nil, err
	}
	return libs, nil
}

func (l *libraryService) Active(ctx context.Context) (*models.Library, error) {
	token, err := guard(l.session)
	if err != nil {
		return nil, err
	}
	lib, err := l.client.ActiveLibrary(ctx, token)
	if err := checkAuth(ctx, l.session, err); err != nil {
		return nil, err
	}
	return lib, nil
}

func (l *libraryService) Create(ctx context.Context, name string) (*models.Library, error) {
	token, err := guard(l.session)
	if err != nil {
		return nil, err
	}
	lib, err := l.client.CreateLibrary(ctx, token, name, nil)
	if err := checkAuth(ctx, l.session, err); err != nil {
		return nil, err
	}
	return lib, nil
}

func (l *libraryService) Switch(ctx context.Context, id string) (*models.Library, error) {
	token, err := guard(l.session)
	if err != nil {
		return nil, err
	}
	lib, err := l.client.SwitchLibrary(ctx, token, id)
	if err := checkAuth(ctx, l.session, err); err != nil {
		return nil, err
	}
	return lib, nil
}

func (l *libraryService) Rename(ctx context.Context, id, name string) (*models.Library, error) {
	return l.update(ctx, id, client.LibraryUpdate{Name: &name})
}

func (l *libraryService) SetImage(ctx context.Context, id, path string) (*models.Library, error) {
	url := ""
	if path != "" {
		var err error
		if url, err = l.UploadImage(ctx, path); err != nil {
			return nil, err
		}
	}
	return l.update(ctx, id, client.LibraryUpdate{ImageURL: &url})
}

func (l *libraryService) update(ctx context.Context, id string, upd client.LibraryUpdate) (*models.Library, error) {
	token, err := guard(l.session)
	if err != nil {
		return nil, err
	}
	lib, err := l.client.UpdateLibrary(ctx, token, id, upd)
	if err := checkAuth(ctx, l.session, err); err != nil {
		return nil, err
	}
	return lib, nil
}

func (l *libraryService) Delete(ctx context.Context, id string) error {
	token, err := guard(l.session)
	if err != nil {
		return err
	}
	return checkAuth(ctx, l.session, l.client.DeleteLibrary(ctx, token, id))
}

func (l *libraryService) UploadImage(ctx context.Context, path string) (string, error) {
	token, err := guard(l.session)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	url, err := l.client.UploadImage(ctx, token, path, f)
	if err := checkAuth(ctx, l.session, err); err != nil {
		return "", err
	}
	return url, nil
}
