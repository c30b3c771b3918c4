// Package httpapi exposes the libhub services as a JSON REST API. Every
// response uses the {message, success, data} envelope.
package httpapi

import (
	"context"
	"io"

	"github.com/dmitrijs2005/libhub/internal/logging"
	"github.com/dmitrijs2005/libhub/internal/server/auth"
	"github.com/dmitrijs2005/libhub/internal/server/models"
	"github.com/dmitrijs2005/libhub/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	GetProfile(ctx context.Context, id auth.Identity) (*models.User, error)
	UpdateProfile(ctx context.Context, id auth.Identity, p services.ProfilePatch) (*models.User, error)
	ListUsers(ctx context.Context, id auth.Identity) ([]*models.User, error)
	SetUserStatus(ctx context.Context, id auth.Identity, userID string, status models.Status) (*models.User, error)
}

type LibraryService interface {
	List(ctx context.Context, id auth.Identity) ([]*models.Library, error)
	GetActive(ctx context.Context, id auth.Identity) (*models.Library, error)
	Create(ctx context.Context, id auth.Identity, name string, imageURL *string) (*models.Library, error)
	Switch(ctx context.Context, id auth.Identity, libraryID string) (*models.Library, error)
	Update(ctx context.Context, id auth.Identity, libraryID string, patch models.LibraryPatch) (*models.Library, error)
	Delete(ctx context.Context, id auth.Identity, libraryID string) error
}

type UploadService interface {
	Store(ctx context.Context, id auth.Identity, r io.Reader, declaredMIME, filename string) (string, error)
	MaxSize() int64
}

type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Options configure NewAPI.
type Options struct {
	CORSOrigins []string
	// UploadDir, when set, is served read-only under /uploads/.
	UploadDir string
}

// API holds the handler dependencies.
type API struct {
	users     UserService
	libraries LibraryService
	uploads   UploadService
	tokens    TokenVerifier
	logger    logging.Logger
	opts      Options
}

func NewAPI(us UserService, ls LibraryService, up UploadService, tv TokenVerifier, l logging.Logger, opts Options) *API {
	return &API{
		users:     us,
		libraries: ls,
		uploads:   up,
		tokens:    tv,
		logger:    l.With("module", "http_api"),
		opts:      opts,
	}
}
