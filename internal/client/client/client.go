package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/libhub/internal/client/models"
)

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role,omitempty"`
}

type ProfileUpdate struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

type LibraryUpdate struct {
	Name     *string `json:"name,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Client is the libhub API as seen by the CLI. Calls that need a session
// take the bearer token explicitly.
type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Profile(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token string, upd ProfileUpdate) (*models.User, error)
	Users(ctx context.Context, token string) ([]*models.User, error)
	SetUserStatus(ctx context.Context, token, userID, status string) (*models.User, error)

	Libraries(ctx context.Context, token string) ([]*models.Library, error)
	ActiveLibrary(ctx context.Context, token string) (*models.Library, error)
	CreateLibrary(ctx context.Context, token, name string, imageURL *string) (*models.Library, error)
	SwitchLibrary(ctx context.Context, token, id string) (*models.Library, error)
	UpdateLibrary(ctx context.Context, token, id string, upd LibraryUpdate) (*models.Library, error)
	DeleteLibrary(ctx context.Context, token, id string) error
	UploadImage(ctx context.Context, token, filename string, r io.Reader) (string, error)
}
