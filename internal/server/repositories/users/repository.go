package users

import (
	"context"

	"github.com/dmitrijs2005/libhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdateNames(ctx context.Context, id string, firstName, lastName *string) (*models.User, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) (*models.User, error)
	// LockForUpdate takes a row lock on the user; only meaningful inside a
	// transaction.
	LockForUpdate(ctx context.Context, id string) error
}
