// Package libraries persists per-user library rows. Every query is scoped by
// the owning user id; callers that need the single-active invariant to hold
// across several statements run them in one transaction.
package libraries

import (
	"context"

	"github.com/dmitrijs2005/libhub/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, userID string) ([]*models.Library, error)
	GetActive(ctx context.Context, userID string) (*models.Library, error)
	GetOwned(ctx context.Context, id, userID string) (*models.Library, error)
	Count(ctx context.Context, userID string) (int, error)
	DeactivateAll(ctx context.Context, userID string) error
	Insert(ctx context.Context, lib *models.Library) (*models.Library, error)
	Activate(ctx context.Context, id, userID string) (*models.Library, error)
	Update(ctx context.Context, id, userID string, patch models.LibraryPatch) (*models.Library, error)
	Delete(ctx context.Context, id, userID string) error
	// PickSibling returns the id of the most recently created library of the
	// user other than excludeID.
	PickSibling(ctx context.Context, userID, excludeID string) (string, error)
}
