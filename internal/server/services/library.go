package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/libhub/internal/common"
	"github.com/dmitrijs2005/libhub/internal/dbx"
	"github.com/dmitrijs2005/libhub/internal/server/auth"
	"github.com/dmitrijs2005/libhub/internal/server/models"
	"github.com/dmitrijs2005/libhub/internal/server/repositories/repomanager"
)

const (
	minLibraryNameLength = 3
	maxLibraryNameLength = 255
)

var (
	errLibraryNotFound = common.Fail(common.ErrorNotFound, "Library not found")
	errLastLibrary     = common.Fail(common.ErrLastLibrary, "Cannot delete the last library")
)

// LibraryService manages the caller's libraries. Create, Switch and Delete
// run in one transaction that first locks the owner's users row, so
// concurrent mutations for the same user are serialized and the user never
// ends up with zero or two active libraries.
type LibraryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewLibraryService(db *sql.DB, m repomanager.RepositoryManager) *LibraryService {
	return &LibraryService{db: db, repomanager: m}
}

// List returns the caller's libraries, active first, then newest first.
func (s *LibraryService) List(ctx context.Context, id auth.Identity) ([]*models.Library, error) {
	if err := s.authorize(id); err != nil {
		return nil, err
	}

	libs, err := s.repomanager.Libraries(s.db).List(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("error listing libraries: %w", err)
	}
	return libs, nil
}

// GetActive returns nil, nil when the caller has no library yet.
func (s *LibraryService) GetActive(ctx context.Context, id auth.Identity) (*models.Library, error) {
	if err := s.authorize(id); err != nil {
		return nil, err
	}

	lib, err := s.repomanager.Libraries(s.db).GetActive(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting active library: %w", err)
	}
	return lib, nil
}

// Create adds a library and makes it the active one.
func (s *LibraryService) Create(ctx context.Context, id auth.Identity, name string, imageURL *string) (*models.Library, error) {
	if err := s.authorize(id); err != nil {
		return nil, err
	}

	name, err := validateLibraryName(name)
	if err != nil {
		return nil, err
	}

	var created *models.Library
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.lockOwner(ctx, tx, id.UserID); err != nil {
			return err
		}

		repo := s.repomanager.Libraries(tx)

		n, err := repo.Count(ctx, id.UserID)
		if err != nil {
			return err
		}
		if n >= common.MaxLibrariesPerUser {
			return common.Fail(common.ErrorLimitExceeded,
				fmt.Sprintf("Maximum number of libraries reached (%d)", common.MaxLibrariesPerUser))
		}

		if err := repo.DeactivateAll(ctx, id.UserID); err != nil {
			return err
		}

		created, err = repo.Insert(ctx, &models.Library{
			UserID:   id.UserID,
			Name:     name,
			ImageURL: nonBlank(imageURL),
			IsActive: true,
		})
		return err
	})
	if err != nil {
		return nil, wrapLibraryErr("error creating library", err)
	}

	return created, nil
}

// Switch makes the given library the caller's only active one.
func (s *LibraryService) Switch(ctx context.Context, id auth.Identity, libraryID string) (*models.Library, error) {
	if err := s.authorize(id); err != nil {
		return nil, err
	}

	var active *models.Library
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.lockOwner(ctx, tx, id.UserID); err != nil {
			return err
		}

		repo := s.repomanager.Libraries(tx)

		if _, err := repo.GetOwned(ctx, libraryID, id.UserID); err != nil {
			return err
		}
		if err := repo.DeactivateAll(ctx, id.UserID); err != nil {
			return err
		}

		var err error
		active, err = repo.Activate(ctx, libraryID, id.UserID)
		return err
	})
	if err != nil {
		return nil, wrapLibraryErr("error switching library", err)
	}

	return active, nil
}

// Update renames the library and/or changes its image. A blank name is
// ignored; an empty image URL clears the image.
func (s *LibraryService) Update(ctx context.Context, id auth.Identity, libraryID string, patch models.LibraryPatch) (*models.Library, error) {
	if err := s.authorize(id); err != nil {
		return nil, err
	}

	repo := s.repomanager.Libraries(s.db)

	if _, err := repo.GetOwned(ctx, libraryID, id.UserID); err != nil {
		return nil, wrapLibraryErr("error getting library", err)
	}

	var clean models.LibraryPatch
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		name, err := validateLibraryName(*patch.Name)
		if err != nil {
			return nil, err
		}
		clean.Name = &name
	}
	clean.ImageURL = patch.ImageURL

	if clean.Name == nil && clean.ImageURL == nil {
		return nil, common.Fail(common.ErrorValidation, "No changes provided")
	}

	lib, err := repo.Update(ctx, libraryID, id.UserID, clean)
	if err != nil {
		return nil, wrapLibraryErr("error updating library", err)
	}
	return lib, nil
}

// Delete removes a library. The last library cannot be deleted; deleting
// the active one promotes the most recently created sibling.
func (s *LibraryService) Delete(ctx context.Context, id auth.Identity, libraryID string) error {
	if err := s.authorize(id); err != nil {
		return err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.lockOwner(ctx, tx, id.UserID); err != nil {
			return err
		}

		repo := s.repomanager.Libraries(tx)

		lib, err := repo.GetOwned(ctx, libraryID, id.UserID)
		if err != nil {
			return err
		}

		n, err := repo.Count(ctx, id.UserID)
		if err != nil {
			return err
		}
		if n <= 1 {
			return errLastLibrary
		}

		var sibling string
		if lib.IsActive {
			if sibling, err = repo.PickSibling(ctx, id.UserID, libraryID); err != nil {
				return err
			}
		}

		// delete first: the partial unique index forbids two active rows
		// even for the duration of one statement
		if err := repo.Delete(ctx, libraryID, id.UserID); err != nil {
			return err
		}

		if sibling != "" {
			if _, err := repo.Activate(ctx, sibling, id.UserID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return wrapLibraryErr("error deleting library", err)
	}
	return nil
}

func (s *LibraryService) authorize(id auth.Identity) error {
	if !auth.Authorize(id, auth.ActionLibrariesManage, auth.Resource{OwnerID: id.UserID}) {
		return common.Fail(common.ErrorForbidden, "Access denied")
	}
	return nil
}

func (s *LibraryService) lockOwner(ctx context.Context, tx dbx.DBTX, userID string) error {
	if err := s.repomanager.Users(tx).LockForUpdate(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.Fail(common.ErrorNotFound, "User not found")
		}
		return err
	}
	return nil
}

func validateLibraryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", common.Fail(common.ErrorValidation, "Library name is required")
	}
	if utf8.RuneCountInString(name) < minLibraryNameLength {
		return "", common.Fail(common.ErrorValidation, "Library name must be at least 3 characters")
	}
	if utf8.RuneCountInString(name) > maxLibraryNameLength {
		return "", common.Fail(common.ErrorValidation, "Library name must be at most 255 characters")
	}
	return name, nil
}

// wrapLibraryErr passes caller-facing failures through and maps a bare
// not-found to the library not-found failure.
func wrapLibraryErr(op string, err error) error {
	var f *common.Failure
	if errors.As(err, &f) {
		return err
	}
	if errors.Is(err, common.ErrorNotFound) {
		return errLibraryNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
