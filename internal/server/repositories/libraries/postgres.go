package libraries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/libhub/internal/common"
	"github.com/dmitrijs2005/libhub/internal/dbx"
	"github.com/dmitrijs2005/libhub/internal/server/models"
)

const libraryColumns = `id, user_id, name, image_url, is_active, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLibrary(row scanner) (*models.Library, error) {
	l := &models.Library{}
	var image sql.NullString
	if err := row.Scan(&l.ID, &l.UserID, &l.Name, &image, &l.IsActive, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	if image.Valid {
		l.ImageURL = &image.String
	}
	return l, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Library, error) {
	query :=
		`SELECT ` + libraryColumns + ` FROM libraries
		 WHERE user_id = $1
		 ORDER BY is_active DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	libs := make([]*models.Library, 0)
	for rows.Next() {
		l, err := scanLibrary(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		libs = append(libs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return libs, nil
}

// GetActive returns common.ErrorNotFound when the user has no library.
func (r *PostgresRepository) GetActive(ctx context.Context, userID string) (*models.Library, error) {
	query :=
		`SELECT ` + libraryColumns + ` FROM libraries
		 WHERE user_id = $1 AND is_active
		 LIMIT 1`

	l, err := scanLibrary(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return l, nil
}

func (r *PostgresRepository) GetOwned(ctx context.Context, id, userID string) (*models.Library, error) {
	query :=
		`SELECT ` + libraryColumns + ` FROM libraries
		 WHERE id = $1 AND user_id = $2`

	l, err := scanLibrary(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return l, nil
}

func (r *PostgresRepository) Count(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM libraries WHERE user_id = $1`

	var n int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) DeactivateAll(ctx context.Context, userID string) error {
	query :=
		`UPDATE libraries SET is_active = FALSE, updated_at = now()
		 WHERE user_id = $1 AND is_active`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Insert stores lib as given (including IsActive) and returns the stored row.
func (r *PostgresRepository) Insert(ctx context.Context, lib *models.Library) (*models.Library, error) {
	query :=
		`INSERT INTO libraries (user_id, name, image_url, is_active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING ` + libraryColumns

	l, err := scanLibrary(r.db.QueryRowContext(ctx, query, lib.UserID, lib.Name, lib.ImageURL, lib.IsActive))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("second active library: %w", common.ErrorConflict)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresRepository) Activate(ctx context.Context, id, userID string) (*models.Library, error) {
	query :=
		`UPDATE libraries SET is_active = TRUE, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + libraryColumns

	l, err := scanLibrary(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("second active library: %w", common.ErrorConflict)
		}
		return nil, notFoundOr(err)
	}
	return l, nil
}

// Update applies the non-nil fields of patch. An empty ImageURL clears the
// image. An empty patch only touches updated_at.
func (r *PostgresRepository) Update(ctx context.Context, id, userID string, patch models.LibraryPatch) (*models.Library, error) {
	fields := []string{"updated_at = now()"}
	args := []any{id, userID}

	if patch.Name != nil {
		args = append(args, *patch.Name)
		fields = append(fields, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.ImageURL != nil {
		var image any
		if *patch.ImageURL != "" {
			image = *patch.ImageURL
		}
		args = append(args, image)
		fields = append(fields, fmt.Sprintf("image_url = $%d", len(args)))
	}

	query :=
		`UPDATE libraries SET ` + strings.Join(fields, ", ") + `
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + libraryColumns

	l, err := scanLibrary(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return l, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM libraries WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return notFoundOr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) PickSibling(ctx context.Context, userID, excludeID string) (string, error) {
	query :=
		`SELECT id FROM libraries
		 WHERE user_id = $1 AND id <> $2
		 ORDER BY created_at DESC
		 LIMIT 1`

	var id string
	if err := r.db.QueryRowContext(ctx, query, userID, excludeID).Scan(&id); err != nil {
		return "", notFoundOr(err)
	}
	return id, nil
}
