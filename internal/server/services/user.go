// Package services contains server-side business logic. This file implements
// UserService: registration, login, profile reads and updates, and the
// superadmin user-management operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/dmitrijs2005/libhub/internal/common"
	"github.com/dmitrijs2005/libhub/internal/cryptox"
	"github.com/dmitrijs2005/libhub/internal/server/auth"
	"github.com/dmitrijs2005/libhub/internal/server/config"
	"github.com/dmitrijs2005/libhub/internal/server/models"
	"github.com/dmitrijs2005/libhub/internal/server/repositories/repomanager"
)

const (
	minPasswordLength = 8
	maxNameLength     = 100
	maxEmailLength    = 255
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var errInvalidCredentials = common.Fail(common.ErrorUnauthorized, "Invalid credentials")

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *models.User
	Token string
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

// ProfilePatch holds the fields a profile update may carry. Only the names
// are writable; the others exist so attempts to change them can be refused.
type ProfilePatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Role      *string
	Status    *string
}

type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	tokens                *auth.TokenService
	bcryptCost            int
	allowSuperadminSignup bool
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenService, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		tokens:                tokens,
		bcryptCost:            cfg.BcryptCost,
		allowSuperadminSignup: cfg.AllowSuperadminSignup,
	}
}

// Register creates an active account and returns it with a fresh token.
// Duplicate emails (exact match) yield common.ErrorConflict.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return nil, common.Fail(common.ErrorValidation, "Please provide all required fields")
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, common.Fail(common.ErrorValidation, "Invalid email address")
	}
	if len(in.Password) < minPasswordLength {
		return nil, common.Fail(common.ErrorValidation, "Password must be at least 8 characters long")
	}
	if len(in.Password) > cryptox.MaxPasswordBytes {
		return nil, common.Fail(common.ErrorValidation, "Password must be at most 72 bytes long")
	}
	if err := validateNames(&in.FirstName, &in.LastName); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(in.Email) > maxEmailLength {
		return nil, common.Fail(common.ErrorValidation, "Email must be at most 255 characters")
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, in.Email)
	if err == nil {
		return nil, common.Fail(common.ErrorConflict, "Email already registered")
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := cryptox.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	role := models.RoleAdmin
	if models.ParseRole(in.Role) == models.RoleSuperadmin && s.allowSuperadminSignup {
		role = models.RoleSuperadmin
	}

	u, err := repo.Create(ctx, &models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		Status:       models.StatusActive,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.Fail(common.ErrorConflict, "Email already registered")
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.issue(u)
}

// Login checks the credentials. Unknown email and wrong password fail with
// the same error; a correct password on a non-active account is Forbidden.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, common.Fail(common.ErrorValidation, "Email and password required")
	}

	u, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			cryptox.BurnCompare(password)
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !cryptox.CheckPassword(u.PasswordHash, password) {
		return nil, errInvalidCredentials
	}
	if u.Status != models.StatusActive {
		return nil, common.Fail(common.ErrorForbidden, "Account is inactive")
	}

	return s.issue(u)
}

func (s *UserService) GetProfile(ctx context.Context, id auth.Identity) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.Fail(common.ErrorNotFound, "User not found")
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return u, nil
}

// UpdateProfile changes the caller's names. Email, role and status are not
// self-service; an empty patch returns the user unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, id auth.Identity, p ProfilePatch) (*models.User, error) {
	if nonBlank(p.Email) != nil || nonBlank(p.Role) != nil || nonBlank(p.Status) != nil {
		return nil, common.Fail(common.ErrorForbidden, "Cannot change email, role, or status")
	}

	first := nonBlank(p.FirstName)
	last := nonBlank(p.LastName)
	if first == nil && last == nil {
		return s.GetProfile(ctx, id)
	}
	if err := validateNames(first, last); err != nil {
		return nil, err
	}

	u, err := s.repomanager.Users(s.db).UpdateNames(ctx, id.UserID, first, last)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.Fail(common.ErrorNotFound, "User not found")
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context, id auth.Identity) ([]*models.User, error) {
	if !auth.Authorize(id, auth.ActionUsersManage, auth.Resource{}) {
		return nil, common.Fail(common.ErrorForbidden, "Access denied")
	}

	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

func (s *UserService) SetUserStatus(ctx context.Context, id auth.Identity, userID string, status models.Status) (*models.User, error) {
	if !auth.Authorize(id, auth.ActionUsersManage, auth.Resource{OwnerID: userID}) {
		return nil, common.Fail(common.ErrorForbidden, "Access denied")
	}
	if !status.Valid() {
		return nil, common.Fail(common.ErrorValidation, "Invalid status value")
	}

	u, err := s.repomanager.Users(s.db).UpdateStatus(ctx, userID, status)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.Fail(common.ErrorNotFound, "User not found")
		}
		return nil, fmt.Errorf("error updating status: %w", err)
	}
	return u, nil
}

func (s *UserService) issue(u *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(auth.IdentityOf(u))
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}
	return &AuthResult{User: u, Token: token}, nil
}

func nonBlank(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// validateNames checks name lengths against the users table columns.
func validateNames(names ...*string) error {
	for _, n := range names {
		if n != nil && utf8.RuneCountInString(*n) > maxNameLength {
			return common.Fail(common.ErrorValidation, "Names must be at most 100 characters")
		}
	}
	return nil
}
