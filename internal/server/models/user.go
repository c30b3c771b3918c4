package models

import "time"

// Role is the account role carried in session tokens.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// ParseRole coerces any requested role to admin unless it is exactly
// "superadmin".
func ParseRole(s string) Role {
	if Role(s) == RoleSuperadmin {
		return RoleSuperadmin
	}
	return RoleAdmin
}

// Status is the account state. Only active accounts may log in.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// User is a row of the users table. PasswordHash never leaves the server;
// use Public for anything sent to a client.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
	Status       Status
	CreatedAt    time.Time
}

// DisplayName is "first last", as embedded in session tokens.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// PublicUser is the client-facing projection of User.
type PublicUser struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

// PublicUsers projects a slice of users; the result is never nil.
func PublicUsers(users []*User) []*PublicUser {
	out := make([]*PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}
