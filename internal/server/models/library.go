package models

import "time"

// Library is a tenant workspace owned by one user. At most one library per
// user is active at any time.
type Library struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	ImageURL  *string   `json:"imageUrl"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LibraryPatch carries the optional fields of a library update. A nil field
// is left untouched.
type LibraryPatch struct {
	Name     *string
	ImageURL *string
}
