// Package cryptox wraps password hashing. Hashes are bcrypt; plaintext
// passwords never leave this package in any other form.
package cryptox

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// DefaultCost matches the cost factor accounts were created with historically.
const DefaultCost = 10

// dummyHash is compared against when an account does not exist so the
// response time of a failed login does not depend on the email being known.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("libhub-dummy-password"), DefaultCost)

// HashPassword returns the bcrypt hash of password. A cost outside bcrypt's
// accepted range falls back to DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// BurnCompare spends roughly the time of a real CheckPassword and always
// reports false.
func BurnCompare(password string) bool {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
	return false
}
