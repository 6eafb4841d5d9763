// Package password hashes and verifies account credentials.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the work factor applied to newly stored credentials.
// Raising it only affects hashes written afterwards; existing hashes
// keep the cost they were created with.
const defaultCost = 12

// ErrEmptyPassword rejects blank credentials before they reach bcrypt.
var ErrEmptyPassword = errors.New("password: empty password")

// Hasher turns plain credentials into stored hashes and verifies them.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// BcryptHasher is the bcrypt-backed Hasher used across the service.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given work factor. Costs
// outside the range bcrypt supports fall back to defaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = defaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash derives a storable hash from a plain password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare reports whether password matches the stored hash. It returns
// bcrypt.ErrMismatchedHashAndPassword when it does not.
func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
