// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the number of bcrypt rounds used for stored passwords.
const DefaultCost = 10

// MaxLength is the number of password bytes bcrypt uses. Longer passwords
// are truncated before hashing and comparing.
const MaxLength = 72

type Hasher interface {
	Hash(plain string) (string, error)
	Compare(plain, hashed string) (bool, error)
}

type bcryptHasher struct {
	cost int
}

// NewBcrypt returns a Hasher using the given cost. Costs outside the range
// bcrypt accepts fall back to DefaultCost.
func NewBcrypt(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncate(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare reports whether plain matches hashed. A mismatch is not an error.
func (h *bcryptHasher) Compare(plain, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), truncate(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

func truncate(plain string) []byte {
	b := []byte(plain)
	if len(b) > MaxLength {
		return b[:MaxLength]
	}
	return b
}
