// Package crypto implements server-side password hashing and verification.
package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/akuzmin/notehub/internal/errs"
)

// DefaultCost keeps a single hash in the tens of milliseconds on current hardware.
const DefaultCost = 12

// HashPassword returns the bcrypt hash of password at the given cost.
// cost <= 0 selects DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrHashing, err)
	}
	return string(h), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
// A mismatch is a normal false, never an error.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
