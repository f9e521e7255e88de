// Package password hashes passwords at the repository write boundary.
package password

import (
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// bcryptPattern matches the modular crypt format produced by bcrypt
// ($2a$, $2b$ or $2y$, two-digit cost, 53 characters of salt+hash).
var bcryptPattern = regexp.MustCompile(`^\$2[aby]?\$\d{2}\$[./A-Za-z0-9]{53}$`)

// Hasher hashes plaintext passwords with bcrypt.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// IsHashed reports whether v is already a bcrypt hash.
func IsHashed(v string) bool {
	return bcryptPattern.MatchString(v)
}

// Hash returns the bcrypt hash of v. Values that are empty or already hashed
// are returned unchanged so update flows never double-hash.
func (h *Hasher) Hash(v string) (string, error) {
	if v == "" || IsHashed(v) {
		return v, nil
	}
	b, err := bcrypt.GenerateFromPassword([]byte(v), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare reports whether plain matches hash. A malformed hash is a mismatch.
func Compare(hash, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrHashTooShort):
		return false, nil
	default:
		return false, err
	}
}
