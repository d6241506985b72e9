// Package password wraps bcrypt hashing behind a small, cost-configurable
// hasher and provides the password strength rule used by the operator CLI.
package password

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost mirrors the 10-round work factor the catalog has always used.
const DefaultCost = 10

// Hasher produces and verifies salted one-way password hashes. The salt and
// cost factor are embedded in the hash output, so verification needs nothing
// beyond the hash itself.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside the
// supported range fall back to DefaultCost.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash applies the salted one-way transform to plaintext.
func (h Hasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify recomputes the hash using the embedded salt and cost and compares in
// constant time. A mismatch returns (false, nil); an error is returned only
// when hash is not a valid bcrypt hash.
func (h Hasher) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

const specialChars = `!@#$%^&*(),.?":{}|<>`

// Strong reports whether pw satisfies the operator-CLI strength rule:
// at least 6 characters with a letter, a digit, and a special character.
func Strong(pw string) bool {
	if len(pw) < 6 {
		return false
	}
	var letter, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}
	return letter && digit && special
}
