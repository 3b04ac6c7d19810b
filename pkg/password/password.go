package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for stored credentials.
const DefaultCost = 10

// bcrypt only looks at the first 72 bytes of input.
const maxLen = 72

var ErrTooLong = errors.New("password too long")

type Hasher struct {
	Cost int
}

func NewHasher() *Hasher {
	return &Hasher{Cost: DefaultCost}
}

// Hash returns a salted bcrypt hash. Two calls with the same plaintext
// produce different values.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > maxLen {
		return "", ErrTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost())
	if err != nil {
		return "", fmt.Errorf("hashing password error: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hashed. A malformed hash is a
// mismatch, and so is plaintext that Hash would have rejected.
func (h *Hasher) Verify(plaintext, hashed string) bool {
	if len(plaintext) > maxLen {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}

func (h *Hasher) cost() int {
	if h.Cost == 0 {
		return DefaultCost
	}
	return h.Cost
}
