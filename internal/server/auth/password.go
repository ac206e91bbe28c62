package auth

import (
	"fmt"

	"github.com/dmitrijs2005/pdstore/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest input bcrypt hashes without truncation.
const maxPasswordBytes = 72

// Hasher hashes and verifies passwords with bcrypt.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using cost, clamped to the range bcrypt accepts.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted bcrypt hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password longer than %d bytes", common.ErrInvalidInput, maxPasswordBytes)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether password matches hash. A malformed hash never matches.
// Passwords over maxPasswordBytes never match either: bcrypt would compare
// only their first 72 bytes. The comparison still runs so timing stays flat.
func (h *Hasher) Verify(password, hash string) bool {
	ok := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	return ok && len(password) <= maxPasswordBytes
}
