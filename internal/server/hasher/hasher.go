// Package hasher turns plaintext secrets into salted one-way hashes and
// verifies candidates against them.
package hasher

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmptySecret = errors.New("empty secret")

// Hasher is the credential hashing contract used by the services.
type Hasher interface {
	Hash(secret string) (string, error)
	// Verify reports whether secret matches hash. A mismatch is (false, nil);
	// an error means hash could not be checked at all.
	Verify(secret, hash string) (bool, error)
}

// Bcrypt implements Hasher with bcrypt. The comparison runs in constant
// time with respect to the secret.
type Bcrypt struct {
	Cost int
}

func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{Cost: cost}
}

func (b *Bcrypt) Hash(secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	h, err := bcrypt.GenerateFromPassword([]byte(secret), b.Cost)
	if err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	return string(h), nil
}

func (b *Bcrypt) Verify(secret, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("verify: %w", err)
	}
}
