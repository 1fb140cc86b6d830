// Package auth covers password hashing, the signed cookie session, and
// the middleware that gates protected routes.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor. Cost 12 takes roughly 250ms on
// current server hardware, which is the point: slow for attackers.
const defaultCost = 12

// PasswordService provides bcrypt hashing and verification. It is a
// struct rather than free functions so tests can inject a lower cost.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost.
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceForTest creates a PasswordService with a custom cost.
// Use bcrypt.MinCost (4) in tests to avoid the ~250ms per hash. Never in
// production.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash hashes a plaintext password. The output embeds the random salt
// and cost, so it is stored in the database as-is.
//
// bcrypt silently truncates input beyond 72 bytes; we reject it instead
// so callers are not surprised.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks a plaintext password against a stored hash. Returns nil
// on match. The comparison is constant-time inside bcrypt.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("auth: invalid password")
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
