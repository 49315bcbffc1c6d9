// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"todoapp/config"
	domainerrors "todoapp/internal/domain/errors"
	"todoapp/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher builds the hasher with the work factor from auth.bcryptCost.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}

	return NewBcryptHasherWithCost(cost)
}

// NewBcryptHasherWithCost returns a hasher using cost, clamped to bcrypt's allowed range.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	cost = max(cost, bcrypt.MinCost)
	cost = min(cost, bcrypt.MaxCost)

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt draws a new random salt on every call.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domainerrors.ErrValidationFailed.WithDetails("password must be at most 72 bytes")
		}

		return "", errors.Wrap(err, "bcrypt generate")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}
