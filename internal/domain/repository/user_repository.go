// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"todoapp/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository stores credentials. It is the generic record store the credential
// service talks to: an insert and an exact-match lookup.
type UserRepository interface {
	// Create inserts a new user. A uniqueness conflict on email is reported as
	// domainerrors.ErrDuplicateEmail and a malformed email as domainerrors.ErrValidationFailed.
	// Any other failure is returned wrapped.
	// On success the generated ID and timestamps are written back into user.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a single user by exact email match.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
