// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"todoapp/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// LoginOutput returns the access token issued after a successful login.
type LoginOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	Identity    *entity.Identity
}

// AuthUsecase defines the credential operations and the session binding around them.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register stores a new credential and returns the public identity.
	Register(ctx context.Context, input *RegisterInput) (*entity.Identity, error)

	// Authenticate checks an email/password pair. Unknown email and wrong password
	// fail with the same error value.
	Authenticate(ctx context.Context, email, password string) (*entity.Identity, error)

	// Login authenticates, issues an access token and signs the request session in.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Logout revokes the access token and signs the request session out.
	Logout(ctx context.Context, accessToken string) error
}
