package service

import (
	"time"

	"todoapp/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by an access token.
type Claims struct {
	UserID uuid.UUID `json:"uid"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	jwt.RegisteredClaims
}

// Identity returns the identity the token was issued to.
func (c *Claims) Identity() *entity.Identity {
	return &entity.Identity{ID: c.UserID, Email: c.Email, Name: c.Name}
}

// IssuedToken is a freshly signed access token.
type IssuedToken struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}

// TokenService issues and validates the access tokens that carry a signed-in identity
// between requests.
type TokenService interface {
	// Issue signs an access token for identity.
	Issue(identity *entity.Identity) (*IssuedToken, error)

	// Validate parses and verifies a token, rejecting expired or revoked ones.
	Validate(tokenString string) (*Claims, error)

	// Revoke rejects the token id until expiresAt.
	Revoke(tokenID string, expiresAt time.Time)
}
