// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a stored credential: the account record that authorizes future sign-ins.
// PasswordHash is write-only from a caller's point of view and must never leave the
// usecase layer; use Identity for anything returned to a client.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email        string    // Login identifier, unique across all users.
	Name         string    // Display name used for greetings.
	PasswordHash string    // bcrypt digest (salt and cost embedded), never the plaintext.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the public projection of a User.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// Identity returns the public projection of the user.
func (u *User) Identity() *Identity {
	if u == nil {
		return nil
	}

	return &Identity{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}
