// Package session implements the identity gate: a per-request holder of the
// current identity with exactly two states, Anonymous and Authenticated.
package session

import (
	"context"
	"sync"

	"todoapp/internal/domain/entity"
	domainerrors "todoapp/internal/domain/errors"
)

// State is the gate state.
type State int

const (
	Anonymous State = iota
	Authenticated
)

// String returns the state name.
func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}

	return "anonymous"
}

// Session holds the identity for one request. The zero value is Anonymous.
type Session struct {
	mu       sync.RWMutex
	identity *entity.Identity
	tokenID  string
}

// New returns an Anonymous session.
func New() *Session {
	return &Session{}
}

// SignIn moves the session to Authenticated(identity). tokenID names the access
// token that proved the identity and may be empty.
func (s *Session) SignIn(identity *entity.Identity, tokenID string) {
	if identity == nil {
		s.SignOut()

		return
	}

	copied := *identity

	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = &copied
	s.tokenID = tokenID
}

// SignOut moves the session back to Anonymous.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = nil
	s.tokenID = ""
}

// State reports the current gate state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return Anonymous
	}

	return Authenticated
}

// Identity returns a copy of the current identity.
func (s *Session) Identity() (entity.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return entity.Identity{}, false
	}

	return *s.identity, true
}

// TokenID returns the id of the token the session was opened with.
func (s *Session) TokenID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tokenID
}

// Require is the guard used by protected views. An Anonymous session fails with
// ErrUnauthenticated and stays Anonymous.
func (s *Session) Require() (entity.Identity, error) {
	identity, ok := s.Identity()
	if !ok {
		return entity.Identity{}, domainerrors.ErrUnauthenticated
	}

	return identity, nil
}

type contextKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, or a fresh Anonymous one.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(contextKey{}).(*Session); ok && s != nil {
		return s
	}

	return New()
}
