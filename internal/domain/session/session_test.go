package session

import (
	"context"
	"testing"

	"todoapp/internal/domain/entity"
	domainerrors "todoapp/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Transitions(t *testing.T) {
	s := New()
	assert.Equal(t, Anonymous, s.State())

	_, err := s.Require()
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	assert.Equal(t, Anonymous, s.State())

	identity := &entity.Identity{ID: uuid.New(), Email: "a@x.com", Name: "Ann"}
	s.SignIn(identity, "token-1")
	assert.Equal(t, Authenticated, s.State())
	assert.Equal(t, "token-1", s.TokenID())

	got, err := s.Require()
	require.NoError(t, err)
	assert.Equal(t, *identity, got)

	s.SignOut()
	assert.Equal(t, Anonymous, s.State())
	assert.Empty(t, s.TokenID())
	_, ok := s.Identity()
	assert.False(t, ok)
}

func TestSession_SignInCopiesIdentity(t *testing.T) {
	identity := &entity.Identity{Email: "a@x.com", Name: "Ann"}
	s := New()
	s.SignIn(identity, "")

	identity.Name = "Changed"

	got, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, "Ann", got.Name)
}

func TestSession_SignInNilIsSignOut(t *testing.T) {
	s := New()
	s.SignIn(&entity.Identity{Email: "a@x.com"}, "t")
	s.SignIn(nil, "t")

	assert.Equal(t, Anonymous, s.State())
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, Anonymous, FromContext(context.Background()).State())

	s := New()
	s.SignIn(&entity.Identity{Email: "a@x.com"}, "")
	ctx := WithSession(context.Background(), s)

	assert.Same(t, s, FromContext(ctx))
	assert.Equal(t, "authenticated", FromContext(ctx).State().String())
}
