package auth

import (
	"testing"
	"time"

	"todoapp/config"
	"todoapp/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIdentity() *entity.Identity {
	return &entity.Identity{ID: uuid.New(), Email: "a@x.com", Name: "Ann"}
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)

	cfg := &config.Config{Auth: &config.AuthConfig{AccessTokenTTL: time.Hour}}
	cfg.SecretKey.Access = "secret"
	svc, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, svc.(*jwtService).ttl)
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newJWTService("secret", time.Hour, "todoapp")
	identity := testIdentity()

	issued, err := svc.Issue(identity)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.NotEmpty(t, issued.ID)

	claims, err := svc.Validate(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, identity, claims.Identity())
	assert.Equal(t, issued.ID, claims.ID)
	assert.Equal(t, "todoapp", claims.Issuer)
}

func TestJWTService_RejectsTamperedAndForeignTokens(t *testing.T) {
	svc := newJWTService("secret", time.Hour, "todoapp")
	other := newJWTService("other-secret", time.Hour, "todoapp")

	issued, err := other.Issue(testIdentity())
	require.NoError(t, err)

	_, err = svc.Validate(issued.Token)
	assert.Error(t, err)

	_, err = svc.Validate("not-a-token")
	assert.Error(t, err)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	svc := newJWTService("secret", time.Hour, "todoapp")

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"uid": uuid.NewString()})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Validate(signed)
	assert.Error(t, err)
}

func TestJWTService_Expiry(t *testing.T) {
	svc := newJWTService("secret", time.Minute, "todoapp")
	issued, err := svc.Issue(testIdentity())
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = svc.Validate(issued.Token)
	assert.Error(t, err)
}

func TestJWTService_Revoke(t *testing.T) {
	svc := newJWTService("secret", time.Hour, "todoapp")
	issued, err := svc.Issue(testIdentity())
	require.NoError(t, err)

	svc.Revoke(issued.ID, issued.ExpiresAt)

	_, err = svc.Validate(issued.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	fresh, err := svc.Issue(testIdentity())
	require.NoError(t, err)
	_, err = svc.Validate(fresh.Token)
	assert.NoError(t, err)
}

func TestJWTService_RevokePrunesExpiredEntries(t *testing.T) {
	svc := newJWTService("secret", time.Hour, "todoapp")

	svc.Revoke("old", time.Now().Add(time.Second))
	svc.Revoke("ignored", time.Now().Add(-time.Second))
	require.Len(t, svc.revoked, 1)

	svc.now = func() time.Time { return time.Now().Add(time.Minute) }
	svc.Revoke("new", time.Now().Add(time.Hour))

	assert.Len(t, svc.revoked, 1)
	assert.Contains(t, svc.revoked, "new")
}
