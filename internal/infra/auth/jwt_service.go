package auth

import (
	"sync"
	"time"

	"todoapp/config"
	"todoapp/internal/domain/entity"
	"todoapp/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrTokenRevoked is returned by Validate for a token that was logged out.
var ErrTokenRevoked = errors.New("token has been revoked")

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // token id -> token expiry
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt access secret must be provided")
	}

	ttl := 24 * time.Hour
	if cfg.Auth != nil && cfg.Auth.AccessTokenTTL > 0 {
		ttl = cfg.Auth.AccessTokenTTL
	}

	return newJWTService(cfg.SecretKey.Access, ttl, cfg.Env.ServiceName), nil
}

func newJWTService(secret string, ttl time.Duration, issuer string) *jwtService {
	return &jwtService{
		secret:  []byte(secret),
		ttl:     ttl,
		issuer:  issuer,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

// Issue signs an HS256 access token for identity.
func (s *jwtService) Issue(identity *entity.Identity) (*service.IssuedToken, error) {
	if identity == nil {
		return nil, errors.New("identity is required")
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	tokenID := uuid.NewString()

	claims := &service.Claims{
		UserID: identity.ID,
		Email:  identity.Email,
		Name:   identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   identity.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign access token")
	}

	return &service.IssuedToken{
		Token:     signed,
		ID:        tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate checks the signature, expiry and revocation status of tokenString.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, errors.Wrap(err, "invalid access token")
	}
	if !token.Valid {
		return nil, errors.New("invalid access token")
	}

	if s.isRevoked(claims.ID) {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// Revoke rejects tokenID until expiresAt. Expired entries are pruned on each call.
func (s *jwtService) Revoke(tokenID string, expiresAt time.Time) {
	if tokenID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, id)
		}
	}

	if expiresAt.After(now) {
		s.revoked[tokenID] = expiresAt
	}
}

func (s *jwtService) isRevoked(tokenID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.revoked[tokenID]

	return ok && exp.After(s.now())
}
