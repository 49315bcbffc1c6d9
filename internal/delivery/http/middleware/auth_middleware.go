package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "todoapp/internal/delivery/context"
	"todoapp/internal/domain/entity"
	"todoapp/internal/domain/service"
	"todoapp/internal/domain/session"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware binds the identity gate to HTTP: every request gets a session,
// Authenticated when it carries a valid access token and Anonymous otherwise.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Session attaches a session to the request context. An absent, malformed,
// expired or revoked token leaves the session Anonymous; it never fails the request.
func (m *AuthMiddleware) Session(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := session.New()

		if tokenString := BearerToken(c); tokenString != "" {
			claims, err := m.tokenSvc.Validate(tokenString)
			if err != nil {
				deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
					Debug("Ignoring invalid access token", slog.Any("error", err))
			} else {
				sess.SignIn(claims.Identity(), claims.ID)
			}
		}

		c.SetRequest(c.Request().WithContext(session.WithSession(c.Request().Context(), sess)))

		return next(c)
	}
}

// RequireAuth guards protected routes. It must be used AFTER the Session middleware.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := session.FromContext(c.Request().Context()).Require(); err != nil {
			return err
		}

		return next(c)
	}
}

// BearerToken returns the token from the Authorization header, or "" when the
// header is missing or not a bearer credential.
func BearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
}

// CurrentIdentity returns the identity of the request session. It fails with
// ErrUnauthenticated for an Anonymous session.
func CurrentIdentity(c echo.Context) (entity.Identity, error) {
	return session.FromContext(c.Request().Context()).Require()
}
