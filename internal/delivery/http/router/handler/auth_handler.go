// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"todoapp/internal/delivery/http/middleware"
	"todoapp/internal/delivery/http/response"
	"todoapp/internal/domain/entity"
	"todoapp/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler holds dependencies for credential and session handlers.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// RegisterRequest represents the request body for creating an account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"max=100"`
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents the request body for signing in. The password is not
// required here so an empty one fails like any other wrong password.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	AccessToken string           `json:"accessToken"`
	TokenType   string           `json:"tokenType"`
	ExpiresAt   time.Time        `json:"expiresAt"`
	User        *entity.Identity `json:"user"`
}

// Register handles the account creation request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, err := h.authUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, identity, "Account created successfully")
}

// Login handles the sign-in request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &LoginResponse{
		AccessToken: output.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   output.ExpiresAt,
		User:        output.Identity,
	}, "Login successful")
}

// Logout revokes the bearer token and signs the session out.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authUC.Logout(c.Request().Context(), middleware.BearerToken(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// Me returns the signed-in identity, used for the greeting.
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, identity, "")
}
