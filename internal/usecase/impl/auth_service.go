// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "todoapp/internal/delivery/context"
	"todoapp/internal/domain/entity"
	domainerrors "todoapp/internal/domain/errors"
	"todoapp/internal/domain/repository"
	"todoapp/internal/domain/service"
	"todoapp/internal/domain/session"
	"todoapp/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	registerFailedMessage = "Failed to create account"
	signInFailedMessage   = "Failed to sign in"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	events       eventEmitter
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher `optional:"true"`
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		events:       newEventEmitter(params.Publisher),
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register hashes the password and stores the credential. Email syntax is left
// to the store, which rejects malformed addresses.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.Identity, error) {
	if input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("password must not be empty")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, domainerrors.ErrValidationFailed) {
			return nil, err
		}
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed
	}

	user := &entity.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrDuplicateEmail):
			srv.log(ctx).Info("Registration rejected, email already registered", slog.String("email", input.Email))

			return nil, domainerrors.ErrDuplicateEmail
		case errors.Is(err, domainerrors.ErrValidationFailed):
			return nil, err
		default:
			srv.log(ctx).Error("Failed to create user", slog.String("email", input.Email), slog.Any("error", err))

			return nil, domainerrors.NewPersistenceError(err, registerFailedMessage, "")
		}
	}

	srv.log(ctx).Info("User registered", slog.Any("userID", user.ID))
	srv.events.emit(ctx, srv.log(ctx), service.EventUserRegistered, user.ID, uuid.Nil)

	return user.Identity(), nil
}

// Authenticate looks the user up by exact email and compares the password.
func (srv *authService) Authenticate(ctx context.Context, email, password string) (*entity.Identity, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		srv.log(ctx).Error("Failed to look up user", slog.Any("error", err))

		return nil, domainerrors.NewPersistenceError(err, signInFailedMessage, "")
	}

	if !srv.hasher.Check(password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return user.Identity(), nil
}

// Login authenticates the pair, issues an access token and signs the session in.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	identity, err := srv.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	issued, err := srv.tokenService.Issue(identity)
	if err != nil {
		srv.log(ctx).Error("Failed to issue access token", slog.Any("userID", identity.ID), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError
	}

	session.FromContext(ctx).SignIn(identity, issued.ID)
	srv.log(ctx).Info("User logged in", slog.Any("userID", identity.ID))

	return &usecase.LoginOutput{
		AccessToken: issued.Token,
		ExpiresAt:   issued.ExpiresAt,
		Identity:    identity,
	}, nil
}

// Logout revokes the access token so it is rejected from now on, and signs the session out.
func (srv *authService) Logout(ctx context.Context, accessToken string) error {
	sess := session.FromContext(ctx)
	if _, err := sess.Require(); err != nil {
		return err
	}

	claims, err := srv.tokenService.Validate(accessToken)
	if err != nil {
		sess.SignOut()

		return domainerrors.ErrUnauthenticated
	}

	if claims.ExpiresAt != nil {
		srv.tokenService.Revoke(claims.ID, claims.ExpiresAt.Time)
	}
	sess.SignOut()

	srv.log(ctx).Info("User logged out", slog.Any("userID", claims.UserID))

	return nil
}
