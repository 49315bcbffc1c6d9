package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"todoapp/config"
	"todoapp/internal/domain/service"
	"todoapp/internal/domain/session"
	"todoapp/internal/infra/auth"
	"todoapp/internal/infra/persistence/memory"
	"todoapp/internal/usecase"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Todo: &config.TodoConfig{DefaultCategoryColor: "#3B82F6"},
	}
	cfg.SecretKey.Access = "test-secret"
	cfg.Env.ServiceName = "todoapp-test"

	return cfg
}

// app wires every usecase to a fresh in-memory store.
type app struct {
	store      *memory.Store
	tokens     service.TokenService
	auth       usecase.AuthUsecase
	todos      usecase.TodoUsecase
	categories usecase.CategoryUsecase
}

func newTestApp(t *testing.T, publisher service.EventPublisher) *app {
	t.Helper()

	cfg := newTestConfig()
	store := memory.NewStore()
	logger := newDiscardLogger()

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return &app{
		store:  store,
		tokens: tokens,
		auth: NewAuthService(AuthServiceParams{
			UserRepo:     store.UserRepo(),
			Hasher:       auth.NewBcryptHasher(cfg),
			TokenService: tokens,
			Publisher:    publisher,
			Logger:       logger,
		}),
		todos: NewTodoService(TodoServiceParams{
			TodoRepo:     store.TodoRepo(),
			CategoryRepo: store.CategoryRepo(),
			Publisher:    publisher,
			Logger:       logger,
		}),
		categories: NewCategoryService(CategoryServiceParams{
			TxManager:    store.TransactionManager(),
			CategoryRepo: store.CategoryRepo(),
			Publisher:    publisher,
			Config:       cfg,
			Logger:       logger,
		}),
	}
}

func newSessionContext() (context.Context, *session.Session) {
	sess := session.New()

	return session.WithSession(context.Background(), sess), sess
}
