// Package persistence selects the repository backend configured by store.driver.
package persistence

import (
	"log/slog"

	"todoapp/config"
	"todoapp/internal/domain/repository"
	"todoapp/internal/infra/persistence/memory"
	"todoapp/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Repositories carries every repository provided to the usecase layer.
type Repositories struct {
	fx.Out

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	TodoRepo     repository.TodoRepository
	CategoryRepo repository.CategoryRepository
}

// NewRepositories builds the repositories for the configured store driver.
func NewRepositories(params Params) (Repositories, error) {
	driver := config.StoreDriverPostgres
	if params.Config.Store != nil && params.Config.Store.Driver != "" {
		driver = params.Config.Store.Driver
	}

	switch driver {
	case config.StoreDriverMemory:
		params.Logger.Warn("Using in-memory store, data is lost on restart")
		store := memory.NewStore()

		return Repositories{
			TxManager:    store.TransactionManager(),
			UserRepo:     store.UserRepo(),
			TodoRepo:     store.TodoRepo(),
			CategoryRepo: store.CategoryRepo(),
		}, nil
	case config.StoreDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Repositories{}, err
		}

		return Repositories{
			TxManager:    postgres.NewTransactionManager(db),
			UserRepo:     postgres.NewUserRepository(db),
			TodoRepo:     postgres.NewTodoRepository(db),
			CategoryRepo: postgres.NewCategoryRepository(db),
		}, nil
	default:
		return Repositories{}, errors.Errorf("unsupported store driver %q", driver)
	}
}
