// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"todoapp/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory hands out repositories bound to one transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

func (f *gormRepositoryFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(f.tx)
}

func (f *gormRepositoryFactory) TodoRepo() repository.TodoRepository {
	return NewTodoRepository(f.tx)
}

func (f *gormRepositoryFactory) CategoryRepo() repository.CategoryRepository {
	return NewCategoryRepository(f.tx)
}

// NewTransactionManager returns a TransactionManager backed by db.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs fn in one transaction. fn's error is returned unchanged after
// the rollback; a panic in fn also rolls back and is re-raised by GORM.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	var fnErr error
	err := tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(&gormRepositoryFactory{tx: tx})

		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return errors.Wrap(err, "transaction failed")
	}

	return nil
}
