package repository

import (
	"context"
	"errors"

	"todoapp/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTodoNotFound is returned when a todo does not exist for the given owner.
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository defines persistence for todos. Every lookup is scoped by owner.
type TodoRepository interface {
	// ListByUser returns the user's todos, newest first, with Category populated.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Todo, error)

	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Todo, error)

	Create(ctx context.Context, todo *entity.Todo) error

	// Update saves every mutable field of todo.
	Update(ctx context.Context, todo *entity.Todo) error

	Delete(ctx context.Context, userID, id uuid.UUID) error

	// ClearCategory detaches a category from all of the user's todos and
	// returns how many were changed.
	ClearCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error)
}
