package usecase

import (
	"context"
	"time"

	"todoapp/internal/domain/entity"

	"github.com/google/uuid"
)

// TodoInput carries the editable fields of a todo. Empty optional fields are stored as null.
type TodoInput struct {
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
	CategoryID  *uuid.UUID
}

// TodoUsecase defines the todo operations. Every call is scoped to userID.
type TodoUsecase interface {
	List(ctx context.Context, userID uuid.UUID, filter entity.TodoFilter) ([]*entity.Todo, error)
	Stats(ctx context.Context, userID uuid.UUID) (*entity.TodoStats, error)
	Create(ctx context.Context, userID uuid.UUID, input *TodoInput) (*entity.Todo, error)
	Update(ctx context.Context, userID, todoID uuid.UUID, input *TodoInput) (*entity.Todo, error)
	ToggleComplete(ctx context.Context, userID, todoID uuid.UUID) (*entity.Todo, error)
	Delete(ctx context.Context, userID, todoID uuid.UUID) error
}
