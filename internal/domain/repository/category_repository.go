package repository

import (
	"context"
	"errors"

	"todoapp/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCategoryNotFound is returned when a category does not exist for the given owner.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository defines persistence for categories. Every lookup is scoped by owner.
type CategoryRepository interface {
	// ListByUser returns the user's categories ordered by name.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Category, error)

	Create(ctx context.Context, category *entity.Category) error

	Update(ctx context.Context, category *entity.Category) error

	Delete(ctx context.Context, userID, id uuid.UUID) error
}
