package usecase

import (
	"context"

	"todoapp/internal/domain/entity"

	"github.com/google/uuid"
)

// CategoryInput carries the editable fields of a category. An empty color
// selects the configured default.
type CategoryInput struct {
	Name  string
	Color string
}

// CategoryUsecase defines the category operations. Every call is scoped to userID.
type CategoryUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)
	Create(ctx context.Context, userID uuid.UUID, input *CategoryInput) (*entity.Category, error)
	Update(ctx context.Context, userID, categoryID uuid.UUID, input *CategoryInput) (*entity.Category, error)

	// Delete removes the category and detaches it from the user's todos in one transaction.
	Delete(ctx context.Context, userID, categoryID uuid.UUID) error
}
