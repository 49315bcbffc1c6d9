package memory

import (
	"cmp"
	"context"
	"slices"

	"todoapp/internal/domain/entity"
	domainerrors "todoapp/internal/domain/errors"
	"todoapp/internal/domain/repository"

	"github.com/google/uuid"
)

type categoryRepository struct {
	s *Store
}

func (r *categoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	categories := make([]*entity.Category, 0)
	for _, c := range r.s.categories {
		if c.UserID == userID {
			category := c
			categories = append(categories, &category)
		}
	}
	slices.SortFunc(categories, func(a, b *entity.Category) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return categories, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok || c.UserID != userID {
		return nil, repository.ErrCategoryNotFound
	}

	return &c, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !entity.IsValidColor(category.Color) {
		return domainerrors.ErrValidationFailed.WithDetails("category violates a column constraint")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *category
	stored.ID = uuid.New()
	stored.CreatedAt = r.s.now()
	r.s.categories[stored.ID] = stored

	category.ID = stored.ID
	category.CreatedAt = stored.CreatedAt

	return nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !entity.IsValidColor(category.Color) {
		return domainerrors.ErrValidationFailed.WithDetails("category violates a column constraint")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[category.ID]
	if !ok || c.UserID != category.UserID {
		return repository.ErrCategoryNotFound
	}
	c.Name = category.Name
	c.Color = category.Color
	r.s.categories[c.ID] = c

	return nil
}

// Delete removes the category. Like ON DELETE SET NULL, todos still pointing
// at it are detached.
func (r *categoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[id]
	if !ok || c.UserID != userID {
		return repository.ErrCategoryNotFound
	}
	delete(r.s.categories, id)

	for todoID, rec := range r.s.todos {
		if rec.todo.CategoryID != nil && *rec.todo.CategoryID == id {
			rec.todo.CategoryID = nil
			r.s.todos[todoID] = rec
		}
	}

	return nil
}
