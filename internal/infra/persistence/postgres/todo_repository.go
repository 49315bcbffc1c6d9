package postgres

import (
	"context"

	"todoapp/internal/domain/entity"
	domainerrors "todoapp/internal/domain/errors"
	"todoapp/internal/domain/repository"
	"todoapp/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// todoRepository implements the domain.TodoRepository interface using GORM.
type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new todo repository.
func NewTodoRepository(db *gorm.DB) repository.TodoRepository {
	return &todoRepository{db: db}
}

// ListByUser returns the user's todos, newest first, with the category preloaded.
func (repo *todoRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Todo, error) {
	var todosM []*model.TodoModel
	err := repo.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&todosM).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list todos")
	}

	todos := make([]*entity.Todo, 0, len(todosM))
	for _, todoM := range todosM {
		todos = append(todos, toTodoDomain(todoM))
	}

	return todos, nil
}

// FindByID reads from the primary: it backs ownership checks and reloads right after writes.
func (repo *todoRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Todo, error) {
	var todoM model.TodoModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&todoM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTodoNotFound
		}

		return nil, errors.Wrap(err, "failed to find todo")
	}

	return toTodoDomain(&todoM), nil
}

func (repo *todoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	todoM := fromTodoDomain(todo)

	if err := repo.db.WithContext(ctx).Omit("Category").Create(todoM).Error; err != nil {
		return mapTodoWriteError(err, "failed to create todo")
	}

	todo.ID = todoM.ID
	todo.CreatedAt = todoM.CreatedAt
	todo.UpdatedAt = todoM.UpdatedAt

	return nil
}

// Update saves every mutable field, including NULLs.
func (repo *todoRepository) Update(ctx context.Context, todo *entity.Todo) error {
	todoM := fromTodoDomain(todo)

	result := repo.db.WithContext(ctx).
		Model(&model.TodoModel{}).
		Where("id = ? AND user_id = ?", todo.ID, todo.UserID).
		Select("title", "description", "completed", "priority", "due_date", "category_id", "updated_at").
		Updates(todoM)
	if result.Error != nil {
		return mapTodoWriteError(result.Error, "failed to update todo")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTodoNotFound
	}

	todo.UpdatedAt = todoM.UpdatedAt

	return nil
}

func (repo *todoRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.TodoModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete todo")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTodoNotFound
	}

	return nil
}

func (repo *todoRepository) ClearCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.TodoModel{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Update("category_id", nil)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to detach category from todos")
	}

	return result.RowsAffected, nil
}

func mapTodoWriteError(err error, message string) error {
	if isForeignKeyConstraintViolation(err) {
		return domainerrors.ErrCategoryNotFound
	}
	if isCheckConstraintViolation(err) || isNotNullConstraintViolation(err) {
		return domainerrors.ErrValidationFailed.WithDetails("todo violates a column constraint")
	}

	return errors.Wrap(err, message)
}

func toTodoDomain(data *model.TodoModel) *entity.Todo {
	if data == nil {
		return nil
	}

	todo := &entity.Todo{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Description: data.Description,
		Completed:   data.Completed,
		Priority:    entity.Priority(data.Priority),
		DueDate:     data.DueDate,
		CategoryID:  data.CategoryID,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
	if data.Category != nil {
		todo.Category = &entity.CategoryRef{
			Name:  data.Category.Name,
			Color: data.Category.Color,
		}
	}

	return todo
}

func fromTodoDomain(data *entity.Todo) *model.TodoModel {
	if data == nil {
		return nil
	}

	return &model.TodoModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Description: data.Description,
		Completed:   data.Completed,
		Priority:    string(data.Priority),
		DueDate:     data.DueDate,
		CategoryID:  data.CategoryID,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
