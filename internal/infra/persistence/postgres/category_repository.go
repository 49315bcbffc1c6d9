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

// categoryRepository implements the domain.CategoryRepository interface using GORM.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (repo *categoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var categoriesM []*model.CategoryModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categoriesM).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(categoriesM))
	for _, categoryM := range categoriesM {
		categories = append(categories, toCategoryDomain(categoryM))
	}

	return categories, nil
}

func (repo *categoryRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Category, error) {
	var categoryM model.CategoryModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("id = ? AND user_id = ?", id, userID).
		First(&categoryM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category")
	}

	return toCategoryDomain(&categoryM), nil
}

func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		if isCheckConstraintViolation(err) || isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithDetails("category violates a column constraint")
		}

		return errors.Wrap(err, "failed to create category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt

	return nil
}

func (repo *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("id = ? AND user_id = ?", category.ID, category.UserID).
		Updates(map[string]any{
			"name":  category.Name,
			"color": category.Color,
		})
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WithDetails("category violates a column constraint")
		}

		return errors.Wrap(result.Error, "failed to update category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

func (repo *categoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.CategoryModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	if data == nil {
		return nil
	}

	return &entity.Category{
		ID:        data.ID,
		UserID:    data.UserID,
		Name:      data.Name,
		Color:     data.Color,
		CreatedAt: data.CreatedAt,
	}
}

func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	if data == nil {
		return nil
	}

	return &model.CategoryModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Name:      data.Name,
		Color:     data.Color,
		CreatedAt: data.CreatedAt,
	}
}
