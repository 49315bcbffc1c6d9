package impl

import (
	"context"
	"log/slog"
	"strings"

	"todoapp/config"
	deliverycontext "todoapp/internal/delivery/context"
	"todoapp/internal/domain/entity"
	domainerrors "todoapp/internal/domain/errors"
	"todoapp/internal/domain/repository"
	"todoapp/internal/domain/service"
	"todoapp/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	fallbackCategoryColor = "#3B82F6"
	maxCategoryNameLength = 100
)

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	txManager    repository.TransactionManager
	categoryRepo repository.CategoryRepository
	defaultColor string
	events       eventEmitter
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for CategoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CategoryRepo repository.CategoryRepository
	Publisher    service.EventPublisher `optional:"true"`
	Config       *config.Config
	Logger       *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	defaultColor := fallbackCategoryColor
	if params.Config != nil && params.Config.Todo != nil && params.Config.Todo.DefaultCategoryColor != "" {
		defaultColor = params.Config.Todo.DefaultCategoryColor
	}

	return &categoryService{
		txManager:    params.TxManager,
		categoryRepo: params.CategoryRepo,
		defaultColor: defaultColor,
		events:       newEventEmitter(params.Publisher),
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the user's categories ordered by name.
func (srv *categoryService) List(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to list categories", slog.Any("userID", userID), slog.Any("error", err))

		return nil, domainerrors.NewPersistenceError(err, "Failed to load categories", "")
	}

	return categories, nil
}

func (srv *categoryService) Create(ctx context.Context, userID uuid.UUID, input *usecase.CategoryInput) (*entity.Category, error) {
	category := &entity.Category{UserID: userID}
	if err := srv.applyInput(category, input); err != nil {
		return nil, err
	}

	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		return nil, srv.mapWriteError(ctx, err, "Failed to create category")
	}

	srv.log(ctx).Debug("Category created", slog.Any("categoryID", category.ID))

	return category, nil
}

func (srv *categoryService) Update(ctx context.Context, userID, categoryID uuid.UUID, input *usecase.CategoryInput) (*entity.Category, error) {
	category, err := srv.categoryRepo.FindByID(ctx, userID, categoryID)
	if err != nil {
		return nil, srv.mapWriteError(ctx, err, "Failed to load category")
	}
	if err := srv.applyInput(category, input); err != nil {
		return nil, err
	}

	if err := srv.categoryRepo.Update(ctx, category); err != nil {
		return nil, srv.mapWriteError(ctx, err, "Failed to update category")
	}

	return category, nil
}

// Delete detaches the category from the user's todos and removes it in one transaction.
func (srv *categoryService) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	var detached int64
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()
		if _, err := categoryRepo.FindByID(ctx, userID, categoryID); err != nil {
			return err
		}

		changed, err := repoFactory.TodoRepo().ClearCategory(ctx, userID, categoryID)
		if err != nil {
			return errors.Wrap(err, "failed to detach todos")
		}
		detached = changed

		return categoryRepo.Delete(ctx, userID, categoryID)
	})
	if err != nil {
		return srv.mapWriteError(ctx, err, "Failed to delete category")
	}

	srv.log(ctx).Debug("Category deleted", slog.Any("categoryID", categoryID), slog.Int64("detachedTodos", detached))
	srv.events.emit(ctx, srv.log(ctx), service.EventCategoryDeleted, userID, categoryID)

	return nil
}

func (srv *categoryService) applyInput(category *entity.Category, input *usecase.CategoryInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domainerrors.ErrValidationFailed.WithDetails("name is required")
	}
	if len(name) > maxCategoryNameLength {
		return domainerrors.ErrValidationFailed.WithDetails("name must be at most 100 characters")
	}

	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = srv.defaultColor
	}
	if !entity.IsValidColor(color) {
		return domainerrors.ErrValidationFailed.WithDetails("color must be a #RRGGBB hex value")
	}

	category.Name = name
	category.Color = color

	return nil
}

func (srv *categoryService) mapWriteError(ctx context.Context, err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrCategoryNotFound):
		return domainerrors.ErrCategoryNotFound
	case errors.Is(err, domainerrors.ErrValidationFailed):
		return err
	default:
		srv.log(ctx).Error(message, slog.Any("error", err))

		return domainerrors.NewPersistenceError(err, message, "")
	}
}
