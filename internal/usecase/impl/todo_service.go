package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

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

const maxTodoTitleLength = 255

// todoService implements the TodoUsecase interface.
type todoService struct {
	todoRepo     repository.TodoRepository
	categoryRepo repository.CategoryRepository
	events       eventEmitter
	now          func() time.Time
	logger       *slog.Logger
}

// TodoServiceParams holds dependencies for TodoService, injected by Fx.
type TodoServiceParams struct {
	fx.In

	TodoRepo     repository.TodoRepository
	CategoryRepo repository.CategoryRepository
	Publisher    service.EventPublisher `optional:"true"`
	Logger       *slog.Logger
}

// NewTodoService creates a new todo service.
func NewTodoService(params TodoServiceParams) usecase.TodoUsecase {
	return &todoService{
		todoRepo:     params.TodoRepo,
		categoryRepo: params.CategoryRepo,
		events:       newEventEmitter(params.Publisher),
		now:          time.Now,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *todoService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the user's todos, newest first, narrowed by filter.
func (srv *todoService) List(ctx context.Context, userID uuid.UUID, filter entity.TodoFilter) ([]*entity.Todo, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("status must be one of all, completed, pending")
	}
	if filter.Priority != "" && filter.Priority != entity.PriorityAll && !entity.Priority(filter.Priority).IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("priority must be one of all, low, medium, high")
	}

	todos, err := srv.todoRepo.ListByUser(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to list todos", slog.Any("userID", userID), slog.Any("error", err))

		return nil, domainerrors.NewPersistenceError(err, "Failed to load todos", "")
	}

	return filter.Apply(todos), nil
}

// Stats summarizes the user's whole list, ignoring any filter.
func (srv *todoService) Stats(ctx context.Context, userID uuid.UUID) (*entity.TodoStats, error) {
	todos, err := srv.todoRepo.ListByUser(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to list todos for stats", slog.Any("userID", userID), slog.Any("error", err))

		return nil, domainerrors.NewPersistenceError(err, "Failed to load todos", "")
	}

	stats := entity.ComputeTodoStats(todos)

	return &stats, nil
}

func (srv *todoService) Create(ctx context.Context, userID uuid.UUID, input *usecase.TodoInput) (*entity.Todo, error) {
	todo := &entity.Todo{UserID: userID}
	if err := srv.applyInput(ctx, userID, todo, input); err != nil {
		return nil, err
	}

	if err := srv.todoRepo.Create(ctx, todo); err != nil {
		return nil, srv.mapWriteError(ctx, err, "Failed to create todo")
	}

	srv.log(ctx).Debug("Todo created", slog.Any("todoID", todo.ID))
	srv.events.emit(ctx, srv.log(ctx), service.EventTodoCreated, userID, todo.ID)

	return srv.reload(ctx, userID, todo)
}

// Update replaces the editable fields of the todo. Completion is left untouched.
func (srv *todoService) Update(ctx context.Context, userID, todoID uuid.UUID, input *usecase.TodoInput) (*entity.Todo, error) {
	todo, err := srv.find(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}
	if err := srv.applyInput(ctx, userID, todo, input); err != nil {
		return nil, err
	}
	todo.UpdatedAt = srv.now()

	if err := srv.todoRepo.Update(ctx, todo); err != nil {
		return nil, srv.mapWriteError(ctx, err, "Failed to update todo")
	}

	return srv.reload(ctx, userID, todo)
}

func (srv *todoService) ToggleComplete(ctx context.Context, userID, todoID uuid.UUID) (*entity.Todo, error) {
	todo, err := srv.find(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}
	todo.Completed = !todo.Completed
	todo.UpdatedAt = srv.now()

	if err := srv.todoRepo.Update(ctx, todo); err != nil {
		return nil, srv.mapWriteError(ctx, err, "Failed to update todo")
	}

	eventType := service.EventTodoReopened
	if todo.Completed {
		eventType = service.EventTodoCompleted
	}
	srv.events.emit(ctx, srv.log(ctx), eventType, userID, todo.ID)

	return todo, nil
}

func (srv *todoService) Delete(ctx context.Context, userID, todoID uuid.UUID) error {
	if err := srv.todoRepo.Delete(ctx, userID, todoID); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return domainerrors.ErrTodoNotFound
		}
		srv.log(ctx).Error("Failed to delete todo", slog.Any("todoID", todoID), slog.Any("error", err))

		return domainerrors.NewPersistenceError(err, "Failed to delete todo", "")
	}

	srv.events.emit(ctx, srv.log(ctx), service.EventTodoDeleted, userID, todoID)

	return nil
}

func (srv *todoService) find(ctx context.Context, userID, todoID uuid.UUID) (*entity.Todo, error) {
	todo, err := srv.todoRepo.FindByID(ctx, userID, todoID)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, domainerrors.ErrTodoNotFound
		}
		srv.log(ctx).Error("Failed to find todo", slog.Any("todoID", todoID), slog.Any("error", err))

		return nil, domainerrors.NewPersistenceError(err, "Failed to load todo", "")
	}

	return todo, nil
}

// reload reads the todo back so the response carries its category reference.
func (srv *todoService) reload(ctx context.Context, userID uuid.UUID, todo *entity.Todo) (*entity.Todo, error) {
	if todo.CategoryID == nil {
		todo.Category = nil

		return todo, nil
	}

	return srv.find(ctx, userID, todo.ID)
}

// applyInput validates input and copies it onto todo. Blank optional text becomes null.
func (srv *todoService) applyInput(ctx context.Context, userID uuid.UUID, todo *entity.Todo, input *usecase.TodoInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domainerrors.ErrValidationFailed.WithDetails("title is required")
	}
	if len(title) > maxTodoTitleLength {
		return domainerrors.ErrValidationFailed.WithDetails("title must be at most 255 characters")
	}

	priority, ok := entity.ParsePriority(input.Priority)
	if !ok {
		return domainerrors.ErrValidationFailed.WithDetails("priority must be one of low, medium, high")
	}

	if input.CategoryID != nil {
		if _, err := srv.categoryRepo.FindByID(ctx, userID, *input.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return domainerrors.ErrCategoryNotFound
			}

			return domainerrors.NewPersistenceError(err, "Failed to load category", "")
		}
	}

	todo.Title = title
	todo.Description = nil
	if description := strings.TrimSpace(input.Description); description != "" {
		todo.Description = &description
	}
	todo.Priority = priority
	todo.DueDate = input.DueDate
	todo.CategoryID = input.CategoryID

	return nil
}

func (srv *todoService) mapWriteError(ctx context.Context, err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrTodoNotFound):
		return domainerrors.ErrTodoNotFound
	case errors.Is(err, domainerrors.ErrCategoryNotFound), errors.Is(err, domainerrors.ErrValidationFailed):
		return err
	default:
		srv.log(ctx).Error(message, slog.Any("error", err))

		return domainerrors.NewPersistenceError(err, message, "")
	}
}

