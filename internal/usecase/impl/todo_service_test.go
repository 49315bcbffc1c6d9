package impl

import (
	"context"
	"testing"
	"time"

	"todoapp/internal/domain/entity"
	domainerrors "todoapp/internal/domain/errors"
	"todoapp/internal/domain/service"
	mockRepo "todoapp/internal/mocks/repository"
	mockSvc "todoapp/internal/mocks/service"
	"todoapp/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func registerUser(t *testing.T, a *app, email string) uuid.UUID {
	t.Helper()

	identity, err := a.auth.Register(context.Background(), &usecase.RegisterInput{Name: "U", Email: email, Password: "pw"})
	require.NoError(t, err)

	return identity.ID
}

func TestTodoService_CreateDefaultsAndNulls(t *testing.T) {
	a := newTestApp(t, nil)
	ctx := context.Background()
	userID := registerUser(t, a, "ann@x.io")

	todo, err := a.todos.Create(ctx, userID, &usecase.TodoInput{Title: "  Buy milk  ", Description: "   "})
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", todo.Title)
	assert.Nil(t, todo.Description)
	assert.Nil(t, todo.DueDate)
	assert.Nil(t, todo.CategoryID)
	assert.Equal(t, entity.PriorityMedium, todo.Priority)
	assert.False(t, todo.Completed)
}

func TestTodoService_CreateValidation(t *testing.T) {
	a := newTestApp(t, nil)
	ctx := context.Background()
	userID := registerUser(t, a, "ann@x.io")

	_, err := a.todos.Create(ctx, userID, &usecase.TodoInput{Title: ""})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = a.todos.Create(ctx, userID, &usecase.TodoInput{Title: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	missing := uuid.New()
	_, err = a.todos.Create(ctx, userID, &usecase.TodoInput{Title: "x", CategoryID: &missing})
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestTodoService_CategoryMustBelongToCaller(t *testing.T) {
	a := newTestApp(t, nil)
	ctx := context.Background()
	ann := registerUser(t, a, "ann@x.io")
	bob := registerUser(t, a, "bob@x.io")

	bobsCategory, err := a.categories.Create(ctx, bob, &usecase.CategoryInput{Name: "Bob's"})
	require.NoError(t, err)

	_, err = a.todos.Create(ctx, ann, &usecase.TodoInput{Title: "x", CategoryID: &bobsCategory.ID})
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestTodoService_ListFilters(t *testing.T) {
	a := newTestApp(t, nil)
	ctx := context.Background()
	userID := registerUser(t, a, "ann@x.io")

	work, err := a.categories.Create(ctx, userID, &usecase.CategoryInput{Name: "Work", Color: "#FF0000"})
	require.NoError(t, err)

	report, err := a.todos.Create(ctx, userID, &usecase.TodoInput{Title: "Write report", Description: "Quarterly numbers", Priority: "high", CategoryID: &work.ID})
	require.NoError(t, err)
	_, err = a.todos.Create(ctx, userID, &usecase.TodoInput{Title: "Groceries", Priority: "low"})
	require.NoError(t, err)
	_, err = a.todos.ToggleComplete(ctx, userID, report.ID)
	require.NoError(t, err)

	all, err := a.todos.List(ctx, userID, entity.TodoFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Groceries", all[0].Title)

	bySearch, err := a.todos.List(ctx, userID, entity.TodoFilter{Search: "QUARTERLY"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	require.NotNil(t, bySearch[0].Category)
	assert.Equal(t, "Work", bySearch[0].Category.Name)
	assert.Equal(t, "#FF0000", bySearch[0].Category.Color)

	completed, err := a.todos.List(ctx, userID, entity.TodoFilter{Status: entity.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, report.ID, completed[0].ID)

	low, err := a.todos.List(ctx, userID, entity.TodoFilter{Status: entity.StatusPending, Priority: "low"})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Groceries", low[0].Title)

	_, err = a.todos.List(ctx, userID, entity.TodoFilter{Status: "done"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	_, err = a.todos.List(ctx, userID, entity.TodoFilter{Priority: "urgent"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestTodoService_StatsIgnoreOtherUsers(t *testing.T) {
	a := newTestApp(t, nil)
	ctx := context.Background()
	ann := registerUser(t, a, "ann@x.io")
	bob := registerUser(t, a, "bob@x.io")

	for _, p := range []string{"high", "high", "low"} {
		_, err := a.todos.Create(ctx, ann, &usecase.TodoInput{Title: "t", Priority: p})
		require.NoError(t, err)
	}
	done, err := a.todos.Create(ctx, ann, &usecase.TodoInput{Title: "done", Priority: "high"})
	require.NoError(t, err)
	_, err = a.todos.ToggleComplete(ctx, ann, done.ID)
	require.NoError(t, err)
	_, err = a.todos.Create(ctx, bob, &usecase.TodoInput{Title: "bob's"})
	require.NoError(t, err)

	stats, err := a.todos.Stats(ctx, ann)
	require.NoError(t, err)
	assert.Equal(t, entity.TodoStats{Total: 4, Completed: 1, Pending: 3, HighPriorityPending: 2}, *stats)
}

func TestTodoService_UpdateToggleDelete(t *testing.T) {
	a := newTestApp(t, nil)
	ctx := context.Background()
	ann := registerUser(t, a, "ann@x.io")
	bob := registerUser(t, a, "bob@x.io")

	todo, err := a.todos.Create(ctx, ann, &usecase.TodoInput{Title: "Draft", Description: "v1"})
	require.NoError(t, err)

	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	updated, err := a.todos.Update(ctx, ann, todo.ID, &usecase.TodoInput{Title: "Final", Priority: "low", DueDate: &due})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Nil(t, updated.Description)
	assert.Equal(t, entity.PriorityLow, updated.Priority)
	require.NotNil(t, updated.DueDate)
	assert.True(t, due.Equal(*updated.DueDate))
	assert.False(t, updated.UpdatedAt.Before(todo.UpdatedAt))

	toggled, err := a.todos.ToggleComplete(ctx, ann, todo.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	toggled, err = a.todos.ToggleComplete(ctx, ann, todo.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	// Another user sees the todo as missing.
	_, err = a.todos.Update(ctx, bob, todo.ID, &usecase.TodoInput{Title: "hijack"})
	assert.ErrorIs(t, err, domainerrors.ErrTodoNotFound)
	_, err = a.todos.ToggleComplete(ctx, bob, todo.ID)
	assert.ErrorIs(t, err, domainerrors.ErrTodoNotFound)
	assert.ErrorIs(t, a.todos.Delete(ctx, bob, todo.ID), domainerrors.ErrTodoNotFound)

	require.NoError(t, a.todos.Delete(ctx, ann, todo.ID))
	assert.ErrorIs(t, a.todos.Delete(ctx, ann, todo.ID), domainerrors.ErrTodoNotFound)
}

func TestTodoService_ToggleEmitsCompletionEvents(t *testing.T) {
	publisher := mockSvc.NewMockEventPublisher(t)
	var types []string
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("*service.ActivityEvent")).
		Run(func(args mock.Arguments) {
			types = append(types, args.Get(1).(*service.ActivityEvent).Type)
		}).
		Return(nil)

	a := newTestApp(t, publisher)
	ctx := context.Background()
	userID := registerUser(t, a, "ann@x.io")

	todo, err := a.todos.Create(ctx, userID, &usecase.TodoInput{Title: "t"})
	require.NoError(t, err)
	_, err = a.todos.ToggleComplete(ctx, userID, todo.ID)
	require.NoError(t, err)
	_, err = a.todos.ToggleComplete(ctx, userID, todo.ID)
	require.NoError(t, err)
	require.NoError(t, a.todos.Delete(ctx, userID, todo.ID))

	assert.Equal(t, []string{
		service.EventUserRegistered,
		service.EventTodoCreated,
		service.EventTodoCompleted,
		service.EventTodoReopened,
		service.EventTodoDeleted,
	}, types)
}

func TestTodoService_StoreFailure(t *testing.T) {
	todoRepo := mockRepo.NewMockTodoRepository(t)
	srv := NewTodoService(TodoServiceParams{
		TodoRepo:     todoRepo,
		CategoryRepo: mockRepo.NewMockCategoryRepository(t),
		Logger:       newDiscardLogger(),
	})
	ctx := context.Background()
	userID := uuid.New()

	todoRepo.On("ListByUser", ctx, userID).Return(nil, errors.New("timeout")).Once()

	_, err := srv.List(ctx, userID, entity.TodoFilter{})
	require.Error(t, err)
	assert.True(t, domainerrors.IsPersistenceError(err))
}
