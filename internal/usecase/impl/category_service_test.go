package impl

import (
	"context"
	"testing"

	"todoapp/internal/domain/entity"
	domainerrors "todoapp/internal/domain/errors"
	"todoapp/internal/domain/repository"
	mockRepo "todoapp/internal/mocks/repository"
	"todoapp/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_CreateAndList(t *testing.T) {
	a := newTestApp(t, nil)
	ctx := context.Background()
	userID := registerUser(t, a, "ann@x.io")

	home, err := a.categories.Create(ctx, userID, &usecase.CategoryInput{Name: "Home"})
	require.NoError(t, err)
	assert.Equal(t, "#3B82F6", home.Color)

	_, err = a.categories.Create(ctx, userID, &usecase.CategoryInput{Name: "Errands", Color: "#00aa00"})
	require.NoError(t, err)

	categories, err := a.categories.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Errands", categories[0].Name)
	assert.Equal(t, "Home", categories[1].Name)
}

func TestCategoryService_Validation(t *testing.T) {
	a := newTestApp(t, nil)
	ctx := context.Background()
	userID := registerUser(t, a, "ann@x.io")

	_, err := a.categories.Create(ctx, userID, &usecase.CategoryInput{Name: "  "})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = a.categories.Create(ctx, userID, &usecase.CategoryInput{Name: "Bad", Color: "red"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCategoryService_UpdateIsOwnerScoped(t *testing.T) {
	a := newTestApp(t, nil)
	ctx := context.Background()
	ann := registerUser(t, a, "ann@x.io")
	bob := registerUser(t, a, "bob@x.io")

	category, err := a.categories.Create(ctx, ann, &usecase.CategoryInput{Name: "Work"})
	require.NoError(t, err)

	updated, err := a.categories.Update(ctx, ann, category.ID, &usecase.CategoryInput{Name: "Office", Color: "#111111"})
	require.NoError(t, err)
	assert.Equal(t, "Office", updated.Name)
	assert.Equal(t, "#111111", updated.Color)

	_, err = a.categories.Update(ctx, bob, category.ID, &usecase.CategoryInput{Name: "Mine"})
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
	assert.ErrorIs(t, a.categories.Delete(ctx, bob, category.ID), domainerrors.ErrCategoryNotFound)
}

func TestCategoryService_DeleteDetachesTodos(t *testing.T) {
	a := newTestApp(t, nil)
	ctx := context.Background()
	userID := registerUser(t, a, "ann@x.io")

	category, err := a.categories.Create(ctx, userID, &usecase.CategoryInput{Name: "Work"})
	require.NoError(t, err)
	todo, err := a.todos.Create(ctx, userID, &usecase.TodoInput{Title: "Report", CategoryID: &category.ID})
	require.NoError(t, err)
	require.NotNil(t, todo.Category)

	require.NoError(t, a.categories.Delete(ctx, userID, category.ID))

	todos, err := a.todos.List(ctx, userID, entity.TodoFilter{})
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Nil(t, todos[0].CategoryID)
	assert.Nil(t, todos[0].Category)

	categories, err := a.categories.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

// fakeTxManager runs fn directly against the given factory.
type fakeTxManager struct {
	factory repository.RepositoryFactory
}

func (m fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

type fakeFactory struct {
	todoRepo     repository.TodoRepository
	categoryRepo repository.CategoryRepository
}

func (f fakeFactory) UserRepo() repository.UserRepository         { return nil }
func (f fakeFactory) TodoRepo() repository.TodoRepository         { return f.todoRepo }
func (f fakeFactory) CategoryRepo() repository.CategoryRepository { return f.categoryRepo }

func TestCategoryService_DeleteFailsWhenDetachFails(t *testing.T) {
	todoRepo := mockRepo.NewMockTodoRepository(t)
	categoryRepo := mockRepo.NewMockCategoryRepository(t)
	srv := NewCategoryService(CategoryServiceParams{
		TxManager:    fakeTxManager{factory: fakeFactory{todoRepo: todoRepo, categoryRepo: categoryRepo}},
		CategoryRepo: categoryRepo,
		Logger:       newDiscardLogger(),
	})
	ctx := context.Background()
	userID, categoryID := uuid.New(), uuid.New()

	categoryRepo.On("FindByID", ctx, userID, categoryID).Return(&entity.Category{ID: categoryID, UserID: userID}, nil).Once()
	todoRepo.On("ClearCategory", ctx, userID, categoryID).Return(int64(0), errors.New("deadlock detected")).Once()

	err := srv.Delete(ctx, userID, categoryID)
	require.Error(t, err)
	assert.True(t, domainerrors.IsPersistenceError(err))
	categoryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
