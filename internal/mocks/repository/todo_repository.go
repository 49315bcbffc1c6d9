package repository

import (
	"context"

	"todoapp/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTodoRepository is a mock type for the TodoRepository type
type MockTodoRepository struct {
	mock.Mock
}

// NewMockTodoRepository creates a new instance of MockTodoRepository. It also registers a
// cleanup function to assert the mocks expectations.
func NewMockTodoRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTodoRepository {
	m := &MockTodoRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTodoRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Todo, error) {
	args := m.Called(ctx, userID)
	todos, _ := args.Get(0).([]*entity.Todo)

	return todos, args.Error(1)
}

func (m *MockTodoRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Todo, error) {
	args := m.Called(ctx, userID, id)
	todo, _ := args.Get(0).(*entity.Todo)

	return todo, args.Error(1)
}

func (m *MockTodoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	return m.Called(ctx, todo).Error(0)
}

func (m *MockTodoRepository) Update(ctx context.Context, todo *entity.Todo) error {
	return m.Called(ctx, todo).Error(0)
}

func (m *MockTodoRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockTodoRepository) ClearCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, categoryID)

	return args.Get(0).(int64), args.Error(1)
}
