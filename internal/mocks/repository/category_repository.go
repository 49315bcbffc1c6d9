package repository

import (
	"context"

	"todoapp/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository is a mock type for the CategoryRepository type
type MockCategoryRepository struct {
	mock.Mock
}

// NewMockCategoryRepository creates a new instance of MockCategoryRepository. It also registers a
// cleanup function to assert the mocks expectations.
func NewMockCategoryRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCategoryRepository {
	m := &MockCategoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCategoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	args := m.Called(ctx, userID)
	categories, _ := args.Get(0).([]*entity.Category)

	return categories, args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Category, error) {
	args := m.Called(ctx, userID, id)
	category, _ := args.Get(0).(*entity.Category)

	return category, args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}
