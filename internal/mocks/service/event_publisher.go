// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"context"

	"todoapp/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock type for the EventPublisher type
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a new instance of MockEventPublisher. It also registers a
// cleanup function to assert the mocks expectations.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) Publish(ctx context.Context, event *service.ActivityEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}
