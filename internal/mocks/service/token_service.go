package service

import (
	"time"

	"todoapp/internal/domain/entity"
	"todoapp/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockTokenService is a mock type for the TokenService type
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a new instance of MockTokenService. It also registers a
// cleanup function to assert the mocks expectations.
func NewMockTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) Issue(identity *entity.Identity) (*service.IssuedToken, error) {
	args := m.Called(identity)
	token, _ := args.Get(0).(*service.IssuedToken)

	return token, args.Error(1)
}

func (m *MockTokenService) Validate(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

func (m *MockTokenService) Revoke(tokenID string, expiresAt time.Time) {
	m.Called(tokenID, expiresAt)
}
