package service

import "github.com/stretchr/testify/mock"

// MockPasswordHasher is a mock type for the PasswordHasher type
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a new instance of MockPasswordHasher. It also registers a
// cleanup function to assert the mocks expectations.
func NewMockPasswordHasher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}
