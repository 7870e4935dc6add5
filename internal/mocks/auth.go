package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipebox/internal/model"
	"github.com/pageza/recipebox/internal/types"
)

// MockAuthService is a mock implementation of service.IAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(username, email, password string) (model.User, string, error) {
	args := m.Called(username, email, password)
	return args.Get(0).(model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Signup(username, email, password string) (model.User, string, error) {
	args := m.Called(username, email, password)
	return args.Get(0).(model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Logout() {
	m.Called()
}

func (m *MockAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}
