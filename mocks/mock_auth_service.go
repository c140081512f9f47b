package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"stayledger/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) GenerateToken(tenantID uuid.UUID, email string) (string, error) {
	args := m.Called(tenantID, email)
	return args.String(0), args.Error(1)
}
