package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"stayledger/internal/domain"
)

// MockRevenueRepo is a mock implementation of port.RevenueRepository.
type MockRevenueRepo struct {
	mock.Mock
}

func (m *MockRevenueRepo) GetSummary(ctx context.Context, tenantID uuid.UUID, propertyID string) (*domain.RevenueSummary, error) {
	args := m.Called(ctx, tenantID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RevenueSummary), args.Error(1)
}

func (m *MockRevenueRepo) GetMonthlyRevenue(ctx context.Context, tenantID uuid.UUID, propertyID string, month, year int) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, propertyID, month, year)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
