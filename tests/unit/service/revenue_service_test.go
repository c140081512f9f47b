package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"stayledger/internal/domain"
	"stayledger/internal/service"
	"stayledger/mocks"
)

func newRevenueService(ttl time.Duration) (service.RevenueService, *mocks.MockRevenueRepo, *mocks.MockCache) {
	mockRepo := new(mocks.MockRevenueRepo)
	mockCache := new(mocks.MockCache)
	svc := service.NewRevenueService(mockRepo, mockCache, ttl)
	return svc, mockRepo, mockCache
}

func cacheKey(tenantID uuid.UUID, propertyID string) string {
	return "revenue:" + tenantID.String() + ":" + propertyID
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	assert.NoError(t, err)
	return data
}

func TestRevenueService_GetSummary_CacheHit(t *testing.T) {
	svc, mockRepo, mockCache := newRevenueService(0)

	tenantID := uuid.New()
	cached := &domain.RevenueSummary{
		TenantID:         tenantID,
		PropertyID:       "P1",
		Total:            decimal.RequireFromString("150.105"),
		Currency:         "USD",
		ReservationCount: 2,
	}
	mockCache.On("Get", mock.Anything, cacheKey(tenantID, "P1")).Return(mustMarshal(t, cached), nil)

	result, err := svc.GetSummary(context.Background(), tenantID, "P1")
	assert.NoError(t, err)
	assert.True(t, result.Total.Equal(decimal.RequireFromString("150.105")))
	assert.Equal(t, 2, result.ReservationCount)

	mockRepo.AssertNotCalled(t, "GetSummary")
	mockCache.AssertExpectations(t)
}

func TestRevenueService_GetSummary_CacheMissQueriesAndPopulates(t *testing.T) {
	svc, mockRepo, mockCache := newRevenueService(300 * time.Second)

	tenantID := uuid.New()
	key := cacheKey(tenantID, "P1")
	computed := &domain.RevenueSummary{
		TenantID:         tenantID,
		PropertyID:       "P1",
		Total:            decimal.RequireFromString("150.105"),
		Currency:         "USD",
		ReservationCount: 2,
	}

	mockCache.On("Get", mock.Anything, key).Return(nil, domain.ErrCacheMiss)
	mockRepo.On("GetSummary", mock.Anything, tenantID, "P1").Return(computed, nil)
	mockCache.On("Set", mock.Anything, key, mock.MatchedBy(func(data []byte) bool {
		// The monetary total crosses the cache wire as a string, not a float.
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return false
		}
		return string(raw["total"]) == `"150.105"`
	}), 300*time.Second).Return(nil)

	result, err := svc.GetSummary(context.Background(), tenantID, "P1")
	assert.NoError(t, err)
	assert.True(t, result.Total.Equal(decimal.RequireFromString("150.105")))

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestRevenueService_GetSummary_TenantKeysNeverCollide(t *testing.T) {
	svc, mockRepo, mockCache := newRevenueService(0)

	tenantA := uuid.New()
	tenantB := uuid.New()
	assert.NotEqual(t, cacheKey(tenantA, "P1"), cacheKey(tenantB, "P1"))

	// Tenant A's entry is in the cache under A's key. Tenant B asking for
	// the same property must go to the store, never to A's entry.
	entryA := &domain.RevenueSummary{
		TenantID:         tenantA,
		PropertyID:       "P1",
		Total:            decimal.RequireFromString("9999.99"),
		Currency:         "USD",
		ReservationCount: 42,
	}
	summaryB := &domain.RevenueSummary{
		TenantID:         tenantB,
		PropertyID:       "P1",
		Total:            decimal.RequireFromString("10.00"),
		Currency:         "USD",
		ReservationCount: 1,
	}

	mockCache.On("Get", mock.Anything, cacheKey(tenantA, "P1")).Return(mustMarshal(t, entryA), nil)
	mockCache.On("Get", mock.Anything, cacheKey(tenantB, "P1")).Return(nil, domain.ErrCacheMiss)
	mockRepo.On("GetSummary", mock.Anything, tenantB, "P1").Return(summaryB, nil)
	mockCache.On("Set", mock.Anything, cacheKey(tenantB, "P1"), mock.Anything, mock.Anything).Return(nil)

	resultA, err := svc.GetSummary(context.Background(), tenantA, "P1")
	assert.NoError(t, err)
	assert.Equal(t, tenantA, resultA.TenantID)

	resultB, err := svc.GetSummary(context.Background(), tenantB, "P1")
	assert.NoError(t, err)
	assert.Equal(t, tenantB, resultB.TenantID)
	assert.True(t, resultB.Total.Equal(decimal.RequireFromString("10.00")))

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestRevenueService_GetSummary_MismatchedEntryRecomputed(t *testing.T) {
	svc, mockRepo, mockCache := newRevenueService(0)

	tenantID := uuid.New()
	key := cacheKey(tenantID, "P1")

	// An entry recording a different tenant must never be served, whatever
	// key it was found under.
	foreign := &domain.RevenueSummary{
		TenantID:         uuid.New(),
		PropertyID:       "P1",
		Total:            decimal.RequireFromString("500.00"),
		Currency:         "USD",
		ReservationCount: 5,
	}
	fresh := &domain.RevenueSummary{
		TenantID:         tenantID,
		PropertyID:       "P1",
		Total:            decimal.RequireFromString("25.00"),
		Currency:         "USD",
		ReservationCount: 1,
	}

	mockCache.On("Get", mock.Anything, key).Return(mustMarshal(t, foreign), nil)
	mockRepo.On("GetSummary", mock.Anything, tenantID, "P1").Return(fresh, nil)
	mockCache.On("Set", mock.Anything, key, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.GetSummary(context.Background(), tenantID, "P1")
	assert.NoError(t, err)
	assert.Equal(t, tenantID, result.TenantID)
	assert.True(t, result.Total.Equal(decimal.RequireFromString("25.00")))

	mockRepo.AssertExpectations(t)
}

func TestRevenueService_GetSummary_CorruptEntryRecomputed(t *testing.T) {
	svc, mockRepo, mockCache := newRevenueService(0)

	tenantID := uuid.New()
	key := cacheKey(tenantID, "P1")
	fresh := domain.ZeroRevenueSummary(tenantID, "P1", "USD")

	mockCache.On("Get", mock.Anything, key).Return([]byte("{not json"), nil)
	mockRepo.On("GetSummary", mock.Anything, tenantID, "P1").Return(fresh, nil)
	mockCache.On("Set", mock.Anything, key, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.GetSummary(context.Background(), tenantID, "P1")
	assert.NoError(t, err)
	assert.True(t, result.Total.IsZero())

	mockRepo.AssertExpectations(t)
}

func TestRevenueService_GetSummary_CacheUnreachableBypasses(t *testing.T) {
	svc, mockRepo, mockCache := newRevenueService(0)

	tenantID := uuid.New()
	key := cacheKey(tenantID, "P1")
	computed := &domain.RevenueSummary{
		TenantID:         tenantID,
		PropertyID:       "P1",
		Total:            decimal.RequireFromString("75.50"),
		Currency:         "USD",
		ReservationCount: 3,
	}

	mockCache.On("Get", mock.Anything, key).Return(nil, errors.New("connection refused"))
	mockRepo.On("GetSummary", mock.Anything, tenantID, "P1").Return(computed, nil)
	mockCache.On("Set", mock.Anything, key, mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	result, err := svc.GetSummary(context.Background(), tenantID, "P1")
	assert.NoError(t, err)
	assert.True(t, result.Total.Equal(decimal.RequireFromString("75.50")))

	mockRepo.AssertExpectations(t)
}

func TestRevenueService_GetSummary_RepoErrorPropagates(t *testing.T) {
	svc, mockRepo, mockCache := newRevenueService(0)

	tenantID := uuid.New()
	key := cacheKey(tenantID, "P1")
	cause := errors.New("connection reset")

	mockCache.On("Get", mock.Anything, key).Return(nil, domain.ErrCacheMiss)
	mockRepo.On("GetSummary", mock.Anything, tenantID, "P1").
		Return(nil, domain.ComputationFailed("revenueRepo.GetSummary", cause))

	result, err := svc.GetSummary(context.Background(), tenantID, "P1")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrRevenueComputation)
	assert.ErrorIs(t, err, cause)

	mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRevenueService_GetSummary_NilTenantFailsClosed(t *testing.T) {
	svc, mockRepo, mockCache := newRevenueService(0)

	result, err := svc.GetSummary(context.Background(), uuid.Nil, "P1")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Fail-fast: no cache or store access without a tenant.
	mockCache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "GetSummary", mock.Anything, mock.Anything, mock.Anything)
}

func TestRevenueService_GetSummary_ExpiredEntryRecomputed(t *testing.T) {
	svc, mockRepo, mockCache := newRevenueService(300 * time.Second)

	tenantID := uuid.New()
	key := cacheKey(tenantID, "P1")
	fresh := &domain.RevenueSummary{
		TenantID:         tenantID,
		PropertyID:       "P1",
		Total:            decimal.RequireFromString("60.00"),
		Currency:         "USD",
		ReservationCount: 2,
	}

	// Expiry is delegated to the store: a TTL'd-out entry surfaces as a miss.
	mockCache.On("Get", mock.Anything, key).Return(nil, domain.ErrCacheMiss)
	mockRepo.On("GetSummary", mock.Anything, tenantID, "P1").Return(fresh, nil)
	mockCache.On("Set", mock.Anything, key, mock.Anything, 300*time.Second).Return(nil)

	result, err := svc.GetSummary(context.Background(), tenantID, "P1")
	assert.NoError(t, err)
	assert.Equal(t, 2, result.ReservationCount)

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestRevenueService_GetSummary_CacheRoundTripPreservesExactValue(t *testing.T) {
	svc, mockRepo, mockCache := newRevenueService(0)

	tenantID := uuid.New()
	key := cacheKey(tenantID, "P1")
	stored := &domain.RevenueSummary{
		TenantID:         tenantID,
		PropertyID:       "P1",
		Total:            decimal.RequireFromString("1234.5"),
		Currency:         "USD",
		ReservationCount: 7,
	}

	// Serialize exactly as the miss path would, then read it back.
	mockCache.On("Get", mock.Anything, key).Return(mustMarshal(t, stored), nil)

	result, err := svc.GetSummary(context.Background(), tenantID, "P1")
	assert.NoError(t, err)
	assert.True(t, result.Total.Equal(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "1234.50", domain.RoundAmount(result.Total).StringFixed(2))

	mockRepo.AssertNotCalled(t, "GetSummary")
}

func TestRevenueService_GetMonthlyRevenue_Delegates(t *testing.T) {
	svc, mockRepo, _ := newRevenueService(0)

	tenantID := uuid.New()
	expected := decimal.RequireFromString("321.45")
	mockRepo.On("GetMonthlyRevenue", mock.Anything, tenantID, "P1", 12, 2025).Return(expected, nil)

	total, err := svc.GetMonthlyRevenue(context.Background(), tenantID, "P1", 12, 2025)
	assert.NoError(t, err)
	assert.True(t, total.Equal(expected))
	mockRepo.AssertExpectations(t)
}

func TestRevenueService_GetMonthlyRevenue_NilTenantFailsClosed(t *testing.T) {
	svc, mockRepo, _ := newRevenueService(0)

	_, err := svc.GetMonthlyRevenue(context.Background(), uuid.Nil, "P1", 1, 2026)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	mockRepo.AssertNotCalled(t, "GetMonthlyRevenue", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
