package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stayledger/internal/domain"
	"stayledger/internal/port"
)

// DefaultRevenueTTL bounds how stale a cached revenue summary may get.
const DefaultRevenueTTL = 300 * time.Second

// RevenueService serves tenant-scoped revenue summaries through a
// read-through cache. Concurrent misses for the same (tenant, property)
// pair may each query the store and write the entry; all writers compute
// the same value from the same source state, so last write wins.
type RevenueService interface {
	GetSummary(ctx context.Context, tenantID uuid.UUID, propertyID string) (*domain.RevenueSummary, error)
	GetMonthlyRevenue(ctx context.Context, tenantID uuid.UUID, propertyID string, month, year int) (decimal.Decimal, error)
}

type revenueService struct {
	repo  port.RevenueRepository
	cache port.Cache
	ttl   time.Duration
}

// NewRevenueService creates a new RevenueService implementation.
func NewRevenueService(repo port.RevenueRepository, cache port.Cache, ttl time.Duration) RevenueService {
	if ttl <= 0 {
		ttl = DefaultRevenueTTL
	}
	return &revenueService{repo: repo, cache: cache, ttl: ttl}
}

// revenueCacheKey builds the composite cache key, tenant segment first.
// The tenant UUID cannot contain the delimiter, so keys for two tenants
// never collide regardless of what the property ID holds.
func revenueCacheKey(tenantID uuid.UUID, propertyID string) string {
	return "revenue:" + tenantID.String() + ":" + propertyID
}

func (s *revenueService) GetSummary(ctx context.Context, tenantID uuid.UUID, propertyID string) (*domain.RevenueSummary, error) {
	if tenantID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	key := revenueCacheKey(tenantID, propertyID)

	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		if summary, ok := decodeSummary(cached, tenantID, propertyID); ok {
			return summary, nil
		}
		// Corrupt or mismatched entry: fall through and recompute.
	case !errors.Is(err, domain.ErrCacheMiss):
		// Unreachable cache never fails the request; serve from the store.
		log.Printf("revenue cache unavailable, bypassing: %v", err)
	}

	summary, err := s.repo.GetSummary(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(summary); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			log.Printf("revenue cache write failed for %s: %v", key, err)
		}
	}

	return summary, nil
}

func (s *revenueService) GetMonthlyRevenue(ctx context.Context, tenantID uuid.UUID, propertyID string, month, year int) (decimal.Decimal, error) {
	if tenantID == uuid.Nil {
		return decimal.Zero, domain.ErrUnauthorized
	}
	return s.repo.GetMonthlyRevenue(ctx, tenantID, propertyID, month, year)
}

// decodeSummary deserializes a cache entry and verifies it belongs to the
// requested (tenant, property) pair. Anything else is treated as a miss.
func decodeSummary(data []byte, tenantID uuid.UUID, propertyID string) (*domain.RevenueSummary, bool) {
	var summary domain.RevenueSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, false
	}
	if summary.TenantID != tenantID || summary.PropertyID != propertyID {
		return nil, false
	}
	return &summary, true
}
