package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stayledger/internal/domain"
)

// RevenueRepository provides aggregate revenue queries over reservations.
// Every query filters by tenant and property together; there is no
// property-only lookup path.
type RevenueRepository interface {
	// GetSummary returns summed revenue and reservation count for the pair.
	// A pair with no reservations yields a zero summary, not an error.
	GetSummary(ctx context.Context, tenantID uuid.UUID, propertyID string) (*domain.RevenueSummary, error)

	// GetMonthlyRevenue returns the revenue sum bounded by the half-open
	// [start of month, start of next month) window on check-in date.
	GetMonthlyRevenue(ctx context.Context, tenantID uuid.UUID, propertyID string, month, year int) (decimal.Decimal, error)
}
