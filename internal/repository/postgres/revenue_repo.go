package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"stayledger/internal/domain"
	"stayledger/internal/port"
)

type revenueRepo struct {
	db *sqlx.DB
}

// NewRevenueRepo creates a new PostgreSQL-backed RevenueRepository.
func NewRevenueRepo(db *sqlx.DB) port.RevenueRepository {
	return &revenueRepo{db: db}
}

// Aggregate sums are cast to text so the numeric value is scanned as an
// exact decimal string, never a binary float.
const revenueSummaryQuery = `SELECT
	property_id,
	COALESCE(SUM(total_amount), 0)::text AS total_revenue,
	COUNT(*) AS reservation_count
FROM reservations
WHERE property_id = $1 AND tenant_id = $2
GROUP BY property_id`

const monthlyRevenueQuery = `SELECT COALESCE(SUM(total_amount), 0)::text
FROM reservations
WHERE property_id = $1
AND tenant_id = $2
AND check_in_date >= $3
AND check_in_date < $4`

type revenueRow struct {
	PropertyID       string `db:"property_id"`
	TotalRevenue     string `db:"total_revenue"`
	ReservationCount int    `db:"reservation_count"`
}

func (r *revenueRepo) GetSummary(ctx context.Context, tenantID uuid.UUID, propertyID string) (*domain.RevenueSummary, error) {
	if r.db == nil {
		return nil, domain.ErrPoolNotInitialized
	}

	var row revenueRow
	err := r.db.GetContext(ctx, &row, revenueSummaryQuery, propertyID, tenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ZeroRevenueSummary(tenantID, propertyID, domain.DefaultCurrency), nil
	}
	if err != nil {
		return nil, domain.ComputationFailed("revenueRepo.GetSummary", err)
	}

	total, err := domain.ParseAmount(row.TotalRevenue)
	if err != nil {
		return nil, domain.ComputationFailed("revenueRepo.GetSummary total", err)
	}

	return &domain.RevenueSummary{
		TenantID:         tenantID,
		PropertyID:       row.PropertyID,
		Total:            total,
		Currency:         domain.DefaultCurrency,
		ReservationCount: row.ReservationCount,
	}, nil
}

func (r *revenueRepo) GetMonthlyRevenue(ctx context.Context, tenantID uuid.UUID, propertyID string, month, year int) (decimal.Decimal, error) {
	if r.db == nil {
		return decimal.Zero, domain.ErrPoolNotInitialized
	}
	if month < 1 || month > 12 {
		return decimal.Zero, fmt.Errorf("invalid month %d", month)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	var end time.Time
	if month < 12 {
		end = time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	} else {
		end = time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	var total string
	err := r.db.GetContext(ctx, &total, monthlyRevenueQuery, propertyID, tenantID, start, end)
	if err != nil {
		return decimal.Zero, domain.ComputationFailed("revenueRepo.GetMonthlyRevenue", err)
	}

	sum, err := domain.ParseAmount(total)
	if err != nil {
		return decimal.Zero, domain.ComputationFailed("revenueRepo.GetMonthlyRevenue total", err)
	}
	return sum, nil
}
