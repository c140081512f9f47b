package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tenant represents an isolated organizational tenant.
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Reservation represents a booking on a property. This service only ever
// reads reservations; writes belong to the booking pipeline.
type Reservation struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	TenantID    uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	PropertyID  string          `db:"property_id" json:"property_id"`
	CheckInDate time.Time       `db:"check_in_date" json:"check_in_date"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// RevenueSummary is the aggregate revenue for one (tenant, property) pair.
// Total stays in exact-decimal form everywhere inside the service; it is
// serialized as a JSON string on the cache wire (decimal's default), and
// only converted to a float at the response boundary after rounding.
type RevenueSummary struct {
	TenantID         uuid.UUID       `json:"tenant_id"`
	PropertyID       string          `json:"property_id"`
	Total            decimal.Decimal `json:"total"`
	Currency         string          `json:"currency"`
	ReservationCount int             `json:"count"`
}

// ZeroRevenueSummary returns the summary for a (tenant, property) pair with
// no matching reservations. Zero revenue is a valid state, not an error.
func ZeroRevenueSummary(tenantID uuid.UUID, propertyID, currency string) *RevenueSummary {
	return &RevenueSummary{
		TenantID:         tenantID,
		PropertyID:       propertyID,
		Total:            decimal.Zero,
		Currency:         currency,
		ReservationCount: 0,
	}
}
