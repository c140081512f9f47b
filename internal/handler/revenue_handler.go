package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stayledger/internal/domain"
	"stayledger/internal/middleware"
	"stayledger/internal/service"
)

// RevenueHandler handles dashboard revenue endpoints.
type RevenueHandler struct {
	revenueService service.RevenueService
}

// NewRevenueHandler creates a new RevenueHandler.
func NewRevenueHandler(revenueService service.RevenueService) *RevenueHandler {
	return &RevenueHandler{revenueService: revenueService}
}

// SummaryResponse is the revenue summary payload. TotalRevenue is the only
// place a monetary value is emitted as a float, and it is rounded first.
type SummaryResponse struct {
	PropertyID        string  `json:"property_id"`
	TotalRevenue      float64 `json:"total_revenue"`
	Currency          string  `json:"currency"`
	ReservationsCount int     `json:"reservations_count"`
}

// MonthlyRevenueResponse is the monthly revenue payload.
type MonthlyRevenueResponse struct {
	PropertyID   string  `json:"property_id"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	TotalRevenue float64 `json:"total_revenue"`
	Currency     string  `json:"currency"`
}

// GetSummary handles GET /api/v1/dashboard/summary
// @Summary Get revenue summary for a property
// @Description Total revenue and reservation count for a property under the caller's tenant. Served through a tenant-scoped read-through cache.
// @Tags dashboard
// @Produce json
// @Param property_id query string true "Property ID"
// @Success 200 {object} APIResponse{data=SummaryResponse} "Revenue summary"
// @Failure 401 {object} APIResponse "Missing tenant context"
// @Failure 404 {object} APIResponse "No revenue data"
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *RevenueHandler) GetSummary(c *gin.Context) {
	// Tenant check comes first; no store or cache access happens without it.
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	propertyID := c.Query("property_id")
	if propertyID == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_PROPERTY_ID", "property_id is required")
		return
	}

	summary, err := h.revenueService.GetSummary(c.Request.Context(), tenantID, propertyID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if summary == nil {
		HandleError(c, domain.ErrNotFound)
		return
	}

	RespondOK(c, SummaryResponse{
		PropertyID:        summary.PropertyID,
		TotalRevenue:      domain.DisplayAmount(domain.RoundAmount(summary.Total)),
		Currency:          summary.Currency,
		ReservationsCount: summary.ReservationCount,
	})
}

// GetMonthlyRevenue handles GET /api/v1/dashboard/summary/monthly
// @Summary Get revenue for a property in a calendar month
// @Tags dashboard
// @Produce json
// @Param property_id query string true "Property ID"
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} APIResponse{data=MonthlyRevenueResponse} "Monthly revenue"
// @Failure 401 {object} APIResponse "Missing tenant context"
// @Security BearerAuth
// @Router /dashboard/summary/monthly [get]
func (h *RevenueHandler) GetMonthlyRevenue(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	propertyID := c.Query("property_id")
	if propertyID == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_PROPERTY_ID", "property_id is required")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		RespondError(c, http.StatusBadRequest, "INVALID_MONTH", "month must be an integer between 1 and 12")
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		RespondError(c, http.StatusBadRequest, "INVALID_YEAR", "year must be a positive integer")
		return
	}

	total, err := h.revenueService.GetMonthlyRevenue(c.Request.Context(), tenantID, propertyID, month, year)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, MonthlyRevenueResponse{
		PropertyID:   propertyID,
		Month:        month,
		Year:         year,
		TotalRevenue: domain.DisplayAmount(domain.RoundAmount(total)),
		Currency:     domain.DefaultCurrency,
	})
}
