package router

import (
	"github.com/gin-gonic/gin"

	"stayledger/internal/handler"
	"stayledger/internal/middleware"
	"stayledger/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	revenueH *handler.RevenueHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Protected routes - require valid JWT with tenant context
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.Use(middleware.TenantGuard())

	dashboard := protected.Group("/dashboard")
	dashboard.GET("/summary", revenueH.GetSummary)
	dashboard.GET("/summary/monthly", revenueH.GetMonthlyRevenue)

	return r
}
