package main

import (
	"context"
	"fmt"
	"log"

	rediscache "stayledger/internal/cache/redis"
	"stayledger/internal/config"
	"stayledger/internal/handler"
	"stayledger/internal/repository/postgres"
	"stayledger/internal/router"
	"stayledger/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The pool and cache client are process-wide resources, constructed
	// exactly once before the first request.
	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	cache, err := rediscache.New(context.Background(), &cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer cache.Close()

	// Initialize repositories
	revenueRepo := postgres.NewRevenueRepo(db)

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT)
	revenueSvc := service.NewRevenueService(revenueRepo, cache, cfg.Cache.RevenueTTL)

	// Initialize handlers
	revenueH := handler.NewRevenueHandler(revenueSvc)
	healthH := handler.NewHealthHandler(db, cache)

	// Setup router
	r := router.Setup(authSvc, revenueH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
