package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrTenantInactive     = errors.New("tenant is inactive")
	ErrInvalidAmount      = errors.New("invalid monetary amount")
	ErrCacheMiss          = errors.New("cache miss")
	ErrPoolNotInitialized = errors.New("database pool not initialized")
	ErrRevenueComputation = errors.New("revenue computation failed")
)

// ComputationFailed wraps a store-level failure so callers can match the
// computation-failed kind with errors.Is while the underlying cause stays
// on the chain for diagnostics.
func ComputationFailed(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrRevenueComputation, op, err)
}
