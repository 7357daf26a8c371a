package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mindforge/mindforge-api/internal/pkg/observability"
)

// HealthChecker probes database reachability for the readiness endpoint
type HealthChecker struct {
	db      *sql.DB
	timeout time.Duration
}

// NewHealthChecker creates a checker that gives each ping at most timeout
func NewHealthChecker(db *sql.DB, timeout time.Duration) *HealthChecker {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthChecker{db: db, timeout: timeout}
}

// Ready pings the database and runs a trivial query
func (h *HealthChecker) Ready(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	defer func() { observability.ObserveDBPing(time.Since(start)) }()

	if err := h.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	var one int
	if err := h.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("database query failed: %w", err)
	}
	return nil
}
