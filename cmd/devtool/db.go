package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PrizePool_Go/internal/config"
	"github.com/osse101/PrizePool_Go/internal/database"
)

// dbConnString prefers DB_URL and falls back to the DB_* settings the server reads
func dbConnString() string {
	if url := os.Getenv("DB_URL"); url != "" {
		return url
	}
	return config.LoadDatabase().GetDBConnString()
}

func openPool() (*pgxpool.Pool, error) {
	cfg := config.LoadDatabase()
	return database.NewPool(dbConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
}

// retry calls fn until it succeeds, attempts run out, or ctx is done
func retry(ctx context.Context, attempts int, interval time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		PrintWarning("Attempt %d/%d failed: %v", i+1, attempts, err)
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("gave up after %d attempts: %w", attempts, err)
}
