package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// NewPostgresDB opens the pool and waits for the first successful ping.
func NewPostgresDB(ctx context.Context, cfg *Config) (*sqlx.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for the %s storage driver", StorageDriverPostgres)
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	maxConns := max(cfg.DatabaseMaxConns, 1)
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(max(maxConns/5, 1))
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(time.Hour)

	return db, nil
}
