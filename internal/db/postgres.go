package db

import (
	"context"
	"fmt"
	"time"

	"sosintake/pkg/types"

	"github.com/jackc/pgx/v5/pgxpool"
)

const Schema = "sos"

// PoolConfig turns the service config into pgxpool settings. An explicit
// search_path in DATABASE_URL wins over Schema.
func PoolConfig(config *types.Config) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	if _, ok := poolConfig.ConnConfig.RuntimeParams["search_path"]; !ok {
		poolConfig.ConnConfig.RuntimeParams["search_path"] = Schema
	}

	if config.DatabaseMaxConns > 0 {
		poolConfig.MaxConns = config.DatabaseMaxConns
	}
	if config.DatabaseMinConns > 0 {
		poolConfig.MinConns = min(config.DatabaseMinConns, poolConfig.MaxConns)
	}

	poolConfig.MaxConnIdleTime = 15 * time.Minute
	poolConfig.MaxConnLifetime = 45 * time.Minute

	return poolConfig, nil
}

// Connect opens the pool and fails unless the database answers a ping within
// DATABASE_CONNECT_TIMEOUT_SEC.
func Connect(ctx context.Context, config *types.Config) (*pgxpool.Pool, error) {
	poolConfig, err := PoolConfig(config)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	timeout := time.Duration(config.DatabaseConnectTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database within %s: %w", timeout, err)
	}

	return pool, nil
}
