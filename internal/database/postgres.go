package database

import (
	"context"
	"fmt"

	"recruit_messaging/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool opens the shared pgx pool with the limits from DatabaseConfig.
// Both the API server and the scan job go through it.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database DSN: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxConnections)
	poolCfg.MaxConnIdleTime = cfg.MaxIdleTime
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	return pgxpool.NewWithConfig(ctx, poolCfg)
}
