package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shelfware/inventory/internal/config"
)

const defaultDBTimeout = 5 * time.Second

// NewPostgresPool connects to PostgreSQL using pgx.
func NewPostgresPool(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultDBTimeout)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

// EnsureProductsTable creates the products table when it does not exist yet.
func EnsureProductsTable(ctx context.Context, pool *pgxpool.Pool, table string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultDBTimeout)
	defer cancel()

	ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id         text PRIMARY KEY,
	name       text NOT NULL,
	quantity   bigint NOT NULL DEFAULT 0,
	price      double precision NOT NULL DEFAULT 0,
	image_key  text,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
);`, pgx.Identifier{table}.Sanitize())

	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure table %q: %w", table, err)
	}
	return nil
}
