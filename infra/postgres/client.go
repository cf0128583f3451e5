// Package postgres is the hosted posts table: queries, inserts, deletes and
// LISTEN/NOTIFY change notifications.
package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotifyChannel is the channel the posts trigger notifies on.
const NotifyChannel = "posts_changes"

//go:embed schema.sql
var schemaSQL string

// Client owns the connection pool.
type Client struct {
	pool *pgxpool.Pool
}

// Connect opens a pool against dsn and verifies it with a ping.
func Connect(ctx context.Context, dsn string) (*Client, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	// One connection is pinned by the LISTEN subscription.
	if cfg.MaxConns < 4 {
		cfg.MaxConns = 4
	}
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Client{pool: pool}, nil
}

// Migrate creates the posts table and its change trigger if missing.
func (c *Client) Migrate(ctx context.Context) error {
	// Exec without arguments uses the simple protocol, which accepts the whole script.
	if _, err := c.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close releases every pooled connection.
func (c *Client) Close() {
	c.pool.Close()
}
