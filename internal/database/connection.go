package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aqasim81/severity-palette/internal/config"
)

const defaultMaxConns = 5

// NewPool creates a pgx connection pool for the given database URL.
// It parses the connection string, sets a conservative max connection limit,
// and pings the database with exponential backoff until connectTimeout
// elapses. A non-positive connectTimeout means config.DefaultConnectTimeout;
// a zero MaxElapsedTime would make the backoff retry forever.
func NewPool(ctx context.Context, databaseURL string, connectTimeout time.Duration) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDatabaseURL, err)
	}

	poolCfg.MaxConns = defaultMaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	if connectTimeout <= 0 {
		connectTimeout = config.DefaultConnectTimeout
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = connectTimeout

	ping := func() error { return pool.Ping(ctx) }

	if err := backoff.Retry(ping, backoff.WithContext(b, ctx)); err != nil {
		pool.Close()

		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return pool, nil
}
