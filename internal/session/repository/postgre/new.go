package postgre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"spendly/internal/session/repository"
	"spendly/pkg/log"
)

// The document column is TEXT, not JSONB, so key order survives a round trip.
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	document   TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions (updated_at);
`

type implRepository struct {
	pool *pgxpool.Pool
	l    log.Logger
}

// New connects to dsn, ensures the sessions table and returns the Repository
// together with the pool's Close.
func New(ctx context.Context, dsn string, l log.Logger) (repository.Repository, func() error, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("session/repository/postgre: parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("session/repository/postgre: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("session/repository/postgre: ping: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("session/repository/postgre: schema: %w", err)
	}

	closeFn := func() error {
		pool.Close()
		return nil
	}
	return &implRepository{pool: pool, l: l}, closeFn, nil
}

func (r *implRepository) scope(method string) string {
	return fmt.Sprintf("session/repository/postgre.%s", method)
}
