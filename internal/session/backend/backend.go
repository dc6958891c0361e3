// Package backend opens the session store selected by configuration.
package backend

import (
	"context"
	"fmt"
	"time"

	"spendly/config"
	"spendly/internal/session/repository"
	"spendly/internal/session/repository/cache"
	"spendly/internal/session/repository/file"
	"spendly/internal/session/repository/memory"
	"spendly/internal/session/repository/postgre"
	"spendly/internal/session/repository/redis"
	"spendly/internal/session/repository/sqlite"
	"spendly/pkg/log"
)

const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Open builds the configured Repository. The returned close func is never nil.
func Open(ctx context.Context, cfg config.SessionConfig, l log.Logger) (repository.Repository, func(), error) {
	repo, closeFn, err := open(ctx, cfg, l)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Cache.Enabled {
		repo = cache.New(repo, cfg.Cache.Size, config.Duration(cfg.Cache.TTL, 10*time.Minute), l)
	}

	closer := func() {
		if closeFn == nil {
			return
		}
		if err := closeFn(); err != nil {
			l.Warnf(ctx, "session/backend.Open: close %s store: %v", cfg.Driver, err)
		}
	}
	return repo, closer, nil
}

func open(ctx context.Context, cfg config.SessionConfig, l log.Logger) (repository.Repository, func() error, error) {
	switch cfg.Driver {
	case "", DriverFile:
		repo, err := file.New(cfg.Dir, l)
		return repo, nil, err
	case DriverMemory:
		return memory.New(l), nil, nil
	case DriverSQLite:
		return sqlite.New(ctx, cfg.SQLite.Path, l)
	case DriverPostgres:
		if cfg.Postgres.DSN == "" {
			return nil, nil, fmt.Errorf("session/backend: postgres driver requires session.postgres.dsn")
		}
		return postgre.New(ctx, cfg.Postgres.DSN, l)
	case DriverRedis:
		return redis.New(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      config.Duration(cfg.Redis.TTL, 0),
		}, l)
	default:
		return nil, nil, fmt.Errorf("session/backend: unknown driver %q", cfg.Driver)
	}
}
