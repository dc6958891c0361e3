package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"spendly/internal/session/repository"
	"spendly/pkg/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	document   TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at);
`

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New opens (creating if needed) the SQLite database at path.
func New(ctx context.Context, path string, l log.Logger) (repository.Repository, func() error, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("session/repository/sqlite: create dir: %w", err)
		}
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("session/repository/sqlite: open: %w", err)
	}
	// One writer keeps upserts free of SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("session/repository/sqlite: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("session/repository/sqlite: schema: %w", err)
	}

	return &implRepository{db: db, l: l}, db.Close, nil
}

func (r *implRepository) scope(method string) string {
	return fmt.Sprintf("session/repository/sqlite.%s", method)
}
