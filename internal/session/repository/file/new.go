package file

import (
	"fmt"
	"os"
	"path/filepath"

	"spendly/internal/session/repository"
	"spendly/pkg/log"
)

const ext = ".json"

type implRepository struct {
	dir string
	l   log.Logger
}

// New creates a Repository storing one <dir>/<id>.json document per session.
func New(dir string, l log.Logger) (repository.Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("session/repository/file: create dir: %w", err)
	}
	return &implRepository{dir: dir, l: l}, nil
}

var (
	_ repository.Repository = (*implRepository)(nil)
	_ repository.Purger     = (*implRepository)(nil)
	_ repository.Lister     = (*implRepository)(nil)
)

func (r *implRepository) path(id string) string {
	return filepath.Join(r.dir, id+ext)
}

func (r *implRepository) scope(method string) string {
	return fmt.Sprintf("session/repository/file.%s", method)
}
