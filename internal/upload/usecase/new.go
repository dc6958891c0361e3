package usecase

import (
	"spendly/internal/upload"
	"spendly/pkg/log"
)

const (
	LogPrefixSave = "[upload.Save]"

	defaultMaxBytes = 10 << 20
)

var allowedExt = map[string]bool{".csv": true, ".txt": true, ".pdf": true}

// Config bounds what the upload directory accepts.
type Config struct {
	Dir      string
	MaxBytes int64
}

type implUseCase struct {
	l        log.Logger
	dir      string
	maxBytes int64
}

// New returns an upload use case writing under cfg.Dir.
func New(l log.Logger, cfg Config) upload.UseCase {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaultMaxBytes
	}
	return &implUseCase{
		l:        l,
		dir:      cfg.Dir,
		maxBytes: cfg.MaxBytes,
	}
}
