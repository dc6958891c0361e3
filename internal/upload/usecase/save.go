package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"spendly/internal/upload"
	"spendly/pkg/metrics"
)

// Save copies the content to <dir>/<uuid><ext>. Files over the size limit
// are removed again before the error is returned.
func (uc *implUseCase) Save(ctx context.Context, input upload.SaveInput) (upload.File, error) {
	file, err := uc.save(ctx, input)
	switch {
	case err == nil:
		metrics.UploadsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	case isRejection(err):
		metrics.UploadsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
	default:
		metrics.UploadsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
	}
	return file, err
}

func (uc *implUseCase) save(ctx context.Context, input upload.SaveInput) (upload.File, error) {
	name := filepath.Base(strings.TrimSpace(input.Filename))
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExt[ext] {
		return upload.File{}, upload.ErrUnsupportedType
	}
	if input.Size > uc.maxBytes {
		return upload.File{}, upload.ErrTooLarge
	}

	if err := os.MkdirAll(uc.dir, 0o755); err != nil {
		uc.l.Errorf(ctx, "%s mkdir %s: %v", LogPrefixSave, uc.dir, err)
		return upload.File{}, fmt.Errorf("create upload dir: %w", err)
	}

	id := uuid.NewString()
	path := filepath.Join(uc.dir, id+ext)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		uc.l.Errorf(ctx, "%s create %s: %v", LogPrefixSave, path, err)
		return upload.File{}, fmt.Errorf("create upload: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(input.Content, uc.maxBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > uc.maxBytes {
		err = upload.ErrTooLarge
	}
	if err == nil && n == 0 {
		err = upload.ErrEmptyFile
	}
	if err != nil {
		_ = os.Remove(path)
		if !isRejection(err) {
			uc.l.Errorf(ctx, "%s write %s: %v", LogPrefixSave, path, err)
			err = fmt.Errorf("write upload: %w", err)
		}
		return upload.File{}, err
	}

	uc.l.Infof(ctx, "%s stored %q as %s (%d bytes)", LogPrefixSave, name, path, n)
	return upload.File{ID: id, Filename: name, Path: path}, nil
}

func isRejection(err error) bool {
	return errors.Is(err, upload.ErrUnsupportedType) ||
		errors.Is(err, upload.ErrTooLarge) ||
		errors.Is(err, upload.ErrEmptyFile)
}
