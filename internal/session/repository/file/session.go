package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"spendly/internal/model"
	"spendly/internal/session/repository"
)

// Load reads <dir>/<id>.json. A missing file is a fresh session.
func (r *implRepository) Load(ctx context.Context, id string) (model.Session, error) {
	if !repository.ValidID(id) {
		return model.Session{}, repository.ErrInvalidID
	}

	raw, err := os.ReadFile(r.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return model.NewSession(), nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("Load"), err)
		return model.Session{}, repository.ErrFailedToLoad
	}

	return repository.Decode(ctx, r.l, r.scope("Load"), id, raw), nil
}

// Save writes to a temp file in the same directory and renames it over the
// target, so readers see either the old or the new document.
func (r *implRepository) Save(ctx context.Context, id string, s model.Session) error {
	if !repository.ValidID(id) {
		return repository.ErrInvalidID
	}

	raw, err := repository.EncodeIndent(s)
	if err != nil {
		r.l.Errorf(ctx, "%s: encode: %v", r.scope("Save"), err)
		return repository.ErrFailedToSave
	}

	if err := r.writeAtomic(id, raw); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("Save"), err)
		return repository.ErrFailedToSave
	}
	return nil
}

func (r *implRepository) writeAtomic(id string, raw []byte) error {
	tmp, err := os.CreateTemp(r.dir, "."+id+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, r.path(id))
}

// Purge removes documents whose last write is before olderThan.
func (r *implRepository) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("Purge"), err)
		return 0, repository.ErrFailedToPurge
	}

	var n int64
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(olderThan) {
			if err := os.Remove(r.path(strings.TrimSuffix(e.Name(), ext))); err != nil && !errors.Is(err, fs.ErrNotExist) {
				r.l.Warnf(ctx, "%s: remove %s: %v", r.scope("Purge"), e.Name(), err)
				continue
			}
			n++
		}
	}
	return n, nil
}

// List returns the ids of every stored document.
func (r *implRepository) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("List"), err)
		return nil, repository.ErrFailedToList
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ext) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ext))
	}
	return ids, nil
}
