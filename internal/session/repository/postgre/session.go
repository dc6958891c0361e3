package postgre

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"spendly/internal/model"
	"spendly/internal/session/repository"
)

func (r *implRepository) Load(ctx context.Context, id string) (model.Session, error) {
	const query = `SELECT document FROM sessions WHERE id = $1`

	var doc string
	err := r.pool.QueryRow(ctx, query, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.NewSession(), nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("Load"), err)
		return model.Session{}, repository.ErrFailedToLoad
	}
	return repository.Decode(ctx, r.l, r.scope("Load"), id, []byte(doc)), nil
}

func (r *implRepository) Save(ctx context.Context, id string, s model.Session) error {
	const query = `
		INSERT INTO sessions (id, document, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = now()`

	raw, err := repository.Encode(s)
	if err != nil {
		r.l.Errorf(ctx, "%s: encode: %v", r.scope("Save"), err)
		return repository.ErrFailedToSave
	}

	if _, err := r.pool.Exec(ctx, query, id, string(raw)); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("Save"), err)
		return repository.ErrFailedToSave
	}
	return nil
}

func (r *implRepository) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	const query = `DELETE FROM sessions WHERE updated_at < $1`

	tag, err := r.pool.Exec(ctx, query, olderThan)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("Purge"), err)
		return 0, repository.ErrFailedToPurge
	}
	return tag.RowsAffected(), nil
}

func (r *implRepository) List(ctx context.Context) ([]string, error) {
	const query = `SELECT id FROM sessions ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("List"), err)
		return nil, repository.ErrFailedToList
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("List"), err)
		return nil, repository.ErrFailedToList
	}
	return ids, nil
}
