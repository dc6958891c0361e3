package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"spendly/internal/model"
	"spendly/internal/session/repository"
)

func (r *implRepository) Load(ctx context.Context, id string) (model.Session, error) {
	const query = `SELECT document FROM sessions WHERE id = ?`

	var doc string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
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
		INSERT INTO sessions (id, document, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`

	raw, err := repository.Encode(s)
	if err != nil {
		r.l.Errorf(ctx, "%s: encode: %v", r.scope("Save"), err)
		return repository.ErrFailedToSave
	}

	if _, err := r.db.ExecContext(ctx, query, id, string(raw), time.Now().UnixNano()); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("Save"), err)
		return repository.ErrFailedToSave
	}
	return nil
}

func (r *implRepository) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	const query = `DELETE FROM sessions WHERE updated_at < ?`

	res, err := r.db.ExecContext(ctx, query, olderThan.UnixNano())
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("Purge"), err)
		return 0, repository.ErrFailedToPurge
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *implRepository) List(ctx context.Context) ([]string, error) {
	const query = `SELECT id FROM sessions ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("List"), err)
		return nil, repository.ErrFailedToList
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, repository.ErrFailedToList
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.ErrFailedToList
	}
	return ids, nil
}
