package repository

import (
	"context"
	"time"

	"spendly/internal/model"
)

// Repository is the durable session id to session document mapping.
//
// Load of an unknown id returns a fresh empty session and no error. Save
// replaces the stored document wholesale; a concurrent Load never sees a
// partial write.
type Repository interface {
	Load(ctx context.Context, id string) (model.Session, error)
	Save(ctx context.Context, id string, s model.Session) error
}

// Purger is implemented by backends that can drop sessions not written since
// a cutoff. Retention runs outside the request path.
type Purger interface {
	Purge(ctx context.Context, olderThan time.Time) (int64, error)
}

// Lister is implemented by backends that can enumerate stored ids.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}
