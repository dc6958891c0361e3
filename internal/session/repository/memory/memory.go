package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"spendly/internal/model"
	"spendly/internal/session/repository"
	"spendly/pkg/log"
)

type entry struct {
	raw       []byte
	updatedAt time.Time
}

type implRepository struct {
	mu    sync.RWMutex
	items map[string]entry
	l     log.Logger
	now   func() time.Time
}

// New creates a process-local Repository. Documents are kept encoded so a
// Load never aliases a caller's session.
func New(l log.Logger) repository.Repository {
	return &implRepository{
		items: make(map[string]entry),
		l:     l,
		now:   time.Now,
	}
}

func (r *implRepository) Load(ctx context.Context, id string) (model.Session, error) {
	r.mu.RLock()
	e, ok := r.items[id]
	r.mu.RUnlock()
	if !ok {
		return model.NewSession(), nil
	}
	return repository.Decode(ctx, r.l, "session/repository/memory.Load", id, e.raw), nil
}

func (r *implRepository) Save(ctx context.Context, id string, s model.Session) error {
	raw, err := repository.Encode(s)
	if err != nil {
		r.l.Errorf(ctx, "session/repository/memory.Save: %v", err)
		return repository.ErrFailedToSave
	}

	r.mu.Lock()
	r.items[id] = entry{raw: raw, updatedAt: r.now()}
	r.mu.Unlock()
	return nil
}

func (r *implRepository) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, e := range r.items {
		if e.updatedAt.Before(olderThan) {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r *implRepository) List(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
