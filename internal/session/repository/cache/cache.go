package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"spendly/internal/model"
	"spendly/internal/session/repository"
	"spendly/pkg/log"
)

type implRepository struct {
	next repository.Repository
	lru  *expirable.LRU[string, model.Session]
	l    log.Logger

	// gens counts writes per id. A miss only populates the cache when no
	// write started or finished while it was reading the backend.
	mu   sync.Mutex
	gens map[string]uint64
}

// New puts a bounded read-through cache in front of next. Entries are cloned
// on the way in and out so callers never share a cached session.
func New(next repository.Repository, size int, ttl time.Duration, l log.Logger) repository.Repository {
	if size <= 0 {
		size = 1024
	}
	return &implRepository{
		next: next,
		lru:  expirable.NewLRU[string, model.Session](size, nil, ttl),
		l:    l,
		gens: make(map[string]uint64),
	}
}

func (r *implRepository) bump(id string) {
	r.mu.Lock()
	r.gens[id]++
	r.mu.Unlock()
}

func (r *implRepository) Load(ctx context.Context, id string) (model.Session, error) {
	if s, ok := r.lru.Get(id); ok {
		return s.Clone(), nil
	}

	r.mu.Lock()
	gen := r.gens[id]
	r.mu.Unlock()

	s, err := r.next.Load(ctx, id)
	if err != nil {
		return model.Session{}, err
	}

	r.mu.Lock()
	if r.gens[id] == gen {
		r.lru.Add(id, s.Clone())
	}
	r.mu.Unlock()
	return s, nil
}

func (r *implRepository) Save(ctx context.Context, id string, s model.Session) error {
	r.bump(id)
	err := r.next.Save(ctx, id, s)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.gens[id]++
	if err != nil {
		// The backing write may have partially failed; force the next Load through.
		r.lru.Remove(id)
		return err
	}
	r.lru.Add(id, s.Clone())
	return nil
}

// Purge delegates and then drops every cached entry, since the cache does not
// track write times.
func (r *implRepository) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	p, ok := r.next.(repository.Purger)
	if !ok {
		return 0, nil
	}
	n, err := p.Purge(ctx, olderThan)
	if err != nil {
		return 0, err
	}
	r.mu.Lock()
	r.lru.Purge()
	for id := range r.gens {
		r.gens[id]++
	}
	r.mu.Unlock()
	if n > 0 {
		r.l.Infof(ctx, "session/repository/cache.Purge: %d sessions purged, cache cleared", n)
	}
	return n, nil
}

func (r *implRepository) List(ctx context.Context) ([]string, error) {
	lister, ok := r.next.(repository.Lister)
	if !ok {
		return nil, nil
	}
	return lister.List(ctx)
}
