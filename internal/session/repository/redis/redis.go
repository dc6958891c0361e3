package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"spendly/internal/model"
	"spendly/internal/session/repository"
	"spendly/pkg/log"
)

// KeyPrefix namespaces session documents.
const KeyPrefix = "spendly:session:"

// Options configures the redis backend.
type Options struct {
	Addr     string
	Password string
	DB       int
	// TTL expires idle sessions; zero keeps them forever.
	TTL time.Duration
}

type implRepository struct {
	client *goredis.Client
	ttl    time.Duration
	l      log.Logger
}

// New connects to redis and returns the Repository with the client's Close.
func New(ctx context.Context, opt Options, l log.Logger) (repository.Repository, func() error, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opt.Addr,
		Password: opt.Password,
		DB:       opt.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("session/repository/redis: ping: %w", err)
	}
	return &implRepository{client: client, ttl: opt.TTL, l: l}, client.Close, nil
}

func (r *implRepository) key(id string) string {
	return KeyPrefix + id
}

func (r *implRepository) Load(ctx context.Context, id string) (model.Session, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return model.NewSession(), nil
	}
	if err != nil {
		r.l.Errorf(ctx, "session/repository/redis.Load: %v", err)
		return model.Session{}, repository.ErrFailedToLoad
	}
	return repository.Decode(ctx, r.l, "session/repository/redis.Load", id, raw), nil
}

// Save overwrites the key in one SET; the TTL restarts on every write.
func (r *implRepository) Save(ctx context.Context, id string, s model.Session) error {
	raw, err := repository.Encode(s)
	if err != nil {
		r.l.Errorf(ctx, "session/repository/redis.Save: encode: %v", err)
		return repository.ErrFailedToSave
	}
	if err := r.client.Set(ctx, r.key(id), raw, r.ttl).Err(); err != nil {
		r.l.Errorf(ctx, "session/repository/redis.Save: %v", err)
		return repository.ErrFailedToSave
	}
	return nil
}

func (r *implRepository) List(ctx context.Context) ([]string, error) {
	var ids []string
	iter := r.client.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, iter.Val()[len(KeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		r.l.Errorf(ctx, "session/repository/redis.List: %v", err)
		return nil, repository.ErrFailedToList
	}
	return ids, nil
}
