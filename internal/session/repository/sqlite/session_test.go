package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"spendly/internal/session/repository/repositorytest"
	"spendly/pkg/log"
)

func newTestRepo(t *testing.T) *implRepository {
	t.Helper()
	repo, closeFn, err := New(context.Background(), filepath.Join(t.TempDir(), "db", "sessions.db"), log.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { closeFn() })
	return repo.(*implRepository)
}

func TestContract(t *testing.T) {
	repositorytest.Run(t, newTestRepo(t), "")
}

func TestPurge(t *testing.T) {
	repositorytest.RunPurge(t, newTestRepo(t), "")
}

func TestLoad_CorruptIsFresh(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	if _, err := r.db.ExecContext(ctx, `INSERT INTO sessions (id, document, updated_at) VALUES ('bad', 'not json', 0)`); err != nil {
		t.Fatal(err)
	}

	s, err := r.Load(ctx, "bad")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Messages) != 0 || len(s.State) != 0 {
		t.Errorf("expected fresh session, got %+v", s)
	}
}
