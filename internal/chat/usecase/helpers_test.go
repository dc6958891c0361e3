package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"spendly/internal/advisor"
	"spendly/internal/chat"
	"spendly/internal/document"
	"spendly/internal/model"
	"spendly/internal/session/repository"
	"spendly/internal/session/repository/memory"
	"spendly/internal/slot"
	"spendly/pkg/log"
)

type mockGenerator struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
	// block waits for ctx to end before answering.
	block bool
}

func (m *mockGenerator) Generate(ctx context.Context, prompt, system string) (string, error) {
	m.mu.Lock()
	m.calls++
	text, err, block := m.text, m.err, m.block
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return text, err
}

type extractCall struct {
	fields []string
	text   string
}

type mockExtractor struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     []extractCall
}

func (m *mockExtractor) Extract(ctx context.Context, fields []slot.Field, text string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	m.calls = append(m.calls, extractCall{fields: keys, text: text})

	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return []byte(`{}`), nil
	}
	out := m.responses[0]
	m.responses = m.responses[1:]
	return []byte(out), nil
}

// countingRepo wraps a backend and can be told to fail.
type countingRepo struct {
	repository.Repository
	mu      sync.Mutex
	loads   int
	saves   int
	loadErr error
	saveErr error
}

func (r *countingRepo) Load(ctx context.Context, id string) (model.Session, error) {
	r.mu.Lock()
	r.loads++
	err := r.loadErr
	r.mu.Unlock()
	if err != nil {
		return model.Session{}, err
	}
	return r.Repository.Load(ctx, id)
}

func (r *countingRepo) Save(ctx context.Context, id string, s model.Session) error {
	r.mu.Lock()
	r.saves++
	err := r.saveErr
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return r.Repository.Save(ctx, id, s)
}

type fixture struct {
	uc        chat.UseCase
	repo      *countingRepo
	gen       *mockGenerator
	extractor *mockExtractor
	uploadDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	l := log.NewNop()

	f := &fixture{
		repo:      &countingRepo{Repository: memory.New(l)},
		gen:       &mockGenerator{text: "Here is your summary."},
		extractor: &mockExtractor{},
		uploadDir: t.TempDir(),
	}

	parser, err := document.New(l, document.Options{})
	if err != nil {
		t.Fatalf("document.New: %v", err)
	}

	f.uc = New(l, f.repo, parser, advisor.New(f.gen, l), f.extractor, f.gen, Config{
		UploadDir: f.uploadDir,
	})
	return f
}

func (f *fixture) upload(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.uploadDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write upload: %v", err)
	}
	return path
}

func (f *fixture) turn(t *testing.T, input chat.TurnInput) chat.TurnOutput {
	t.Helper()
	out, err := f.uc.HandleTurn(context.Background(), input)
	if err != nil {
		t.Fatalf("HandleTurn(%s, %q): %v", input.Intent, input.Message, err)
	}
	return out
}

func (f *fixture) stored(t *testing.T, id string) model.Session {
	t.Helper()
	s, err := f.repo.Repository.Load(context.Background(), id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func ptr[T any](v T) *T { return &v }

var errBoom = errors.New("boom")
