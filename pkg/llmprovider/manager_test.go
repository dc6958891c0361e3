package llmprovider

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type mockProvider struct {
	name      string
	failUntil int // number of leading calls that fail; -1 fails forever
	block     bool
	text      string

	mu        sync.Mutex
	callCount int
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.mu.Lock()
	m.callCount++
	n := m.callCount
	m.mu.Unlock()

	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.failUntil < 0 || n <= m.failUntil {
		return nil, errors.New("mock provider error")
	}
	return &Response{
		Content:      Message{Role: "assistant", Parts: []Part{{Text: m.text}}},
		ProviderName: m.name,
		ModelName:    m.name + "-model",
		Usage:        &Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	}, nil
}

func (m *mockProvider) Name() string  { return m.name }
func (m *mockProvider) Model() string { return m.name + "-model" }

func (m *mockProvider) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

type mockLogger struct {
	mu           sync.Mutex
	infoMessages []string
	warnMessages []string
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any) {
	m.mu.Lock()
	m.infoMessages = append(m.infoMessages, template)
	m.mu.Unlock()
}
func (m *mockLogger) Warn(ctx context.Context, arg ...any) {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any) {
	m.mu.Lock()
	m.warnMessages = append(m.warnMessages, template)
	m.mu.Unlock()
}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

func TestGenerateContent(t *testing.T) {
	tests := []struct {
		name         string
		primary      *mockProvider
		secondary    *mockProvider
		fallback     bool
		attempts     int
		wantProvider string
		wantErr      error
		wantPrimary  int
		wantSecond   int
		wantWarns    int
	}{
		{
			name:         "primary succeeds",
			primary:      &mockProvider{name: "primary", text: "hi"},
			secondary:    &mockProvider{name: "secondary", text: "hi"},
			fallback:     true,
			attempts:     3,
			wantProvider: "primary",
			wantPrimary:  1,
		},
		{
			name:         "primary recovers on retry",
			primary:      &mockProvider{name: "primary", failUntil: 1, text: "hi"},
			secondary:    &mockProvider{name: "secondary", text: "hi"},
			fallback:     true,
			attempts:     2,
			wantProvider: "primary",
			wantPrimary:  2,
		},
		{
			name:         "falls back to secondary",
			primary:      &mockProvider{name: "primary", failUntil: -1},
			secondary:    &mockProvider{name: "secondary", text: "hi"},
			fallback:     true,
			attempts:     2,
			wantProvider: "secondary",
			wantPrimary:  2,
			wantSecond:   1,
			wantWarns:    1,
		},
		{
			name:        "all providers fail",
			primary:     &mockProvider{name: "primary", failUntil: -1},
			secondary:   &mockProvider{name: "secondary", failUntil: -1},
			fallback:    true,
			attempts:    2,
			wantErr:     ErrAllProvidersFailed,
			wantPrimary: 2,
			wantSecond:  2,
			wantWarns:   2,
		},
		{
			name:        "no fallback when disabled",
			primary:     &mockProvider{name: "primary", failUntil: -1},
			secondary:   &mockProvider{name: "secondary", text: "hi"},
			fallback:    false,
			attempts:    2,
			wantErr:     ErrAllProvidersFailed,
			wantPrimary: 2,
			wantWarns:   1,
		},
		{
			name:         "zero attempts still tries once",
			primary:      &mockProvider{name: "primary", text: "hi"},
			secondary:    &mockProvider{name: "secondary", text: "hi"},
			fallback:     true,
			attempts:     0,
			wantProvider: "primary",
			wantPrimary:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &mockLogger{}
			m := NewManager([]Provider{tt.primary, tt.secondary}, &Config{
				FallbackEnabled: tt.fallback,
				RetryAttempts:   tt.attempts,
				RetryDelay:      time.Millisecond,
			}, logger)

			resp, err := m.GenerateContent(context.Background(), NewTextRequest("", "Hello"))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if resp != nil {
					t.Errorf("expected nil response, got %v", resp)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if resp.ProviderName != tt.wantProvider {
					t.Errorf("expected provider %s, got %s", tt.wantProvider, resp.ProviderName)
				}
				if len(logger.infoMessages) != 1 {
					t.Errorf("expected 1 info log, got %d", len(logger.infoMessages))
				}
			}

			if got := tt.primary.calls(); got != tt.wantPrimary {
				t.Errorf("primary calls: expected %d, got %d", tt.wantPrimary, got)
			}
			if got := tt.secondary.calls(); got != tt.wantSecond {
				t.Errorf("secondary calls: expected %d, got %d", tt.wantSecond, got)
			}
			if len(logger.warnMessages) != tt.wantWarns {
				t.Errorf("expected %d warn logs, got %d", tt.wantWarns, len(logger.warnMessages))
			}
		})
	}
}

func TestGenerateContent_NoProvidersConfigured(t *testing.T) {
	m := NewManager(nil, &Config{RetryAttempts: 1}, &mockLogger{})

	_, err := m.GenerateContent(context.Background(), NewTextRequest("", "Hello"))
	if !errors.Is(err, ErrNoProvidersConfigured) {
		t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
	}
}

func TestGenerateContent_GlobalTimeout(t *testing.T) {
	slow := &mockProvider{name: "slow", block: true}
	m := NewManager([]Provider{slow}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   1,
		MaxTotalTimeout: 20 * time.Millisecond,
	}, &mockLogger{})

	start := time.Now()
	_, err := m.GenerateContent(context.Background(), NewTextRequest("", "Hello"))
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Errorf("expected ErrAllProvidersFailed, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Errorf("timeout not honoured")
	}
}

func TestNewTextRequest(t *testing.T) {
	req := NewTextRequest("be brief", "hello")
	if req.SystemInstruction == nil || joinText(req.SystemInstruction.Parts) != "be brief" {
		t.Errorf("system instruction not set: %+v", req.SystemInstruction)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
		t.Errorf("unexpected messages: %+v", req.Messages)
	}

	if NewTextRequest("", "hello").SystemInstruction != nil {
		t.Errorf("empty system must not produce an instruction")
	}
}

type emptyProvider struct{ mockProvider }

func (e *emptyProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	e.mockProvider.GenerateContent(ctx, req)
	return nil, ErrEmptyResponse
}

func TestGenerateContent_EmptyResponseNotRetried(t *testing.T) {
	empty := &emptyProvider{mockProvider{name: "empty"}}
	backup := &mockProvider{name: "backup", text: "hi"}
	m := NewManager([]Provider{empty, backup}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   3,
		RetryDelay:      time.Millisecond,
	}, &mockLogger{})

	resp, err := m.GenerateContent(context.Background(), NewTextRequest("", "Hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ProviderName != "backup" {
		t.Errorf("expected backup, got %s", resp.ProviderName)
	}
	if got := empty.calls(); got != 1 {
		t.Errorf("empty provider retried: %d calls", got)
	}
}
