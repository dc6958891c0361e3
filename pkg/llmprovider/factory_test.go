package llmprovider_test

import (
	"context"
	"errors"
	"testing"

	"spendly/config"
	"spendly/pkg/llmprovider"
	"spendly/pkg/log"
)

func TestInitializeProviders(t *testing.T) {
	tests := []struct {
		name      string
		providers []config.ProviderConfig
		wantNames []string
		wantErr   bool
	}{
		{
			name: "sorted by priority",
			providers: []config.ProviderConfig{
				{Name: "gemini", Enabled: true, Priority: 10, APIKey: "k", Model: "gemini-2.5-flash"},
				{Name: "qwen", Enabled: true, Priority: 1, APIKey: "k", Model: "qwen-plus"},
				{Name: "anthropic", Enabled: true, Priority: 5, APIKey: "k", Model: "claude-3-5-haiku-latest"},
			},
			wantNames: []string{"qwen", "anthropic", "gemini"},
		},
		{
			name: "disabled providers filtered",
			providers: []config.ProviderConfig{
				{Name: "openai", Enabled: false, Priority: 1, APIKey: "k", Model: "gpt-4o-mini"},
				{Name: "deepseek", Enabled: true, Priority: 2, APIKey: "k", Model: "deepseek-chat"},
			},
			wantNames: []string{"deepseek"},
		},
		{
			name: "broken provider skipped",
			providers: []config.ProviderConfig{
				{Name: "openai", Enabled: true, Priority: 1, APIKey: "", Model: "gpt-4o-mini"},
				{Name: "gemini", Enabled: true, Priority: 2, APIKey: "k", Model: "gemini-2.5-flash"},
			},
			wantNames: []string{"gemini"},
		},
		{
			name:      "no providers",
			providers: nil,
			wantErr:   true,
		},
		{
			name: "only broken providers",
			providers: []config.ProviderConfig{
				{Name: "unknown", Enabled: true, Priority: 1, APIKey: "k", Model: "m"},
				{Name: "gemini", Enabled: true, Priority: 2, APIKey: "k", Model: "m", Timeout: "soon"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.LLMConfig{Providers: tt.providers, FallbackEnabled: true, RetryAttempts: 1}
			providers, err := llmprovider.InitializeProviders(context.Background(), cfg, log.NewNop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("InitializeProviders() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(providers) != len(tt.wantNames) {
				t.Fatalf("expected %d providers, got %d", len(tt.wantNames), len(providers))
			}
			for i, name := range tt.wantNames {
				if providers[i].Name() != name {
					t.Errorf("position %d: expected %s, got %s", i, name, providers[i].Name())
				}
			}
		})
	}
}

func TestInitializeProviders_NoneEnabled(t *testing.T) {
	cfg := &config.LLMConfig{Providers: []config.ProviderConfig{
		{Name: "gemini", Enabled: false, Priority: 1, APIKey: "k", Model: "m"},
	}}
	_, err := llmprovider.InitializeProviders(context.Background(), cfg, log.NewNop())
	if !errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
		t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
	}
}

func TestNewManagerFromConfig(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "gemini", Enabled: true, Priority: 1, APIKey: "k", Model: "gemini-2.5-flash", Timeout: "30s"},
		},
		FallbackEnabled: true,
		RetryAttempts:   3,
		RetryDelay:      "1s",
		MaxTotalTimeout: "60s",
	}

	m, err := llmprovider.NewManagerFromConfig(context.Background(), cfg, log.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Model() != "gemini-2.5-flash" {
		t.Errorf("expected primary model, got %s", m.Model())
	}

	cfg.RetryDelay = "later"
	if _, err := llmprovider.NewManagerFromConfig(context.Background(), cfg, log.NewNop()); err == nil {
		t.Errorf("expected error for invalid retry delay")
	}
}

func TestNewManagerFromConfig_NoProviders(t *testing.T) {
	m, err := llmprovider.NewManagerFromConfig(context.Background(), &config.LLMConfig{}, log.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Model() != "" {
		t.Errorf("expected no model, got %q", m.Model())
	}
	if _, err := m.GenerateContent(context.Background(), llmprovider.NewTextRequest("", "hi")); !errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
		t.Errorf("expected ErrNoProvidersConfigured, got %v", err)
	}
}
