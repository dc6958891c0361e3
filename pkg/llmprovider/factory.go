package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	anthropicOption "github.com/anthropics/anthropic-sdk-go/option"
	openaiOption "github.com/openai/openai-go/option"

	"spendly/config"
	"spendly/pkg/gemini"
	"spendly/pkg/log"
)

// Default endpoints for OpenAI-compatible vendors.
const (
	QwenBaseURL     = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"
	DeepSeekBaseURL = "https://api.deepseek.com/v1"
)

// InitializeProviders creates Provider instances from config.LLMConfig
// Returns providers sorted by priority (ascending) with disabled providers filtered out
// Skips providers that fail to initialize instead of failing the entire service
func InitializeProviders(ctx context.Context, cfg *config.LLMConfig, l log.Logger) ([]Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("LLM config is nil")
	}

	var enabled []config.ProviderConfig
	for _, p := range cfg.Providers {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	if len(enabled) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})

	var providers []Provider
	var initErrors []string
	for _, p := range enabled {
		provider, err := createProvider(p)
		if err != nil {
			msg := fmt.Sprintf("provider %s (priority %d): %v", p.Name, p.Priority, err)
			initErrors = append(initErrors, msg)
			l.Warnf(ctx, "llmprovider.InitializeProviders: skipping %s", msg)
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("no providers successfully initialized: %s", strings.Join(initErrors, "; "))
	}

	if len(initErrors) > 0 {
		l.Warnf(ctx, "llmprovider.InitializeProviders: %d provider(s) failed to initialize, continuing with %d",
			len(initErrors), len(providers))
	}

	return providers, nil
}

// createProvider creates a concrete provider instance based on the provider config
func createProvider(cfg config.ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	var timeout time.Duration
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", cfg.Timeout, err)
		}
		timeout = d
	}

	switch cfg.Name {
	case "gemini":
		gcfg := gemini.Config{
			APIKey: cfg.APIKey,
			Model:  cfg.Model,
			APIURL: cfg.BaseURL,
		}
		if timeout > 0 {
			gcfg.HTTPClient = &http.Client{Timeout: timeout}
		}
		client, err := gemini.New(gcfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return NewGeminiAdapter(client), nil

	case "openai", "qwen", "alibaba", "deepseek":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			switch cfg.Name {
			case "qwen", "alibaba":
				baseURL = QwenBaseURL
			case "deepseek":
				baseURL = DeepSeekBaseURL
			}
		}
		var opts []openaiOption.RequestOption
		if timeout > 0 {
			opts = append(opts, openaiOption.WithRequestTimeout(timeout))
		}
		return NewOpenAIAdapter(OpenAIConfig{
			Name:    cfg.Name,
			APIKey:  cfg.APIKey,
			BaseURL: baseURL,
			Model:   cfg.Model,
			Options: opts,
		}), nil

	case "anthropic", "claude":
		var opts []anthropicOption.RequestOption
		if timeout > 0 {
			opts = append(opts, anthropicOption.WithRequestTimeout(timeout))
		}
		return NewAnthropicAdapter(AnthropicConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Options: opts,
		}), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Name)
	}
}

// NewManagerFromConfig builds providers and wraps them in a Manager. With no
// enabled provider the Manager is still returned and answers
// ErrNoProvidersConfigured.
func NewManagerFromConfig(ctx context.Context, cfg *config.LLMConfig, l log.Logger) (*Manager, error) {
	providers, err := InitializeProviders(ctx, cfg, l)
	if errors.Is(err, ErrNoProvidersConfigured) {
		l.Warnf(ctx, "llmprovider.NewManagerFromConfig: no provider enabled, every generation will fail fast")
	} else if err != nil {
		return nil, err
	}

	mcfg := &Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
	}
	if cfg.RetryDelay != "" {
		if mcfg.RetryDelay, err = time.ParseDuration(cfg.RetryDelay); err != nil {
			return nil, fmt.Errorf("invalid llm.retry_delay %q: %w", cfg.RetryDelay, err)
		}
	}
	if cfg.MaxTotalTimeout != "" {
		if mcfg.MaxTotalTimeout, err = time.ParseDuration(cfg.MaxTotalTimeout); err != nil {
			return nil, fmt.Errorf("invalid llm.max_total_timeout %q: %w", cfg.MaxTotalTimeout, err)
		}
	}

	return NewManager(providers, mcfg, l), nil
}
