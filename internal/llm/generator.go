package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"spendly/pkg/llmprovider"
	"spendly/pkg/log"
)

const (
	DefaultGenerateTimeout = 20 * time.Second
	generateTemperature    = 0.4
	generateMaxTokens      = 1024
)

type implGenerator struct {
	provider llmprovider.Provider
	timeout  time.Duration
	l        log.Logger
}

// NewGenerator wraps provider. A non-positive timeout uses DefaultGenerateTimeout.
func NewGenerator(provider llmprovider.Provider, timeout time.Duration, l log.Logger) Generator {
	if timeout <= 0 {
		timeout = DefaultGenerateTimeout
	}
	return &implGenerator{provider: provider, timeout: timeout, l: l}
}

func (g *implGenerator) Generate(ctx context.Context, prompt, system string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req := llmprovider.NewTextRequest(system, prompt)
	req.Temperature = generateTemperature
	req.MaxTokens = generateMaxTokens

	start := time.Now()
	resp, err := g.provider.GenerateContent(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm: generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyGeneration
	}
	g.l.Debugf(ctx, "llm.Generate: %s/%s answered in %s", resp.ProviderName, resp.ModelName, time.Since(start))
	return text, nil
}
