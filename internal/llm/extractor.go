package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"spendly/internal/slot"
	"spendly/pkg/llmprovider"
	"spendly/pkg/log"
)

const DefaultExtractTimeout = 15 * time.Second

const extractSystem = "You are an information extraction engine. You only ever answer with a single JSON object."

type implExtractor struct {
	provider llmprovider.Provider
	timeout  time.Duration
	l        log.Logger
}

// NewExtractor returns a slot.Extractor backed by provider in JSON mode.
func NewExtractor(provider llmprovider.Provider, timeout time.Duration, l log.Logger) slot.Extractor {
	if timeout <= 0 {
		timeout = DefaultExtractTimeout
	}
	return &implExtractor{provider: provider, timeout: timeout, l: l}
}

func (e *implExtractor) Extract(ctx context.Context, fields []slot.Field, text string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req := llmprovider.NewTextRequest(extractSystem, buildExtractPrompt(fields, text))
	req.Temperature = 0
	req.MaxTokens = 256
	req.JSONMode = true

	resp, err := e.provider.GenerateContent(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("llm: extract: %w", err)
	}

	raw := resp.Text()
	cleaned, ok := sanitizeJSON(raw)
	if !ok {
		e.l.Warnf(ctx, "llm.Extract: no json object in %q", raw)
		return nil, ErrNoJSON
	}
	return []byte(cleaned), nil
}

func buildExtractPrompt(fields []slot.Field, text string) string {
	var sb strings.Builder
	sb.WriteString("User answer: ")
	sb.WriteString(text)
	sb.WriteString("\n\nExtract this as JSON with keys:\n")
	for _, f := range fields {
		fmt.Fprintf(&sb, "- %s (%s or null): %s\n", f.Key, f.Type, f.Description)
	}
	sb.WriteString("\nUse null for anything the answer does not state. Amounts are plain numbers without currency symbols.\n")
	sb.WriteString("Only output JSON.")
	return sb.String()
}
