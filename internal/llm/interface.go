// Package llm adapts the provider layer to the two text collaborators a turn
// needs: narrative generation and slot extraction.
package llm

import (
	"context"

	"spendly/internal/slot"
)

// Generator produces explanatory prose. A bounded timeout is applied on
// every call.
type Generator interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
}

var (
	_ Generator      = (*implGenerator)(nil)
	_ slot.Extractor = (*implExtractor)(nil)
)
