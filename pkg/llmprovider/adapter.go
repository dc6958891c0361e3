package llmprovider

import (
	"context"
	"errors"
	"fmt"

	"spendly/pkg/gemini"
)

// GeminiAdapter serves Provider over pkg/gemini.
type GeminiAdapter struct {
	client gemini.Client
}

func NewGeminiAdapter(client gemini.Client) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

func (a *GeminiAdapter) Name() string  { return "gemini" }
func (a *GeminiAdapter) Model() string { return a.client.Model() }

// GenerateContent maps the request onto gemini types. A blocked prompt is
// reported as ErrEmptyResponse so the manager falls through to the next
// provider.
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	greq := &gemini.Request{
		Messages:    make([]gemini.Content, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		JSONMode:    req.JSONMode,
	}
	if req.SystemInstruction != nil {
		sys := toGeminiContent(*req.SystemInstruction)
		greq.SystemInstruction = &sys
	}
	for i, m := range req.Messages {
		greq.Messages[i] = toGeminiContent(m)
	}

	gresp, err := a.client.GenerateContent(ctx, greq)
	if errors.Is(err, gemini.ErrBlocked) {
		return nil, fmt.Errorf("%w: %v", ErrEmptyResponse, err)
	}
	if err != nil {
		return nil, err
	}

	text := gresp.Text()
	if text == "" {
		return nil, ErrEmptyResponse
	}

	out := &Response{
		Content:      Message{Role: "assistant", Parts: []Part{{Text: text}}},
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage:        &Usage{},
	}
	if u := gresp.Usage; u != nil {
		out.Usage = &Usage{InputTokens: u.InputTokens, OutputTokens: u.OutputTokens, TotalTokens: u.TotalTokens}
	}
	return out, nil
}

func toGeminiContent(m Message) gemini.Content {
	c := gemini.Content{Role: m.Role, Parts: make([]gemini.Part, len(m.Parts))}
	for i, p := range m.Parts {
		c.Parts[i] = gemini.Part{Text: p.Text}
	}
	return c
}
