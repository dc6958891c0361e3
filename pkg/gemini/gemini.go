// Package gemini is a small client for the generateContent endpoint of the
// Google Generative Language API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultAPIURL  = "https://generativelanguage.googleapis.com/v1beta"
	DefaultTimeout = 30 * time.Second

	maxErrorBody = 4096
)

// ErrBlocked is returned when the prompt was rejected by safety filters.
var ErrBlocked = errors.New("gemini: prompt blocked")

// Client generates content. Implementations are safe for concurrent use.
type Client interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	Model() string
}

type client struct {
	apiKey     string
	model      string
	apiURL     string
	httpClient *http.Client
}

// New validates cfg, applies defaults and returns a Client.
func New(cfg Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &client{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		httpClient: cfg.HTTPClient,
	}, nil
}

func (c *client) Model() string { return c.model }

func (c *client) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(toWire(req))
	if err != nil {
		return nil, fmt.Errorf("gemini: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.apiURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var out wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("gemini: decode response: %w", err)
	}
	return fromWire(&out)
}

// APIError is a non-200 answer from the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: API error %d: %s", e.StatusCode, e.Body)
}

func toWire(req *Request) wireRequest {
	out := wireRequest{Contents: make([]wireContent, 0, len(req.Messages))}
	if req.SystemInstruction != nil {
		out.SystemInstruction = &wireContent{Parts: toWireParts(req.SystemInstruction.Parts)}
	}
	for _, msg := range req.Messages {
		role := msg.Role
		if role == "assistant" {
			role = "model"
		}
		out.Contents = append(out.Contents, wireContent{Role: role, Parts: toWireParts(msg.Parts)})
	}

	if req.Temperature > 0 || req.MaxTokens > 0 || req.JSONMode {
		out.GenerationConfig = &wireGenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		}
		if req.JSONMode {
			out.GenerationConfig.ResponseMimeType = "application/json"
		}
	}
	return out
}

func toWireParts(parts []Part) []wirePart {
	out := make([]wirePart, len(parts))
	for i, p := range parts {
		out[i] = wirePart{Text: p.Text}
	}
	return out
}

func fromWire(resp *wireResponse) (*Response, error) {
	out := &Response{Usage: &Usage{}}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = &Usage{
			InputTokens:  u.PromptTokenCount,
			OutputTokens: u.CandidatesTokenCount,
			TotalTokens:  u.TotalTokenCount,
		}
	}

	if len(resp.Candidates) == 0 {
		if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
			return nil, fmt.Errorf("%w: %s", ErrBlocked, fb.BlockReason)
		}
		return out, nil
	}

	content := resp.Candidates[0].Content
	out.Content = Content{Role: content.Role, Parts: make([]Part, len(content.Parts))}
	for i, p := range content.Parts {
		out.Content.Parts[i] = Part{Text: p.Text}
	}
	return out, nil
}
