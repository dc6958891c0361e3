package llmprovider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIAdapter talks to any OpenAI-compatible chat completions endpoint.
// Qwen (DashScope compatible mode) and DeepSeek are reached through BaseURL.
type OpenAIAdapter struct {
	client *openai.Client
	name   string
	model  string
}

// OpenAIConfig configures an OpenAIAdapter.
type OpenAIConfig struct {
	Name    string
	APIKey  string
	BaseURL string
	Model   string
	Options []option.RequestOption
}

// NewOpenAIAdapter creates a new OpenAI-compatible adapter
func NewOpenAIAdapter(cfg OpenAIConfig) *OpenAIAdapter {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(opts, cfg.Options...)

	client := openai.NewClient(opts...)

	name := cfg.Name
	if name == "" {
		name = "openai"
	}
	return &OpenAIAdapter{client: &client, name: name, model: cfg.Model}
}

// GenerateContent implements Provider interface
func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.SystemInstruction != nil {
		messages = append(messages, openai.SystemMessage(joinText(req.SystemInstruction.Parts)))
	}
	for _, msg := range req.Messages {
		text := joinText(msg.Parts)
		switch msg.Role {
		case "assistant":
			messages = append(messages, openai.AssistantMessage(text))
		case "system":
			messages = append(messages, openai.SystemMessage(text))
		default:
			messages = append(messages, openai.UserMessage(text))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(a.model),
		Messages: messages,
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	completion, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%s: chat completion: %w", a.name, err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return nil, ErrEmptyResponse
	}

	return &Response{
		Content: Message{
			Role:  "assistant",
			Parts: []Part{{Text: completion.Choices[0].Message.Content}},
		},
		ProviderName: a.name,
		ModelName:    a.model,
		Usage: &Usage{
			InputTokens:  int(completion.Usage.PromptTokens),
			OutputTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:  int(completion.Usage.TotalTokens),
		},
	}, nil
}

// Name returns provider name
func (a *OpenAIAdapter) Name() string {
	return a.name
}

// Model returns model name
func (a *OpenAIAdapter) Model() string {
	return a.model
}
