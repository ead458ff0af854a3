package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	GroqBaseURL   = "https://api.groq.com/openai/v1"
	OpenAIBaseURL = "https://api.openai.com/v1"

	DefaultGroqModel   = "llama-3.3-70b-versatile"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// OpenAIProvider speaks the chat-completions envelope. Groq exposes the same
// API, so both backends share this type with a different base URL.
type OpenAIProvider struct {
	name   string
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAIProvider builds a chat-completions provider. An empty apiKey
// yields an unconfigured provider that the Chain will skip.
func NewOpenAIProvider(name, apiKey, baseURL, model string, timeout time.Duration) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIProvider{
		name:   name,
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

// NewGroqProvider returns the Groq backend.
func NewGroqProvider(apiKey, model string, timeout time.Duration) *OpenAIProvider {
	if model == "" {
		model = DefaultGroqModel
	}
	return NewOpenAIProvider("groq", apiKey, GroqBaseURL, model, timeout)
}

// NewOpenAIChatProvider returns the OpenAI backend.
func NewOpenAIChatProvider(apiKey, model string, timeout time.Duration) *OpenAIProvider {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return NewOpenAIProvider("openai", apiKey, OpenAIBaseURL, model, timeout)
}

func (p *OpenAIProvider) Name() string { return p.name }

func (p *OpenAIProvider) Configured() bool { return p.apiKey != "" }

func (p *OpenAIProvider) Complete(ctx context.Context, req Request) (string, error) {
	req = req.withDefaults()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", p.wrapError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: p.name, Retryable: true, Cause: ErrEmptyResponse}
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", &ProviderError{Provider: p.name, Retryable: true, Cause: ErrEmptyResponse}
	}
	return text, nil
}

func (p *OpenAIProvider) wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return newProviderError(p.name, apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return newProviderError(p.name, reqErr.HTTPStatusCode, err)
	}
	return &ProviderError{Provider: p.name, Retryable: true, Cause: err}
}
