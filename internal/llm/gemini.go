package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-pro"

// GeminiProvider calls Google's Gemini API through the generative-ai SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates the SDK client when a key is present. With an
// empty key the provider is returned unconfigured.
func NewGeminiProvider(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*GeminiProvider, error) {
	if model == "" {
		model = DefaultGeminiModel
	}
	p := &GeminiProvider{model: model}
	if apiKey == "" {
		return p, nil
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	p.client = client
	return p, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Configured() bool { return p.client != nil }

// Close releases the SDK connection.
func (p *GeminiProvider) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}

func (p *GeminiProvider) Complete(ctx context.Context, req Request) (string, error) {
	if p.client == nil {
		return "", &ProviderError{Provider: p.Name(), Cause: fmt.Errorf("no API key configured")}
	}
	req = req.withDefaults()

	// A model handle per call keeps request-level settings from leaking
	// between concurrent requests.
	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(req.Temperature)
	model.SetMaxOutputTokens(int32(req.MaxTokens))

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", geminiError(p.Name(), err)
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason == genai.FinishReasonSafety {
			return "", &ProviderError{Provider: p.Name(), Cause: fmt.Errorf("candidate %d blocked by safety filters", i)}
		}
		if cand.FinishReason != genai.FinishReasonStop {
			slog.Warn("gemini candidate did not finish cleanly", "candidate", i, "finish_reason", cand.FinishReason.String())
		}
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", &ProviderError{Provider: p.Name(), Retryable: true, Cause: ErrEmptyResponse}
	}
	return text, nil
}

// geminiError classifies SDK failures by HTTP status when the API reported
// one. Anything else is a transport problem and worth retrying.
func geminiError(provider string, err error) *ProviderError {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return newProviderError(provider, apiErr.Code, err)
	}
	return &ProviderError{Provider: provider, Retryable: true, Cause: err}
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	return text.String()
}
