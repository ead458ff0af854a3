package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestOpenAIProviderComplete(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		MaxTokens   int     `json:"max_tokens"`
		Temperature float32 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  hello there \n"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider("groq", "test-key", server.URL+"/", "llama-test", 5*time.Second)
	require.True(t, p.Configured())

	text, err := p.Complete(context.Background(), Request{Prompt: "explain inertia"})
	require.NoError(t, err)
	assert.Equal(t, "hello there", text)

	assert.Equal(t, "llama-test", got.Model)
	assert.Equal(t, DefaultMaxTokens, got.MaxTokens)
	assert.InDelta(t, DefaultTemperature, got.Temperature, 0.0001)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "explain inertia", got.Messages[0].Content)
}

func TestOpenAIProviderErrors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantRetryable bool
		wantEmpty     bool
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key","type":"invalid_request_error"}}`},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"error":{"message":"slow down","type":"rate_limit"}}`, wantRetryable: true},
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":{"message":"boom","type":"server_error"}}`, wantRetryable: true},
		{name: "no choices", status: http.StatusOK, body: `{"id":"1","choices":[]}`, wantRetryable: true, wantEmpty: true},
		{name: "blank content", status: http.StatusOK, body: `{"id":"1","choices":[{"message":{"role":"assistant","content":"   "}}]}`, wantRetryable: true, wantEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			p := NewOpenAIProvider("openai", "k", server.URL, "m", 5*time.Second)
			_, err := p.Complete(context.Background(), Request{Prompt: "p"})
			require.Error(t, err)

			var pe *ProviderError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "openai", pe.Provider)
			assert.Equal(t, tt.wantRetryable, pe.Retryable)
			if tt.wantEmpty {
				assert.ErrorIs(t, err, ErrEmptyResponse)
			} else {
				assert.Equal(t, tt.status, pe.StatusCode)
			}
		})
	}
}

func TestProviderConstructorsDefaults(t *testing.T) {
	groq := NewGroqProvider("", "", time.Second)
	assert.Equal(t, "groq", groq.Name())
	assert.Equal(t, DefaultGroqModel, groq.model)
	assert.False(t, groq.Configured())

	oai := NewOpenAIChatProvider("key", "", time.Second)
	assert.Equal(t, "openai", oai.Name())
	assert.Equal(t, DefaultOpenAIModel, oai.model)
	assert.True(t, oai.Configured())
}

func TestGeminiProviderWithoutKey(t *testing.T) {
	p, err := NewGeminiProvider(context.Background(), "", "")
	require.NoError(t, err)
	assert.False(t, p.Configured())
	assert.Equal(t, DefaultGeminiModel, p.model)
	assert.NoError(t, p.Close())

	_, err = p.Complete(context.Background(), Request{Prompt: "p"})
	assert.Error(t, err)
}

func TestGeminiErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		retryable bool
	}{
		{"bad key", fmt.Errorf("generate: %w", &googleapi.Error{Code: http.StatusForbidden}), http.StatusForbidden, false},
		{"bad request", &googleapi.Error{Code: http.StatusBadRequest}, http.StatusBadRequest, false},
		{"quota", &googleapi.Error{Code: http.StatusTooManyRequests}, http.StatusTooManyRequests, true},
		{"unavailable", &googleapi.Error{Code: http.StatusServiceUnavailable}, http.StatusServiceUnavailable, true},
		{"network", errors.New("connection reset"), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := geminiError("gemini", tt.err)
			assert.Equal(t, "gemini", pe.Provider)
			assert.Equal(t, tt.status, pe.StatusCode)
			assert.Equal(t, tt.retryable, IsRetryable(pe))
			assert.ErrorIs(t, pe, tt.err)
		})
	}
}

func TestExtractText(t *testing.T) {
	assert.Empty(t, extractText(nil))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("{\"a\":"), genai.Text("1}")}}},
			{Content: nil},
		},
	}
	assert.Equal(t, "{\"a\":1}", extractText(resp))
}
