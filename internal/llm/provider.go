// Package llm talks to the hosted language models that produce study
// material. Each backend hides its own request/response envelope behind the
// Provider interface, and a Chain tries them in a fixed order until one of
// them returns text.
package llm

import "context"

const (
	DefaultMaxTokens   = 16000
	DefaultTemperature = 0.2
)

// Request is a single completion call. Zero values fall back to the
// package defaults.
type Request struct {
	Prompt      string
	MaxTokens   int
	Temperature float32
}

func (r Request) withDefaults() Request {
	if r.MaxTokens <= 0 {
		r.MaxTokens = DefaultMaxTokens
	}
	if r.Temperature <= 0 {
		r.Temperature = DefaultTemperature
	}
	return r
}

// Provider is one completion backend.
type Provider interface {
	// Name identifies the backend in logs and the health report.
	Name() string

	// Configured reports whether a credential is present. Unconfigured
	// providers are skipped by the Chain without consuming an attempt.
	Configured() bool

	// Complete returns the model's text. Any transport, status or envelope
	// problem is returned as an error.
	Complete(ctx context.Context, req Request) (string, error)
}
