package llm

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// DefaultTimeout bounds a single provider attempt.
const DefaultTimeout = 60 * time.Second

// Link is one position in the fallback order.
type Link struct {
	Provider Provider
	Policy   RetryPolicy
	Timeout  time.Duration
}

// Result is the outcome of a chain run. Provider is empty when nothing
// produced text.
type Result struct {
	Text     string
	Provider string
}

// OK reports whether any provider produced text.
func (r Result) OK() bool { return r.Text != "" }

// ProviderStatus is reported by the health endpoint.
type ProviderStatus struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
}

// Chain tries its links in order and returns the first non-empty answer.
// Provider failures never escape; an exhausted chain yields an empty Result.
type Chain struct {
	links  []Link
	logger *slog.Logger
}

func NewChain(logger *slog.Logger, links ...Link) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{links: links, logger: logger}
}

// Complete runs the fallback chain for req.
func (c *Chain) Complete(ctx context.Context, req Request) Result {
	for _, link := range c.links {
		if link.Provider == nil || !link.Provider.Configured() {
			continue
		}
		name := link.Provider.Name()

		var text string
		err := link.Policy.Do(ctx, func(ctx context.Context, attempt int) error {
			out, err := c.attempt(ctx, link, req)
			if err != nil {
				c.logger.Warn("provider attempt failed", "provider", name, "attempt", attempt, "error", err)
				return err
			}
			text = out
			return nil
		})
		if err == nil && text != "" {
			c.logger.Debug("provider succeeded", "provider", name, "chars", len(text))
			return Result{Text: text, Provider: name}
		}
		if ctx.Err() != nil {
			c.logger.Warn("completion abandoned", "provider", name, "error", ctx.Err())
			return Result{}
		}
	}

	c.logger.Warn("all providers failed")
	return Result{}
}

func (c *Chain) attempt(ctx context.Context, link Link, req Request) (string, error) {
	timeout := link.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := link.Provider.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", &ProviderError{Provider: link.Provider.Name(), Retryable: true, Cause: ErrEmptyResponse}
	}
	return out, nil
}

// Text is Complete with the default token and temperature settings.
func (c *Chain) Text(ctx context.Context, prompt string) string {
	return c.Complete(ctx, Request{Prompt: prompt}).Text
}

// Status lists every link in order with its credential state.
func (c *Chain) Status() []ProviderStatus {
	out := make([]ProviderStatus, 0, len(c.links))
	for _, link := range c.links {
		if link.Provider == nil {
			continue
		}
		out = append(out, ProviderStatus{Name: link.Provider.Name(), Configured: link.Provider.Configured()})
	}
	return out
}

// Budget is the longest a single Complete call can take: every attempt of
// every configured link running to its timeout, plus the delays between
// attempts.
func (c *Chain) Budget() time.Duration {
	var total time.Duration
	for _, link := range c.links {
		if link.Provider == nil || !link.Provider.Configured() {
			continue
		}
		timeout := link.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		attempts := max(link.Policy.Attempts, 1)
		total += time.Duration(attempts)*timeout + time.Duration(attempts-1)*link.Policy.Delay
	}
	return total
}

// AnyConfigured reports whether at least one provider has a credential.
func (c *Chain) AnyConfigured() bool {
	for _, s := range c.Status() {
		if s.Configured {
			return true
		}
	}
	return false
}
