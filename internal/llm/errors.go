package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyResponse is returned when a provider answers but the envelope
// carries no usable text.
var ErrEmptyResponse = errors.New("provider returned no text")

// ProviderError describes a failed provider call.
type ProviderError struct {
	Provider   string
	StatusCode int
	Retryable  bool
	Cause      error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("[%s] status %d: %v", e.Provider, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("[%s] %v", e.Provider, e.Cause)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// newProviderError classifies a failure by HTTP status. Client errors other
// than timeouts and rate limits will fail the same way again.
func newProviderError(provider string, status int, cause error) *ProviderError {
	retryable := true
	switch {
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests:
		retryable = true
	case status >= 400 && status < 500:
		retryable = false
	}
	return &ProviderError{
		Provider:   provider,
		StatusCode: status,
		Retryable:  retryable,
		Cause:      cause,
	}
}

// IsRetryable reports whether another attempt against the same provider
// could succeed. Unknown errors are treated as transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return true
}
