package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryPolicyDo(t *testing.T) {
	transient := errors.New("temporary")
	fatal := newProviderError("x", http.StatusUnauthorized, errors.New("bad key"))

	tests := []struct {
		name      string
		attempts  int
		errs      []error
		wantCalls int
		wantSleep int
		wantErr   error
	}{
		{name: "first try succeeds", attempts: 2, errs: []error{nil}, wantCalls: 1},
		{name: "second try succeeds", attempts: 2, errs: []error{transient, nil}, wantCalls: 2, wantSleep: 1},
		{name: "exhausted", attempts: 3, errs: []error{transient, transient, transient}, wantCalls: 3, wantSleep: 2, wantErr: transient},
		{name: "non-retryable stops early", attempts: 3, errs: []error{fatal}, wantCalls: 1, wantErr: fatal},
		{name: "zero attempts means one", attempts: 0, errs: []error{transient}, wantCalls: 1, wantErr: transient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls, sleeps := 0, 0
			p := RetryPolicy{
				Attempts: tt.attempts,
				Delay:    3 * time.Second,
				Sleep: func(_ context.Context, d time.Duration) error {
					assert.Equal(t, 3*time.Second, d)
					sleeps++
					return nil
				},
			}
			err := p.Do(context.Background(), func(_ context.Context, attempt int) error {
				calls++
				assert.Equal(t, calls, attempt)
				return tt.errs[attempt-1]
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls)
			assert.Equal(t, tt.wantSleep, sleeps)
		})
	}
}

func TestRetryPolicyCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := RetryPolicy{Attempts: 3, Delay: time.Hour}

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := p.Do(ctx, func(context.Context, int) error {
		calls++
		return errors.New("down")
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.True(t, IsRetryable(errors.New("reset by peer")))
	assert.True(t, IsRetryable(newProviderError("groq", http.StatusTooManyRequests, errors.New("slow down"))))
	assert.True(t, IsRetryable(newProviderError("groq", http.StatusRequestTimeout, errors.New("timeout"))))
	assert.True(t, IsRetryable(newProviderError("groq", http.StatusBadGateway, errors.New("bad gateway"))))
	assert.False(t, IsRetryable(newProviderError("groq", http.StatusBadRequest, errors.New("bad request"))))
}
