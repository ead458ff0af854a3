package llm

import (
	"context"
	"time"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryPolicy bounds how many times a single provider is tried.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
	Sleep    SleepFunc
}

// DefaultRetryPolicy is a single attempt with no delay.
var DefaultRetryPolicy = RetryPolicy{Attempts: 1}

func contextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do runs fn until it succeeds, returns a non-retryable error, the attempts
// are used up, or ctx is cancelled. The delay is only waited between attempts.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context, attempt int) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = contextSleep
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = fn(ctx, attempt)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) || attempt == attempts {
			break
		}
		if sleepErr := sleep(ctx, p.Delay); sleepErr != nil {
			return sleepErr
		}
	}
	return err
}
