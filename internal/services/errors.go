package services

import (
	"fmt"
	"time"

	"svl-backend/internal/session"
)

// Custom errors
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// RateLimitError carries the time left before the call would be accepted.
type RateLimitError struct {
	Message string
	Wait    time.Duration
}

func (e *RateLimitError) Error() string { return e.Message }

// RetryAfterSeconds is Wait rounded up to whole seconds.
func (e *RateLimitError) RetryAfterSeconds() int {
	return session.WaitSeconds(e.Wait)
}

func newRateLimitError(wait time.Duration) *RateLimitError {
	return &RateLimitError{
		Message: fmt.Sprintf("Wait %ds", session.WaitSeconds(wait)),
		Wait:    wait,
	}
}

var errVideoNotFound = &NotFoundError{Message: "Video not found. Process the video first."}
