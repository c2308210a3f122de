package llm

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrModelUnavailable marks any provider failure that is not the
// caller's fault: network errors, auth rejection, quota, 5xx, timeout.
var ErrModelUnavailable = errors.New("model unavailable")

// RateLimitError indicates a provider returned HTTP 429. It unwraps to
// ErrModelUnavailable.
type RateLimitError struct {
	Provider   string
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return ErrModelUnavailable
}

// NewRateLimitError creates a RateLimitError. A zero retryAfterSecs
// defaults to 60s.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	if retryAfterSecs <= 0 {
		retryAfterSecs = 60
	}
	return &RateLimitError{
		Provider:   provider,
		RetryAfter: time.Duration(retryAfterSecs) * time.Second,
		Err:        err,
	}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}

// Unavailable wraps err in ErrModelUnavailable with a provider tag.
func Unavailable(provider string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrModelUnavailable, provider, err)
}
