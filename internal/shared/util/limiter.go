package util

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is a token bucket used to throttle repeated work such as re-lint runs.
type Limiter struct {
	inner *rate.Limiter
}

// NewLimiter creates a limiter that refills r tokens per second up to burst b.
func NewLimiter(r float64, b int) *Limiter {
	return &Limiter{inner: rate.NewLimiter(rate.Limit(r), b)}
}

// NewIntervalLimiter allows one event per interval with the given burst.
func NewIntervalLimiter(interval time.Duration, burst int) *Limiter {
	return &Limiter{inner: rate.NewLimiter(rate.Every(interval), burst)}
}

// Allow reports whether n events may happen now.
func (l *Limiter) Allow(n int) bool {
	return l.inner.AllowN(time.Now(), n)
}

// Wait blocks until n tokens are available or ctx is done.
func (l *Limiter) Wait(ctx context.Context, n int) error {
	return l.inner.WaitN(ctx, n)
}
