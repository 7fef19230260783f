// Package retry runs fallible operations with capped exponential backoff.
package retry

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/jonathan/jobclean/internal/logger"
)

// Policy describes how often and how patiently an operation is retried.
type Policy struct {
	MaxRetries   int
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration

	// Retryable reports whether err is worth another attempt. nil retries everything.
	Retryable func(error) bool
	// Logger receives one warning per failed attempt. nil discards.
	Logger *slog.Logger
}

// DefaultPolicy returns 3 retries starting at 1s, doubling, capped at 60s.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:   3,
		InitialDelay: time.Second,
		Multiplier:   2.0,
		MaxDelay:     60 * time.Second,
	}
}

// Delay returns the wait before retry number attempt (0-based):
// min(InitialDelay * Multiplier^attempt, MaxDelay).
func (p Policy) Delay(attempt int) time.Duration {
	d := float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt))
	if p.MaxDelay > 0 && d > float64(p.MaxDelay) {
		return p.MaxDelay
	}
	return time.Duration(d)
}

func (p Policy) retryable(err error) bool {
	if p.Retryable == nil {
		return true
	}
	return p.Retryable(err)
}

// Do calls fn up to MaxRetries+1 times. Once attempts run out, or fn returns
// an error Retryable rejects, that error is returned unchanged. A canceled
// ctx stops the wait and returns ctx.Err().
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	log := p.Logger
	if log == nil {
		log = logger.Discard()
	}

	var err error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == p.MaxRetries || !p.retryable(err) {
			break
		}

		delay := p.Delay(attempt)
		log.Warn("attempt failed, retrying",
			"attempt", attempt+1,
			"max_retries", p.MaxRetries,
			"delay", delay,
			"error", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
