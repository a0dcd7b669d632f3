// Package retry runs operations with bounded exponential backoff. Only
// failures classified as transient are retried; everything else returns to
// the caller on the first attempt.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"romcurator/internal/config"
	"romcurator/internal/logging"
)

// Policy bounds how often and how long an operation is retried.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultPolicy returns the standard backoff shape: three attempts starting
// at one second, doubling, capped at thirty seconds.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// FromConfig converts the configured retry section into a Policy.
func FromConfig(cfg config.Retry) Policy {
	policy := Policy{
		MaxAttempts:  cfg.MaxAttempts,
		InitialDelay: time.Duration(cfg.InitialDelayMS) * time.Millisecond,
		MaxDelay:     time.Duration(cfg.MaxDelayMS) * time.Millisecond,
		Multiplier:   cfg.BackoffMultiplier,
	}
	return policy.normalized()
}

// Delay reports how long to wait after the given attempt (1-based) fails.
func (p Policy) Delay(attempt int) time.Duration {
	p = p.normalized()
	if attempt <= 1 {
		return p.InitialDelay
	}
	delay := time.Duration(float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt-1)))
	if delay <= 0 || delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

func (p Policy) normalized() Policy {
	defaults := DefaultPolicy()
	if p.MaxAttempts < 1 {
		p.MaxAttempts = defaults.MaxAttempts
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = defaults.InitialDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = defaults.MaxDelay
	}
	if p.MaxDelay < p.InitialDelay {
		p.MaxDelay = p.InitialDelay
	}
	if p.Multiplier < 1 {
		p.Multiplier = defaults.Multiplier
	}
	return p
}

// Do invokes fn until it succeeds, returns a non-transient error, or the
// policy's attempts are exhausted. Context cancellation is honored before
// each attempt and during backoff waits.
func Do(ctx context.Context, policy Policy, logger *slog.Logger, operation string, fn func() error) error {
	policy = policy.normalized()
	if logger == nil {
		logger = logging.NewNop()
	}

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsTransient(lastErr) {
			return lastErr
		}
		if attempt == policy.MaxAttempts {
			break
		}

		delay := policy.Delay(attempt)
		logger.Warn("transient failure, retrying",
			logging.String("operation", operation),
			logging.Int("attempt", attempt),
			logging.Int("max_attempts", policy.MaxAttempts),
			logging.Duration("delay", delay),
			logging.Error(lastErr))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operation, policy.MaxAttempts, lastErr)
}
