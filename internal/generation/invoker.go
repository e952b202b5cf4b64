package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Policy configures the retry and timeout behavior of an Invoker.
type Policy struct {
	// MaxAttempts is the total number of calls made to the generator
	// before a transient failure is propagated. Must be at least 1.
	MaxAttempts int

	// BaseDelay is the wait before the first retry. Each further retry
	// doubles it: BaseDelay, 2*BaseDelay, 4*BaseDelay, ...
	BaseDelay time.Duration

	// Timeout bounds the whole invocation, including backoff waits.
	// Zero disables the deadline.
	Timeout time.Duration
}

// DefaultPolicy returns the policy used when the configuration does not
// override it: 3 attempts, 2s base delay, 60s deadline.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		Timeout:     60 * time.Second,
	}
}

// Invoker wraps a Generator with bounded retries, exponential backoff and a
// wall-clock deadline. It holds no mutable state across invocations, so a
// single Invoker is safe for arbitrary concurrent use.
type Invoker struct {
	generator Generator
	policy    Policy
	logger    *slog.Logger

	// after returns a channel that fires once the backoff delay elapses.
	// Tests replace it to observe delays without sleeping.
	after func(time.Duration) <-chan time.Time
}

// NewInvoker creates an Invoker around the given generator. Invalid policy
// values fall back to the defaults with a warning, matching the behavior of
// a misconfigured but running deployment.
func NewInvoker(generator Generator, policy Policy, logger *slog.Logger) (*Invoker, error) {
	if generator == nil {
		return nil, fmt.Errorf("%w: generator cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", ErrInvalidConfig)
	}

	defaults := DefaultPolicy()
	if policy.MaxAttempts < 1 {
		logger.Warn("invalid max attempts value, using default",
			"configured", policy.MaxAttempts,
			"default", defaults.MaxAttempts)
		policy.MaxAttempts = defaults.MaxAttempts
	}
	if policy.BaseDelay <= 0 {
		logger.Warn("invalid base delay value, using default",
			"configured", policy.BaseDelay,
			"default", defaults.BaseDelay)
		policy.BaseDelay = defaults.BaseDelay
	}
	if policy.Timeout < 0 {
		policy.Timeout = defaults.Timeout
	}

	return &Invoker{
		generator: generator,
		policy:    policy,
		logger:    logger,
		after:     time.After,
	}, nil
}

// Invoke submits the prompt to the generator, retrying transient upstream
// failures with exponential backoff until the attempt budget or the deadline
// runs out.
//
// The state machine per invocation:
//
//	ATTEMPT(n) --success-------------------------> text
//	ATTEMPT(n) --permanent failure---------------> error
//	ATTEMPT(n) --transient failure, n+1 < max----> wait BaseDelay * 2^n -> ATTEMPT(n+1)
//	ATTEMPT(n) --transient failure, n+1 >= max---> last error
//
// A deadline expiry yields ErrTimeout and ends the invocation immediately:
// it does not consume a retry, because a timed-out budget can never recover
// within the same request.
func (inv *Invoker) Invoke(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	if inv.policy.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.policy.Timeout)
		defer cancel()
	}

	var lastErr error
	for attempt := 0; attempt < inv.policy.MaxAttempts; attempt++ {
		inv.logger.InfoContext(ctx, "calling text generation service",
			"attempt", attempt+1,
			"max_attempts", inv.policy.MaxAttempts)

		text, err := inv.generator.GenerateText(ctx, prompt)
		if err == nil {
			inv.logger.InfoContext(ctx, "text generation succeeded",
				"attempt", attempt+1,
				"text_length", len(text))
			return text, nil
		}

		if timeoutErr := asTimeout(ctx, err); timeoutErr != nil {
			inv.logger.WarnContext(ctx, "text generation deadline exceeded",
				"attempt", attempt+1)
			return "", timeoutErr
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("text generation cancelled: %w", ctx.Err())
		}

		if !IsTransient(err) {
			inv.logger.WarnContext(ctx, "permanent upstream failure, not retrying",
				"attempt", attempt+1,
				"error", err)
			return "", err
		}

		lastErr = err
		inv.logger.ErrorContext(ctx, "transient upstream failure",
			"attempt", attempt+1,
			"error", err)

		if attempt+1 >= inv.policy.MaxAttempts {
			break
		}

		// 2s after the first failure, 4s after the second, and so on.
		delay := inv.policy.BaseDelay << attempt
		inv.logger.InfoContext(ctx, "retrying after backoff",
			"attempt", attempt+1,
			"delay", delay)

		select {
		case <-inv.after(delay):
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return "", fmt.Errorf("%w: deadline reached while waiting to retry", ErrTimeout)
			}
			return "", fmt.Errorf("text generation cancelled: %w", ctx.Err())
		}
	}

	inv.logger.WarnContext(ctx, "retry attempts exhausted",
		"max_attempts", inv.policy.MaxAttempts,
		"last_error", lastErr)
	return "", fmt.Errorf("%w: %d attempts exhausted: %v",
		ErrTransientFailure, inv.policy.MaxAttempts, lastErr)
}

// asTimeout converts a deadline expiry, surfaced either through the context
// or the generator's error, into ErrTimeout. Returns nil otherwise.
func asTimeout(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, context.DeadlineExceeded)
	}
	return nil
}
