package generation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// generatorFunc adapts a function to the Generator interface for tests.
type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestInvoker builds an Invoker whose backoff waits resolve immediately
// while recording the requested delays.
func newTestInvoker(t *testing.T, gen Generator, policy Policy, delays *[]time.Duration) *Invoker {
	t.Helper()

	inv, err := NewInvoker(gen, policy, discardLogger())
	require.NoError(t, err)

	inv.after = func(d time.Duration) <-chan time.Time {
		if delays != nil {
			*delays = append(*delays, d)
		}
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}
	return inv
}

// TestNewInvokerValidation verifies constructor argument checks.
func TestNewInvokerValidation(t *testing.T) {
	t.Parallel()

	_, err := NewInvoker(nil, DefaultPolicy(), discardLogger())
	assert.ErrorIs(t, err, ErrInvalidConfig, "nil generator must be rejected")

	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "ok", nil
	})
	_, err = NewInvoker(gen, DefaultPolicy(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig, "nil logger must be rejected")
}

// TestInvokeSuccess verifies the happy path makes a single attempt.
func TestInvokeSuccess(t *testing.T) {
	t.Parallel()

	calls := 0
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		assert.Equal(t, "a prompt", prompt)
		return "a draft", nil
	})

	inv := newTestInvoker(t, gen, Policy{MaxAttempts: 3, BaseDelay: 2 * time.Second}, nil)

	text, err := inv.Invoke(context.Background(), "a prompt")
	require.NoError(t, err)
	assert.Equal(t, "a draft", text)
	assert.Equal(t, 1, calls, "a successful call must not be repeated")
}

// TestInvokeEmptyPrompt verifies that an empty prompt never reaches the
// generator.
func TestInvokeEmptyPrompt(t *testing.T) {
	t.Parallel()

	calls := 0
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", nil
	})

	inv := newTestInvoker(t, gen, DefaultPolicy(), nil)

	_, err := inv.Invoke(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
	assert.Zero(t, calls, "no external call may be attempted for an empty prompt")
}

// TestInvokeRetryBound verifies that an always-transient failure is retried
// exactly up to the attempt budget and then propagated as the final error.
func TestInvokeRetryBound(t *testing.T) {
	t.Parallel()

	calls := 0
	upstream := errors.New("upstream returned 503: model overloaded")
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", upstream
	})

	var delays []time.Duration
	inv := newTestInvoker(t, gen, Policy{MaxAttempts: 3, BaseDelay: 2 * time.Second}, &delays)

	_, err := inv.Invoke(context.Background(), "a prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransientFailure)
	assert.Contains(t, err.Error(), upstream.Error(), "the most recent failure must be propagated")
	assert.Equal(t, 3, calls, "exactly MaxAttempts attempts must be made")
}

// TestInvokeBackoffTiming verifies the exponential backoff schedule:
// the wait before retry k is BaseDelay * 2^(k-1), monotonically increasing.
func TestInvokeBackoffTiming(t *testing.T) {
	t.Parallel()

	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("service unavailable")
	})

	var delays []time.Duration
	inv := newTestInvoker(t, gen, Policy{MaxAttempts: 4, BaseDelay: 2 * time.Second}, &delays)

	_, err := inv.Invoke(context.Background(), "a prompt")
	require.ErrorIs(t, err, ErrTransientFailure)

	require.Equal(t, []time.Duration{
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
	}, delays)
}

// TestInvokePermanentFailureNotRetried verifies that a non-transient upstream
// failure is propagated after exactly one attempt.
func TestInvokePermanentFailureNotRetried(t *testing.T) {
	t.Parallel()

	calls := 0
	upstream := errors.New("upstream returned 400: malformed request")
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", upstream
	})

	inv := newTestInvoker(t, gen, Policy{MaxAttempts: 3, BaseDelay: 2 * time.Second}, nil)

	_, err := inv.Invoke(context.Background(), "a prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, upstream)
	assert.NotErrorIs(t, err, ErrTransientFailure)
	assert.Equal(t, 1, calls, "permanent failures must not be retried")
}

// TestInvokeInvalidResponseNotRetried verifies that an unusable model
// response counts as permanent even though its message may mention a
// transient-looking substring.
func TestInvokeInvalidResponseNotRetried(t *testing.T) {
	t.Parallel()

	calls := 0
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", fmt.Errorf("%w: upstream status 503 with empty completion", ErrInvalidResponse)
	})

	inv := newTestInvoker(t, gen, Policy{MaxAttempts: 3, BaseDelay: 2 * time.Second}, nil)

	_, err := inv.Invoke(context.Background(), "a prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Equal(t, 1, calls)
}

// TestInvokeTimeout verifies that a generator that never resolves fails with
// ErrTimeout at or after the configured deadline, without retrying.
func TestInvokeTimeout(t *testing.T) {
	t.Parallel()

	calls := 0
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		<-ctx.Done()
		return "", ctx.Err()
	})

	policy := Policy{MaxAttempts: 3, BaseDelay: 2 * time.Second, Timeout: 30 * time.Millisecond}
	inv, err := NewInvoker(gen, policy, discardLogger())
	require.NoError(t, err)

	start := time.Now()
	_, err = inv.Invoke(context.Background(), "a prompt")
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond,
		"the invocation must not fail before the deadline")
	assert.Equal(t, 1, calls, "a timeout must not be retried")
}

// TestInvokeTimeoutDuringBackoff verifies that a deadline reached while
// waiting to retry short-circuits the retry loop with ErrTimeout.
func TestInvokeTimeoutDuringBackoff(t *testing.T) {
	t.Parallel()

	calls := 0
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", errors.New("503 service unavailable")
	})

	// Real backoff waits (1h base) against a 20ms deadline: the select on
	// ctx.Done must win.
	policy := Policy{MaxAttempts: 3, BaseDelay: time.Hour, Timeout: 20 * time.Millisecond}
	inv, err := NewInvoker(gen, policy, discardLogger())
	require.NoError(t, err)

	_, err = inv.Invoke(context.Background(), "a prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, 1, calls, "the deadline must end the invocation, not burn retries")
}

// TestInvokeCallerCancellation verifies that caller-initiated cancellation is
// surfaced as a cancellation, not as a timeout.
func TestInvokeCallerCancellation(t *testing.T) {
	t.Parallel()

	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})

	inv, err := NewInvoker(gen, Policy{MaxAttempts: 3, BaseDelay: 2 * time.Second}, discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err = inv.Invoke(ctx, "a prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}

// TestInvokePolicyDefaults verifies that out-of-range policy values fall back
// to the documented defaults.
func TestInvokePolicyDefaults(t *testing.T) {
	t.Parallel()

	calls := 0
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", errors.New("model is overloaded")
	})

	var delays []time.Duration
	inv := newTestInvoker(t, gen, Policy{MaxAttempts: 0, BaseDelay: 0}, &delays)

	_, err := inv.Invoke(context.Background(), "a prompt")
	require.ErrorIs(t, err, ErrTransientFailure)
	assert.Equal(t, 3, calls, "MaxAttempts should default to 3")
	require.Len(t, delays, 2)
	assert.Equal(t, 2*time.Second, delays[0], "BaseDelay should default to 2s")
	assert.Equal(t, 4*time.Second, delays[1])
}
