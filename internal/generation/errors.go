package generation

import "errors"

// Common errors returned by the generation package.
// These can be checked with errors.Is().
var (
	// ErrEmptyPrompt is returned when an empty prompt is submitted.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrInvalidResponse is returned when the LLM response is empty,
	// blocked, or otherwise unusable. Never retried.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrTransientFailure is returned for temporary upstream errors that
	// might resolve on retry, and wraps the final error once the retry
	// budget is exhausted.
	ErrTransientFailure = errors.New("transient error during text generation")

	// ErrTimeout is returned when the invocation deadline is exceeded.
	// Never retried.
	ErrTimeout = errors.New("text generation timed out")

	// ErrInvalidConfig is returned when a generator or invoker is
	// constructed with invalid configuration.
	ErrInvalidConfig = errors.New("invalid generation configuration")
)
