package generation

import "context"

// Generator defines the interface for generating text from a prompt.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// GenerateText submits the prompt to the external model and returns the
	// generated text. The context bounds the call; implementations must
	// honor cancellation. Failures are returned as errors that embed the
	// upstream HTTP-style status code in their message where one exists,
	// so that IsTransient can classify them.
	GenerateText(ctx context.Context, prompt string) (string, error)
}
