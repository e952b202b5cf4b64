package api

import (
	"errors"
	"net/http"

	"github.com/deons-alt/edunote-ai-server/internal/generation"
	"github.com/deons-alt/edunote-ai-server/internal/lesson"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types to
// clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Validation errors
	case errors.Is(err, lesson.ErrMissingRequiredField),
		errors.Is(err, lesson.ErrInvalidSections),
		errors.Is(err, generation.ErrEmptyPrompt):
		return http.StatusBadRequest

	// Deadline exceeded talking to the model
	case errors.Is(err, generation.ErrTimeout):
		return http.StatusGatewayTimeout

	// Default: internal server error (transient budget exhausted, permanent
	// upstream failures, unusable responses)
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. Validation messages pass through unchanged since they
// carry the field-level hint and nothing sensitive.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, lesson.ErrMissingRequiredField),
		errors.Is(err, lesson.ErrInvalidSections):
		return err.Error()

	case errors.Is(err, generation.ErrEmptyPrompt):
		return "Prompt cannot be empty"

	case errors.Is(err, generation.ErrTimeout):
		return "Lesson draft generation timed out"

	case errors.Is(err, generation.ErrTransientFailure):
		return "The generation service is busy, please try again shortly"

	case errors.Is(err, generation.ErrInvalidResponse):
		return "The language model returned an unusable response"

	default:
		return "Lesson draft generation failed"
	}
}
