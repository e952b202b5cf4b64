// Package generation provides the boundary interface to external AI/LLM
// text-generation services and the resilient invocation wrapper around them.
// It abstracts the details of the LLM API integration (Gemini), allowing the
// application to request lesson draft text without coupling to a specific
// external service, and applies a bounded retry/backoff and timeout policy to
// every call.
package generation
