// Package api implements the HTTP handlers for the lesson draft service and
// the mapping from internal errors to HTTP responses.
package api
