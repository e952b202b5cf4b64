package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deons-alt/edunote-ai-server/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApplication wires a full application against a dummy API key.
// No request in these tests reaches the upstream API: they stop at routing
// or validation.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           8080,
			LogLevel:       "error",
			AllowedOrigins: "*",
		},
		LLM: config.LLMConfig{
			GeminiAPIKey:      "test-api-key",
			ModelName:         "gemini-2.0-flash",
			MaxRetries:        3,
			RetryDelaySeconds: 2,
			TimeoutSeconds:    60,
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := newApplication(context.Background(), cfg, logger)
	require.NoError(t, err)
	return app
}

// TestRouterLiveness verifies the liveness probes.
func TestRouterLiveness(t *testing.T) {
	router := newTestApplication(t).setupRouter()

	for _, path := range []string{"/", "/health"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, rec.Code, "GET %s should be OK", path)
		assert.Equal(t, "OK", rec.Body.String())
	}
}

// TestRouterGenerateLessonDraftValidation verifies that the draft route is
// registered and rejects an invalid body before any upstream call.
func TestRouterGenerateLessonDraftValidation(t *testing.T) {
	router := newTestApplication(t).setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/generateLessonDraft",
		strings.NewReader(`{"curriculum":"NERDC"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing required field")
}

// TestRouterMethodNotAllowed verifies that only POST is accepted on the
// draft route.
func TestRouterMethodNotAllowed(t *testing.T) {
	router := newTestApplication(t).setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/generateLessonDraft", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// TestSplitOrigins verifies the comma-separated origin parsing.
func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins("*"))
	assert.Equal(t,
		[]string{"https://a.example", "https://b.example"},
		splitOrigins(" https://a.example , https://b.example ,"))
}
