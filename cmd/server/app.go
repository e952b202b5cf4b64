package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/deons-alt/edunote-ai-server/internal/config"
	"github.com/deons-alt/edunote-ai-server/internal/generation"
	"github.com/deons-alt/edunote-ai-server/internal/platform/gemini"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// The long-lived text-generation capability and its resilience wrapper.
	// Both are injected, never global.
	generator generation.Generator
	invoker   *generation.Invoker
}

// newApplication creates a new application instance with all dependencies
// initialized. The Gemini client is created once here and handed to the
// invoker; request handlers only ever see the invoker.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.generator, err = gemini.New(
		ctx,
		logger.With("component", "llm_generator"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}

	policy := generation.Policy{
		MaxAttempts: cfg.LLM.MaxRetries,
		BaseDelay:   time.Duration(cfg.LLM.RetryDelaySeconds) * time.Second,
		Timeout:     time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	}
	app.invoker, err = generation.NewInvoker(
		app.generator,
		policy,
		logger.With("component", "invoker"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize invoker: %w", err)
	}

	logger.Info("Application initialized successfully",
		"max_attempts", policy.MaxAttempts,
		"base_delay", policy.BaseDelay,
		"timeout", policy.Timeout)
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
