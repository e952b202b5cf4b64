// Package main implements the entry point for the edunote AI server, which
// turns structured lesson-plan parameters into lesson note drafts via an
// LLM text-generation service.
package main

import (
	"context"
	"log"
	"os"

	"github.com/deons-alt/edunote-ai-server/internal/config"
	"github.com/deons-alt/edunote-ai-server/internal/platform/logger"
)

func main() {
	// Missing configuration (notably the API credential) is fatal: refuse
	// to start rather than fail on the first request.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.ModelName)

	ctx := context.Background()

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
