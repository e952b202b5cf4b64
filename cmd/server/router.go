package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/deons-alt/edunote-ai-server/internal/api"
	apiMiddleware "github.com/deons-alt/edunote-ai-server/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: splitOrigins(app.config.Server.AllowedOrigins),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	lessonHandler := api.NewLessonHandler(app.invoker, app.logger)

	r.Post("/generateLessonDraft", lessonHandler.GenerateLessonDraft)

	// Liveness probes
	r.Get("/", app.liveness)
	r.Get("/health", app.liveness)

	return r
}

func (app *application) liveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("Failed to write liveness response", "error", err)
	}
}

// splitOrigins turns the comma-separated allowed-origins setting into the
// slice the CORS middleware expects.
func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
