package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/deons-alt/edunote-ai-server/internal/api/shared"
	"github.com/deons-alt/edunote-ai-server/internal/generation"
	"github.com/deons-alt/edunote-ai-server/internal/lesson"
)

// GenerateLessonDraftRequest represents the request body for generating a
// lesson draft.
type GenerateLessonDraftRequest struct {
	Curriculum string   `json:"curriculum"`
	ClassLevel string   `json:"classLevel"`
	Subject    string   `json:"subject"`
	Topic      string   `json:"topic"`
	Week       string   `json:"week,omitempty"`
	SubTopic   string   `json:"subTopic,omitempty"`
	Sections   []string `json:"sections,omitempty"`
}

// Validate delegates to the lesson request validation so the API layer and
// the prompt builder agree on what a well-formed request is.
func (req GenerateLessonDraftRequest) Validate() error {
	return req.toLessonRequest().Validate()
}

func (req GenerateLessonDraftRequest) toLessonRequest() lesson.LessonRequest {
	return lesson.LessonRequest{
		Curriculum: req.Curriculum,
		ClassLevel: req.ClassLevel,
		Subject:    req.Subject,
		Topic:      req.Topic,
		Week:       req.Week,
		SubTopic:   req.SubTopic,
		Sections:   req.Sections,
	}
}

// GenerateLessonDraftResponse represents the successful response payload.
type GenerateLessonDraftResponse struct {
	Draft string `json:"draft"`
}

// DraftInvoker is the handler's view of the resilient generation invoker.
type DraftInvoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// LessonHandler handles lesson draft HTTP requests.
type LessonHandler struct {
	invoker DraftInvoker
	logger  *slog.Logger
}

// NewLessonHandler creates a new LessonHandler.
func NewLessonHandler(invoker DraftInvoker, logger *slog.Logger) *LessonHandler {
	return &LessonHandler{
		invoker: invoker,
		logger:  logger,
	}
}

// GenerateLessonDraft handles POST /generateLessonDraft requests.
func (h *LessonHandler) GenerateLessonDraft(w http.ResponseWriter, r *http.Request) {
	var req GenerateLessonDraftRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	// Validation already passed, so prompt construction cannot fail on input.
	prompt, err := lesson.BuildPrompt(req.toLessonRequest())
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	draft, err := h.invoker.Invoke(r.Context(), prompt)
	if err != nil {
		status := MapErrorToStatusCode(err)
		details := ""
		if status == http.StatusInternalServerError && isPermanentUpstream(err) {
			// Permanent upstream failures surface their raw details so the
			// caller can tell a quota problem from a bad request.
			details = err.Error()
		}
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), details, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateLessonDraftResponse{Draft: draft})
}

// isPermanentUpstream reports whether err is an upstream failure that was not
// retried (anything except an exhausted transient budget or a timeout).
func isPermanentUpstream(err error) bool {
	return !errors.Is(err, generation.ErrTransientFailure) &&
		!errors.Is(err, generation.ErrTimeout)
}
