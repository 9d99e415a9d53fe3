package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"quizforge/internal/cache"
	"quizforge/internal/model"
	"quizforge/internal/service"
)

// PublicHandler handles the end-user endpoints: browsing published quizzes
// and submitting attempts.
type PublicHandler struct {
	quizSvc    *service.QuizService
	attemptSvc *service.AttemptService
}

// NewPublicHandler creates a new public handler.
func NewPublicHandler(quizSvc *service.QuizService, attemptSvc *service.AttemptService) *PublicHandler {
	return &PublicHandler{
		quizSvc:    quizSvc,
		attemptSvc: attemptSvc,
	}
}

// ListQuizzes handles GET /quizzes.
func (h *PublicHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizSvc.ListPublished(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

// GetQuiz handles GET /quizzes/{slugOrId}. Questions are embedded without
// their correct answers.
func (h *PublicHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	detail, err := h.quizSvc.GetPublished(r.Context(), mux.Vars(r)["slugOrId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// SubmitAttempt handles POST /quizzes/{slugOrId}/attempt.
func (h *PublicHandler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitAttemptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.attemptSvc.Submit(r.Context(), mux.Vars(r)["slugOrId"], req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// TopScores handles GET /quizzes/{slugOrId}/scores?limit=N.
func (h *PublicHandler) TopScores(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.attemptSvc.TopScores(r.Context(), mux.Vars(r)["slugOrId"], limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []cache.ScoreEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
