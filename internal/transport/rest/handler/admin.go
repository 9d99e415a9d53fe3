package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"quizforge/internal/model"
	"quizforge/internal/service"
)

// AdminHandler handles quiz and question authoring endpoints.
type AdminHandler struct {
	quizSvc    *service.QuizService
	attemptSvc *service.AttemptService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(quizSvc *service.QuizService, attemptSvc *service.AttemptService) *AdminHandler {
	return &AdminHandler{
		quizSvc:    quizSvc,
		attemptSvc: attemptSvc,
	}
}

// CreateQuiz handles POST /admin/quizzes.
func (h *AdminHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req model.CreateQuizRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	quiz, err := h.quizSvc.CreateQuiz(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, quiz)
}

// ListQuizzes handles GET /admin/quizzes.
func (h *AdminHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizSvc.ListQuizzes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

// GetQuiz handles GET /admin/quizzes/{quizId}?include_questions=true.
func (h *AdminHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := mux.Vars(r)["quizId"]
	includeQuestions := r.URL.Query().Get("include_questions") == "true"

	detail, err := h.quizSvc.GetQuiz(r.Context(), quizID, includeQuestions)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// UpdateQuiz handles PUT /admin/quizzes/{quizId}.
func (h *AdminHandler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateQuizRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	quiz, err := h.quizSvc.UpdateQuiz(r.Context(), mux.Vars(r)["quizId"], req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

// DeleteQuiz handles DELETE /admin/quizzes/{quizId}.
func (h *AdminHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := h.quizSvc.DeleteQuiz(r.Context(), mux.Vars(r)["quizId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "quiz deleted"})
}

// CreateQuestion handles POST /admin/quizzes/{quizId}/questions.
func (h *AdminHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req model.CreateQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	question, err := h.quizSvc.CreateQuestion(r.Context(), mux.Vars(r)["quizId"], req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, question.View(true))
}

// ListQuestions handles GET /admin/quizzes/{quizId}/questions.
func (h *AdminHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.quizSvc.ListQuestions(r.Context(), mux.Vars(r)["quizId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	views := make([]model.QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, q.View(true))
	}
	writeJSON(w, http.StatusOK, views)
}

// GetQuestion handles GET /admin/questions/{questionId}.
func (h *AdminHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	question, err := h.quizSvc.GetQuestion(r.Context(), mux.Vars(r)["questionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, question.View(true))
}

// UpdateQuestion handles PUT /admin/questions/{questionId}.
func (h *AdminHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	question, err := h.quizSvc.UpdateQuestion(r.Context(), mux.Vars(r)["questionId"], req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, question.View(true))
}

// DeleteQuestion handles DELETE /admin/questions/{questionId}.
func (h *AdminHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.quizSvc.DeleteQuestion(r.Context(), mux.Vars(r)["questionId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "question deleted"})
}

// ListAttempts handles GET /admin/quizzes/{quizId}/attempts.
func (h *AdminHandler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.attemptSvc.ListAttempts(r.Context(), mux.Vars(r)["quizId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	views := make([]model.AttemptView, 0, len(attempts))
	for _, a := range attempts {
		views = append(views, a.View())
	}
	writeJSON(w, http.StatusOK, views)
}
