package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"quizforge/internal/service"
	"quizforge/internal/transport/rest/handler"
)

// Container holds all dependencies for the router.
type Container struct {
	QuizService    *service.QuizService
	AttemptService *service.AttemptService
}

// NewRouter creates the API router with all endpoints.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	adminHandler := handler.NewAdminHandler(c.QuizService, c.AttemptService)
	publicHandler := handler.NewPublicHandler(c.QuizService, c.AttemptService)

	r.Use(requestIDMiddleware)
	r.Use(corsMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Public routes
	r.HandleFunc("/quizzes", publicHandler.ListQuizzes).Methods("GET", "OPTIONS")
	r.HandleFunc("/quizzes/{slugOrId}", publicHandler.GetQuiz).Methods("GET", "OPTIONS")
	r.HandleFunc("/quizzes/{slugOrId}/attempt", publicHandler.SubmitAttempt).Methods("POST", "OPTIONS")
	r.HandleFunc("/quizzes/{slugOrId}/scores", publicHandler.TopScores).Methods("GET", "OPTIONS")

	// Admin routes
	admin := r.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/quizzes", adminHandler.CreateQuiz).Methods("POST", "OPTIONS")
	admin.HandleFunc("/quizzes", adminHandler.ListQuizzes).Methods("GET", "OPTIONS")
	admin.HandleFunc("/quizzes/{quizId}", adminHandler.GetQuiz).Methods("GET", "OPTIONS")
	admin.HandleFunc("/quizzes/{quizId}", adminHandler.UpdateQuiz).Methods("PUT", "OPTIONS")
	admin.HandleFunc("/quizzes/{quizId}", adminHandler.DeleteQuiz).Methods("DELETE", "OPTIONS")
	admin.HandleFunc("/quizzes/{quizId}/questions", adminHandler.CreateQuestion).Methods("POST", "OPTIONS")
	admin.HandleFunc("/quizzes/{quizId}/questions", adminHandler.ListQuestions).Methods("GET", "OPTIONS")
	admin.HandleFunc("/quizzes/{quizId}/attempts", adminHandler.ListAttempts).Methods("GET", "OPTIONS")
	admin.HandleFunc("/questions/{questionId}", adminHandler.GetQuestion).Methods("GET", "OPTIONS")
	admin.HandleFunc("/questions/{questionId}", adminHandler.UpdateQuestion).Methods("PUT", "OPTIONS")
	admin.HandleFunc("/questions/{questionId}", adminHandler.DeleteQuestion).Methods("DELETE", "OPTIONS")

	return r
}
