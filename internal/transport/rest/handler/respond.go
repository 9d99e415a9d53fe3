package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"quizforge/internal/service"
)

var validate = validator.New()

// decodeJSON parses the body into v and checks its validate tags, so services
// never see raw untyped payloads.
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// NotFound -> 404, invalid input/submission -> 400, everything else -> 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var invalidInput *service.InvalidInputError
	var invalidSubmission *service.InvalidSubmissionError

	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.As(err, &invalidInput):
		writeError(w, http.StatusBadRequest, invalidInput.Reason)
	case errors.As(err, &invalidSubmission):
		writeError(w, http.StatusBadRequest, invalidSubmission.Reason)
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
