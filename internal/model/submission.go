package model

import "time"

// SubmittedAnswer is one answer in an attempt submission. Choice-based
// questions use SelectedChoiceIDs, free-text questions use TextAnswer.
type SubmittedAnswer struct {
	QuestionID        string   `json:"question_id"`
	SelectedChoiceIDs []string `json:"selected_choice_ids"`
	TextAnswer        string   `json:"text_answer"`
}

// SubmitAttemptRequest is the payload for submitting a quiz attempt.
// Respondent name and email are optional.
type SubmitAttemptRequest struct {
	Name    string            `json:"name" validate:"omitempty,max=200"`
	Email   string            `json:"email" validate:"omitempty,email"`
	Answers []SubmittedAnswer `json:"answers"`
}

// AnswerSummary tells the caller what the right answer was for one question
// and how the specific submission fared against it.
type AnswerSummary struct {
	QuestionID         string       `json:"question_id"`
	Type               QuestionType `json:"type"`
	CorrectChoiceIDs   []string     `json:"correct_choice_ids,omitempty"`
	CorrectChoiceTexts []string     `json:"correct_choice_texts,omitempty"`
	CorrectText        string       `json:"correct_text,omitempty"`
	IsCorrect          bool         `json:"is_correct"`
	PointsAwarded      int          `json:"points_awarded"`
	MaxPoints          int          `json:"max_points"`
}

// AttemptResult is the user-facing summary returned after grading.
type AttemptResult struct {
	AttemptID   string          `json:"attempt_id"`
	QuizID      string          `json:"quiz_id"`
	QuizTitle   string          `json:"quiz_title"`
	Name        string          `json:"name,omitempty"`
	Email       string          `json:"email,omitempty"`
	Score       int             `json:"score"`
	MaxScore    int             `json:"max_score"`
	Percentage  float64         `json:"percentage"`
	SubmittedAt time.Time       `json:"submitted_at"`
	Answers     []AnswerSummary `json:"answers"`
}
