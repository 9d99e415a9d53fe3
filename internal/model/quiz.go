package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quiz is the aggregation root referenced by questions and attempts.
type Quiz struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Slug        string             `json:"slug" bson:"slug"`
	Description string             `json:"description" bson:"description"`
	Published   bool               `json:"published" bson:"published"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// QuizSummary is a quiz with its question count, used in admin listings.
type QuizSummary struct {
	Quiz
	QuestionCount int64 `json:"question_count"`
}

// AdminQuizDetail is the admin view of a quiz: question count always, full
// questions (with answers) on request.
type AdminQuizDetail struct {
	QuizSummary
	Questions []QuestionView `json:"questions,omitempty"`
}

// QuizDetail is a quiz together with its questions, rendered for one audience.
type QuizDetail struct {
	Quiz
	Questions []QuestionView `json:"questions"`
}

// CreateQuizRequest is the admin payload for creating a quiz.
type CreateQuizRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
}

// UpdateQuizRequest carries a partial quiz update. Nil fields are left untouched.
type UpdateQuizRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Published   *bool   `json:"published"`
}
