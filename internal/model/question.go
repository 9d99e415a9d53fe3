package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionType is the closed set of gradable question kinds.
type QuestionType string

const (
	QuestionTypeSingleChoice QuestionType = "MCQ_SINGLE"
	QuestionTypeMultiChoice  QuestionType = "MCQ_MULTI"
	QuestionTypeTrueFalse    QuestionType = "TRUE_FALSE"
	QuestionTypeFreeText     QuestionType = "TEXT"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeSingleChoice, QuestionTypeMultiChoice, QuestionTypeTrueFalse, QuestionTypeFreeText:
		return true
	}
	return false
}

// HasChoices reports whether the type is choice-based.
func (t QuestionType) HasChoices() bool {
	switch t {
	case QuestionTypeSingleChoice, QuestionTypeMultiChoice, QuestionTypeTrueFalse:
		return true
	}
	return false
}

// Choice is one selectable option of a choice-based question. Choices are
// owned by their question and never shared.
type Choice struct {
	ID        primitive.ObjectID `bson:"_id"`
	Text      string             `bson:"text"`
	IsCorrect bool               `bson:"is_correct"`
}

// Question is one gradable item belonging to a quiz.
type Question struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	QuizID      primitive.ObjectID `bson:"quiz_id"`
	Type        QuestionType       `bson:"type"`
	Text        string             `bson:"text"`
	Choices     []Choice           `bson:"choices"`
	CorrectText string             `bson:"correct_text"`
	Points      int                `bson:"points"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// ChoiceView is the JSON shape of a choice. IsCorrect is only populated for
// admin callers; public views leave it nil so the key is omitted entirely.
type ChoiceView struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect *bool  `json:"is_correct,omitempty"`
}

// QuestionView is the JSON shape of a question for one audience.
type QuestionView struct {
	ID          string       `json:"id"`
	QuizID      string       `json:"quiz_id"`
	Type        QuestionType `json:"type"`
	Text        string       `json:"text"`
	Choices     []ChoiceView `json:"choices"`
	CorrectText string       `json:"correct_text,omitempty"`
	Points      int          `json:"points"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// View renders the question for JSON output. Correct answers (choice flags
// and the free-text answer) are included only when includeAnswers is set.
func (q *Question) View(includeAnswers bool) QuestionView {
	view := QuestionView{
		ID:        q.ID.Hex(),
		QuizID:    q.QuizID.Hex(),
		Type:      q.Type,
		Text:      q.Text,
		Choices:   make([]ChoiceView, 0, len(q.Choices)),
		Points:    q.Points,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
	for _, c := range q.Choices {
		cv := ChoiceView{ID: c.ID.Hex(), Text: c.Text}
		if includeAnswers {
			correct := c.IsCorrect
			cv.IsCorrect = &correct
		}
		view.Choices = append(view.Choices, cv)
	}
	if includeAnswers && q.Type == QuestionTypeFreeText {
		view.CorrectText = q.CorrectText
	}
	return view
}

// ChoiceRequest is one choice in a question payload. The id is optional;
// missing ids are assigned server-side.
type ChoiceRequest struct {
	ID        string `json:"id"`
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// CreateQuestionRequest is the admin payload for adding a question to a quiz.
type CreateQuestionRequest struct {
	Type        QuestionType    `json:"type" validate:"required"`
	Text        string          `json:"text" validate:"required"`
	Choices     []ChoiceRequest `json:"choices" validate:"dive"`
	CorrectText string          `json:"correct_text"`
	Points      int             `json:"points"`
}

// UpdateQuestionRequest carries a partial question update.
type UpdateQuestionRequest struct {
	Type        *QuestionType   `json:"type"`
	Text        *string         `json:"text"`
	Choices     []ChoiceRequest `json:"choices" validate:"dive"`
	CorrectText *string         `json:"correct_text"`
	Points      *int            `json:"points"`
}
