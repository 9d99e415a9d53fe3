package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GradedAnswer is the persisted outcome of grading one submitted answer.
type GradedAnswer struct {
	QuestionID        primitive.ObjectID   `bson:"question_id"`
	SelectedChoiceIDs []primitive.ObjectID `bson:"selected_choice_ids"`
	TextAnswer        string               `bson:"text_answer"`
	PointsAwarded     int                  `bson:"points_awarded"`
}

// Attempt is one immutable record of a graded submission against a quiz.
type Attempt struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	QuizID      primitive.ObjectID `bson:"quiz_id"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	SubmittedAt time.Time          `bson:"submitted_at"`
	Score       int                `bson:"score"`
	MaxScore    int                `bson:"max_score"`
	Answers     []GradedAnswer     `bson:"answers"`
}

// GradedAnswerView is the JSON shape of a persisted answer.
type GradedAnswerView struct {
	QuestionID        string   `json:"question_id"`
	SelectedChoiceIDs []string `json:"selected_choice_ids"`
	TextAnswer        string   `json:"text_answer"`
	PointsAwarded     int      `json:"points_awarded"`
}

// AttemptView is the JSON shape of a stored attempt, used in admin listings.
type AttemptView struct {
	ID          string             `json:"id"`
	QuizID      string             `json:"quiz_id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	SubmittedAt time.Time          `json:"submitted_at"`
	Score       int                `json:"score"`
	MaxScore    int                `json:"max_score"`
	Answers     []GradedAnswerView `json:"answers"`
}

// View renders the attempt for JSON output.
func (a *Attempt) View() AttemptView {
	view := AttemptView{
		ID:          a.ID.Hex(),
		QuizID:      a.QuizID.Hex(),
		Name:        a.Name,
		Email:       a.Email,
		SubmittedAt: a.SubmittedAt,
		Score:       a.Score,
		MaxScore:    a.MaxScore,
		Answers:     make([]GradedAnswerView, 0, len(a.Answers)),
	}
	for _, ans := range a.Answers {
		av := GradedAnswerView{
			QuestionID:        ans.QuestionID.Hex(),
			SelectedChoiceIDs: make([]string, 0, len(ans.SelectedChoiceIDs)),
			TextAnswer:        ans.TextAnswer,
			PointsAwarded:     ans.PointsAwarded,
		}
		for _, cid := range ans.SelectedChoiceIDs {
			av.SelectedChoiceIDs = append(av.SelectedChoiceIDs, cid.Hex())
		}
		view.Answers = append(view.Answers, av)
	}
	return view
}
