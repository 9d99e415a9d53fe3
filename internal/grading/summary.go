package grading

import "quizforge/internal/model"

// CorrectAnswerSummary describes the right answer for a question, independent
// of any submission. Callers fill in the per-submission fields (is_correct,
// points_awarded) before returning it to the user.
func CorrectAnswerSummary(q *model.Question) model.AnswerSummary {
	summary := model.AnswerSummary{
		QuestionID: q.ID.Hex(),
		Type:       q.Type,
	}

	if q.Type.HasChoices() {
		for _, c := range q.Choices {
			if c.IsCorrect {
				summary.CorrectChoiceIDs = append(summary.CorrectChoiceIDs, c.ID.Hex())
				summary.CorrectChoiceTexts = append(summary.CorrectChoiceTexts, c.Text)
			}
		}
	} else if q.Type == model.QuestionTypeFreeText {
		summary.CorrectText = q.CorrectText
	}

	return summary
}
