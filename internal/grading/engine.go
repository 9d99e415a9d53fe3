// Package grading turns a (question, submitted answer) pair into points and a
// correctness flag. Grading is pure: no I/O, no shared state, and never an
// error — malformed or ambiguous input grades as zero credit.
package grading

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizforge/internal/model"
)

// Grade dispatches on the question type and returns the points awarded and
// whether the answer was correct. Unknown types grade (0, false).
func Grade(q *model.Question, ans model.SubmittedAnswer) (int, bool) {
	points := q.Points
	if points <= 0 {
		points = 1
	}

	switch q.Type {
	case model.QuestionTypeSingleChoice, model.QuestionTypeTrueFalse:
		// TrueFalse is a two-choice single select; same rule.
		return gradeSingleChoice(q, ans, points)
	case model.QuestionTypeMultiChoice:
		return gradeMultiChoice(q, ans, points)
	case model.QuestionTypeFreeText:
		return gradeFreeText(q, ans, points)
	}
	return 0, false
}

// gradeSingleChoice awards full points when exactly one choice is selected
// and it is the question's correct one.
func gradeSingleChoice(q *model.Question, ans model.SubmittedAnswer, points int) (int, bool) {
	selected, ok := parseChoiceIDs(ans.SelectedChoiceIDs)
	if !ok || len(selected) != 1 {
		return 0, false
	}

	for _, c := range q.Choices {
		if c.ID == selected[0] {
			if c.IsCorrect {
				return points, true
			}
			return 0, false
		}
	}
	// Selected id does not belong to this question.
	return 0, false
}

// gradeMultiChoice awards full points only when the selected set equals the
// correct set exactly. Order is irrelevant and duplicates collapse; any
// subset, superset, or partial overlap scores zero.
func gradeMultiChoice(q *model.Question, ans model.SubmittedAnswer, points int) (int, bool) {
	parsed, ok := parseChoiceIDs(ans.SelectedChoiceIDs)
	if !ok {
		return 0, false
	}

	selected := make(map[primitive.ObjectID]struct{}, len(parsed))
	for _, id := range parsed {
		selected[id] = struct{}{}
	}

	correct := make(map[primitive.ObjectID]struct{})
	for _, c := range q.Choices {
		if c.IsCorrect {
			correct[c.ID] = struct{}{}
		}
	}

	if len(selected) != len(correct) {
		return 0, false
	}
	for id := range correct {
		if _, ok := selected[id]; !ok {
			return 0, false
		}
	}
	return points, true
}

// gradeFreeText compares the submitted text against the stored answer after
// trimming surrounding whitespace, case-insensitively. No fuzzy matching.
func gradeFreeText(q *model.Question, ans model.SubmittedAnswer, points int) (int, bool) {
	submitted := strings.TrimSpace(ans.TextAnswer)
	correct := strings.TrimSpace(q.CorrectText)
	if strings.EqualFold(submitted, correct) {
		return points, true
	}
	return 0, false
}

// parseChoiceIDs converts submitted hex ids to ObjectIDs. A single malformed
// id invalidates the whole selection rather than raising.
func parseChoiceIDs(raw []string) ([]primitive.ObjectID, bool) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, r := range raw {
		id, err := primitive.ObjectIDFromHex(r)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
