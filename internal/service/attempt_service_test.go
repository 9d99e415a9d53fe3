package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizforge/internal/model"
	"quizforge/internal/service"
)

type fixture struct {
	quizzes   *fakeQuizRepo
	questions *fakeQuestionRepo
	attempts  *fakeAttemptRepo
	scores    *fakeScoreCache
	svc       *service.AttemptService
}

func newFixture() *fixture {
	f := &fixture{
		quizzes:   &fakeQuizRepo{},
		questions: &fakeQuestionRepo{},
		attempts:  &fakeAttemptRepo{},
		scores:    &fakeScoreCache{},
	}
	f.svc = service.NewAttemptService(f.quizzes, f.questions, f.attempts, f.scores)
	return f
}

func (f *fixture) addQuiz(title string, published bool) *model.Quiz {
	quiz := &model.Quiz{Title: title, Slug: service.Slugify(title), Published: published}
	f.quizzes.Insert(context.Background(), quiz)
	return quiz
}

func (f *fixture) addSingleChoice(quiz *model.Quiz, points int) *model.Question {
	q := &model.Question{
		QuizID: quiz.ID,
		Type:   model.QuestionTypeSingleChoice,
		Text:   "Pick the right one",
		Points: points,
		Choices: []model.Choice{
			{ID: primitive.NewObjectID(), Text: "A", IsCorrect: false},
			{ID: primitive.NewObjectID(), Text: "B", IsCorrect: true},
		},
	}
	f.questions.Insert(context.Background(), q)
	return q
}

func (f *fixture) addFreeText(quiz *model.Quiz, correct string, points int) *model.Question {
	q := &model.Question{
		QuizID:      quiz.ID,
		Type:        model.QuestionTypeFreeText,
		Text:        "Answer in text",
		CorrectText: correct,
		Points:      points,
	}
	f.questions.Insert(context.Background(), q)
	return q
}

func TestSubmitGradesFullQuiz(t *testing.T) {
	f := newFixture()
	quiz := f.addQuiz("Mixed Quiz", true)
	q1 := f.addSingleChoice(quiz, 1)
	q2 := f.addFreeText(quiz, "42", 1)

	result, err := f.svc.Submit(context.Background(), quiz.Slug, model.SubmitAttemptRequest{
		Name:  "Alice",
		Email: "alice@example.com",
		Answers: []model.SubmittedAnswer{
			{QuestionID: q1.ID.Hex(), SelectedChoiceIDs: []string{q1.Choices[1].ID.Hex()}},
			{QuestionID: q2.ID.Hex(), TextAnswer: "42"},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if result.Score != 2 || result.MaxScore != 2 {
		t.Fatalf("score = %d/%d, want 2/2", result.Score, result.MaxScore)
	}
	if result.Percentage != 100.0 {
		t.Fatalf("percentage = %v, want 100", result.Percentage)
	}
	if result.QuizTitle != "Mixed Quiz" || result.Name != "Alice" {
		t.Fatalf("unexpected result header: %+v", result)
	}
	if len(result.Answers) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(result.Answers))
	}
	if !result.Answers[0].IsCorrect || !result.Answers[1].IsCorrect {
		t.Fatalf("expected both answers correct: %+v", result.Answers)
	}
	if result.Answers[1].CorrectText != "42" {
		t.Fatalf("free-text summary should reveal the right answer, got %q", result.Answers[1].CorrectText)
	}
	if result.SubmittedAt.IsZero() {
		t.Fatal("submitted_at not set")
	}

	if len(f.attempts.attempts) != 1 {
		t.Fatalf("expected 1 persisted attempt, got %d", len(f.attempts.attempts))
	}
	stored := f.attempts.attempts[0]
	if stored.Score != 2 || stored.MaxScore != 2 || len(stored.Answers) != 2 {
		t.Fatalf("stored attempt mismatch: %+v", stored)
	}
	if got := f.scores.recorded[result.AttemptID]; got != 2 {
		t.Fatalf("score board entry = %d, want 2", got)
	}
}

func TestSubmitAllWrongScoresZero(t *testing.T) {
	f := newFixture()
	quiz := f.addQuiz("Mixed Quiz", true)
	q1 := f.addSingleChoice(quiz, 1)
	q2 := f.addFreeText(quiz, "42", 1)

	result, err := f.svc.Submit(context.Background(), quiz.ID.Hex(), model.SubmitAttemptRequest{
		Answers: []model.SubmittedAnswer{
			{QuestionID: q1.ID.Hex(), SelectedChoiceIDs: []string{q1.Choices[0].ID.Hex()}},
			{QuestionID: q2.ID.Hex(), TextAnswer: "41"},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 0 || result.MaxScore != 2 || result.Percentage != 0.0 {
		t.Fatalf("got score=%d max=%d pct=%v, want 0/2/0", result.Score, result.MaxScore, result.Percentage)
	}
	if result.Answers[0].IsCorrect || result.Answers[1].IsCorrect {
		t.Fatalf("expected both answers wrong: %+v", result.Answers)
	}
}

func TestSubmitMultiChoiceAllOrNothing(t *testing.T) {
	f := newFixture()
	quiz := f.addQuiz("Multi Quiz", true)
	a := model.Choice{ID: primitive.NewObjectID(), Text: "A", IsCorrect: true}
	b := model.Choice{ID: primitive.NewObjectID(), Text: "B", IsCorrect: false}
	c := model.Choice{ID: primitive.NewObjectID(), Text: "C", IsCorrect: true}
	q := &model.Question{
		QuizID:  quiz.ID,
		Type:    model.QuestionTypeMultiChoice,
		Text:    "Pick A and C",
		Points:  2,
		Choices: []model.Choice{a, b, c},
	}
	f.questions.Insert(context.Background(), q)

	cases := []struct {
		name     string
		selected []string
		want     int
	}{
		{"proper subset", []string{a.ID.Hex()}, 0},
		{"exact set", []string{a.ID.Hex(), c.ID.Hex()}, 2},
		{"superset", []string{a.ID.Hex(), b.ID.Hex(), c.ID.Hex()}, 0},
	}
	for _, tc := range cases {
		result, err := f.svc.Submit(context.Background(), quiz.Slug, model.SubmitAttemptRequest{
			Answers: []model.SubmittedAnswer{{QuestionID: q.ID.Hex(), SelectedChoiceIDs: tc.selected}},
		})
		if err != nil {
			t.Fatalf("%s: submit: %v", tc.name, err)
		}
		if result.Score != tc.want {
			t.Errorf("%s: score = %d, want %d", tc.name, result.Score, tc.want)
		}
	}
}

func TestSubmitCountMismatch(t *testing.T) {
	f := newFixture()
	quiz := f.addQuiz("Two Questions", true)
	q1 := f.addSingleChoice(quiz, 1)
	f.addFreeText(quiz, "42", 1)

	_, err := f.svc.Submit(context.Background(), quiz.Slug, model.SubmitAttemptRequest{
		Answers: []model.SubmittedAnswer{
			{QuestionID: q1.ID.Hex(), SelectedChoiceIDs: []string{q1.Choices[1].ID.Hex()}},
		},
	})
	var invalid *service.InvalidSubmissionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidSubmissionError, got %v", err)
	}
	if !strings.Contains(invalid.Reason, "expected 2 answers, got 1") {
		t.Fatalf("reason should name expected vs got, was %q", invalid.Reason)
	}
}

func TestSubmitUnknownQuestion(t *testing.T) {
	f := newFixture()
	quiz := f.addQuiz("One Question", true)
	f.addFreeText(quiz, "42", 1)

	_, err := f.svc.Submit(context.Background(), quiz.Slug, model.SubmitAttemptRequest{
		Answers: []model.SubmittedAnswer{
			{QuestionID: primitive.NewObjectID().Hex(), TextAnswer: "42"},
		},
	})
	var invalid *service.InvalidSubmissionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidSubmissionError, got %v", err)
	}
}

func TestSubmitMissingQuestionID(t *testing.T) {
	f := newFixture()
	quiz := f.addQuiz("One Question", true)
	f.addFreeText(quiz, "42", 1)

	_, err := f.svc.Submit(context.Background(), quiz.Slug, model.SubmitAttemptRequest{
		Answers: []model.SubmittedAnswer{{TextAnswer: "42"}},
	})
	var invalid *service.InvalidSubmissionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidSubmissionError, got %v", err)
	}
}

func TestSubmitMalformedChoiceID(t *testing.T) {
	f := newFixture()
	quiz := f.addQuiz("One Question", true)
	q := f.addSingleChoice(quiz, 1)

	_, err := f.svc.Submit(context.Background(), quiz.Slug, model.SubmitAttemptRequest{
		Answers: []model.SubmittedAnswer{
			{QuestionID: q.ID.Hex(), SelectedChoiceIDs: []string{"definitely-not-hex"}},
		},
	})
	var invalid *service.InvalidSubmissionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidSubmissionError, got %v", err)
	}
}

func TestSubmitQuizNotFoundOrUnpublished(t *testing.T) {
	f := newFixture()
	draft := f.addQuiz("Draft Quiz", false)
	f.addFreeText(draft, "42", 1)

	for _, target := range []string{"no-such-quiz", draft.Slug, draft.ID.Hex()} {
		_, err := f.svc.Submit(context.Background(), target, model.SubmitAttemptRequest{
			Answers: []model.SubmittedAnswer{{QuestionID: primitive.NewObjectID().Hex()}},
		})
		if !errors.Is(err, service.ErrNotFound) {
			t.Errorf("%q: expected ErrNotFound, got %v", target, err)
		}
	}
}

func TestSubmitQuizWithoutQuestions(t *testing.T) {
	f := newFixture()
	quiz := f.addQuiz("Empty Quiz", true)

	_, err := f.svc.Submit(context.Background(), quiz.Slug, model.SubmitAttemptRequest{})
	var invalid *service.InvalidSubmissionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidSubmissionError, got %v", err)
	}
	if !strings.Contains(invalid.Reason, "no questions") {
		t.Fatalf("reason = %q, want mention of missing questions", invalid.Reason)
	}
}

func TestSubmitMaxScoreIndependentOfCorrectness(t *testing.T) {
	f := newFixture()
	quiz := f.addQuiz("Weighted Quiz", true)
	q1 := f.addSingleChoice(quiz, 3)
	q2 := f.addFreeText(quiz, "42", 2)

	result, err := f.svc.Submit(context.Background(), quiz.Slug, model.SubmitAttemptRequest{
		Answers: []model.SubmittedAnswer{
			{QuestionID: q1.ID.Hex(), SelectedChoiceIDs: []string{q1.Choices[0].ID.Hex()}},
			{QuestionID: q2.ID.Hex(), TextAnswer: "wrong"},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.MaxScore != 5 {
		t.Fatalf("max score = %d, want 5", result.MaxScore)
	}
	if result.Answers[0].MaxPoints != 3 || result.Answers[1].MaxPoints != 2 {
		t.Fatalf("per-question max points wrong: %+v", result.Answers)
	}
}

func TestSubmitPersistenceFailure(t *testing.T) {
	f := newFixture()
	quiz := f.addQuiz("One Question", true)
	q := f.addFreeText(quiz, "42", 1)
	f.attempts.failInsert = errors.New("mongo down")

	_, err := f.svc.Submit(context.Background(), quiz.Slug, model.SubmitAttemptRequest{
		Answers: []model.SubmittedAnswer{{QuestionID: q.ID.Hex(), TextAnswer: "42"}},
	})
	var pe *service.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
}

func TestListAttempts(t *testing.T) {
	f := newFixture()
	quiz := f.addQuiz("One Question", true)
	q := f.addFreeText(quiz, "42", 1)

	for _, answer := range []string{"42", "41"} {
		if _, err := f.svc.Submit(context.Background(), quiz.Slug, model.SubmitAttemptRequest{
			Answers: []model.SubmittedAnswer{{QuestionID: q.ID.Hex(), TextAnswer: answer}},
		}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	attempts, err := f.svc.ListAttempts(context.Background(), quiz.ID.Hex())
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}

	if _, err := f.svc.ListAttempts(context.Background(), "not-hex"); err == nil {
		t.Fatal("expected error for malformed quiz id")
	}
}
