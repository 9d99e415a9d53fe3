package service

import (
	"context"
	"log"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizforge/internal/cache"
	"quizforge/internal/grading"
	"quizforge/internal/model"
	"quizforge/internal/repository"
)

// AttemptService validates a submission against a quiz's question set, grades
// each answer, persists the attempt, and builds the result summary. It holds
// no cross-request state.
type AttemptService struct {
	quizzes   repository.QuizRepo
	questions repository.QuestionRepo
	attempts  repository.AttemptRepo
	scores    cache.ScoreCache
}

// NewAttemptService creates a new attempt service.
func NewAttemptService(quizzes repository.QuizRepo, questions repository.QuestionRepo, attempts repository.AttemptRepo, scores cache.ScoreCache) *AttemptService {
	return &AttemptService{
		quizzes:   quizzes,
		questions: questions,
		attempts:  attempts,
		scores:    scores,
	}
}

// Submit grades a full submission against the published quiz identified by
// id or slug. The attempt is written once and never updated.
func (s *AttemptService) Submit(ctx context.Context, idOrSlug string, req model.SubmitAttemptRequest) (*model.AttemptResult, error) {
	quiz, err := s.quizzes.GetByIDOrSlug(ctx, idOrSlug, true)
	if err != nil {
		return nil, persistence("get quiz", err)
	}
	if quiz == nil {
		return nil, ErrNotFound
	}

	questions, err := s.questions.ListByQuiz(ctx, quiz.ID)
	if err != nil {
		return nil, persistence("list questions", err)
	}
	if len(questions) == 0 {
		return nil, invalidSubmission("quiz has no questions")
	}
	if len(req.Answers) != len(questions) {
		return nil, invalidSubmission("expected %d answers, got %d", len(questions), len(req.Answers))
	}

	// One id -> question map per request; answers resolve in O(1).
	byID := make(map[string]*model.Question, len(questions))
	maxScore := 0
	for _, q := range questions {
		byID[q.ID.Hex()] = q
		maxScore += questionPoints(q)
	}

	totalScore := 0
	gradedAnswers := make([]model.GradedAnswer, 0, len(req.Answers))
	summaries := make([]model.AnswerSummary, 0, len(req.Answers))

	for _, ans := range req.Answers {
		if ans.QuestionID == "" {
			return nil, invalidSubmission("question_id is required for each answer")
		}
		question, ok := byID[ans.QuestionID]
		if !ok {
			return nil, invalidSubmission("question %s is not part of this quiz", ans.QuestionID)
		}

		points, correct := grading.Grade(question, ans)
		totalScore += points

		graded, err := buildGradedAnswer(question.ID, ans, points)
		if err != nil {
			return nil, err
		}
		gradedAnswers = append(gradedAnswers, graded)

		summary := grading.CorrectAnswerSummary(question)
		summary.IsCorrect = correct
		summary.PointsAwarded = points
		summary.MaxPoints = questionPoints(question)
		summaries = append(summaries, summary)
	}

	attempt := &model.Attempt{
		QuizID:      quiz.ID,
		Name:        req.Name,
		Email:       req.Email,
		SubmittedAt: time.Now().UTC(),
		Score:       totalScore,
		MaxScore:    maxScore,
		Answers:     gradedAnswers,
	}
	attemptID, err := s.attempts.Insert(ctx, attempt)
	if err != nil {
		return nil, persistence("insert attempt", err)
	}

	// Score board is best effort; a cache failure never fails the submission.
	if s.scores != nil {
		if err := s.scores.Record(ctx, quiz.ID.Hex(), attemptID, totalScore); err != nil {
			log.Printf("record score for quiz %s: %v", quiz.ID.Hex(), err)
		}
	}

	return &model.AttemptResult{
		AttemptID:   attemptID,
		QuizID:      quiz.ID.Hex(),
		QuizTitle:   quiz.Title,
		Name:        req.Name,
		Email:       req.Email,
		Score:       totalScore,
		MaxScore:    maxScore,
		Percentage:  percentage(totalScore, maxScore),
		SubmittedAt: attempt.SubmittedAt,
		Answers:     summaries,
	}, nil
}

// ListAttempts returns a quiz's stored attempts, newest first.
func (s *AttemptService) ListAttempts(ctx context.Context, quizID string) ([]*model.Attempt, error) {
	oid, err := primitive.ObjectIDFromHex(quizID)
	if err != nil {
		return nil, invalidInput("invalid quiz id %q", quizID)
	}
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, persistence("get quiz", err)
	}
	if quiz == nil {
		return nil, ErrNotFound
	}

	attempts, err := s.attempts.ListByQuiz(ctx, oid)
	if err != nil {
		return nil, persistence("list attempts", err)
	}
	return attempts, nil
}

// TopScores returns the best attempt scores recorded for a published quiz.
func (s *AttemptService) TopScores(ctx context.Context, idOrSlug string, limit int) ([]cache.ScoreEntry, error) {
	quiz, err := s.quizzes.GetByIDOrSlug(ctx, idOrSlug, true)
	if err != nil {
		return nil, persistence("get quiz", err)
	}
	if quiz == nil {
		return nil, ErrNotFound
	}
	if s.scores == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	entries, err := s.scores.Top(ctx, quiz.ID.Hex(), limit)
	if err != nil {
		log.Printf("top scores for quiz %s: %v", quiz.ID.Hex(), err)
		return nil, nil
	}
	return entries, nil
}

// buildGradedAnswer converts a submitted answer into its persisted form.
// Malformed choice hex here rejects the submission; grading has already
// scored it zero, but an unparseable id cannot be stored.
func buildGradedAnswer(questionID primitive.ObjectID, ans model.SubmittedAnswer, points int) (model.GradedAnswer, error) {
	selected := make([]primitive.ObjectID, 0, len(ans.SelectedChoiceIDs))
	for _, raw := range ans.SelectedChoiceIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return model.GradedAnswer{}, invalidSubmission("invalid choice id %q", raw)
		}
		selected = append(selected, id)
	}
	return model.GradedAnswer{
		QuestionID:        questionID,
		SelectedChoiceIDs: selected,
		TextAnswer:        ans.TextAnswer,
		PointsAwarded:     points,
	}, nil
}

func questionPoints(q *model.Question) int {
	if q.Points <= 0 {
		return 1
	}
	return q.Points
}

// percentage is round(score/max*100, 2), with max == 0 mapping to 0.
func percentage(score, max int) float64 {
	if max <= 0 {
		return 0
	}
	return math.Round(float64(score)/float64(max)*100*100) / 100
}
