package service

import (
	"context"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizforge/internal/cache"
	"quizforge/internal/model"
	"quizforge/internal/repository"
)

// QuizService covers quiz and question authoring plus the public read paths.
type QuizService struct {
	quizzes   repository.QuizRepo
	questions repository.QuestionRepo
	quizCache cache.QuizCache
}

// NewQuizService creates a new quiz service.
func NewQuizService(quizzes repository.QuizRepo, questions repository.QuestionRepo, quizCache cache.QuizCache) *QuizService {
	return &QuizService{
		quizzes:   quizzes,
		questions: questions,
		quizCache: quizCache,
	}
}

// CreateQuiz creates a quiz with a unique slug derived from its title.
func (s *QuizService) CreateQuiz(ctx context.Context, req model.CreateQuizRequest) (*model.Quiz, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, invalidInput("title is required")
	}

	slug, err := uniqueSlug(ctx, s.quizzes, title, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		Title:       title,
		Slug:        slug,
		Description: req.Description,
		Published:   req.Published,
	}
	if _, err := s.quizzes.Insert(ctx, quiz); err != nil {
		return nil, persistence("insert quiz", err)
	}
	return quiz, nil
}

// ListQuizzes returns all quizzes, newest first, with their question counts.
func (s *QuizService) ListQuizzes(ctx context.Context) ([]model.QuizSummary, error) {
	quizzes, err := s.quizzes.List(ctx, false)
	if err != nil {
		return nil, persistence("list quizzes", err)
	}

	summaries := make([]model.QuizSummary, 0, len(quizzes))
	for _, quiz := range quizzes {
		count, err := s.questions.CountByQuiz(ctx, quiz.ID)
		if err != nil {
			return nil, persistence("count questions", err)
		}
		summaries = append(summaries, model.QuizSummary{Quiz: *quiz, QuestionCount: count})
	}
	return summaries, nil
}

// GetQuiz returns a quiz by id for admins, optionally with its questions
// (answers included).
func (s *QuizService) GetQuiz(ctx context.Context, id string, includeQuestions bool) (*model.AdminQuizDetail, error) {
	quiz, err := s.getQuizByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.questions.CountByQuiz(ctx, quiz.ID)
	if err != nil {
		return nil, persistence("count questions", err)
	}

	detail := &model.AdminQuizDetail{
		QuizSummary: model.QuizSummary{Quiz: *quiz, QuestionCount: count},
	}
	if includeQuestions {
		questions, err := s.questions.ListByQuiz(ctx, quiz.ID)
		if err != nil {
			return nil, persistence("list questions", err)
		}
		detail.Questions = make([]model.QuestionView, 0, len(questions))
		for _, q := range questions {
			detail.Questions = append(detail.Questions, q.View(true))
		}
	}
	return detail, nil
}

// UpdateQuiz applies a partial update. A changed title regenerates the slug.
func (s *QuizService) UpdateQuiz(ctx context.Context, id string, req model.UpdateQuizRequest) (*model.Quiz, error) {
	quiz, err := s.getQuizByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSlug := quiz.Slug

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, invalidInput("title is required")
		}
		if title != quiz.Title {
			slug, err := uniqueSlug(ctx, s.quizzes, title, quiz.ID)
			if err != nil {
				return nil, err
			}
			quiz.Slug = slug
		}
		quiz.Title = title
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.Published != nil {
		quiz.Published = *req.Published
	}

	if err := s.quizzes.Update(ctx, quiz); err != nil {
		return nil, persistence("update quiz", err)
	}
	s.invalidateQuiz(ctx, quiz.ID.Hex(), oldSlug, quiz.Slug)
	return quiz, nil
}

// DeleteQuiz removes a quiz and all of its questions.
func (s *QuizService) DeleteQuiz(ctx context.Context, id string) error {
	quiz, err := s.getQuizByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.questions.DeleteByQuiz(ctx, quiz.ID); err != nil {
		return persistence("delete questions", err)
	}
	if err := s.quizzes.Delete(ctx, id); err != nil {
		return persistence("delete quiz", err)
	}
	s.invalidateQuiz(ctx, quiz.ID.Hex(), quiz.Slug)
	return nil
}

// CreateQuestion adds a question to a quiz after validating its shape.
func (s *QuizService) CreateQuestion(ctx context.Context, quizID string, req model.CreateQuestionRequest) (*model.Question, error) {
	quiz, err := s.getQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	question := &model.Question{
		QuizID:      quiz.ID,
		Type:        req.Type,
		Text:        strings.TrimSpace(req.Text),
		CorrectText: req.CorrectText,
		Points:      req.Points,
	}
	choices, err := buildChoices(req.Choices)
	if err != nil {
		return nil, err
	}
	question.Choices = choices

	if err := validateQuestion(question); err != nil {
		return nil, err
	}

	if _, err := s.questions.Insert(ctx, question); err != nil {
		return nil, persistence("insert question", err)
	}
	s.invalidateQuiz(ctx, quiz.ID.Hex(), quiz.Slug)
	return question, nil
}

// GetQuestion returns a question by id, answers included.
func (s *QuizService) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	return s.getQuestionByID(ctx, id)
}

// ListQuestions returns a quiz's questions in creation order, answers included.
func (s *QuizService) ListQuestions(ctx context.Context, quizID string) ([]*model.Question, error) {
	quiz, err := s.getQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questions.ListByQuiz(ctx, quiz.ID)
	if err != nil {
		return nil, persistence("list questions", err)
	}
	return questions, nil
}

// UpdateQuestion applies a partial update and re-validates the result.
func (s *QuizService) UpdateQuestion(ctx context.Context, id string, req model.UpdateQuestionRequest) (*model.Question, error) {
	question, err := s.getQuestionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		question.Type = *req.Type
	}
	if req.Text != nil {
		question.Text = strings.TrimSpace(*req.Text)
	}
	if req.Choices != nil {
		choices, err := buildChoices(req.Choices)
		if err != nil {
			return nil, err
		}
		question.Choices = choices
	}
	if req.CorrectText != nil {
		question.CorrectText = *req.CorrectText
	}
	if req.Points != nil {
		question.Points = *req.Points
	}

	if err := validateQuestion(question); err != nil {
		return nil, err
	}

	if err := s.questions.Update(ctx, question); err != nil {
		return nil, persistence("update question", err)
	}
	s.invalidateQuizByID(ctx, question.QuizID)
	return question, nil
}

// DeleteQuestion removes a question.
func (s *QuizService) DeleteQuestion(ctx context.Context, id string) error {
	question, err := s.getQuestionByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		return persistence("delete question", err)
	}
	s.invalidateQuizByID(ctx, question.QuizID)
	return nil
}

// ListPublished returns all published quizzes, newest first.
func (s *QuizService) ListPublished(ctx context.Context) ([]*model.Quiz, error) {
	quizzes, err := s.quizzes.List(ctx, true)
	if err != nil {
		return nil, persistence("list quizzes", err)
	}
	return quizzes, nil
}

// GetPublished returns a published quiz by id or slug, questions embedded
// without their answers. Served from the cache when warm.
func (s *QuizService) GetPublished(ctx context.Context, idOrSlug string) (*model.QuizDetail, error) {
	if s.quizCache != nil {
		cached, err := s.quizCache.Get(ctx, idOrSlug)
		if err != nil {
			log.Printf("quiz cache get %q: %v", idOrSlug, err)
		} else if cached != nil {
			return cached, nil
		}
	}

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

	detail := &model.QuizDetail{
		Quiz:      *quiz,
		Questions: make([]model.QuestionView, 0, len(questions)),
	}
	for _, q := range questions {
		detail.Questions = append(detail.Questions, q.View(false))
	}

	if s.quizCache != nil {
		if err := s.quizCache.Set(ctx, detail); err != nil {
			log.Printf("quiz cache set %q: %v", idOrSlug, err)
		}
	}
	return detail, nil
}

func (s *QuizService) getQuizByID(ctx context.Context, id string) (*model.Quiz, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, invalidInput("invalid quiz id %q", id)
	}
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		return nil, persistence("get quiz", err)
	}
	if quiz == nil {
		return nil, ErrNotFound
	}
	return quiz, nil
}

func (s *QuizService) getQuestionByID(ctx context.Context, id string) (*model.Question, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, invalidInput("invalid question id %q", id)
	}
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, persistence("get question", err)
	}
	if question == nil {
		return nil, ErrNotFound
	}
	return question, nil
}

// invalidateQuiz drops cached snapshots. Cache failures are logged, never
// surfaced: the authoritative state already changed in Mongo.
func (s *QuizService) invalidateQuiz(ctx context.Context, idsOrSlugs ...string) {
	if s.quizCache == nil {
		return
	}
	if err := s.quizCache.Invalidate(ctx, idsOrSlugs...); err != nil {
		log.Printf("quiz cache invalidate %v: %v", idsOrSlugs, err)
	}
}

func (s *QuizService) invalidateQuizByID(ctx context.Context, quizID primitive.ObjectID) {
	quiz, err := s.quizzes.GetByID(ctx, quizID.Hex())
	if err != nil || quiz == nil {
		s.invalidateQuiz(ctx, quizID.Hex())
		return
	}
	s.invalidateQuiz(ctx, quiz.ID.Hex(), quiz.Slug)
}

// buildChoices converts choice payloads, assigning ObjectIDs where absent.
func buildChoices(reqs []model.ChoiceRequest) ([]model.Choice, error) {
	if reqs == nil {
		return nil, nil
	}
	choices := make([]model.Choice, 0, len(reqs))
	for _, cr := range reqs {
		choice := model.Choice{Text: cr.Text, IsCorrect: cr.IsCorrect}
		if cr.ID != "" {
			id, err := primitive.ObjectIDFromHex(cr.ID)
			if err != nil {
				return nil, invalidInput("invalid choice id %q", cr.ID)
			}
			choice.ID = id
		} else {
			choice.ID = primitive.NewObjectID()
		}
		choices = append(choices, choice)
	}
	return choices, nil
}

// validateQuestion enforces the per-type invariants: choice types need at
// least two choices, free text needs a non-empty answer.
func validateQuestion(q *model.Question) error {
	if !q.Type.Valid() {
		return invalidInput("invalid question type %q", q.Type)
	}
	if q.Text == "" {
		return invalidInput("question text is required")
	}
	if q.Points < 0 {
		return invalidInput("points must be positive")
	}
	if q.Points == 0 {
		q.Points = 1
	}

	if q.Type.HasChoices() {
		if len(q.Choices) < 2 {
			return invalidInput("at least 2 choices are required for %s questions", q.Type)
		}
		q.CorrectText = ""
	} else {
		if strings.TrimSpace(q.CorrectText) == "" {
			return invalidInput("correct_text is required for %s questions", q.Type)
		}
		q.Choices = nil
	}
	return nil
}
