package service_test

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizforge/internal/cache"
	"quizforge/internal/model"
)

// In-memory collaborators standing in for Mongo and Redis.

type fakeQuizRepo struct {
	quizzes    []*model.Quiz
	failInsert error
	failGet    error
}

func (r *fakeQuizRepo) Insert(_ context.Context, quiz *model.Quiz) (string, error) {
	if r.failInsert != nil {
		return "", r.failInsert
	}
	if quiz.ID.IsZero() {
		quiz.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now
	r.quizzes = append(r.quizzes, quiz)
	return quiz.ID.Hex(), nil
}

func (r *fakeQuizRepo) GetByID(_ context.Context, id string) (*model.Quiz, error) {
	if r.failGet != nil {
		return nil, r.failGet
	}
	for _, q := range r.quizzes {
		if q.ID.Hex() == id {
			copied := *q
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeQuizRepo) GetByIDOrSlug(_ context.Context, value string, publishedOnly bool) (*model.Quiz, error) {
	if r.failGet != nil {
		return nil, r.failGet
	}
	for _, q := range r.quizzes {
		if q.ID.Hex() == value || q.Slug == value {
			if publishedOnly && !q.Published {
				continue
			}
			copied := *q
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeQuizRepo) List(_ context.Context, publishedOnly bool) ([]*model.Quiz, error) {
	var out []*model.Quiz
	for i := len(r.quizzes) - 1; i >= 0; i-- {
		q := r.quizzes[i]
		if publishedOnly && !q.Published {
			continue
		}
		copied := *q
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeQuizRepo) Update(_ context.Context, quiz *model.Quiz) error {
	for i, q := range r.quizzes {
		if q.ID == quiz.ID {
			copied := *quiz
			copied.UpdatedAt = time.Now().UTC()
			r.quizzes[i] = &copied
			return nil
		}
	}
	return nil
}

func (r *fakeQuizRepo) Delete(_ context.Context, id string) error {
	for i, q := range r.quizzes {
		if q.ID.Hex() == id {
			r.quizzes = append(r.quizzes[:i], r.quizzes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeQuizRepo) SlugExists(_ context.Context, slug string, excludeID primitive.ObjectID) (bool, error) {
	for _, q := range r.quizzes {
		if q.Slug == slug && q.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeQuestionRepo struct {
	questions []*model.Question
}

func (r *fakeQuestionRepo) Insert(_ context.Context, question *model.Question) (string, error) {
	if question.ID.IsZero() {
		question.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	question.CreatedAt = now
	question.UpdatedAt = now
	r.questions = append(r.questions, question)
	return question.ID.Hex(), nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id string) (*model.Question, error) {
	for _, q := range r.questions {
		if q.ID.Hex() == id {
			copied := *q
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeQuestionRepo) ListByQuiz(_ context.Context, quizID primitive.ObjectID) ([]*model.Question, error) {
	var out []*model.Question
	for _, q := range r.questions {
		if q.QuizID == quizID {
			copied := *q
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) Update(_ context.Context, question *model.Question) error {
	for i, q := range r.questions {
		if q.ID == question.ID {
			copied := *question
			r.questions[i] = &copied
			return nil
		}
	}
	return nil
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id string) error {
	for i, q := range r.questions {
		if q.ID.Hex() == id {
			r.questions = append(r.questions[:i], r.questions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeQuestionRepo) DeleteByQuiz(_ context.Context, quizID primitive.ObjectID) error {
	var kept []*model.Question
	for _, q := range r.questions {
		if q.QuizID != quizID {
			kept = append(kept, q)
		}
	}
	r.questions = kept
	return nil
}

func (r *fakeQuestionRepo) CountByQuiz(_ context.Context, quizID primitive.ObjectID) (int64, error) {
	var n int64
	for _, q := range r.questions {
		if q.QuizID == quizID {
			n++
		}
	}
	return n, nil
}

type fakeAttemptRepo struct {
	attempts   []*model.Attempt
	failInsert error
}

func (r *fakeAttemptRepo) Insert(_ context.Context, attempt *model.Attempt) (string, error) {
	if r.failInsert != nil {
		return "", r.failInsert
	}
	attempt.ID = primitive.NewObjectID()
	copied := *attempt
	r.attempts = append(r.attempts, &copied)
	return attempt.ID.Hex(), nil
}

func (r *fakeAttemptRepo) ListByQuiz(_ context.Context, quizID primitive.ObjectID) ([]*model.Attempt, error) {
	var out []*model.Attempt
	for i := len(r.attempts) - 1; i >= 0; i-- {
		if r.attempts[i].QuizID == quizID {
			copied := *r.attempts[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeScoreCache struct {
	recorded map[string]int // attempt id -> score
}

func (c *fakeScoreCache) Record(_ context.Context, quizID, attemptID string, score int) error {
	if c.recorded == nil {
		c.recorded = make(map[string]int)
	}
	c.recorded[attemptID] = score
	return nil
}

func (c *fakeScoreCache) Top(_ context.Context, quizID string, limit int) ([]cache.ScoreEntry, error) {
	return nil, nil
}

type fakeQuizCache struct {
	entries map[string]*model.QuizDetail
	hits    int
	sets    int
}

func (c *fakeQuizCache) Get(_ context.Context, idOrSlug string) (*model.QuizDetail, error) {
	if d, ok := c.entries[idOrSlug]; ok {
		c.hits++
		return d, nil
	}
	return nil, nil
}

func (c *fakeQuizCache) Set(_ context.Context, detail *model.QuizDetail) error {
	if c.entries == nil {
		c.entries = make(map[string]*model.QuizDetail)
	}
	c.entries[detail.ID.Hex()] = detail
	if detail.Slug != "" {
		c.entries[detail.Slug] = detail
	}
	c.sets++
	return nil
}

func (c *fakeQuizCache) Invalidate(_ context.Context, idsOrSlugs ...string) error {
	for _, k := range idsOrSlugs {
		delete(c.entries, k)
	}
	return nil
}
