package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quizforge/internal/model"
)

// QuestionRepo handles MongoDB operations for questions.
type QuestionRepo interface {
	Insert(ctx context.Context, question *model.Question) (string, error)
	GetByID(ctx context.Context, id string) (*model.Question, error)
	// ListByQuiz returns the quiz's questions ordered by creation time
	// ascending, the order they are presented in.
	ListByQuiz(ctx context.Context, quizID primitive.ObjectID) ([]*model.Question, error)
	Update(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id string) error
	DeleteByQuiz(ctx context.Context, quizID primitive.ObjectID) error
	CountByQuiz(ctx context.Context, quizID primitive.ObjectID) (int64, error)
}

type questionRepo struct {
	collection *mongo.Collection
}

// NewQuestionRepo creates a new question repository.
func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("questions"),
	}
}

func (r *questionRepo) Insert(ctx context.Context, question *model.Question) (string, error) {
	now := time.Now().UTC()
	question.CreatedAt = now
	question.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, question)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	question.ID = oid
	return oid.Hex(), nil
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var question model.Question
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&question)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepo) ListByQuiz(ctx context.Context, quizID primitive.ObjectID) ([]*model.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"quiz_id": quizID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepo) Update(ctx context.Context, question *model.Question) error {
	question.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": question.ID}, question)
	return err
}

func (r *questionRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *questionRepo) DeleteByQuiz(ctx context.Context, quizID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"quiz_id": quizID})
	return err
}

func (r *questionRepo) CountByQuiz(ctx context.Context, quizID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"quiz_id": quizID})
}
