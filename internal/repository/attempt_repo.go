package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quizforge/internal/model"
)

// AttemptRepo handles MongoDB operations for graded attempts. Attempts are
// immutable once written, so there is no update or delete.
type AttemptRepo interface {
	Insert(ctx context.Context, attempt *model.Attempt) (string, error)
	ListByQuiz(ctx context.Context, quizID primitive.ObjectID) ([]*model.Attempt, error)
}

type attemptRepo struct {
	collection *mongo.Collection
}

// NewAttemptRepo creates a new attempt repository.
func NewAttemptRepo(db *mongo.Database) AttemptRepo {
	return &attemptRepo{
		collection: db.Collection("attempts"),
	}
}

func (r *attemptRepo) Insert(ctx context.Context, attempt *model.Attempt) (string, error) {
	result, err := r.collection.InsertOne(ctx, attempt)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	attempt.ID = oid
	return oid.Hex(), nil
}

func (r *attemptRepo) ListByQuiz(ctx context.Context, quizID primitive.ObjectID) ([]*model.Attempt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"quiz_id": quizID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var attempts []*model.Attempt
	if err = cursor.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}
