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

// QuizRepo handles MongoDB operations for quizzes.
type QuizRepo interface {
	Insert(ctx context.Context, quiz *model.Quiz) (string, error)
	GetByID(ctx context.Context, id string) (*model.Quiz, error)
	// GetByIDOrSlug resolves a quiz by hex id first, then by slug. With
	// publishedOnly set, draft quizzes are treated as absent.
	GetByIDOrSlug(ctx context.Context, value string, publishedOnly bool) (*model.Quiz, error)
	List(ctx context.Context, publishedOnly bool) ([]*model.Quiz, error)
	Update(ctx context.Context, quiz *model.Quiz) error
	Delete(ctx context.Context, id string) error
	// SlugExists reports whether another quiz already uses slug. excludeID
	// may be the zero ObjectID when creating.
	SlugExists(ctx context.Context, slug string, excludeID primitive.ObjectID) (bool, error)
}

type quizRepo struct {
	collection *mongo.Collection
}

// NewQuizRepo creates a new quiz repository.
func NewQuizRepo(db *mongo.Database) QuizRepo {
	return &quizRepo{
		collection: db.Collection("quizzes"),
	}
}

func (r *quizRepo) Insert(ctx context.Context, quiz *model.Quiz) (string, error) {
	now := time.Now().UTC()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, quiz)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	quiz.ID = oid
	return oid.Hex(), nil
}

func (r *quizRepo) GetByID(ctx context.Context, id string) (*model.Quiz, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var quiz model.Quiz
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&quiz)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepo) GetByIDOrSlug(ctx context.Context, value string, publishedOnly bool) (*model.Quiz, error) {
	if oid, err := primitive.ObjectIDFromHex(value); err == nil {
		filter := bson.M{"_id": oid}
		if publishedOnly {
			filter["published"] = true
		}
		var quiz model.Quiz
		err := r.collection.FindOne(ctx, filter).Decode(&quiz)
		if err == nil {
			return &quiz, nil
		}
		if err != mongo.ErrNoDocuments {
			return nil, err
		}
	}

	filter := bson.M{"slug": value}
	if publishedOnly {
		filter["published"] = true
	}
	var quiz model.Quiz
	err := r.collection.FindOne(ctx, filter).Decode(&quiz)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepo) List(ctx context.Context, publishedOnly bool) ([]*model.Quiz, error) {
	filter := bson.M{}
	if publishedOnly {
		filter["published"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var quizzes []*model.Quiz
	if err = cursor.All(ctx, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepo) Update(ctx context.Context, quiz *model.Quiz) error {
	quiz.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": quiz.ID}, quiz)
	return err
}

func (r *quizRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *quizRepo) SlugExists(ctx context.Context, slug string, excludeID primitive.ObjectID) (bool, error) {
	filter := bson.M{"slug": slug}
	if !excludeID.IsZero() {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	err := r.collection.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
