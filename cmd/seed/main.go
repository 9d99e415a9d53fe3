package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quizforge/internal/config"
	"quizforge/internal/model"
	"quizforge/internal/repository"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.DBName)
	quizzes := repository.NewQuizRepo(db)
	questions := repository.NewQuestionRepo(db)

	quiz := &model.Quiz{
		Title:       "General Knowledge Warm-Up",
		Slug:        "general-knowledge-warm-up",
		Description: "One question of each type.",
		Published:   true,
	}
	quizID, err := quizzes.Insert(ctx, quiz)
	if err != nil {
		log.Fatalf("Failed to insert quiz: %v", err)
	}

	seedQuestions := []*model.Question{
		{
			QuizID: quiz.ID,
			Type:   model.QuestionTypeSingleChoice,
			Text:   "What is the capital of France?",
			Points: 1,
			Choices: []model.Choice{
				{ID: primitive.NewObjectID(), Text: "London"},
				{ID: primitive.NewObjectID(), Text: "Paris", IsCorrect: true},
				{ID: primitive.NewObjectID(), Text: "Berlin"},
			},
		},
		{
			QuizID: quiz.ID,
			Type:   model.QuestionTypeMultiChoice,
			Text:   "Which of these are prime numbers?",
			Points: 2,
			Choices: []model.Choice{
				{ID: primitive.NewObjectID(), Text: "2", IsCorrect: true},
				{ID: primitive.NewObjectID(), Text: "4"},
				{ID: primitive.NewObjectID(), Text: "7", IsCorrect: true},
			},
		},
		{
			QuizID: quiz.ID,
			Type:   model.QuestionTypeTrueFalse,
			Text:   "The Pacific is the largest ocean.",
			Points: 1,
			Choices: []model.Choice{
				{ID: primitive.NewObjectID(), Text: "True", IsCorrect: true},
				{ID: primitive.NewObjectID(), Text: "False"},
			},
		},
		{
			QuizID:      quiz.ID,
			Type:        model.QuestionTypeFreeText,
			Text:        "What is the answer to life, the universe and everything?",
			CorrectText: "42",
			Points:      1,
		},
	}
	for _, q := range seedQuestions {
		if _, err := questions.Insert(ctx, q); err != nil {
			log.Fatalf("Failed to insert question: %v", err)
		}
	}

	log.Printf("Seeded quiz %s (%s) with %d questions", quizID, quiz.Slug, len(seedQuestions))
}
