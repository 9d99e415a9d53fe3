package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizforge/internal/repository"
)

var (
	slugSeparators = regexp.MustCompile(`[\s_]+`)
	slugInvalid    = regexp.MustCompile(`[^\w\-]`)
	slugCollapse   = regexp.MustCompile(`-+`)
)

// Slugify turns a title into a URL-friendly slug.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugSeparators.ReplaceAllString(slug, "-")
	slug = slugInvalid.ReplaceAllString(slug, "")
	slug = slugCollapse.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "quiz"
	}
	return slug
}

// uniqueSlug derives a slug from title and appends a numeric suffix until no
// other quiz uses it. excludeID keeps a quiz's own slug valid on update.
func uniqueSlug(ctx context.Context, quizzes repository.QuizRepo, title string, excludeID primitive.ObjectID) (string, error) {
	base := Slugify(title)
	slug := base
	for counter := 1; ; counter++ {
		exists, err := quizzes.SlugExists(ctx, slug, excludeID)
		if err != nil {
			return "", persistence("check slug", err)
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
