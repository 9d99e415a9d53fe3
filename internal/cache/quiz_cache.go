package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"quizforge/internal/model"
)

// QuizCache keeps JSON snapshots of published quizzes (with their public
// question views) so the hot public fetch path can skip Mongo. Entries are
// TTL-bound and invalidated on admin writes.
type QuizCache interface {
	// Get returns the cached detail for an id or slug, or nil on a miss.
	Get(ctx context.Context, idOrSlug string) (*model.QuizDetail, error)
	// Set stores the detail under both the quiz id and its slug.
	Set(ctx context.Context, detail *model.QuizDetail) error
	// Invalidate drops the entries for the given ids/slugs.
	Invalidate(ctx context.Context, idsOrSlugs ...string) error
}

type quizCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQuizCache creates a new quiz cache.
func NewQuizCache(client *redis.Client, ttl time.Duration) QuizCache {
	return &quizCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *quizCache) key(idOrSlug string) string {
	return fmt.Sprintf("quiz:pub:%s", idOrSlug)
}

func (c *quizCache) Get(ctx context.Context, idOrSlug string) (*model.QuizDetail, error) {
	data, err := c.client.Get(ctx, c.key(idOrSlug)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var detail model.QuizDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		// A corrupt entry is a miss; it will be overwritten on the next Set.
		return nil, nil
	}
	return &detail, nil
}

func (c *quizCache) Set(ctx context.Context, detail *model.QuizDetail) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, c.key(detail.ID.Hex()), data, c.ttl)
	if detail.Slug != "" {
		pipe.Set(ctx, c.key(detail.Slug), data, c.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (c *quizCache) Invalidate(ctx context.Context, idsOrSlugs ...string) error {
	if len(idsOrSlugs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(idsOrSlugs))
	for _, v := range idsOrSlugs {
		if v == "" {
			continue
		}
		keys = append(keys, c.key(v))
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
