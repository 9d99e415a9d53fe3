package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ScoreCache handles Redis ZSET operations for per-quiz attempt scores.
type ScoreCache interface {
	Record(ctx context.Context, quizID, attemptID string, score int) error
	Top(ctx context.Context, quizID string, limit int) ([]ScoreEntry, error)
}

// ScoreEntry is a single score-board entry.
type ScoreEntry struct {
	AttemptID string `json:"attempt_id"`
	Score     int    `json:"score"`
	Rank      int    `json:"rank"`
}

type scoreCache struct {
	client *redis.Client
}

// NewScoreCache creates a new score cache.
func NewScoreCache(client *redis.Client) ScoreCache {
	return &scoreCache{
		client: client,
	}
}

func (c *scoreCache) key(quizID string) string {
	return fmt.Sprintf("quiz:%s:scores", quizID)
}

func (c *scoreCache) Record(ctx context.Context, quizID, attemptID string, score int) error {
	return c.client.ZAdd(ctx, c.key(quizID), redis.Z{
		Score:  float64(score),
		Member: attemptID,
	}).Err()
}

func (c *scoreCache) Top(ctx context.Context, quizID string, limit int) ([]ScoreEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(quizID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]ScoreEntry, len(results))
	for i, z := range results {
		entries[i] = ScoreEntry{
			AttemptID: z.Member.(string),
			Score:     int(z.Score),
			Rank:      i + 1,
		}
	}
	return entries, nil
}
