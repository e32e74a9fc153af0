package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"civiccents-service/internal/domain"
	"civiccents-service/internal/infra/memory"
)

// QuizCache caches full quiz documents in Redis and falls back to a loader
// on cache miss. Content is stored as JSON:
//
//	SET quiz:{quizID}:content {json}   with TTL
//	SET quiz:catalog          {json}   with TTL
type QuizCache struct {
	client *redis.Client
	loader memory.QuizLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuizCache(client *redis.Client, loader memory.QuizLoader, ttl time.Duration) *QuizCache {
	return &QuizCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuizCache) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	key := c.contentKey(quizID)

	if raw, err := c.client.Get(ctx, key).Result(); err == nil {
		var quiz domain.Quiz
		if err := json.Unmarshal([]byte(raw), &quiz); err == nil {
			return quiz, nil
		}
	}

	result, err, _ := c.sf.Do(quizID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := c.client.Get(ctx, key).Result(); err == nil {
			var quiz domain.Quiz
			if err := json.Unmarshal([]byte(raw), &quiz); err == nil {
				return quiz, nil
			}
		}

		quiz, err := c.loader.LoadQuiz(ctx, quizID)
		if err != nil {
			return domain.Quiz{}, err
		}
		if raw, err := json.Marshal(quiz); err == nil {
			_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
		}
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

func (c *QuizCache) ListQuizzes(ctx context.Context, category string) ([]domain.Quiz, error) {
	if raw, err := c.client.Get(ctx, c.catalogKey()).Result(); err == nil {
		var quizzes []domain.Quiz
		if err := json.Unmarshal([]byte(raw), &quizzes); err == nil {
			return filterCategory(quizzes, category), nil
		}
	}

	result, err, _ := c.sf.Do("__catalog", func() (interface{}, error) {
		if raw, err := c.client.Get(ctx, c.catalogKey()).Result(); err == nil {
			var quizzes []domain.Quiz
			if err := json.Unmarshal([]byte(raw), &quizzes); err == nil {
				return quizzes, nil
			}
		}

		quizzes, err := c.loader.ListQuizzes(ctx)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(quizzes); err == nil {
			_ = c.client.Set(ctx, c.catalogKey(), raw, c.ttlWithJitter()).Err()
		}
		return quizzes, nil
	})
	if err != nil {
		return nil, err
	}
	return filterCategory(result.([]domain.Quiz), category), nil
}

func (c *QuizCache) contentKey(quizID string) string {
	return "quiz:" + quizID + ":content"
}

func (c *QuizCache) catalogKey() string {
	return "quiz:catalog"
}

func filterCategory(quizzes []domain.Quiz, category string) []domain.Quiz {
	if category == "" {
		return quizzes
	}
	out := make([]domain.Quiz, 0, len(quizzes))
	for _, q := range quizzes {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out
}

func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
