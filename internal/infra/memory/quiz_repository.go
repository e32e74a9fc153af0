package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"civiccents-service/internal/domain"
)

// QuizLoader fetches quiz content from a backing store (e.g., Postgres).
type QuizLoader interface {
	LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	ListQuizzes(ctx context.Context) ([]domain.Quiz, error)
}

// QuizRepository caches quiz content with TTL to avoid repeated store hits.
// Quiz content changes rarely, so both single quizzes and the catalog list
// are cached.
type QuizRepository struct {
	loader QuizLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	cache     map[string]cachedQuiz
	list      []domain.Quiz
	listUntil time.Time
}

type cachedQuiz struct {
	quiz      domain.Quiz
	expiresAt time.Time
}

func NewQuizRepository(loader QuizLoader, ttl time.Duration) *QuizRepository {
	return &QuizRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedQuiz),
	}
}

func (r *QuizRepository) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[quizID]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.quiz, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(quizID, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[quizID]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.quiz, nil
		}
		r.mu.RUnlock()

		quiz, err := r.loader.LoadQuiz(ctx, quizID)
		if err != nil {
			return domain.Quiz{}, err
		}

		r.mu.Lock()
		r.cache[quizID] = cachedQuiz{
			quiz:      quiz,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

// ListQuizzes returns the catalog, filtered by category when one is given.
func (r *QuizRepository) ListQuizzes(ctx context.Context, category string) ([]domain.Quiz, error) {
	now := r.clock()

	r.mu.RLock()
	if r.list != nil && r.listUntil.After(now) {
		quizzes := r.list
		r.mu.RUnlock()
		return filterCategory(quizzes, category), nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("__list", func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if r.list != nil && r.listUntil.After(now) {
			quizzes := r.list
			r.mu.RUnlock()
			return quizzes, nil
		}
		r.mu.RUnlock()

		quizzes, err := r.loader.ListQuizzes(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.list = quizzes
		r.listUntil = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return quizzes, nil
	})
	if err != nil {
		return nil, err
	}
	return filterCategory(result.([]domain.Quiz), category), nil
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

func (r *QuizRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
