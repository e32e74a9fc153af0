package memory

import (
	"context"
	"testing"
	"time"

	"civiccents-service/internal/domain"
)

type countingLoader struct {
	QuizLoader
	loadCalls int
	listCalls int
}

func (l *countingLoader) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	l.loadCalls++
	return l.QuizLoader.LoadQuiz(ctx, quizID)
}

func (l *countingLoader) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	l.listCalls++
	return l.QuizLoader.ListQuizzes(ctx)
}

func TestQuizRepositoryCaches(t *testing.T) {
	loader := &countingLoader{QuizLoader: NewStaticQuizLoader(SeedQuizzes())}
	repo := NewQuizRepository(loader, time.Minute)

	if _, err := repo.GetQuiz(context.Background(), "budgeting-basics"); err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if loader.loadCalls != 1 {
		t.Fatalf("expected loader once, got %d", loader.loadCalls)
	}

	if _, err := repo.GetQuiz(context.Background(), "budgeting-basics"); err != nil {
		t.Fatalf("get quiz 2: %v", err)
	}
	if loader.loadCalls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.loadCalls)
	}
}

func TestQuizRepositoryCacheExpires(t *testing.T) {
	loader := &countingLoader{QuizLoader: NewStaticQuizLoader(SeedQuizzes())}
	repo := NewQuizRepository(loader, time.Minute)

	now := time.Now()
	repo.clock = func() time.Time { return now }
	if _, err := repo.GetQuiz(context.Background(), "investing-101"); err != nil {
		t.Fatalf("get quiz: %v", err)
	}

	repo.clock = func() time.Time { return now.Add(2 * time.Minute) }
	if _, err := repo.GetQuiz(context.Background(), "investing-101"); err != nil {
		t.Fatalf("get quiz after expiry: %v", err)
	}
	if loader.loadCalls != 2 {
		t.Fatalf("expected reload after expiry, loader calls %d", loader.loadCalls)
	}
}

func TestQuizRepositoryListFilters(t *testing.T) {
	loader := &countingLoader{QuizLoader: NewStaticQuizLoader(SeedQuizzes())}
	repo := NewQuizRepository(loader, time.Minute)

	all, err := repo.ListQuizzes(context.Background(), "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 quizzes, got %d", len(all))
	}

	finance, err := repo.ListQuizzes(context.Background(), "finance")
	if err != nil {
		t.Fatalf("list finance: %v", err)
	}
	for _, q := range finance {
		if q.Category != "finance" {
			t.Fatalf("got category %q in finance listing", q.Category)
		}
	}
	if len(finance) != 2 {
		t.Fatalf("expected 2 finance quizzes, got %d", len(finance))
	}
	if loader.listCalls != 1 {
		t.Fatalf("expected one backing list call, got %d", loader.listCalls)
	}
}

func TestQuizRepositoryMiss(t *testing.T) {
	repo := NewQuizRepository(NewStaticQuizLoader(nil), time.Minute)
	if _, err := repo.GetQuiz(context.Background(), "nope"); err != domain.ErrQuizNotFound {
		t.Fatalf("got %v, want ErrQuizNotFound", err)
	}
}

func TestProgressStoreNewestFirst(t *testing.T) {
	store := NewProgressStore()
	ctx := context.Background()
	first := domain.QuizAttempt{UserEmail: "kid@example.com", QuizID: "a", Score: 60}
	second := domain.QuizAttempt{UserEmail: "kid@example.com", QuizID: "b", Score: 90}
	if err := store.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Create(ctx, second); err != nil {
		t.Fatalf("create: %v", err)
	}

	attempts, err := store.ListByUser(ctx, "kid@example.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("got %d attempts", len(attempts))
	}
	if attempts[0].QuizID != "b" || attempts[1].QuizID != "a" {
		t.Fatalf("attempts not newest first: %+v", attempts)
	}
	if attempts[0].ID == "" || attempts[0].ID == attempts[1].ID {
		t.Fatalf("ids not assigned: %+v", attempts)
	}

	other, err := store.ListByUser(ctx, "someone@else.com")
	if err != nil {
		t.Fatalf("list other: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no attempts for other user, got %d", len(other))
	}
}
