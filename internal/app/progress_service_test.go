package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"civiccents-service/internal/domain"
)

func progressFixtures() (*fakeQuizRepo, *fakeProgressRepo) {
	quizzes := &fakeQuizRepo{quizzes: []domain.Quiz{
		{ID: "constitution", Category: "politics"},
		{ID: "elections", Category: "politics"},
		{ID: "budgeting", Category: "finance"},
		{ID: "investing", Category: "finance"},
	}}
	at := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	progress := &fakeProgressRepo{attempts: []domain.QuizAttempt{
		{QuizID: "constitution", Score: 100, CompletedAt: at},
		{QuizID: "budgeting", Score: 80, CompletedAt: at.Add(-time.Hour)},
		{QuizID: "constitution", Score: 60, CompletedAt: at.Add(-2 * time.Hour)},
	}}
	return quizzes, progress
}

func TestProgressSummary(t *testing.T) {
	quizzes, progress := progressFixtures()
	svc := NewProgressService(quizzes, progress, &fakeAuth{user: domain.User{Email: "kid@example.com"}})

	summary, err := svc.Summary(context.Background(), "token")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalQuizzes != 4 || summary.CompletedQuizzes != 2 {
		t.Fatalf("totals = %d/%d", summary.CompletedQuizzes, summary.TotalQuizzes)
	}
	if summary.CompletionPercent != 50 {
		t.Fatalf("completion = %d, want 50", summary.CompletionPercent)
	}
	if summary.AverageScore != 80 {
		t.Fatalf("average = %d, want 80", summary.AverageScore)
	}
	if summary.PoliticsAverage != 80 || summary.FinanceAverage != 80 {
		t.Fatalf("category averages = %d/%d", summary.PoliticsAverage, summary.FinanceAverage)
	}
	if summary.CompletedPolitics != 1 || summary.CompletedFinance != 1 {
		t.Fatalf("completed per category = %d/%d", summary.CompletedPolitics, summary.CompletedFinance)
	}
	if len(summary.Attempts) != 3 {
		t.Fatalf("attempts = %d", len(summary.Attempts))
	}
}

func TestProgressAchievements(t *testing.T) {
	quizzes, progress := progressFixtures()
	svc := NewProgressService(quizzes, progress, &fakeAuth{user: domain.User{Email: "kid@example.com"}})

	summary, err := svc.Summary(context.Background(), "token")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	earned := map[string]bool{}
	for _, a := range summary.Achievements {
		earned[a.Title] = a.Earned
	}
	if !earned["Getting Started"] {
		t.Fatal("Getting Started should be earned")
	}
	if earned["Quiz Master"] {
		t.Fatal("Quiz Master needs 5 completed quizzes")
	}
	if !earned["Perfect Score"] {
		t.Fatal("Perfect Score should be earned by the 100 attempt")
	}
	if earned["Politics Expert"] || earned["Finance Guru"] {
		t.Fatal("category badges need every quiz in the category")
	}
	if earned["Overachiever"] {
		t.Fatal("Overachiever needs a 90+ average")
	}
}

func TestProgressSummaryUnauthenticated(t *testing.T) {
	quizzes, progress := progressFixtures()
	svc := NewProgressService(quizzes, progress, &fakeAuth{err: errors.New("no session")})

	if _, err := svc.Summary(context.Background(), ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("got %v, want ErrUnauthenticated", err)
	}
}
