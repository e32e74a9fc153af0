package app

import (
	"context"
	"math"

	"civiccents-service/internal/domain"
)

// Achievement is one milestone badge with its earned state.
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

// ProgressSummary aggregates a user's attempt history for display.
type ProgressSummary struct {
	TotalQuizzes      int                  `json:"totalQuizzes"`
	CompletedQuizzes  int                  `json:"completedQuizzes"`
	CompletionPercent int                  `json:"completionPercent"`
	AverageScore      int                  `json:"averageScore"`
	PoliticsAverage   int                  `json:"politicsAverage"`
	FinanceAverage    int                  `json:"financeAverage"`
	CompletedPolitics int                  `json:"completedPolitics"`
	CompletedFinance  int                  `json:"completedFinance"`
	Achievements      []Achievement        `json:"achievements"`
	Attempts          []domain.QuizAttempt `json:"attempts"`
}

// ProgressService reads back the externally persisted attempt log and
// derives the statistics and achievement badges.
type ProgressService struct {
	quizzes  QuizRepository
	progress ProgressRepository
	auth     AuthProvider
}

func NewProgressService(quizzes QuizRepository, progress ProgressRepository, auth AuthProvider) *ProgressService {
	return &ProgressService{quizzes: quizzes, progress: progress, auth: auth}
}

// Summary requires an authenticated identity; anonymous callers get
// domain.ErrUnauthenticated.
func (s *ProgressService) Summary(ctx context.Context, accessToken string) (ProgressSummary, error) {
	user, err := s.auth.Me(ctx, accessToken)
	if err != nil || user.Email == "" {
		return ProgressSummary{}, domain.ErrUnauthenticated
	}

	quizzes, err := s.quizzes.ListQuizzes(ctx, "")
	if err != nil {
		return ProgressSummary{}, err
	}
	attempts, err := s.progress.ListByUser(ctx, user.Email)
	if err != nil {
		return ProgressSummary{}, err
	}

	category := make(map[string]string, len(quizzes))
	politicsTotal, financeTotal := 0, 0
	for _, q := range quizzes {
		category[q.ID] = q.Category
		switch q.Category {
		case "politics":
			politicsTotal++
		case "finance":
			financeTotal++
		}
	}

	completed := map[string]bool{}
	scoreSum := 0
	politicsSum, politicsCount := 0, 0
	financeSum, financeCount := 0, 0
	perfect := false
	for _, a := range attempts {
		completed[a.QuizID] = true
		scoreSum += a.Score
		if a.Score == 100 {
			perfect = true
		}
		switch category[a.QuizID] {
		case "politics":
			politicsSum += a.Score
			politicsCount++
		case "finance":
			financeSum += a.Score
			financeCount++
		}
	}

	completedPolitics, completedFinance := 0, 0
	for id := range completed {
		switch category[id] {
		case "politics":
			completedPolitics++
		case "finance":
			completedFinance++
		}
	}

	summary := ProgressSummary{
		TotalQuizzes:      len(quizzes),
		CompletedQuizzes:  len(completed),
		CompletedPolitics: completedPolitics,
		CompletedFinance:  completedFinance,
		Attempts:          attempts,
	}
	if len(quizzes) > 0 {
		summary.CompletionPercent = Score(len(completed), len(quizzes))
	}
	if len(attempts) > 0 {
		summary.AverageScore = roundedAverage(scoreSum, len(attempts))
	}
	if politicsCount > 0 {
		summary.PoliticsAverage = roundedAverage(politicsSum, politicsCount)
	}
	if financeCount > 0 {
		summary.FinanceAverage = roundedAverage(financeSum, financeCount)
	}

	summary.Achievements = achievements(summary, perfect, politicsTotal, financeTotal, len(attempts))
	return summary, nil
}

func roundedAverage(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}

func achievements(summary ProgressSummary, perfect bool, politicsTotal, financeTotal, attemptCount int) []Achievement {
	completed := summary.CompletedQuizzes
	completedPolitics := summary.CompletedPolitics
	completedFinance := summary.CompletedFinance
	return []Achievement{
		{Title: "Getting Started", Description: "Complete your first quiz", Earned: completed >= 1},
		{Title: "Quiz Master", Description: "Complete 5 quizzes", Earned: completed >= 5},
		{Title: "Perfect Score", Description: "Get 100% on any quiz", Earned: perfect},
		{Title: "Politics Expert", Description: "Complete all Politics quizzes", Earned: politicsTotal > 0 && completedPolitics == politicsTotal},
		{Title: "Finance Guru", Description: "Complete all Finance quizzes", Earned: financeTotal > 0 && completedFinance == financeTotal},
		{Title: "Overachiever", Description: "Maintain 90%+ average score", Earned: summary.AverageScore >= 90 && attemptCount >= 3},
	}
}
