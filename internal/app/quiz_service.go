package app

import (
	"context"
	"log"
	"time"

	"civiccents-service/internal/domain"
)

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	ListQuizzes(ctx context.Context, category string) ([]domain.Quiz, error)
}

// ProgressRepository is the append-only attempt log. ListByUser returns
// newest-first.
type ProgressRepository interface {
	Create(ctx context.Context, attempt domain.QuizAttempt) error
	ListByUser(ctx context.Context, email string) ([]domain.QuizAttempt, error)
}

// AuthProvider resolves the caller's identity from an access token.
type AuthProvider interface {
	Me(ctx context.Context, accessToken string) (domain.User, error)
}

// QuizService contains the quiz-taking use cases.
type QuizService struct {
	quizzes  QuizRepository
	progress ProgressRepository
	auth     AuthProvider
	now      func() time.Time
}

func NewQuizService(quizzes QuizRepository, progress ProgressRepository, auth AuthProvider) *QuizService {
	return &QuizService{quizzes: quizzes, progress: progress, auth: auth, now: time.Now}
}

// NewQuizServiceWithClock is test-only for deterministic timestamps.
func NewQuizServiceWithClock(quizzes QuizRepository, progress ProgressRepository, auth AuthProvider, now func() time.Time) *QuizService {
	return &QuizService{quizzes: quizzes, progress: progress, auth: auth, now: now}
}

// ListQuizzes returns all quizzes, or the ones in a category when given.
func (s *QuizService) ListQuizzes(ctx context.Context, category string) ([]domain.Quiz, error) {
	return s.quizzes.ListQuizzes(ctx, category)
}

// GetQuiz loads one quiz by id.
func (s *QuizService) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	return s.quizzes.GetQuiz(ctx, quizID)
}

// SubmitAttempt scores a full answer sheet against the quiz and records the
// attempt when an identity resolves. The local score is always returned;
// persistence failure is reported in the result, never as an error, and is
// attempted exactly once.
func (s *QuizService) SubmitAttempt(ctx context.Context, accessToken, quizID string, answers []string) (domain.AttemptResult, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.AttemptResult{}, err
	}

	run := NewQuizRun(quiz)
	for i := range quiz.Questions {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		if answer == "" {
			if err := run.Skip(); err != nil {
				return domain.AttemptResult{}, err
			}
		} else {
			if err := run.Select(answer); err != nil {
				return domain.AttemptResult{}, err
			}
			if _, _, err := run.Submit(); err != nil {
				return domain.AttemptResult{}, err
			}
		}
		if err := run.Advance(); err != nil {
			return domain.AttemptResult{}, err
		}
	}

	result := domain.AttemptResult{
		QuizID:         quiz.ID,
		QuizTitle:      quiz.Title,
		Score:          run.Score(),
		TotalQuestions: len(quiz.Questions),
		CorrectAnswers: run.CorrectCount(),
	}

	user, err := s.auth.Me(ctx, accessToken)
	if err != nil || user.Email == "" {
		// Anonymous play: score shown, nothing persisted.
		return result, nil
	}

	attempt := domain.QuizAttempt{
		UserEmail:      user.Email,
		QuizID:         quiz.ID,
		QuizTitle:      quiz.Title,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		CorrectAnswers: result.CorrectAnswers,
		CompletedAt:    s.now().UTC(),
	}
	if err := s.progress.Create(ctx, attempt); err != nil {
		log.Printf("save progress for %s failed: %v", user.Email, err)
		result.SaveError = "Failed to save progress. Your score is shown but was not recorded."
		return result, nil
	}
	result.Saved = true
	return result, nil
}
