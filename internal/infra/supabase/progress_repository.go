package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"civiccents-service/internal/domain"
)

const progressTable = "user_progress"

// attemptRow matches the user_progress table.
type attemptRow struct {
	ID             string    `json:"id,omitempty"`
	CreatedBy      string    `json:"created_by"`
	QuizID         string    `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	CompletedAt    time.Time `json:"completed_at"`
}

// ProgressRepository persists quiz attempts through the Supabase REST API.
type ProgressRepository struct {
	client *supa.Client
}

func NewProgressRepository(client *supa.Client) *ProgressRepository {
	return &ProgressRepository{client: client}
}

func (r *ProgressRepository) Create(_ context.Context, attempt domain.QuizAttempt) error {
	row := attemptRow{
		CreatedBy:      attempt.UserEmail,
		QuizID:         attempt.QuizID,
		QuizTitle:      attempt.QuizTitle,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		CorrectAnswers: attempt.CorrectAnswers,
		CompletedAt:    attempt.CompletedAt,
	}
	var inserted []attemptRow
	_, err := r.client.From(progressTable).Insert(row, false, "", "", "").ExecuteTo(&inserted)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (r *ProgressRepository) ListByUser(_ context.Context, email string) ([]domain.QuizAttempt, error) {
	var rows []attemptRow
	_, err := r.client.From(progressTable).
		Select("*", "exact", false).
		Eq("created_by", email).
		Order("completed_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}

	attempts := make([]domain.QuizAttempt, 0, len(rows))
	for _, row := range rows {
		attempts = append(attempts, domain.QuizAttempt{
			ID:             row.ID,
			UserEmail:      row.CreatedBy,
			QuizID:         row.QuizID,
			QuizTitle:      row.QuizTitle,
			Score:          row.Score,
			TotalQuestions: row.TotalQuestions,
			CorrectAnswers: row.CorrectAnswers,
			CompletedAt:    row.CompletedAt,
		})
	}
	return attempts, nil
}
