package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v4/pgxpool"

	"civiccents-service/internal/domain"
)

// ProgressRepository persists quiz attempts in Postgres.
type ProgressRepository struct {
	pool *pgxpool.Pool
}

func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

func (r *ProgressRepository) Create(ctx context.Context, attempt domain.QuizAttempt) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_progress
		 (user_email, quiz_id, quiz_title, score, total_questions, correct_answers, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		attempt.UserEmail, attempt.QuizID, attempt.QuizTitle,
		attempt.Score, attempt.TotalQuestions, attempt.CorrectAnswers, attempt.CompletedAt)
	if err != nil {
		return fmt.Errorf("create attempt: %w", err)
	}
	return nil
}

func (r *ProgressRepository) ListByUser(ctx context.Context, email string) ([]domain.QuizAttempt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_email, quiz_id, quiz_title, score, total_questions, correct_answers, completed_at
		 FROM user_progress WHERE user_email=$1 ORDER BY completed_at DESC`,
		email)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []domain.QuizAttempt
	for rows.Next() {
		var a domain.QuizAttempt
		var id int64
		if err := rows.Scan(&id, &a.UserEmail, &a.QuizID, &a.QuizTitle,
			&a.Score, &a.TotalQuestions, &a.CorrectAnswers, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.ID = strconv.FormatInt(id, 10)
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
