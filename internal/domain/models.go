package domain

import "time"

// User is the identity resolved from the auth provider.
type User struct {
	Email string `json:"email"`
}

// Question is a single quiz question with a designated correct option.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Quiz is an ordered collection of questions in a subject category.
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"` // "politics" or "finance"
	Difficulty  string     `json:"difficulty,omitempty"`
	Questions   []Question `json:"questions"`
}

// QuizAttempt is the append-only record created once per completed quiz.
// Retakes create new records and never mutate prior ones.
type QuizAttempt struct {
	ID             string    `json:"id,omitempty"`
	UserEmail      string    `json:"created_by,omitempty"`
	QuizID         string    `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title"`
	Score          int       `json:"score"` // 0-100
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	CompletedAt    time.Time `json:"completed_at"`
}

// AttemptResult reports one scored quiz. Saved reflects persistence only;
// the score itself is always valid even when the save failed.
type AttemptResult struct {
	QuizID         string `json:"quizId"`
	QuizTitle      string `json:"quizTitle"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	CorrectAnswers int    `json:"correctAnswers"`
	Saved          bool   `json:"saved"`
	SaveError      string `json:"saveError,omitempty"`
}

// BiasReport is the structured outcome of a news-bias analysis.
type BiasReport struct {
	BiasRating    string   `json:"bias_rating"` // Left, Center-Left, Center, Center-Right, Right
	Confidence    float64  `json:"confidence"`  // 0-100
	KeyIndicators []string `json:"key_indicators"`
	Examples      []string `json:"examples"`
	Suggestions   string   `json:"suggestions"`
	Summary       string   `json:"summary"`
}

// NewsArticle is one headline from the market-news fetch.
type NewsArticle struct {
	Headline       string `json:"headline"`
	Summary        string `json:"summary"`
	Source         string `json:"source"`
	URL            string `json:"url"`
	StockMentioned string `json:"stock_mentioned,omitempty"`
}

// ChatMessage is one turn of the tutor conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// LeaderboardEntry is one ranked speed-challenge result.
type LeaderboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}
