package app

import (
	"math"

	"civiccents-service/internal/domain"
)

// QuizRun steps through one quiz attempt: select an answer, submit to lock
// in correctness and reveal the explanation, advance to the next question.
// Answers are not remembered across runs; a retake starts a fresh run.
type QuizRun struct {
	quiz     domain.Quiz
	Index    int
	Selected string
	Revealed bool
	Complete bool
	correct  int
	answered int
}

func NewQuizRun(quiz domain.Quiz) *QuizRun {
	return &QuizRun{quiz: quiz}
}

// Question returns the question currently presented.
func (r *QuizRun) Question() domain.Question {
	return r.quiz.Questions[r.Index]
}

// Select records a candidate answer. Selection is locked once the answer
// has been submitted.
func (r *QuizRun) Select(option string) error {
	if r.Complete || r.Revealed {
		return domain.ErrGameNotActive
	}
	r.Selected = option
	return nil
}

// Submit locks in the selected answer and reveals correctness plus the
// explanation. A selection is required first.
func (r *QuizRun) Submit() (bool, string, error) {
	if r.Complete || r.Revealed || r.Selected == "" {
		return false, "", domain.ErrGameNotActive
	}
	q := r.Question()
	correct := r.Selected == q.CorrectAnswer
	if correct {
		r.correct++
	}
	r.answered++
	r.Revealed = true
	return correct, q.Explanation, nil
}

// Skip counts the current question as answered incorrectly without a
// selection, used when an answer sheet leaves a question blank.
func (r *QuizRun) Skip() error {
	if r.Complete || r.Revealed {
		return domain.ErrGameNotActive
	}
	r.answered++
	r.Revealed = true
	return nil
}

// Advance moves to the next question, or completes the run on the last one.
func (r *QuizRun) Advance() error {
	if r.Complete || !r.Revealed {
		return domain.ErrGameNotActive
	}
	if r.Index < len(r.quiz.Questions)-1 {
		r.Index++
		r.Selected = ""
		r.Revealed = false
		return nil
	}
	r.Complete = true
	return nil
}

// CorrectCount reports how many submitted answers were correct.
func (r *QuizRun) CorrectCount() int {
	return r.correct
}

// Score computes the rounded percentage for the run so far.
func (r *QuizRun) Score() int {
	return Score(r.correct, len(r.quiz.Questions))
}

// Score is the canonical percentage: round(correct/total*100), always in
// [0,100] for total >= 1.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
