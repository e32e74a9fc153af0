package speed

import (
	"fmt"
	"math/rand"
)

// Difficulty selects operand ranges and operator sets.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Problem is immutable once generated and discarded after one submission.
// Math problems are free-input (Options empty, Answer an integer); word
// problems are multiple choice with Answer holding the correct index's text.
type Problem struct {
	Kind     string   `json:"kind"` // "math", "vocabulary", "grammar"
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Answer   string   `json:"-"`
	answerAt int      // option index for word problems
	numeric  float64  // parsed answer for math problems
}

// GenerateMath produces one arithmetic problem. The hard tier's division
// multiplies the operands first and uses the product as the dividend, so
// every generated quotient is an integer.
func GenerateMath(diff Difficulty, rnd *rand.Rand) Problem {
	var num1, num2 int
	var ops []string

	switch diff {
	case Easy:
		num1 = rnd.Intn(20) + 1
		num2 = rnd.Intn(20) + 1
		ops = []string{"+", "-"}
	case Medium:
		num1 = rnd.Intn(50) + 10
		num2 = rnd.Intn(50) + 10
		ops = []string{"+", "-", "×"}
	default:
		num1 = rnd.Intn(100) + 20
		num2 = rnd.Intn(100) + 20
		ops = []string{"+", "-", "×", "÷"}
	}

	op := ops[rnd.Intn(len(ops))]
	var answer int
	switch op {
	case "+":
		answer = num1 + num2
	case "-":
		answer = num1 - num2
	case "×":
		answer = num1 * num2
	default:
		num1 = num1 * num2
		answer = num1 / num2
	}

	return Problem{
		Kind:     "math",
		Question: fmt.Sprintf("%d %s %d", num1, op, num2),
		Answer:   fmt.Sprintf("%d", answer),
		numeric:  float64(answer),
	}
}
