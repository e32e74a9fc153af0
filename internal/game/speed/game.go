package speed

import (
	"math/rand"
	"strconv"
	"strings"

	"civiccents-service/internal/domain"
)

// Phase enumerates the timed-game lifecycle.
type Phase string

const (
	PhaseSetup   Phase = "setup"
	PhaseActive  Phase = "active"
	PhaseExpired Phase = "expired"
)

// Mode selects which generator and scoring table a game runs with.
type Mode string

const (
	ModeMath Mode = "math"
	ModeWord Mode = "word"
)

// RoundSeconds is the fixed countdown for every speed challenge.
const RoundSeconds = 60

// Result reports one submission.
type Result struct {
	Correct       bool   `json:"correct"`
	XPEarned      int    `json:"xpEarned"`
	CorrectAnswer string `json:"correctAnswer"`
	Score         int    `json:"score"`
	Streak        int    `json:"streak"`
}

// Game is the timed-challenge state machine. The countdown is advanced by
// the caller through Tick, one call per wall-clock second, so tests can run
// it without real timers. Once the countdown reaches zero the game is
// expired and submissions no longer mutate anything.
type Game struct {
	rnd *rand.Rand

	Phase      Phase      `json:"phase"`
	Mode       Mode       `json:"mode"`
	Difficulty Difficulty `json:"difficulty"`
	Score      int        `json:"score"`
	Streak     int        `json:"streak"`
	TotalXP    int        `json:"totalXP"`
	Completed  int        `json:"completed"`
	TimeLeft   int        `json:"timeLeft"`
	Current    *Problem   `json:"problem,omitempty"`
}

// NewGame builds a game in the setup phase.
func NewGame(mode Mode, diff Difficulty, rnd *rand.Rand) *Game {
	return &Game{rnd: rnd, Phase: PhaseSetup, Mode: mode, Difficulty: diff}
}

// Start (re)initializes counters, the countdown and the first problem.
// Replay after expiry re-enters here with the same difficulty.
func (g *Game) Start() {
	g.Score = 0
	g.Streak = 0
	g.TotalXP = 0
	g.Completed = 0
	g.TimeLeft = RoundSeconds
	g.Phase = PhaseActive
	g.next()
}

// Tick advances the countdown by one second and reports whether the game
// just expired. Expiry freezes score and streak for display.
func (g *Game) Tick() bool {
	if g.Phase != PhaseActive {
		return false
	}
	g.TimeLeft--
	if g.TimeLeft <= 0 {
		g.TimeLeft = 0
		g.Phase = PhaseExpired
		g.Current = nil
		return true
	}
	return false
}

// Submit evaluates an answer against the current problem and advances to the
// next one. Math answers are compared by strict equality on the parsed float;
// all generated math answers are integers, so no tolerance band is needed.
// Word answers are submitted as an option index.
func (g *Game) Submit(input string) (Result, error) {
	if g.Phase == PhaseExpired {
		return Result{}, domain.ErrTimeExpired
	}
	if g.Phase != PhaseActive || g.Current == nil {
		return Result{}, domain.ErrGameNotActive
	}

	problem := g.Current
	correct := false
	if g.Mode == ModeMath {
		if v, err := strconv.ParseFloat(strings.TrimSpace(input), 64); err == nil {
			correct = v == problem.numeric
		}
	} else {
		if idx, err := strconv.Atoi(strings.TrimSpace(input)); err == nil {
			correct = idx == problem.answerAt
		}
	}

	bonus, xpStep := 20, 10
	if g.Mode == ModeWord {
		bonus, xpStep = 25, 15
	}

	res := Result{Correct: correct, CorrectAnswer: problem.Answer}
	if correct {
		g.Score += 100 + g.Streak*bonus
		res.XPEarned = (g.Streak + 1) * xpStep
		g.TotalXP += res.XPEarned
		g.Streak++
	} else {
		g.Streak = 0
	}
	g.Completed++
	g.next()

	res.Score = g.Score
	res.Streak = g.Streak
	return res, nil
}

func (g *Game) next() {
	var p Problem
	if g.Mode == ModeMath {
		p = GenerateMath(g.Difficulty, g.rnd)
	} else {
		p = GenerateWord(g.Difficulty, g.rnd)
	}
	g.Current = &p
}
