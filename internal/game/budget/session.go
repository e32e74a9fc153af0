package budget

import (
	"math/rand"

	"civiccents-service/internal/domain"
)

// Status enumerates the session lifecycle phases.
type Status string

const (
	StatusSetup         Status = "setup"
	StatusActive        Status = "active"
	StatusMonthComplete Status = "monthComplete"
	StatusGameOver      Status = "gameOver"
)

const (
	// ScenariosPerMonth is how many resolved choices end a month.
	ScenariosPerMonth = 5
	// DefaultSavingsGoal is the target that play is measured against.
	DefaultSavingsGoal = 5000

	minIncome = 1000
	maxIncome = 10000

	needsShare   = 0.5
	wantsShare   = 0.3
	savingsShare = 0.2
)

// Allocation is the 50/30/20 split of monthly income. Shares are exact
// floating-point products; no rounding is applied.
type Allocation struct {
	Needs   float64 `json:"needs"`
	Wants   float64 `json:"wants"`
	Savings float64 `json:"savings"`
}

// ResolvedChoice records one applied decision for the month's history.
type ResolvedChoice struct {
	ScenarioID int     `json:"scenarioId"`
	Title      string  `json:"title"`
	Choice     string  `json:"choice"`
	Impact     float64 `json:"impact"`
	Feedback   string  `json:"feedback"`
}

// Session is the budget challenge state machine. It owns no external
// dependencies: randomness comes in through the constructor so tests can
// drive it deterministically.
type Session struct {
	rnd     *rand.Rand
	catalog []Scenario

	Status         Status           `json:"status"`
	Month          int              `json:"month"`
	MonthlyIncome  float64          `json:"monthlyIncome"`
	Allocation     Allocation       `json:"budgetAllocation"`
	CurrentBalance float64          `json:"currentBalance"`
	TotalSavings   float64          `json:"totalSavings"`
	SavingsGoal    float64          `json:"savingsGoal"`
	Current        *Scenario        `json:"currentScenario,omitempty"`
	History        []ResolvedChoice `json:"scenarioHistory"`
}

// NewSession creates a session in the setup phase over the given catalog.
func NewSession(catalog []Scenario, rnd *rand.Rand) *Session {
	return &Session{
		rnd:         rnd,
		catalog:     catalog,
		Status:      StatusSetup,
		SavingsGoal: DefaultSavingsGoal,
	}
}

// Start validates the income, applies the 50/30/20 allocation and draws the
// first scenario. The initial total savings equals the monthly savings share.
func (s *Session) Start(income float64) error {
	if s.Status != StatusSetup {
		return domain.ErrGameNotActive
	}
	if income < minIncome || income > maxIncome {
		return domain.ErrIncomeOutOfRange
	}

	s.MonthlyIncome = income
	s.Allocation = Allocation{
		Needs:   income * needsShare,
		Wants:   income * wantsShare,
		Savings: income * savingsShare,
	}
	s.CurrentBalance = income
	s.TotalSavings = s.Allocation.Savings
	s.Month = 1
	s.History = nil
	s.Status = StatusActive
	s.drawScenario()
	return nil
}

// ApplyChoice resolves the current scenario with the choice at index i.
//
// A choice that would push the balance below zero ends the game: the session
// freezes at the last valid balance and every later mutation is rejected.
// Savings accrue from the category rule and from SplitAmount independently;
// a choice carrying both adds both (see DESIGN.md for the rationale).
func (s *Session) ApplyChoice(i int) error {
	switch s.Status {
	case StatusGameOver:
		return domain.ErrGameOver
	case StatusActive:
	default:
		return domain.ErrGameNotActive
	}
	if s.Current == nil || i < 0 || i >= len(s.Current.Choices) {
		return domain.ErrGameNotActive
	}

	choice := s.Current.Choices[i]
	newBalance := s.CurrentBalance + choice.Impact
	if newBalance < 0 {
		s.Status = StatusGameOver
		return domain.ErrInsufficientFunds
	}

	s.CurrentBalance = newBalance
	if choice.Category == "savings" && choice.Impact > 0 {
		s.TotalSavings += choice.Impact
	}
	if choice.SplitAmount > 0 {
		s.TotalSavings += choice.SplitAmount
	}

	s.History = append(s.History, ResolvedChoice{
		ScenarioID: s.Current.ID,
		Title:      s.Current.Title,
		Choice:     choice.Text,
		Impact:     choice.Impact,
		Feedback:   choice.Feedback,
	})
	s.Current = nil

	if len(s.History) >= ScenariosPerMonth {
		s.Status = StatusMonthComplete
		return nil
	}
	s.drawScenario()
	return nil
}

// AdvanceMonth rolls the session into the next month. The cash balance resets
// to the monthly income (prior months do not carry over) and the fixed savings
// allocation is added on top of whatever the month's choices accrued.
func (s *Session) AdvanceMonth() error {
	if s.Status != StatusMonthComplete {
		return domain.ErrGameNotActive
	}
	s.Month++
	s.CurrentBalance = s.MonthlyIncome
	s.TotalSavings += s.Allocation.Savings
	s.History = nil
	s.Status = StatusActive
	s.drawScenario()
	return nil
}

// GoalReached reports whether the savings goal has been met. Reaching the
// goal never terminates the session; play continues.
func (s *Session) GoalReached() bool {
	return s.TotalSavings >= s.SavingsGoal
}

// Reset returns the session to the setup phase.
func (s *Session) Reset() {
	*s = Session{
		rnd:         s.rnd,
		catalog:     s.catalog,
		Status:      StatusSetup,
		SavingsGoal: DefaultSavingsGoal,
	}
}

func (s *Session) drawScenario() {
	used := make(map[int]bool, len(s.History))
	for _, h := range s.History {
		used[h.ScenarioID] = true
	}
	if sc, ok := Draw(s.catalog, used, s.rnd); ok {
		s.Current = &sc
		return
	}
	s.Current = nil
	s.Status = StatusMonthComplete
}
