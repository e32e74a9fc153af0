package budget_test

import (
	"math/rand"
	"testing"

	"civiccents-service/internal/domain"
	"civiccents-service/internal/game/budget"
)

func newSession(seed int64, catalog []budget.Scenario) *budget.Session {
	return budget.NewSession(catalog, rand.New(rand.NewSource(seed)))
}

func TestAllocationSplitsIncomeExactly(t *testing.T) {
	for _, income := range []float64{1000, 2000, 3456.78, 7500, 10000} {
		s := newSession(1, budget.Catalog())
		if err := s.Start(income); err != nil {
			t.Fatalf("start with income %v: %v", income, err)
		}
		sum := s.Allocation.Needs + s.Allocation.Wants + s.Allocation.Savings
		if sum != income {
			t.Fatalf("allocation for %v sums to %v", income, sum)
		}
		if s.CurrentBalance != income {
			t.Fatalf("expected balance %v, got %v", income, s.CurrentBalance)
		}
	}

	s := newSession(1, budget.Catalog())
	if err := s.Start(2000); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.Allocation.Needs != 1000 || s.Allocation.Wants != 600 || s.Allocation.Savings != 400 {
		t.Fatalf("unexpected 50/30/20 split: %+v", s.Allocation)
	}
	if s.TotalSavings != 400 {
		t.Fatalf("expected initial savings 400, got %v", s.TotalSavings)
	}
}

func TestStartRejectsIncomeOutOfRange(t *testing.T) {
	for _, income := range []float64{999.99, 0, -500, 10000.01} {
		s := newSession(1, budget.Catalog())
		if err := s.Start(income); err != domain.ErrIncomeOutOfRange {
			t.Fatalf("income %v: expected range error, got %v", income, err)
		}
		if s.Status != budget.StatusSetup {
			t.Fatalf("rejected start must not leave setup, got %s", s.Status)
		}
	}
}

func TestOverspendFreezesSessionAtLastValidBalance(t *testing.T) {
	catalog := []budget.Scenario{{
		ID:    1,
		Type:  "expense",
		Title: "Emergency",
		Choices: []budget.Choice{
			{Text: "Pay it all", Impact: -2200, Category: "needs"},
		},
	}}
	s := newSession(1, catalog)
	if err := s.Start(2000); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := s.ApplyChoice(0); err != domain.ErrInsufficientFunds {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if s.Status != budget.StatusGameOver {
		t.Fatalf("expected gameOver, got %s", s.Status)
	}
	if s.CurrentBalance != 2000 {
		t.Fatalf("balance must stay frozen at 2000, got %v", s.CurrentBalance)
	}
	if s.TotalSavings != 400 {
		t.Fatalf("savings must be untouched, got %v", s.TotalSavings)
	}
	if len(s.History) != 0 {
		t.Fatalf("failed choice must not enter history, got %d entries", len(s.History))
	}

	// Terminal state: no further mutation.
	if err := s.ApplyChoice(0); err != domain.ErrGameOver {
		t.Fatalf("expected game over error, got %v", err)
	}
	if err := s.AdvanceMonth(); err != domain.ErrGameNotActive {
		t.Fatalf("expected not-active error, got %v", err)
	}
}

func TestSavingsCategoryAndSplitBothAccrue(t *testing.T) {
	catalog := []budget.Scenario{{
		ID:    2,
		Type:  "income",
		Title: "Bonus",
		Choices: []budget.Choice{
			{Text: "Save half, spend half", Impact: 150, Category: "savings", SplitAmount: 150},
		},
	}}
	s := newSession(1, catalog)
	if err := s.Start(2000); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.ApplyChoice(0); err != nil {
		t.Fatalf("apply: %v", err)
	}
	// 400 initial + 150 category + 150 split.
	if s.TotalSavings != 700 {
		t.Fatalf("expected savings 700, got %v", s.TotalSavings)
	}
	if s.CurrentBalance != 2150 {
		t.Fatalf("expected balance 2150, got %v", s.CurrentBalance)
	}
}

func TestMonthCompletesAfterFiveChoices(t *testing.T) {
	s := newSession(42, budget.Catalog())
	if err := s.Start(10000); err != nil {
		t.Fatalf("start: %v", err)
	}

	seen := map[int]bool{}
	for i := 0; i < budget.ScenariosPerMonth; i++ {
		if s.Current == nil {
			t.Fatalf("expected a scenario in play at step %d", i)
		}
		if seen[s.Current.ID] {
			t.Fatalf("scenario %d repeated within one month", s.Current.ID)
		}
		seen[s.Current.ID] = true
		if err := s.ApplyChoice(0); err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
		if len(s.History) != i+1 {
			t.Fatalf("history length %d after %d choices", len(s.History), i+1)
		}
	}
	if s.Status != budget.StatusMonthComplete {
		t.Fatalf("expected monthComplete after %d choices, got %s", budget.ScenariosPerMonth, s.Status)
	}
	if s.Current != nil {
		t.Fatalf("no scenario should be in play after month completion")
	}
}

func TestAdvanceMonthResetsBalanceAndAddsAllocation(t *testing.T) {
	s := newSession(7, budget.Catalog())
	if err := s.Start(5000); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < budget.ScenariosPerMonth; i++ {
		if err := s.ApplyChoice(0); err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
	}

	savingsBefore := s.TotalSavings
	if err := s.AdvanceMonth(); err != nil {
		t.Fatalf("advance month: %v", err)
	}
	if s.Month != 2 {
		t.Fatalf("expected month 2, got %d", s.Month)
	}
	if s.CurrentBalance != 5000 {
		t.Fatalf("expected balance reset to income, got %v", s.CurrentBalance)
	}
	if s.TotalSavings != savingsBefore+s.Allocation.Savings {
		t.Fatalf("expected monthly allocation added, got %v (was %v)", s.TotalSavings, savingsBefore)
	}
	if len(s.History) != 0 {
		t.Fatalf("history must reset on rollover")
	}
	if s.Status != budget.StatusActive || s.Current == nil {
		t.Fatalf("expected active with fresh scenario, got %s", s.Status)
	}
}

func TestGoalReachedDoesNotTerminate(t *testing.T) {
	s := newSession(3, budget.Catalog())
	if err := s.Start(10000); err != nil {
		t.Fatalf("start: %v", err)
	}
	// 2000/month allocation: months 1-3 reach the 5000 goal.
	for s.TotalSavings < s.SavingsGoal {
		for s.Status == budget.StatusActive {
			if err := s.ApplyChoice(0); err != nil {
				t.Fatalf("apply: %v", err)
			}
		}
		if err := s.AdvanceMonth(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	if !s.GoalReached() {
		t.Fatalf("expected goal reached")
	}
	if s.Status != budget.StatusActive {
		t.Fatalf("goal must not terminate play, got %s", s.Status)
	}
	if err := s.ApplyChoice(0); err != nil {
		t.Fatalf("play past goal: %v", err)
	}
}

func TestResetReturnsToSetup(t *testing.T) {
	s := newSession(9, budget.Catalog())
	if err := s.Start(2000); err != nil {
		t.Fatalf("start: %v", err)
	}
	_ = s.ApplyChoice(0)
	s.Reset()
	if s.Status != budget.StatusSetup || s.Month != 0 || s.TotalSavings != 0 {
		t.Fatalf("reset left residual state: %+v", s)
	}
	if err := s.Start(3000); err != nil {
		t.Fatalf("restart after reset: %v", err)
	}
}

func TestDrawNeverRepeatsWithinRound(t *testing.T) {
	catalog := budget.Catalog()
	rnd := rand.New(rand.NewSource(99))
	for round := 0; round < 1000; round++ {
		used := map[int]bool{}
		for i := 0; i < budget.ScenariosPerMonth; i++ {
			sc, ok := budget.Draw(catalog, used, rnd)
			if !ok {
				t.Fatalf("catalog exhausted early in round %d", round)
			}
			if used[sc.ID] {
				t.Fatalf("round %d drew scenario %d twice", round, sc.ID)
			}
			used[sc.ID] = true
		}
	}
}
