package budget

import "math/rand"

// Choice is one way to resolve a scenario. Impact is signed: income positive,
// spending negative. SplitAmount marks the savings portion of a partly-saved
// amount and accrues to total savings on top of the category rule.
type Choice struct {
	Text        string  `json:"text"`
	Impact      float64 `json:"impact"`
	Category    string  `json:"category"` // needs, wants, savings
	SplitAmount float64 `json:"splitAmount,omitempty"`
	Feedback    string  `json:"feedback"`
}

// Scenario is one scripted event drawn at most once per month.
type Scenario struct {
	ID          int      `json:"id"`
	Type        string   `json:"type"` // income or expense
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Choices     []Choice `json:"choices"`
}

// Draw picks a uniformly random scenario not yet used this month.
// ok=false signals the catalog is exhausted, which completes the round.
func Draw(catalog []Scenario, used map[int]bool, rnd *rand.Rand) (Scenario, bool) {
	remaining := make([]Scenario, 0, len(catalog))
	for _, s := range catalog {
		if !used[s.ID] {
			remaining = append(remaining, s)
		}
	}
	if len(remaining) == 0 {
		return Scenario{}, false
	}
	return remaining[rnd.Intn(len(remaining))], true
}

// Catalog returns the built-in set of monthly scenarios.
func Catalog() []Scenario {
	return []Scenario{
		{
			ID:          1,
			Type:        "expense",
			Title:       "Car Trouble",
			Description: "Your car broke down and needs immediate repair.",
			Choices: []Choice{
				{Text: "Pay for full repair ($400)", Impact: -400, Category: "needs", Feedback: "Good choice - your car is essential for work!"},
				{Text: "Get budget repair ($200)", Impact: -200, Category: "needs", Feedback: "Smart compromise - saves money but gets you moving."},
				{Text: "Skip repair, use public transit", Impact: -50, Category: "wants", Feedback: "Risky but frugal. Hope it doesn't cause bigger problems!"},
			},
		},
		{
			ID:          2,
			Type:        "income",
			Title:       "Bonus Income",
			Description: "You received a $300 bonus at work!",
			Choices: []Choice{
				{Text: "Save it all", Impact: 300, Category: "savings", Feedback: "Excellent! Building your emergency fund."},
				{Text: "Save half, spend half", Impact: 150, Category: "savings", SplitAmount: 150, Feedback: "Balanced approach - treating yourself responsibly."},
				{Text: "Spend it on something fun", Impact: 0, Category: "wants", Feedback: "You deserve it, but remember your savings goals!"},
			},
		},
		{
			ID:          3,
			Type:        "expense",
			Title:       "Friend's Birthday Party",
			Description: "Your best friend invited you to an expensive dinner ($80).",
			Choices: []Choice{
				{Text: "Go and pay full amount", Impact: -80, Category: "wants", Feedback: "Memories matter, but watch your budget!"},
				{Text: "Suggest cheaper alternative", Impact: -30, Category: "wants", Feedback: "Good negotiation! Friends understand budgets."},
				{Text: "Politely decline", Impact: 0, Category: "wants", Feedback: "Tough choice, but staying on budget."},
			},
		},
		{
			ID:          4,
			Type:        "expense",
			Title:       "Streaming Services",
			Description: "You have 4 streaming subscriptions totaling $60/month.",
			Choices: []Choice{
				{Text: "Keep all subscriptions", Impact: -60, Category: "wants", Feedback: "Entertainment is nice, but adds up fast!"},
				{Text: "Cancel 2 subscriptions", Impact: -30, Category: "wants", Feedback: "Smart cut! You probably don't use them all anyway."},
				{Text: "Cancel all but one", Impact: -15, Category: "wants", Feedback: "Frugal choice! One service is enough."},
			},
		},
		{
			ID:          5,
			Type:        "expense",
			Title:       "Medical Bill",
			Description: "Unexpected doctor visit and medication ($150).",
			Choices: []Choice{
				{Text: "Pay immediately", Impact: -150, Category: "needs", Feedback: "Health is wealth! Good priority."},
				{Text: "Set up payment plan", Impact: -50, Category: "needs", Feedback: "Manageable approach. Spreads the cost."},
			},
		},
		{
			ID:          6,
			Type:        "income",
			Title:       "Side Hustle Opportunity",
			Description: "You can earn $200 doing freelance work this weekend.",
			Choices: []Choice{
				{Text: "Take the gig", Impact: 200, Category: "savings", Feedback: "Hustle pays off! Extra income secured."},
				{Text: "Decline - need rest", Impact: 0, Category: "wants", Feedback: "Self-care matters too. Balance is key."},
			},
		},
		{
			ID:          7,
			Type:        "expense",
			Title:       "Grocery Shopping",
			Description: "Time to buy groceries for the week.",
			Choices: []Choice{
				{Text: "Buy premium/organic ($120)", Impact: -120, Category: "needs", Feedback: "Quality food, but expensive!"},
				{Text: "Buy regular groceries ($80)", Impact: -80, Category: "needs", Feedback: "Smart balance of quality and cost."},
				{Text: "Buy budget basics ($50)", Impact: -50, Category: "needs", Feedback: "Frugal choice! Meal planning helps."},
			},
		},
		{
			ID:          8,
			Type:        "expense",
			Title:       "New Phone?",
			Description: "Your phone is old but working. New model is $800 (or $40/month).",
			Choices: []Choice{
				{Text: "Buy new phone outright", Impact: -800, Category: "wants", Feedback: "Big expense! Could have saved that money."},
				{Text: "Finance it monthly", Impact: -40, Category: "wants", Feedback: "Debt adds up. Is it really necessary?"},
				{Text: "Keep current phone", Impact: 0, Category: "wants", Feedback: "Wise choice! If it works, don't replace it."},
			},
		},
		{
			ID:          9,
			Type:        "income",
			Title:       "Tax Refund",
			Description: "You got a $600 tax refund!",
			Choices: []Choice{
				{Text: "Save it all", Impact: 600, Category: "savings", Feedback: "Amazing! Big boost to your savings goal."},
				{Text: "Pay off debt", Impact: 300, Category: "needs", SplitAmount: 300, Feedback: "Smart! Reducing debt is investing in yourself."},
				{Text: "Splurge on vacation", Impact: 0, Category: "wants", Feedback: "Fun now, but goals delayed. Worth it?"},
			},
		},
		{
			ID:          10,
			Type:        "expense",
			Title:       "Coffee Habit",
			Description: "Daily $5 coffee = $150/month. Time to evaluate?",
			Choices: []Choice{
				{Text: "Keep buying daily", Impact: -150, Category: "wants", Feedback: "Small purchases add up to big money!"},
				{Text: "Cut to 3x per week", Impact: -60, Category: "wants", Feedback: "Good compromise! Saves $90/month."},
				{Text: "Make coffee at home", Impact: -20, Category: "wants", Feedback: "Frugal win! Saves $130/month."},
			},
		},
	}
}
