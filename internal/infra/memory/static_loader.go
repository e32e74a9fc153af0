package memory

import (
	"context"

	"civiccents-service/internal/domain"
)

// StaticQuizLoader serves a fixed quiz catalog from memory. It backs the
// server when no database is configured, and tests.
type StaticQuizLoader struct {
	quizzes []domain.Quiz
	byID    map[string]domain.Quiz
}

func NewStaticQuizLoader(quizzes []domain.Quiz) *StaticQuizLoader {
	byID := make(map[string]domain.Quiz, len(quizzes))
	for _, q := range quizzes {
		byID[q.ID] = q
	}
	return &StaticQuizLoader{quizzes: quizzes, byID: byID}
}

func (l *StaticQuizLoader) LoadQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	if quiz, ok := l.byID[quizID]; ok {
		return quiz, nil
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func (l *StaticQuizLoader) ListQuizzes(_ context.Context) ([]domain.Quiz, error) {
	return l.quizzes, nil
}

// SeedQuizzes is the built-in catalog used when no backing store is wired.
func SeedQuizzes() []domain.Quiz {
	return []domain.Quiz{
		{
			ID:          "branches-of-government",
			Title:       "Branches of Government",
			Description: "How the three branches share power.",
			Category:    "politics",
			Difficulty:  "beginner",
			Questions: []domain.Question{
				{
					Question:      "How many branches does the U.S. federal government have?",
					Options:       []string{"Two", "Three", "Four", "Five"},
					CorrectAnswer: "Three",
					Explanation:   "The Constitution splits power between the legislative, executive, and judicial branches.",
				},
				{
					Question:      "Which branch writes federal laws?",
					Options:       []string{"Executive", "Judicial", "Legislative", "State governors"},
					CorrectAnswer: "Legislative",
					Explanation:   "Congress, made up of the House and Senate, writes and passes federal laws.",
				},
				{
					Question:      "Who leads the executive branch?",
					Options:       []string{"The Chief Justice", "The Speaker of the House", "The President", "The Senate Majority Leader"},
					CorrectAnswer: "The President",
					Explanation:   "The President enforces the laws Congress passes and leads the executive branch.",
				},
				{
					Question:      "What can the judicial branch do to a law?",
					Options:       []string{"Veto it", "Rewrite it", "Declare it unconstitutional", "Fund it"},
					CorrectAnswer: "Declare it unconstitutional",
					Explanation:   "Courts review laws and can strike down ones that conflict with the Constitution.",
				},
				{
					Question:      "What is the system that keeps any one branch from growing too powerful?",
					Options:       []string{"Checks and balances", "Federal reserve", "Popular vote", "Term limits"},
					CorrectAnswer: "Checks and balances",
					Explanation:   "Each branch can limit the others, so no single branch controls the government.",
				},
			},
		},
		{
			ID:          "voting-and-elections",
			Title:       "Voting and Elections",
			Description: "How citizens choose their leaders.",
			Category:    "politics",
			Difficulty:  "beginner",
			Questions: []domain.Question{
				{
					Question:      "At what age can U.S. citizens vote in federal elections?",
					Options:       []string{"16", "18", "21", "25"},
					CorrectAnswer: "18",
					Explanation:   "The 26th Amendment set the federal voting age at 18.",
				},
				{
					Question:      "How often are presidential elections held?",
					Options:       []string{"Every 2 years", "Every 4 years", "Every 6 years", "Every 8 years"},
					CorrectAnswer: "Every 4 years",
					Explanation:   "Presidential elections happen every four years, in even-numbered years.",
				},
				{
					Question:      "What body formally elects the President?",
					Options:       []string{"The Senate", "The Supreme Court", "The Electoral College", "The House of Representatives"},
					CorrectAnswer: "The Electoral College",
					Explanation:   "Voters choose electors, and the Electoral College casts the votes that decide the presidency.",
				},
				{
					Question:      "How long is one term for a U.S. Senator?",
					Options:       []string{"2 years", "4 years", "6 years", "8 years"},
					CorrectAnswer: "6 years",
					Explanation:   "Senators serve six-year terms, with about a third of seats up for election every two years.",
				},
			},
		},
		{
			ID:          "budgeting-basics",
			Title:       "Budgeting Basics",
			Description: "Needs, wants, and making a plan for your money.",
			Category:    "finance",
			Difficulty:  "beginner",
			Questions: []domain.Question{
				{
					Question:      "In the 50/30/20 rule, what does the 20% go toward?",
					Options:       []string{"Needs", "Wants", "Savings", "Taxes"},
					CorrectAnswer: "Savings",
					Explanation:   "The rule allocates 50% to needs, 30% to wants, and 20% to savings.",
				},
				{
					Question:      "Which of these is a need rather than a want?",
					Options:       []string{"Concert tickets", "Rent", "A new video game", "Designer sneakers"},
					CorrectAnswer: "Rent",
					Explanation:   "Needs are essentials like housing, food, and utilities.",
				},
				{
					Question:      "What is an emergency fund for?",
					Options:       []string{"Vacations", "Unexpected expenses", "Daily snacks", "Charity"},
					CorrectAnswer: "Unexpected expenses",
					Explanation:   "An emergency fund covers surprises like car repairs or medical bills without going into debt.",
				},
				{
					Question:      "What happens if you consistently spend more than you earn?",
					Options:       []string{"Your savings grow", "You build debt", "Your credit improves", "Nothing"},
					CorrectAnswer: "You build debt",
					Explanation:   "Spending beyond your income means borrowing to cover the gap, which builds debt.",
				},
				{
					Question:      "What is the first step in making a budget?",
					Options:       []string{"Open a credit card", "Track your income and expenses", "Buy a safe", "Pick stocks"},
					CorrectAnswer: "Track your income and expenses",
					Explanation:   "A budget starts with knowing how much comes in and where it goes.",
				},
			},
		},
		{
			ID:          "investing-101",
			Title:       "Investing 101",
			Description: "Stocks, risk, and growing money over time.",
			Category:    "finance",
			Difficulty:  "intermediate",
			Questions: []domain.Question{
				{
					Question:      "What does owning a share of stock mean?",
					Options:       []string{"You lent the company money", "You own a small piece of the company", "You work for the company", "You owe the company money"},
					CorrectAnswer: "You own a small piece of the company",
					Explanation:   "A share of stock is partial ownership in a company.",
				},
				{
					Question:      "What is diversification?",
					Options:       []string{"Buying one stock you love", "Spreading money across different investments", "Selling everything at once", "Only holding cash"},
					CorrectAnswer: "Spreading money across different investments",
					Explanation:   "Diversification spreads risk so one bad investment hurts less.",
				},
				{
					Question:      "What is compound interest?",
					Options:       []string{"Interest earned only on your deposit", "Interest earned on interest", "A bank fee", "A type of loan"},
					CorrectAnswer: "Interest earned on interest",
					Explanation:   "Compound interest means your earnings also earn, which grows money faster over time.",
				},
				{
					Question:      "Generally, investments with higher potential returns carry what?",
					Options:       []string{"Higher risk", "Lower risk", "No risk", "Guaranteed profit"},
					CorrectAnswer: "Higher risk",
					Explanation:   "Risk and potential return move together. Higher possible gains mean bigger possible losses.",
				},
			},
		},
	}
}
