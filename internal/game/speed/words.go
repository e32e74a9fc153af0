package speed

import "math/rand"

type wordEntry struct {
	prompt  string
	options []string
	correct int
}

var vocabularyWords = map[Difficulty][]wordEntry{
	Easy: {
		{"Happy", []string{"Sad", "Joyful", "Angry", "Tired"}, 1},
		{"Big", []string{"Small", "Large", "Tiny", "Little"}, 1},
		{"Fast", []string{"Quick", "Slow", "Late", "Early"}, 0},
		{"Smart", []string{"Dumb", "Intelligent", "Silly", "Funny"}, 1},
		{"Beautiful", []string{"Ugly", "Pretty", "Mean", "Nice"}, 1},
	},
	Medium: {
		{"Eloquent", []string{"Articulate", "Silent", "Confused", "Angry"}, 0},
		{"Diligent", []string{"Lazy", "Hardworking", "Sleepy", "Quick"}, 1},
		{"Benevolent", []string{"Mean", "Kind", "Strict", "Funny"}, 1},
		{"Resilient", []string{"Weak", "Strong", "Tough", "Fragile"}, 2},
		{"Meticulous", []string{"Careful", "Careless", "Fast", "Slow"}, 0},
	},
	Hard: {
		{"Ubiquitous", []string{"Rare", "Everywhere", "Hidden", "Lost"}, 1},
		{"Ephemeral", []string{"Permanent", "Temporary", "Eternal", "Long"}, 1},
		{"Ambiguous", []string{"Clear", "Unclear", "Bright", "Dark"}, 1},
		{"Pragmatic", []string{"Practical", "Idealistic", "Lazy", "Busy"}, 0},
		{"Paradox", []string{"Truth", "Contradiction", "Lie", "Story"}, 1},
	},
}

var grammarQuestions = map[Difficulty][]wordEntry{
	Easy: {
		{"She _____ to school every day.", []string{"go", "goes", "going", "went"}, 1},
		{"They _____ playing soccer.", []string{"is", "am", "are", "be"}, 2},
		{"I _____ my homework yesterday.", []string{"do", "did", "does", "doing"}, 1},
	},
	Medium: {
		{"The book _____ on the table is mine.", []string{"laying", "lying", "lies", "laid"}, 1},
		{"Neither the teacher nor the students _____ ready.", []string{"is", "are", "was", "be"}, 1},
		{"She speaks _____ than her sister.", []string{"more clearly", "more clear", "clearer", "most clear"}, 0},
	},
	Hard: {
		{"The committee _____ reached a decision.", []string{"have", "has", "had", "having"}, 1},
		{"If I _____ you, I would study harder.", []string{"am", "was", "were", "be"}, 2},
		{"The data _____ been analyzed carefully.", []string{"has", "have", "is", "are"}, 1},
	},
}

// GenerateWord draws a vocabulary or grammar question, choosing the kind
// uniformly, the way the word challenge mixes both.
func GenerateWord(diff Difficulty, rnd *rand.Rand) Problem {
	kind := "vocabulary"
	table := vocabularyWords[diff]
	if rnd.Intn(2) == 1 {
		kind = "grammar"
		table = grammarQuestions[diff]
	}
	entry := table[rnd.Intn(len(table))]
	return Problem{
		Kind:     kind,
		Question: entry.prompt,
		Options:  entry.options,
		Answer:   entry.options[entry.correct],
		answerAt: entry.correct,
	}
}
