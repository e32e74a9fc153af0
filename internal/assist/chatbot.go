package assist

import (
	"context"
	"fmt"
	"log"
	"strings"

	"civiccents-service/internal/domain"
	"civiccents-service/internal/llm"
)

// historyWindow is how many prior turns are folded into the prompt.
const historyWindow = 4

// FallbackReply is shown whenever the model call fails. The conversation
// itself never errors out.
const FallbackReply = "Sorry, I'm having trouble responding right now. Please try again in a moment!"

const tutorPrompt = `You are a friendly and knowledgeable educational assistant for Civiccents.org, helping students learn about U.S. politics, government, and personal finance.

Your role:
- Explain complex topics in simple, easy-to-understand language
- Use examples and analogies that teenagers and young adults can relate to
- Be encouraging and supportive
- Break down complicated concepts into digestible pieces
- When explaining political concepts, remain neutral and factual
- For finance topics, give practical, actionable advice

Topics you help with:
- U.S. Government Structure (branches, checks and balances)
- The Constitution and Bill of Rights
- Elections and voting processes
- Budgeting and personal finance
- Credit scores and debt management
- Saving and investing basics

Keep responses concise (2-4 paragraphs max) unless the student asks for more detail.

Previous conversation:
%s

Student's question: %s`

// Chatbot answers student questions through the language model.
type Chatbot struct {
	llm llm.Client
}

func NewChatbot(client llm.Client) *Chatbot {
	return &Chatbot{llm: client}
}

// Reply generates a tutor response for the message, carrying a short window
// of conversation context. Failures are logged and replaced with a canned
// apology; a single attempt, no retries.
func (c *Chatbot) Reply(ctx context.Context, history []domain.ChatMessage, message string) string {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	var lines []string
	for _, m := range history {
		speaker := "Tutor"
		if m.Role == "user" {
			speaker = "Student"
		}
		lines = append(lines, speaker+": "+m.Content)
	}

	prompt := fmt.Sprintf(tutorPrompt, strings.Join(lines, "\n"), message)
	reply, err := c.llm.Generate(ctx, llm.Request{Prompt: prompt})
	if err != nil || strings.TrimSpace(reply) == "" {
		log.Printf("chatbot reply failed: %v", err)
		return FallbackReply
	}
	return reply
}
