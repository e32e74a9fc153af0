package market

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"civiccents-service/internal/domain"
	"civiccents-service/internal/llm"
)

const newsPrompt = `Find the latest market news and updates for these stocks and ETFs: %s.
Return 8-10 recent news articles with headlines, brief summaries, and source URLs.
Focus on market-moving news, earnings reports, analyst ratings, and industry trends.`

// NewsService fetches headlines for the simulator's tickers through the
// language model with internet grounding.
type NewsService struct {
	llm llm.Client
}

func NewNewsService(client llm.Client) *NewsService {
	return &NewsService{llm: client}
}

// Fetch returns recent articles for the given symbols. One attempt; the
// caller surfaces failures as a generic message.
func (n *NewsService) Fetch(ctx context.Context, symbols []string) ([]domain.NewsArticle, error) {
	raw, err := n.llm.Generate(ctx, llm.Request{
		Prompt:         fmt.Sprintf(newsPrompt, strings.Join(symbols, ", ")),
		UseSearch:      true,
		ResponseSchema: newsSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch market news: %w", err)
	}

	var payload struct {
		Articles []domain.NewsArticle `json:"articles"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decode market news: %w", err)
	}
	return payload.Articles, nil
}

func newsSchema() *llm.Schema {
	return &llm.Schema{
		Type: "object",
		Properties: map[string]*llm.Schema{
			"articles": {
				Type: "array",
				Items: &llm.Schema{
					Type: "object",
					Properties: map[string]*llm.Schema{
						"headline":        {Type: "string"},
						"summary":         {Type: "string"},
						"source":          {Type: "string"},
						"url":             {Type: "string"},
						"stock_mentioned": {Type: "string"},
					},
				},
			},
		},
	}
}
