package assist

import (
	"context"
	"encoding/json"
	"fmt"

	"civiccents-service/internal/domain"
	"civiccents-service/internal/llm"
)

const biasPrompt = `Analyze the following news article for political bias. Provide a detailed analysis including:
1. Overall bias rating (Left, Center-Left, Center, Center-Right, Right)
2. Confidence level (0-100)
3. Key indicators of bias found in the article
4. Specific examples of biased language or framing
5. Suggestions for more balanced coverage

Article content:
%s`

// BiasAnalyzer grades news articles on a five-point political spectrum.
type BiasAnalyzer struct {
	llm llm.Client
}

func NewBiasAnalyzer(client llm.Client) *BiasAnalyzer {
	return &BiasAnalyzer{llm: client}
}

// Analyze accepts a URL, pasted text, or both; at least one is required.
// When only a URL is given the model fetches the article itself, so internet
// grounding is enabled for that case.
func (a *BiasAnalyzer) Analyze(ctx context.Context, articleURL, articleText string) (domain.BiasReport, error) {
	if articleURL == "" && articleText == "" {
		return domain.BiasReport{}, domain.ErrEmptyArticle
	}

	content := articleText
	if articleURL != "" && articleText == "" {
		content = "Please fetch and analyze the article from this URL: " + articleURL
	}

	raw, err := a.llm.Generate(ctx, llm.Request{
		Prompt:         fmt.Sprintf(biasPrompt, content),
		UseSearch:      articleURL != "",
		ResponseSchema: biasSchema(),
	})
	if err != nil {
		return domain.BiasReport{}, fmt.Errorf("analyze article: %w", err)
	}

	var report domain.BiasReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return domain.BiasReport{}, fmt.Errorf("decode bias report: %w", err)
	}
	return report, nil
}

func biasSchema() *llm.Schema {
	return &llm.Schema{
		Type: "object",
		Properties: map[string]*llm.Schema{
			"bias_rating": {
				Type: "string",
				Enum: []string{"Left", "Center-Left", "Center", "Center-Right", "Right"},
			},
			"confidence": {
				Type:        "number",
				Description: "Confidence level 0-100",
			},
			"key_indicators": {
				Type:  "array",
				Items: &llm.Schema{Type: "string"},
			},
			"examples": {
				Type:  "array",
				Items: &llm.Schema{Type: "string"},
			},
			"suggestions": {Type: "string"},
			"summary":     {Type: "string"},
		},
	}
}
