package research

import (
	"context"
	"fmt"
	"time"
)

// Answer is a cited research response.
type Answer struct {
	Answer    string   `json:"answer"`
	Citations []string `json:"citations"`
}

// Client talks to a Perplexity-style chat completions API that returns
// citations alongside the answer.
type Client struct {
	APIKey  string
	BaseURL string
	Model   string
	http    jsonDoer
}

type jsonDoer interface {
	DoJSON(ctx context.Context, method, url string, headers map[string]string, body any, out any) error
}

func NewClient(apiKey, baseURL, model string, doer jsonDoer) *Client {
	if baseURL == "" {
		baseURL = "https://api.perplexity.ai"
	}
	if model == "" {
		model = "sonar"
	}
	return &Client{APIKey: apiKey, BaseURL: baseURL, Model: model, http: doer}
}

// Query asks one research question and returns the cited answer.
func (c *Client) Query(ctx context.Context, query string) (Answer, error) {
	body := map[string]any{
		"model": c.Model,
		"messages": []map[string]string{
			{"role": "user", "content": query},
		},
	}
	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Citations []string `json:"citations"`
	}
	headers := map[string]string{"Authorization": "Bearer " + c.APIKey}
	if err := c.http.DoJSON(ctx, "POST", c.BaseURL+"/chat/completions", headers, body, &out); err != nil {
		return Answer{}, fmt.Errorf("research query: %w", err)
	}
	if len(out.Choices) == 0 {
		return Answer{}, fmt.Errorf("research query: no choices")
	}
	return Answer{Answer: out.Choices[0].Message.Content, Citations: out.Citations}, nil
}

// DefaultTimeout is applied by callers constructing the shared HTTP client.
const DefaultTimeout = 30 * time.Second
