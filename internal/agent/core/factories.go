package core

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pepo-gtm/pepo/config"
)

// NewLLMProvider creates the provider for the configured default model. The
// model-name prefix picks the backend family: claude-* goes to Anthropic,
// everything else to OpenAI. A missing API key for the routed family is a
// hard error so it surfaces at startup, not mid-run.
func NewLLMProvider(cfg config.LLMConfig, model string) (LLMProvider, error) {
	if strings.HasPrefix(model, "claude-") {
		apiKey := cfg.Anthropic.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not found for model %s", model)
		}
		return NewAnthropicProvider(cfg.Anthropic, apiKey, cfg.Models), nil
	}
	apiKey := cfg.OpenAI.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not found for model %s", model)
	}
	return NewOpenAIProvider(cfg.OpenAI, apiKey, cfg.Models), nil
}

func modelInfoTable(provider string, models map[string]config.LLMModel) map[string]ModelInfo {
	out := make(map[string]ModelInfo, len(models))
	for key, m := range models {
		name := m.Name
		if name == "" {
			name = key
		}
		out[key] = ModelInfo{
			Name:            name,
			Provider:        provider,
			MaxTokens:       m.MaxTokens,
			CostPer1KInput:  m.CostPer1K,
			CostPer1KOutput: m.CostPer1KOutput,
		}
	}
	return out
}

func costFor(models map[string]ModelInfo, inputTokens, outputTokens int64, model string) float64 {
	info, ok := models[model]
	if !ok {
		return 0.0
	}
	inputCost := float64(inputTokens) / 1000.0 * info.CostPer1KInput
	outputCost := float64(outputTokens) / 1000.0 * info.CostPer1KOutput
	return inputCost + outputCost
}

// OpenAIProvider implements LLMProvider over the chat completions API.
type OpenAIProvider struct {
	cfg    config.LLMProviderConfig
	apiKey string
	models map[string]ModelInfo
	http   *HTTPClient
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(cfg config.LLMProviderConfig, apiKey string, models map[string]config.LLMModel) *OpenAIProvider {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &OpenAIProvider{
		cfg:    cfg,
		apiKey: apiKey,
		models: modelInfoTable("openai", models),
		http:   NewHTTPClient(timeout, cfg.MaxRetries, 500*time.Millisecond),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generate generates text using OpenAI
func (p *OpenAIProvider) Generate(ctx context.Context, prompt, systemPrompt, model string) (string, error) {
	resp, _, _, err := p.GenerateWithTokens(ctx, prompt, systemPrompt, model)
	return resp, err
}

// GenerateWithTokens generates text and returns token usage
func (p *OpenAIProvider) GenerateWithTokens(ctx context.Context, prompt, systemPrompt, model string) (string, int64, int64, error) {
	baseURL := p.cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	messages := []chatMessage{}
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body := map[string]any{
		"model":    model,
		"messages": messages,
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int64 `json:"prompt_tokens"`
			CompletionTokens int64 `json:"completion_tokens"`
		} `json:"usage"`
	}
	headers := map[string]string{"Authorization": "Bearer " + p.apiKey}
	if err := p.http.DoJSON(ctx, "POST", baseURL+"/chat/completions", headers, body, &out); err != nil {
		return "", 0, 0, fmt.Errorf("openai: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", 0, 0, fmt.Errorf("openai: no choices")
	}
	return out.Choices[0].Message.Content, out.Usage.PromptTokens, out.Usage.CompletionTokens, nil
}

// GetModelInfo returns information about a specific model
func (p *OpenAIProvider) GetModelInfo(model string) (ModelInfo, error) {
	info, exists := p.models[model]
	if !exists {
		return ModelInfo{}, fmt.Errorf("model not found: %s", model)
	}
	return info, nil
}

// CalculateCost calculates the cost for a given number of tokens
func (p *OpenAIProvider) CalculateCost(inputTokens, outputTokens int64, model string) float64 {
	return costFor(p.models, inputTokens, outputTokens, model)
}

// AnthropicProvider implements LLMProvider over the messages API.
type AnthropicProvider struct {
	cfg    config.LLMProviderConfig
	apiKey string
	models map[string]ModelInfo
	http   *HTTPClient
}

// NewAnthropicProvider creates a new Anthropic provider
func NewAnthropicProvider(cfg config.LLMProviderConfig, apiKey string, models map[string]config.LLMModel) *AnthropicProvider {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &AnthropicProvider{
		cfg:    cfg,
		apiKey: apiKey,
		models: modelInfoTable("anthropic", models),
		http:   NewHTTPClient(timeout, cfg.MaxRetries, 500*time.Millisecond),
	}
}

// Generate generates text using Anthropic
func (p *AnthropicProvider) Generate(ctx context.Context, prompt, systemPrompt, model string) (string, error) {
	resp, _, _, err := p.GenerateWithTokens(ctx, prompt, systemPrompt, model)
	return resp, err
}

// GenerateWithTokens generates text and returns token usage
func (p *AnthropicProvider) GenerateWithTokens(ctx context.Context, prompt, systemPrompt, model string) (string, int64, int64, error) {
	baseURL := p.cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}

	maxTokens := 4096
	if info, ok := p.models[model]; ok && info.MaxTokens > 0 {
		maxTokens = info.MaxTokens
	}

	body := map[string]any{
		"model":      model,
		"max_tokens": maxTokens,
		"messages":   []chatMessage{{Role: "user", Content: prompt}},
	}
	if systemPrompt != "" {
		body["system"] = systemPrompt
	}

	var out struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		Usage struct {
			InputTokens  int64 `json:"input_tokens"`
			OutputTokens int64 `json:"output_tokens"`
		} `json:"usage"`
	}
	headers := map[string]string{
		"x-api-key":         p.apiKey,
		"anthropic-version": "2023-06-01",
	}
	if err := p.http.DoJSON(ctx, "POST", baseURL+"/v1/messages", headers, body, &out); err != nil {
		return "", 0, 0, fmt.Errorf("anthropic: %w", err)
	}
	var text strings.Builder
	for _, block := range out.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", 0, 0, fmt.Errorf("anthropic: empty response")
	}
	return text.String(), out.Usage.InputTokens, out.Usage.OutputTokens, nil
}

// GetModelInfo returns information about a specific model
func (p *AnthropicProvider) GetModelInfo(model string) (ModelInfo, error) {
	info, exists := p.models[model]
	if !exists {
		return ModelInfo{}, fmt.Errorf("model not found: %s", model)
	}
	return info, nil
}

// CalculateCost calculates the cost for a given number of tokens
func (p *AnthropicProvider) CalculateCost(inputTokens, outputTokens int64, model string) float64 {
	return costFor(p.models, inputTokens, outputTokens, model)
}
