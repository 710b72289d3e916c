package core

import (
	"context"
	"errors"
	"strings"
)

// scriptedLLM routes responses by the system prompt's role header, letting a
// single fake drive the whole loop.
type scriptedLLM struct {
	planResponse     string
	actionResponse   string
	validateResponse string
	summaryResponse  string
	err              error
	calls            int
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt, systemPrompt, model string) (string, error) {
	out, _, _, err := s.GenerateWithTokens(ctx, prompt, systemPrompt, model)
	return out, err
}

func (s *scriptedLLM) GenerateWithTokens(ctx context.Context, prompt, systemPrompt, model string) (string, int64, int64, error) {
	s.calls++
	if s.err != nil {
		return "", 0, 0, s.err
	}
	switch {
	case strings.Contains(systemPrompt, "Planner for Pepo"):
		return s.planResponse, 200, 100, nil
	case strings.Contains(systemPrompt, "Executor for Pepo"):
		return s.actionResponse, 200, 50, nil
	case strings.Contains(systemPrompt, "Validator for Pepo"):
		return s.validateResponse, 100, 20, nil
	default:
		return s.summaryResponse, 400, 200, nil
	}
}

func (s *scriptedLLM) GetModelInfo(model string) (ModelInfo, error) {
	return ModelInfo{Name: model, MaxTokens: 4096, CostPer1KInput: 0.003, CostPer1KOutput: 0.015}, nil
}

func (s *scriptedLLM) CalculateCost(in, out int64, model string) float64 {
	return float64(in)*0.003/1000 + float64(out)*0.015/1000
}

var errLLMDown = errors.New("model backend unavailable")
