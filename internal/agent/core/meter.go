package core

import (
	"context"

	"github.com/pepo-gtm/pepo/internal/agent/telemetry"
)

// meteredLLM wraps a provider and records token usage and spend for every
// successful call.
type meteredLLM struct {
	inner LLMProvider
	tele  *telemetry.Telemetry
}

// MeterLLM instruments an LLM provider with usage telemetry. A nil telemetry
// returns the provider unchanged.
func MeterLLM(llm LLMProvider, tele *telemetry.Telemetry) LLMProvider {
	if tele == nil {
		return llm
	}
	return &meteredLLM{inner: llm, tele: tele}
}

func (m *meteredLLM) Generate(ctx context.Context, prompt, systemPrompt, model string) (string, error) {
	out, _, _, err := m.GenerateWithTokens(ctx, prompt, systemPrompt, model)
	return out, err
}

func (m *meteredLLM) GenerateWithTokens(ctx context.Context, prompt, systemPrompt, model string) (string, int64, int64, error) {
	out, inTok, outTok, err := m.inner.GenerateWithTokens(ctx, prompt, systemPrompt, model)
	if err == nil {
		m.tele.RecordLLMUsage(model, inTok, outTok, m.inner.CalculateCost(inTok, outTok, model))
	}
	return out, inTok, outTok, err
}

func (m *meteredLLM) GetModelInfo(model string) (ModelInfo, error) {
	return m.inner.GetModelInfo(model)
}

func (m *meteredLLM) CalculateCost(in, out int64, model string) float64 {
	return m.inner.CalculateCost(in, out, model)
}
