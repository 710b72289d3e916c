package core

import (
	"context"
	"testing"

	"github.com/pepo-gtm/pepo/config"
	"github.com/pepo-gtm/pepo/internal/agent/telemetry"
)

func TestMeterLLMRecordsUsage(t *testing.T) {
	tele := telemetry.NewTelemetry(config.TelemetryConfig{Enabled: true})
	llm := MeterLLM(&scriptedLLM{summaryResponse: "ok"}, tele)

	if _, _, _, err := llm.GenerateWithTokens(context.Background(), "p", "s", "test-model"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	snap := tele.Snapshot()
	// The summary branch of the fake reports 400 input and 200 output tokens.
	if got := snap["total_tokens"].(int64); got != 600 {
		t.Fatalf("expected 600 tokens recorded, got %d", got)
	}
	byModel := snap["cost_by_model"].(map[string]float64)
	if byModel["test-model"] <= 0 {
		t.Fatalf("expected spend recorded for test-model, got %+v", byModel)
	}
}

func TestMeterLLMSkipsFailedCalls(t *testing.T) {
	tele := telemetry.NewTelemetry(config.TelemetryConfig{Enabled: true})
	llm := MeterLLM(&scriptedLLM{err: errLLMDown}, tele)

	if _, err := llm.Generate(context.Background(), "p", "s", "test-model"); err == nil {
		t.Fatal("expected error from backend")
	}
	if got := tele.Snapshot()["total_tokens"].(int64); got != 0 {
		t.Fatalf("failed calls must not record usage, got %d tokens", got)
	}
}

func TestMeterLLMNilTelemetryPassthrough(t *testing.T) {
	inner := &scriptedLLM{summaryResponse: "ok"}
	if got := MeterLLM(inner, nil); got != LLMProvider(inner) {
		t.Fatal("nil telemetry should return the provider unwrapped")
	}
}
