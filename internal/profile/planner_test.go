package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/pepo-gtm/pepo/internal/agent/core"
)

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Generate(ctx context.Context, prompt, systemPrompt, model string) (string, error) {
	out, _, _, err := f.GenerateWithTokens(ctx, prompt, systemPrompt, model)
	return out, err
}

func (f *fakeLLM) GenerateWithTokens(ctx context.Context, prompt, systemPrompt, model string) (string, int64, int64, error) {
	if f.err != nil {
		return "", 0, 0, f.err
	}
	return f.response, 100, 50, nil
}

func (f *fakeLLM) GetModelInfo(model string) (core.ModelInfo, error) {
	return core.ModelInfo{Name: model, MaxTokens: 4096}, nil
}

func (f *fakeLLM) CalculateCost(in, out int64, model string) float64 {
	return float64(in+out) * 0.00001
}

func TestGeneratePlanFromModelResponse(t *testing.T) {
	llm := &fakeLLM{response: `Here is the plan:
{"tasks": [
  {"type": "prospect_discovery", "name": "Find fintech prospects", "description": "Search for fintech companies"},
  {"type": "competitor_watch", "name": "Watch Sift", "description": "Track Sift news", "schedule": "weekly"}
], "reasoning": "Focus on discovery"}`}

	plan, cost := NewDailyPlanner(llm, "test-model").GeneratePlan(context.Background(), sampleProfile())
	if len(plan.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(plan.Tasks))
	}
	if plan.Tasks[0].Schedule != ScheduleDaily {
		t.Fatalf("missing schedule should default to daily, got %s", plan.Tasks[0].Schedule)
	}
	if plan.Tasks[1].Schedule != ScheduleWeekly {
		t.Fatalf("explicit schedule dropped: %s", plan.Tasks[1].Schedule)
	}
	if !plan.Tasks[0].Enabled {
		t.Fatal("generated tasks should be enabled")
	}
	if cost <= 0 {
		t.Fatalf("expected positive cost, got %f", cost)
	}
}

func TestGeneratePlanFallsBackOnError(t *testing.T) {
	llm := &fakeLLM{err: errors.New("API down")}
	plan, cost := NewDailyPlanner(llm, "test-model").GeneratePlan(context.Background(), sampleProfile())
	if len(plan.Tasks) != 6 {
		t.Fatalf("expected default 6-task plan, got %d", len(plan.Tasks))
	}
	if cost != 0 {
		t.Fatalf("failed call should cost nothing, got %f", cost)
	}
}

func TestGeneratePlanFallsBackOnGarbage(t *testing.T) {
	llm := &fakeLLM{response: "I cannot produce a plan right now."}
	plan, _ := NewDailyPlanner(llm, "test-model").GeneratePlan(context.Background(), sampleProfile())
	if len(plan.Tasks) != 6 {
		t.Fatalf("expected default plan on unusable response, got %d tasks", len(plan.Tasks))
	}
}

func TestGeneratePlanFallsBackOnUnknownTaskType(t *testing.T) {
	llm := &fakeLLM{response: `{"tasks": [
  {"type": "world_domination", "name": "x", "description": "y"}
], "reasoning": "r"}`}
	plan, cost := NewDailyPlanner(llm, "test-model").GeneratePlan(context.Background(), sampleProfile())
	if len(plan.Tasks) != 6 {
		t.Fatalf("out-of-enum task type should yield the default plan, got %d tasks", len(plan.Tasks))
	}
	for _, task := range plan.Tasks {
		if !validTaskType(task.Type) {
			t.Fatalf("default plan contains unknown type %q", task.Type)
		}
	}
	if cost <= 0 {
		t.Fatalf("model was called, cost should be counted, got %f", cost)
	}
}

func TestGeneratePlanWithoutModel(t *testing.T) {
	plan, cost := NewDailyPlanner(nil, "").GeneratePlan(context.Background(), sampleProfile())
	if len(plan.Tasks) != 6 || cost != 0 {
		t.Fatalf("nil model should yield defaults, got %d tasks, cost %f", len(plan.Tasks), cost)
	}
}
