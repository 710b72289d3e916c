package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// SelectContext builds the deterministic context digest for a step: the last
// two completed tasks (excluding the current one), each reduced to its first
// output's first 200 characters.
func SelectContext(task *Task, allTasks []*Task) string {
	var completed []*Task
	for _, t := range allTasks {
		if t.Done && t.ID != task.ID {
			completed = append(completed, t)
		}
	}
	if len(completed) == 0 {
		return "No previous context."
	}
	if len(completed) > 2 {
		completed = completed[len(completed)-2:]
	}
	parts := make([]string, 0, len(completed))
	for _, t := range completed {
		preview := "No output"
		if len(t.Outputs) > 0 {
			preview = truncate(t.Outputs[0], 200)
		}
		parts = append(parts, fmt.Sprintf("Task %d: %s", t.ID, preview))
	}
	return strings.Join(parts, "\n\n")
}

// truncate cuts s to at most n characters, never splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// ToolSelector asks the model to choose one tool and its arguments for the
// current task. A nil ToolCall means the step becomes a logged no-op; the
// selected name is not validated here, unknown names surface at dispatch.
type ToolSelector struct {
	llm    LLMProvider
	model  string
	logger *log.Logger
}

func NewToolSelector(llm LLMProvider, model string) *ToolSelector {
	return &ToolSelector{
		llm:    llm,
		model:  model,
		logger: log.New(log.Writer(), "[SELECTOR] ", log.LstdFlags),
	}
}

func (s *ToolSelector) SelectTool(ctx context.Context, task *Task, contextDigest, toolDescriptions string) (*ToolCall, float64) {
	prompt := fmt.Sprintf("Task: %s\n\nContext: %s\n\nSelect the best tool and provide arguments.", task.Description, contextDigest)
	systemPrompt := fmt.Sprintf(ActionSystemPrompt, toolDescriptions, contextDigest, task.Description)

	out, inTok, outTok, err := s.llm.GenerateWithTokens(ctx, prompt, systemPrompt, s.model)
	if err != nil {
		s.logger.Printf("tool selection failed for task %d: %v", task.ID, err)
		return nil, 0
	}
	cost := s.llm.CalculateCost(inTok, outTok, s.model)

	var call ToolCall
	if err := json.Unmarshal([]byte(ExtractFirstJSON(out)), &call); err != nil || call.ToolName == "" {
		s.logger.Printf("unparseable tool selection for task %d: %v", task.ID, err)
		return nil, cost
	}
	if call.Arguments == nil {
		call.Arguments = map[string]interface{}{}
	}
	return &call, cost
}
