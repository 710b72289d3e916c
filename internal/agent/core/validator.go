package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Overall sufficiency gate thresholds. Fixed, not configurable per workflow.
const (
	minCompletedTasks = 2
	minTotalEvidence  = 5
)

// Validator judges per-task completion. A task with no outputs or zero
// extracted URLs is rejected without a model call; otherwise one structured
// call decides, and any failure counts as not done.
type Validator struct {
	llm    LLMProvider
	model  string
	logger *log.Logger
}

func NewValidator(llm LLMProvider, model string) *Validator {
	return &Validator{
		llm:    llm,
		model:  model,
		logger: log.New(log.Writer(), "[VALIDATOR] ", log.LstdFlags),
	}
}

func (v *Validator) ValidateTask(ctx context.Context, task *Task) (bool, float64) {
	if len(task.Outputs) == 0 {
		return false, 0
	}
	if task.EvidenceCount == 0 {
		return false, 0
	}

	outputs := task.Outputs
	if len(outputs) > 2 {
		outputs = outputs[:2]
	}
	outputsJSON, _ := json.MarshalIndent(outputs, "", "  ")
	prompt := fmt.Sprintf("Task: %s\n\nOutputs (with %d evidence URLs):\n%s\n\nIs this complete with evidence?",
		task.Description, task.EvidenceCount, outputsJSON)

	out, inTok, outTok, err := v.llm.GenerateWithTokens(ctx, prompt, ValidationSystemPrompt, v.model)
	if err != nil {
		v.logger.Printf("validation call failed for task %d: %v", task.ID, err)
		return false, 0
	}
	cost := v.llm.CalculateCost(inTok, outTok, v.model)

	var verdict TaskValidation
	if err := json.Unmarshal([]byte(ExtractFirstJSON(out)), &verdict); err != nil {
		v.logger.Printf("unparseable validation for task %d: %v", task.ID, err)
		return false, cost
	}
	return verdict.Done && verdict.HasEvidence, cost
}

// ValidateOverall is the deterministic sufficiency gate: at least two
// completed tasks whose evidence counts sum to at least five.
func ValidateOverall(tasks []*Task) bool {
	completed := 0
	totalEvidence := 0
	for _, t := range tasks {
		if t.Done {
			completed++
			totalEvidence += t.EvidenceCount
		}
	}
	if completed < minCompletedTasks {
		return false
	}
	return totalEvidence >= minTotalEvidence
}
