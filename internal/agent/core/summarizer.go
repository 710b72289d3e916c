package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Summarizer synthesizes the final report from each task's first output. It
// never fails the run: an error becomes the summary text.
type Summarizer struct {
	llm    LLMProvider
	model  string
	logger *log.Logger
}

func NewSummarizer(llm LLMProvider, model string) *Summarizer {
	return &Summarizer{
		llm:    llm,
		model:  model,
		logger: log.New(log.Writer(), "[SUMMARIZER] ", log.LstdFlags),
	}
}

func (s *Summarizer) Summarize(ctx context.Context, spec WorkflowSpec, tasks []*Task) (string, float64) {
	digest := make(map[string]map[string]interface{}, len(tasks))
	for _, t := range tasks {
		entry := map[string]interface{}{
			"description":    t.Description,
			"evidence_count": t.EvidenceCount,
		}
		if len(t.Outputs) > 0 {
			entry["outputs"] = t.Outputs[:1]
		} else {
			entry["outputs"] = []string{}
		}
		digest[fmt.Sprintf("task_%d", t.ID)] = entry
	}

	specJSON, _ := json.MarshalIndent(spec, "", "  ")
	dataJSON, _ := json.MarshalIndent(digest, "", "  ")
	prompt := fmt.Sprintf(AnswerPrompt, specJSON, dataJSON)

	out, inTok, outTok, err := s.llm.GenerateWithTokens(ctx, prompt, DefaultSystemPrompt, s.model)
	if err != nil {
		s.logger.Printf("summary generation failed: %v", err)
		return fmt.Sprintf("Error generating summary: %v", err), 0
	}
	return out, s.llm.CalculateCost(inTok, outTok, s.model)
}
