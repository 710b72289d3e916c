package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Planner turns a WorkflowSpec into an ordered task list with one structured
// LLM call. It never fails: any transport or parse error falls back to three
// generic tasks so the executor loop always has work to do.
type Planner struct {
	llm    LLMProvider
	model  string
	logger *log.Logger
}

func NewPlanner(llm LLMProvider, model string) *Planner {
	return &Planner{
		llm:    llm,
		model:  model,
		logger: log.New(log.Writer(), "[PLANNER] ", log.LstdFlags),
	}
}

// PlanTasks requests the task plan. The returned cost is the LLM spend of the
// planning call, zero when the fallback fires.
func (p *Planner) PlanTasks(ctx context.Context, spec WorkflowSpec, toolDescriptions string) ([]*Task, float64) {
	prompt := buildPlanningPrompt(spec)
	systemPrompt := fmt.Sprintf(PlanningSystemPrompt, toolDescriptions)

	out, inTok, outTok, err := p.llm.GenerateWithTokens(ctx, prompt, systemPrompt, p.model)
	if err != nil {
		p.logger.Printf("planning failed, using fallback tasks: %v", err)
		return fallbackTasks(), 0
	}
	cost := p.llm.CalculateCost(inTok, outTok, p.model)

	var list TaskList
	if err := json.Unmarshal([]byte(ExtractFirstJSON(out)), &list); err != nil || len(list.Tasks) == 0 {
		p.logger.Printf("unparseable plan, using fallback tasks: %v", err)
		return fallbackTasks(), cost
	}
	return list.Tasks, cost
}

func fallbackTasks() []*Task {
	return []*Task{
		{ID: 1, Description: "Search for companies matching ICP", Done: false},
		{ID: 2, Description: "Find signals for discovered companies", Done: false},
		{ID: 3, Description: "Identify contacts at companies", Done: false},
	}
}

func buildPlanningPrompt(spec WorkflowSpec) string {
	stage := "Any"
	if len(spec.ICP.Stage) > 0 {
		stage = strings.Join(spec.ICP.Stage, ", ")
	}
	size := "Any"
	if spec.ICP.CompanySize != nil {
		size = fmt.Sprintf("%d-%d employees", spec.ICP.CompanySize.Min, spec.ICP.CompanySize.Max)
	}
	signals, _ := json.MarshalIndent(spec.Signals, "", "  ")

	var b strings.Builder
	fmt.Fprintf(&b, "Workflow Goal: %s\n\n", spec.Goal)
	fmt.Fprintf(&b, "ICP:\n")
	fmt.Fprintf(&b, "- Industries: %s\n", strings.Join(spec.ICP.Industries, ", "))
	fmt.Fprintf(&b, "- Locations: %s\n", strings.Join(spec.ICP.Geo, ", "))
	fmt.Fprintf(&b, "- Stage: %s\n", stage)
	fmt.Fprintf(&b, "- Size: %s\n\n", size)
	fmt.Fprintf(&b, "Signals Required:\n%s\n\n", signals)
	fmt.Fprintf(&b, "Constraints:\n")
	fmt.Fprintf(&b, "- Max accounts: %d\n", spec.Constraints.MaxAccounts)
	fmt.Fprintf(&b, "- Must have verified email: %t\n", spec.Constraints.MustHaveVerifiedEmail)
	fmt.Fprintf(&b, "- Exclude keywords: %s\n\n", strings.Join(spec.Constraints.ExcludeKeywords, ", "))
	b.WriteString("Create a task plan that will collect EVIDENCE-BACKED data.\n\n")
	b.WriteString("Remember: Every task must produce data with SOURCE URLS.")
	return b.String()
}
