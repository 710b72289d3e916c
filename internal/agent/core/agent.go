package core

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pepo-gtm/pepo/config"
	"github.com/pepo-gtm/pepo/internal/agent/telemetry"
)

// Agent is the orchestration core: plan tasks, execute tool-call steps
// against them, validate evidence, synthesize a report. Strictly sequential;
// one Agent runs one workflow at a time.
type Agent struct {
	llm        LLMProvider
	model      string
	tools      ToolRunner
	planner    *Planner
	selector   *ToolSelector
	validator  *Validator
	summarizer *Summarizer
	telemetry  *telemetry.Telemetry
	logger     *log.Logger

	maxSteps        int
	maxStepsPerTask int
	scratchpadDir   string
}

// NewAgent wires the loop from configuration. Step budgets default to 30
// global and 8 per task when the config leaves them unset.
func NewAgent(cfg *config.Config, llm LLMProvider, tools ToolRunner, tele *telemetry.Telemetry) *Agent {
	maxSteps := cfg.Agent.MaxSteps
	if maxSteps <= 0 {
		maxSteps = 30
	}
	maxPerTask := cfg.Agent.MaxStepsPerTask
	if maxPerTask <= 0 {
		maxPerTask = 8
	}
	dataDir := cfg.General.DataDir
	if dataDir == "" {
		dataDir = ".pepo"
	}
	llm = MeterLLM(llm, tele)
	return &Agent{
		llm:             llm,
		model:           cfg.Agent.Model,
		tools:           tools,
		planner:         NewPlanner(llm, cfg.Agent.Model),
		selector:        NewToolSelector(llm, cfg.Agent.Model),
		validator:       NewValidator(llm, cfg.Agent.Model),
		summarizer:      NewSummarizer(llm, cfg.Agent.Model),
		telemetry:       tele,
		logger:          log.New(log.Writer(), "[AGENT] ", log.LstdFlags),
		maxSteps:        maxSteps,
		maxStepsPerTask: maxPerTask,
		scratchpadDir:   filepath.Join(dataDir, "scratchpad"),
	}
}

// Run executes a full workflow: plan, loop, summarize. Tool and model
// failures degrade locally; the only error returned here is a scratchpad
// that cannot be created.
func (a *Agent) Run(ctx context.Context, spec WorkflowSpec) (WorkflowResult, error) {
	start := time.Now()

	pad, err := NewScratchpad(a.scratchpadDir, spec, start)
	if err != nil {
		return WorkflowResult{}, err
	}
	defer pad.Close()

	_ = pad.Append(ScratchpadEntry{
		Type:    "init",
		Summary: fmt.Sprintf("Starting %s workflow", spec.Goal),
	})

	a.logger.Printf("workflow %s: industries=%v geo=%v", spec.Goal, spec.ICP.Industries, spec.ICP.Geo)

	tasks, cost := a.planner.PlanTasks(ctx, spec, a.tools.Descriptions())
	for _, t := range tasks {
		a.logger.Printf("planned task %d: %s", t.ID, t.Description)
	}

	loopCost, steps := a.executeTasks(ctx, tasks, pad)
	cost += loopCost

	summary, sumCost := a.summarizer.Summarize(ctx, spec, tasks)
	cost += sumCost

	result := WorkflowResult{
		RunID:          uuid.NewString(),
		Goal:           spec.Goal,
		Summary:        summary,
		Tasks:          tasks,
		Cost:           cost,
		Duration:       time.Since(start),
		ScratchpadFile: pad.Path(),
		CreatedAt:      start,
	}

	_ = pad.Append(ScratchpadEntry{
		Type: "final",
		Summary: fmt.Sprintf("Completed: %d accounts, %d verified contacts",
			len(result.Accounts), result.VerifiedContactsCount()),
	})

	if a.telemetry != nil {
		a.telemetry.RecordRun(string(spec.Goal), result.Duration, steps, cost)
	}
	a.logger.Printf("workflow %s done in %s (%d steps, $%.4f)", spec.Goal, result.Duration.Round(time.Millisecond), steps, cost)

	return result, nil
}

// executeTasks drives the loop until every task is done, the global step
// ceiling is hit, or the sufficiency gate fires. Tasks hitting their per-task
// ceiling are abandoned as done, not errored.
func (a *Agent) executeTasks(ctx context.Context, tasks []*Task, pad *Scratchpad) (float64, int) {
	var cost float64
	steps := 0

	for {
		task := firstPending(tasks)
		if task == nil || steps >= a.maxSteps {
			break
		}

		if task.StepCount >= a.maxStepsPerTask {
			a.logger.Printf("task %d reached max steps, abandoning", task.ID)
			task.Done = true
			continue
		}

		steps++
		cost += a.executeStep(ctx, task, tasks, pad)

		valid, vCost := a.validator.ValidateTask(ctx, task)
		cost += vCost
		if valid {
			task.Done = true
			a.logger.Printf("task %d completed with evidence", task.ID)
		}

		if ValidateOverall(tasks) {
			a.logger.Printf("sufficient data collected, stopping early")
			break
		}
	}
	return cost, steps
}

// executeStep runs exactly one tool-call step against the task. A failed tool
// selection is a logged no-op; a failed tool invocation becomes an error
// string appended to the task's outputs.
func (a *Agent) executeStep(ctx context.Context, task *Task, tasks []*Task, pad *Scratchpad) float64 {
	task.StepCount++

	contextDigest := SelectContext(task, tasks)

	call, cost := a.selector.SelectTool(ctx, task, contextDigest, a.tools.Descriptions())
	if call == nil {
		a.logger.Printf("step on task %d: no tool selected", task.ID)
		return cost
	}

	output, err := a.tools.Invoke(ctx, call.ToolName, call.Arguments)
	if err != nil {
		output = fmt.Sprintf("Error: %v", err)
	}
	if a.telemetry != nil {
		a.telemetry.RecordToolCall(call.ToolName, err == nil)
	}

	urls := ExtractURLs(output)
	_ = pad.Append(ScratchpadEntry{
		Type:         "tool_result",
		ToolName:     call.ToolName,
		Args:         call.Arguments,
		Result:       truncate(output, 500),
		Summary:      fmt.Sprintf("Executed %s for task %d", call.ToolName, task.ID),
		EvidenceURLs: urls,
	})

	task.Outputs = append(task.Outputs, output)
	// most recent step only, prior evidence is not accumulated
	task.EvidenceCount = len(urls)

	a.logger.Printf("step on task %d: %s returned %d URLs", task.ID, call.ToolName, task.EvidenceCount)
	return cost
}

func firstPending(tasks []*Task) *Task {
	for _, t := range tasks {
		if !t.Done {
			return t
		}
	}
	return nil
}
