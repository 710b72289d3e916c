package core

import (
	"context"
	"time"
)

// WorkflowGoal enumerates the kinds of BD workflows the agent can run.
type WorkflowGoal string

const (
	GoalLeadList        WorkflowGoal = "lead_list"
	GoalAccountBriefs   WorkflowGoal = "account_briefs"
	GoalCompetitorMoves WorkflowGoal = "competitor_moves"
	GoalOutreach        WorkflowGoal = "outreach"
)

// SignalType enumerates buying-trigger categories.
type SignalType string

const (
	SignalHiring        SignalType = "hiring"
	SignalFunding       SignalType = "funding"
	SignalProductLaunch SignalType = "product_launch"
	SignalTechStack     SignalType = "tech_stack"
	SignalNews          SignalType = "news"
	SignalJobChange     SignalType = "job_change"
	SignalExpansion     SignalType = "expansion"
)

// CompanySize bounds the employee count for ICP matching.
type CompanySize struct {
	Min int `json:"min,omitempty"`
	Max int `json:"max,omitempty"`
}

// ICP is the ideal customer profile a workflow searches against.
type ICP struct {
	Industries  []string     `json:"industries"`
	Geo         []string     `json:"geo"`
	Stage       []string     `json:"stage,omitempty"`
	CompanySize *CompanySize `json:"company_size,omitempty"`
	TechStack   []string     `json:"tech_stack,omitempty"`
}

// Signal is a claimed buying trigger with optional evidence.
type Signal struct {
	Type       SignalType `json:"type"`
	Query      string     `json:"query,omitempty"`
	WithinDays int        `json:"within_days,omitempty"`
	Snippet    string     `json:"snippet,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	URL        string     `json:"url,omitempty"`
	Confidence float64    `json:"confidence"`
}

// HasEvidence reports whether the signal carries both a source URL and a snippet.
func (s Signal) HasEvidence() bool { return s.URL != "" && s.Snippet != "" }

// Constraints bound a workflow run.
type Constraints struct {
	MaxAccounts           int      `json:"max_accounts"`
	MustHaveVerifiedEmail bool     `json:"must_have_verified_email"`
	ExcludeKeywords       []string `json:"exclude_keywords,omitempty"`
	MinSignalConfidence   float64  `json:"min_signal_confidence"`
}

// DefaultConstraints mirrors the defaults a caller gets when none are supplied.
func DefaultConstraints() Constraints {
	return Constraints{MaxAccounts: 50, MustHaveVerifiedEmail: true, MinSignalConfidence: 0.5}
}

// Deliverable describes the requested output format.
type Deliverable struct {
	Format  string   `json:"format"` // csv, json, markdown
	Columns []string `json:"columns,omitempty"`
}

// DefaultDeliverable returns the standard CSV deliverable shape.
func DefaultDeliverable() Deliverable {
	return Deliverable{
		Format: "csv",
		Columns: []string{
			"company", "domain", "signal", "source_url",
			"contact_name", "title", "email", "confidence",
		},
	}
}

// WorkflowSpec is the immutable input contract for a run.
type WorkflowSpec struct {
	Goal        WorkflowGoal `json:"goal"`
	ICP         ICP          `json:"icp"`
	Signals     []Signal     `json:"signals,omitempty"`
	Constraints Constraints  `json:"constraints"`
	Deliverable Deliverable  `json:"deliverable"`
}

// Task is the mutable unit of work inside a run. EvidenceCount holds the URL
// count of the most recent step's output, not a cumulative total.
type Task struct {
	ID            int      `json:"id"`
	Description   string   `json:"description"`
	Done          bool     `json:"done"`
	Outputs       []string `json:"outputs,omitempty"`
	StepCount     int      `json:"step_count"`
	EvidenceCount int      `json:"evidence_count"`
}

// TaskList is the structured planner response shape.
type TaskList struct {
	Tasks []*Task `json:"tasks"`
}

// TaskValidation is the structured task-validator response shape.
type TaskValidation struct {
	Done        bool   `json:"done"`
	HasEvidence bool   `json:"has_evidence"`
	Reasoning   string `json:"reasoning,omitempty"`
}

// ToolCall is a model-selected tool invocation.
type ToolCall struct {
	ToolName  string                 `json:"tool_name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// Account is a prospective company with evidence.
type Account struct {
	Name          string   `json:"name"`
	Domain        string   `json:"domain"`
	ICPFitScore   float64  `json:"icp_fit_score"`
	Signals       []Signal `json:"signals,omitempty"`
	Sources       []string `json:"sources,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	EmployeeCount int      `json:"employee_count,omitempty"`
	FundingStage  string   `json:"funding_stage,omitempty"`
	Location      string   `json:"location,omitempty"`
}

// HasVerifiedSignals reports whether any signal carries evidence.
func (a Account) HasVerifiedSignals() bool {
	for _, s := range a.Signals {
		if s.HasEvidence() {
			return true
		}
	}
	return false
}

// Contact verification statuses.
const (
	VerificationUnverified = "unverified"
	VerificationVerified   = "verified"
	VerificationBounced    = "bounced"
	VerificationCatchAll   = "catch_all"
)

// Contact is a prospective person with evidence and verification state.
type Contact struct {
	Name               string   `json:"name"`
	Title              string   `json:"title"`
	Company            string   `json:"company"`
	LinkedIn           string   `json:"linkedin,omitempty"`
	Email              string   `json:"email,omitempty"`
	VerificationStatus string   `json:"verification_status"`
	Sources            []string `json:"sources,omitempty"`
	Confidence         float64  `json:"confidence"`
}

// IsVerified requires verified status, at least one source, and an email.
func (c Contact) IsVerified() bool {
	return c.VerificationStatus == VerificationVerified && len(c.Sources) > 0 && c.Email != ""
}

// ScratchpadEntry is one append-only audit record of a run.
type ScratchpadEntry struct {
	Timestamp    time.Time              `json:"timestamp"`
	Type         string                 `json:"type"` // init, tool_call, tool_result, validation, final
	ToolName     string                 `json:"tool_name,omitempty"`
	Args         map[string]interface{} `json:"args,omitempty"`
	Result       string                 `json:"result,omitempty"`
	Summary      string                 `json:"llm_summary,omitempty"`
	EvidenceURLs []string               `json:"evidence_urls,omitempty"`
}

// WorkflowResult is the final output of a workflow run.
type WorkflowResult struct {
	RunID          string        `json:"run_id"`
	Goal           WorkflowGoal  `json:"goal"`
	Accounts       []Account     `json:"accounts,omitempty"`
	Contacts       []Contact     `json:"contacts,omitempty"`
	Summary        string        `json:"summary"`
	Tasks          []*Task       `json:"tasks,omitempty"`
	Cost           float64       `json:"cost,omitempty"`
	Duration       time.Duration `json:"duration,omitempty"`
	ScratchpadFile string        `json:"scratchpad_file,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// VerifiedContactsCount counts contacts passing IsVerified.
func (r WorkflowResult) VerifiedContactsCount() int {
	n := 0
	for _, c := range r.Contacts {
		if c.IsVerified() {
			n++
		}
	}
	return n
}

// AccountsWithSignalsCount counts accounts holding at least one evidenced signal.
func (r WorkflowResult) AccountsWithSignalsCount() int {
	n := 0
	for _, a := range r.Accounts {
		if a.HasVerifiedSignals() {
			n++
		}
	}
	return n
}

// LLMProvider interface defines the contract for LLM providers
type LLMProvider interface {
	// Generate generates text using the LLM
	Generate(ctx context.Context, prompt string, systemPrompt string, model string) (string, error)

	// GenerateWithTokens generates text and returns input/output token usage
	GenerateWithTokens(ctx context.Context, prompt string, systemPrompt string, model string) (string, int64, int64, error)

	// GetModelInfo returns information about a specific model
	GetModelInfo(model string) (ModelInfo, error)

	// CalculateCost calculates the cost for a given number of tokens
	CalculateCost(inputTokens, outputTokens int64, model string) float64
}

// ModelInfo contains information about an LLM model
type ModelInfo struct {
	Name            string  `json:"name"`
	Provider        string  `json:"provider"`
	MaxTokens       int     `json:"max_tokens"`
	CostPer1KInput  float64 `json:"cost_per_1k_input"`
	CostPer1KOutput float64 `json:"cost_per_1k_output"`
}

// ToolRunner dispatches a named tool with model-chosen arguments. Implemented
// by the tools registry; faked in tests.
type ToolRunner interface {
	Invoke(ctx context.Context, name string, args map[string]interface{}) (string, error)
	Descriptions() string
}
