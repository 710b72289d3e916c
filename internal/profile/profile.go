package profile

import (
	"fmt"
	"strings"
	"time"
)

// BusinessProfile is the business context collected during onboarding. It is
// what the agent knows about the operator's own company when planning work.
type BusinessProfile struct {
	CompanyName        string    `json:"company_name"`
	Website            string    `json:"website,omitempty"`
	Industry           string    `json:"industry"`
	ProductDescription string    `json:"product_description"`
	TargetCustomer     string    `json:"target_customer"`
	ValueProposition   string    `json:"value_proposition"`
	Competitors        []string  `json:"competitors,omitempty"`
	TargetTitles       []string  `json:"target_titles,omitempty"`
	TargetIndustries   []string  `json:"target_industries,omitempty"`
	TargetRegions      []string  `json:"target_regions,omitempty"`
	PainPoints         []string  `json:"pain_points,omitempty"`
	Differentiators    []string  `json:"differentiators,omitempty"`
	CurrentClients     []string  `json:"current_clients,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	OnboardedAt        time.Time `json:"onboarded_at"`
}

// Summary renders the one-paragraph profile digest embedded in prompts.
func (p *BusinessProfile) Summary() string {
	competitors := "Not specified"
	if len(p.Competitors) > 0 {
		competitors = strings.Join(p.Competitors, ", ")
	}
	return fmt.Sprintf(
		"%s is a %s company. Product: %s. Target: %s. Value prop: %s. Competitors: %s.",
		p.CompanyName, p.Industry, p.ProductDescription, p.TargetCustomer,
		p.ValueProposition, competitors,
	)
}

// Validate reports whether the profile carries the minimum fields the
// planner needs.
func (p *BusinessProfile) Validate() error {
	if strings.TrimSpace(p.CompanyName) == "" {
		return fmt.Errorf("profile missing company_name")
	}
	if strings.TrimSpace(p.Industry) == "" {
		return fmt.Errorf("profile missing industry")
	}
	if strings.TrimSpace(p.ProductDescription) == "" {
		return fmt.Errorf("profile missing product_description")
	}
	return nil
}

// DailyTaskType categorizes a recurring agent task.
type DailyTaskType string

const (
	TaskProspectDiscovery   DailyTaskType = "prospect_discovery"
	TaskCompetitorWatch     DailyTaskType = "competitor_watch"
	TaskProductInsights     DailyTaskType = "product_insights"
	TaskMarketSignals       DailyTaskType = "market_signals"
	TaskPartnershipScouting DailyTaskType = "partnership_scouting"
	TaskOutreachPrep        DailyTaskType = "outreach_prep"
)

// Valid schedules for a daily task.
const (
	ScheduleDaily    = "daily"
	ScheduleWeekdays = "weekdays"
	ScheduleWeekly   = "weekly"
)

// DailyTask is one recurring unit of BD work.
type DailyTask struct {
	Type        DailyTaskType `json:"type"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Enabled     bool          `json:"enabled"`
	Schedule    string        `json:"schedule"`
	LastRun     *time.Time    `json:"last_run,omitempty"`
}

// DailyPlan is the full set of recurring tasks plus the planner's rationale.
type DailyPlan struct {
	Tasks     []DailyTask `json:"tasks"`
	Reasoning string      `json:"reasoning,omitempty"`
}

// EnabledTasks returns the subset of tasks that are switched on.
func (p *DailyPlan) EnabledTasks() []DailyTask {
	var out []DailyTask
	for _, t := range p.Tasks {
		if t.Enabled {
			out = append(out, t)
		}
	}
	return out
}

// MarkRun records a completed execution of the task at index i.
func (p *DailyPlan) MarkRun(i int, at time.Time) {
	if i < 0 || i >= len(p.Tasks) {
		return
	}
	ts := at
	p.Tasks[i].LastRun = &ts
}
