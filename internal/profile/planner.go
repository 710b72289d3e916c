package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/pepo-gtm/pepo/internal/agent/core"
)

// DailyPlanner turns a business profile into a recurring task plan. The LLM
// proposes the plan; a profile-templated default covers generation failures.
type DailyPlanner struct {
	llm    core.LLMProvider
	model  string
	logger *log.Logger
}

func NewDailyPlanner(llm core.LLMProvider, model string) *DailyPlanner {
	return &DailyPlanner{
		llm:    llm,
		model:  model,
		logger: log.New(log.Writer(), "[DAILYPLAN] ", log.LstdFlags),
	}
}

// GeneratePlan asks the model for a tailored plan and returns it with the
// LLM cost incurred. Any failure falls back to DefaultDailyPlan.
func (dp *DailyPlanner) GeneratePlan(ctx context.Context, p *BusinessProfile) (*DailyPlan, float64) {
	if dp.llm == nil {
		return DefaultDailyPlan(p), 0
	}

	systemPrompt := fmt.Sprintf(core.OnboardingSystemPrompt, p.Summary())
	prompt := dp.buildPrompt(p)

	response, inTok, outTok, err := dp.llm.GenerateWithTokens(ctx, prompt, systemPrompt, dp.model)
	if err != nil {
		dp.logger.Printf("plan generation failed (%v), using defaults", err)
		return DefaultDailyPlan(p), 0
	}
	cost := dp.llm.CalculateCost(inTok, outTok, dp.model)

	var plan DailyPlan
	if err := json.Unmarshal([]byte(core.ExtractFirstJSON(response)), &plan); err != nil || len(plan.Tasks) == 0 {
		dp.logger.Printf("plan response unusable, using defaults")
		return DefaultDailyPlan(p), cost
	}
	for i := range plan.Tasks {
		if !validTaskType(plan.Tasks[i].Type) {
			dp.logger.Printf("plan task %d has unknown type %q, using defaults", i, plan.Tasks[i].Type)
			return DefaultDailyPlan(p), cost
		}
		if plan.Tasks[i].Schedule == "" {
			plan.Tasks[i].Schedule = ScheduleDaily
		}
		plan.Tasks[i].Enabled = true
	}
	return &plan, cost
}

// validTaskType reports whether t is one of the six fixed task categories.
func validTaskType(t DailyTaskType) bool {
	switch t {
	case TaskProspectDiscovery, TaskCompetitorWatch, TaskProductInsights,
		TaskMarketSignals, TaskPartnershipScouting, TaskOutreachPrep:
		return true
	}
	return false
}

func (dp *DailyPlanner) buildPrompt(p *BusinessProfile) string {
	competitors := "Unknown"
	if len(p.Competitors) > 0 {
		competitors = strings.Join(p.Competitors, ", ")
	}
	painPoints := "Not specified"
	if len(p.PainPoints) > 0 {
		painPoints = strings.Join(p.PainPoints, ", ")
	}
	return fmt.Sprintf(`Create a daily BD task plan for %s.

Business context:
- Industry: %s
- Product: %s
- Target: %s
- Competitors: %s
- Target industries: %s
- Target regions: %s
- Pain points: %s

Generate specific, actionable daily tasks.

Respond with JSON: {"tasks": [{"type": "...", "name": "...", "description": "...", "schedule": "daily|weekdays|weekly"}], "reasoning": "..."}
Valid task types: prospect_discovery, competitor_watch, product_insights, market_signals, partnership_scouting, outreach_prep.`,
		p.CompanyName, p.Industry, p.ProductDescription, p.TargetCustomer,
		competitors, strings.Join(p.TargetIndustries, ", "),
		strings.Join(p.TargetRegions, ", "), painPoints,
	)
}

// DefaultDailyPlan builds the standing plan used when no model is available
// or generation fails.
func DefaultDailyPlan(p *BusinessProfile) *DailyPlan {
	competitorScope := "key players in " + p.Industry
	if len(p.Competitors) > 0 {
		competitorScope = strings.Join(p.Competitors, ", ")
	}
	industries := strings.Join(p.TargetIndustries, ", ")
	regions := strings.Join(p.TargetRegions, ", ")

	tasks := []DailyTask{
		{
			Type:    TaskProspectDiscovery,
			Name:    fmt.Sprintf("Find new %s prospects", p.TargetCustomer),
			Enabled: true, Schedule: ScheduleDaily,
			Description: fmt.Sprintf(
				"Search for %s companies in %s that match the ICP. "+
					"Look for companies showing buying signals like hiring, funding, or expansion.",
				industries, regions),
		},
		{
			Type:    TaskCompetitorWatch,
			Name:    "Monitor competitor activity",
			Enabled: true, Schedule: ScheduleDaily,
			Description: fmt.Sprintf(
				"Check for news, funding, product launches, and hiring moves from: %s. "+
					"Surface anything that affects our positioning or creates urgency.",
				competitorScope),
		},
		{
			Type:    TaskProductInsights,
			Name:    fmt.Sprintf("Gather %s market insights", p.Industry),
			Enabled: true, Schedule: ScheduleDaily,
			Description: fmt.Sprintf(
				"Find emerging trends, customer pain points, and product opportunities in %s. "+
					"Focus on problems that %s could address or areas where the product could improve.",
				p.Industry, p.CompanyName),
		},
		{
			Type:    TaskMarketSignals,
			Name:    "Track market signals and triggers",
			Enabled: true, Schedule: ScheduleDaily,
			Description: fmt.Sprintf(
				"Monitor funding rounds, M&A activity, leadership changes, and regulatory shifts in %s. "+
					"These are buying triggers for outreach timing.",
				industries),
		},
		{
			Type:    TaskPartnershipScouting,
			Name:    "Scout partnership opportunities",
			Enabled: true, Schedule: ScheduleWeekly,
			Description: fmt.Sprintf(
				"Identify companies with complementary products or shared customers that could be "+
					"integration, reseller, or co-marketing partners for %s.",
				p.CompanyName),
		},
		{
			Type:    TaskOutreachPrep,
			Name:    "Prepare outreach for top prospects",
			Enabled: true, Schedule: ScheduleWeekdays,
			Description: fmt.Sprintf(
				"For the top 5 prospects found this week, research their specific pain points and "+
					"prepare personalized talking points referencing recent signals. Target titles: %s.",
				strings.Join(p.TargetTitles, ", ")),
		},
	}

	return &DailyPlan{
		Tasks: tasks,
		Reasoning: fmt.Sprintf(
			"Daily plan tailored for %s's BD in %s. "+
				"Prioritizes prospect discovery and competitor monitoring daily, "+
				"with partnership scouting weekly and outreach prep on weekdays.",
			p.CompanyName, p.Industry),
	}
}
