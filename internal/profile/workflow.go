package profile

import (
	"github.com/pepo-gtm/pepo/internal/agent/core"
)

// WorkflowSpecFor converts a recurring daily task into a runnable workflow
// spec, scoped by the business profile's targeting fields.
func WorkflowSpecFor(task DailyTask, p *BusinessProfile) core.WorkflowSpec {
	icp := core.ICP{
		Industries: p.TargetIndustries,
		Geo:        p.TargetRegions,
	}
	if len(icp.Industries) == 0 {
		icp.Industries = []string{p.Industry}
	}
	if len(icp.Geo) == 0 {
		icp.Geo = []string{"US"}
	}

	spec := core.WorkflowSpec{
		ICP:         icp,
		Constraints: core.DefaultConstraints(),
		Deliverable: core.DefaultDeliverable(),
	}
	spec.Constraints.MustHaveVerifiedEmail = false

	switch task.Type {
	case TaskCompetitorWatch:
		spec.Goal = core.GoalCompetitorMoves
		spec.Signals = []core.Signal{
			{Type: core.SignalFunding, WithinDays: 90},
			{Type: core.SignalProductLaunch, WithinDays: 90},
			{Type: core.SignalNews, WithinDays: 30},
		}
		if len(p.Competitors) > 0 {
			spec.ICP.Industries = p.Competitors
		}
	case TaskProductInsights:
		spec.Goal = core.GoalAccountBriefs
		spec.Signals = []core.Signal{
			{Type: core.SignalProductLaunch, WithinDays: 180},
			{Type: core.SignalNews, WithinDays: 90},
		}
	case TaskMarketSignals:
		spec.Goal = core.GoalAccountBriefs
		spec.Signals = []core.Signal{
			{Type: core.SignalFunding, WithinDays: 90},
			{Type: core.SignalNews, WithinDays: 30},
			{Type: core.SignalExpansion},
		}
	case TaskOutreachPrep:
		spec.Goal = core.GoalOutreach
		spec.Signals = []core.Signal{
			{Type: core.SignalHiring, Query: "sales OR growth"},
			{Type: core.SignalFunding, WithinDays: 365},
		}
	case TaskPartnershipScouting:
		spec.Goal = core.GoalLeadList
		spec.Signals = []core.Signal{
			{Type: core.SignalProductLaunch, WithinDays: 180},
			{Type: core.SignalExpansion},
		}
	default: // prospect discovery
		spec.Goal = core.GoalLeadList
		spec.Signals = []core.Signal{
			{Type: core.SignalHiring, Query: "sales OR growth"},
			{Type: core.SignalFunding, WithinDays: 365},
		}
	}
	return spec
}
