package profile

import (
	"testing"

	"github.com/pepo-gtm/pepo/internal/agent/core"
)

func TestWorkflowSpecForTaskTypes(t *testing.T) {
	p := sampleProfile()
	cases := []struct {
		taskType DailyTaskType
		goal     core.WorkflowGoal
	}{
		{TaskProspectDiscovery, core.GoalLeadList},
		{TaskCompetitorWatch, core.GoalCompetitorMoves},
		{TaskProductInsights, core.GoalAccountBriefs},
		{TaskMarketSignals, core.GoalAccountBriefs},
		{TaskPartnershipScouting, core.GoalLeadList},
		{TaskOutreachPrep, core.GoalOutreach},
	}
	for _, tc := range cases {
		spec := WorkflowSpecFor(DailyTask{Type: tc.taskType}, p)
		if spec.Goal != tc.goal {
			t.Fatalf("%s: expected goal %s, got %s", tc.taskType, tc.goal, spec.Goal)
		}
		if len(spec.Signals) == 0 {
			t.Fatalf("%s: expected signals", tc.taskType)
		}
		if spec.Constraints.MustHaveVerifiedEmail {
			t.Fatalf("%s: recurring runs should not require verified email", tc.taskType)
		}
	}
}

func TestWorkflowSpecForScopesICP(t *testing.T) {
	p := sampleProfile()
	spec := WorkflowSpecFor(DailyTask{Type: TaskProspectDiscovery}, p)
	if len(spec.ICP.Industries) != 2 || spec.ICP.Industries[0] != "fintech" {
		t.Fatalf("ICP industries should come from the profile: %v", spec.ICP.Industries)
	}
	if len(spec.ICP.Geo) != 2 || spec.ICP.Geo[1] != "UK" {
		t.Fatalf("ICP geo should come from the profile: %v", spec.ICP.Geo)
	}

	// Competitor watch narrows to named competitors when available.
	spec = WorkflowSpecFor(DailyTask{Type: TaskCompetitorWatch}, p)
	if spec.ICP.Industries[0] != "Sift" {
		t.Fatalf("competitor watch should target competitors: %v", spec.ICP.Industries)
	}

	// Empty targeting falls back to the operator's own industry and US.
	bare := &BusinessProfile{CompanyName: "X", Industry: "SaaS", ProductDescription: "y"}
	spec = WorkflowSpecFor(DailyTask{Type: TaskProspectDiscovery}, bare)
	if spec.ICP.Industries[0] != "SaaS" || spec.ICP.Geo[0] != "US" {
		t.Fatalf("expected fallback ICP, got %v / %v", spec.ICP.Industries, spec.ICP.Geo)
	}
}
