package main

import (
	"github.com/pepo-gtm/pepo/internal/agent/core"
)

// exampleWorkflows are the three built-in starting points shown in the menu.
func exampleWorkflows() []core.WorkflowSpec {
	return []core.WorkflowSpec{
		{
			Goal: core.GoalLeadList,
			ICP: core.ICP{
				Industries:  []string{"fintech", "payments"},
				Geo:         []string{"NYC", "San Francisco"},
				Stage:       []string{"seed", "series_a"},
				CompanySize: &core.CompanySize{Min: 10, Max: 200},
			},
			Signals: []core.Signal{
				{Type: core.SignalHiring, Query: "SDR OR sales development"},
				{Type: core.SignalFunding, WithinDays: 365},
			},
			Constraints: core.Constraints{
				MaxAccounts:           40,
				MustHaveVerifiedEmail: false,
				ExcludeKeywords:       []string{"agency", "consulting"},
				MinSignalConfidence:   0.5,
			},
			Deliverable: core.Deliverable{Format: "csv"},
		},
		{
			Goal: core.GoalAccountBriefs,
			ICP: core.ICP{
				Industries: []string{"health tech", "telemedicine"},
				Geo:        []string{"US"},
				Stage:      []string{"series_a", "series_b"},
			},
			Signals: []core.Signal{
				{Type: core.SignalProductLaunch, WithinDays: 180},
				{Type: core.SignalExpansion},
			},
			Constraints: core.Constraints{
				MaxAccounts:         20,
				MinSignalConfidence: 0.5,
			},
			Deliverable: core.Deliverable{Format: "markdown"},
		},
		{
			Goal: core.GoalCompetitorMoves,
			ICP: core.ICP{
				Industries: []string{"SaaS", "developer tools"},
				Geo:        []string{"US", "UK"},
			},
			Signals: []core.Signal{
				{Type: core.SignalFunding, WithinDays: 90},
				{Type: core.SignalProductLaunch, WithinDays: 90},
				{Type: core.SignalNews, WithinDays: 30},
			},
			Constraints: core.Constraints{
				MaxAccounts:         15,
				MinSignalConfidence: 0.5,
			},
			Deliverable: core.Deliverable{Format: "markdown"},
		},
	}
}
