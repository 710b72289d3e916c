package server

import (
	"context"
	"testing"
	"time"

	"github.com/pepo-gtm/pepo/internal/agent/core"
	"github.com/pepo-gtm/pepo/internal/profile"
	"github.com/pepo-gtm/pepo/internal/store"
)

func TestSchedulerTickRunsDueTasks(t *testing.T) {
	dir := t.TempDir()
	profiles := profile.NewStore(dir)
	archive := store.NewFileArchive(dir)

	p := &profile.BusinessProfile{
		CompanyName:        "Acme",
		Industry:           "fintech",
		ProductDescription: "fraud API",
		TargetCustomer:     "banks",
		ValueProposition:   "fewer chargebacks",
		OnboardedAt:        time.Now(),
	}
	if err := profiles.SaveProfile(p); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	ranMonday := time.Date(2026, 8, 31, 9, 5, 0, 0, time.UTC)
	plan := &profile.DailyPlan{Tasks: []profile.DailyTask{
		{Type: profile.TaskProspectDiscovery, Name: "discover", Enabled: true, Schedule: profile.ScheduleDaily},
		{Type: profile.TaskCompetitorWatch, Name: "watch", Enabled: false, Schedule: profile.ScheduleDaily},
		{Type: profile.TaskPartnershipScouting, Name: "scout", Enabled: true, Schedule: profile.ScheduleWeekly, LastRun: &ranMonday},
	}}
	if err := profiles.SaveDailyPlan(plan); err != nil {
		t.Fatalf("save plan: %v", err)
	}

	runner := &fakeRunner{result: core.WorkflowResult{
		RunID: "sched-run-1", Goal: core.GoalLeadList, CreatedAt: time.Now(),
	}}
	sched := NewScheduler(profiles, runner, archive, nil, nil)
	// Wednesday morning: the daily task is due, the weekly one ran Monday.
	sched.now = func() time.Time { return time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC) }

	sched.Tick(context.Background())

	if len(runner.specs) != 1 {
		t.Fatalf("expected exactly one task to run, got %d", len(runner.specs))
	}
	if runner.specs[0].Goal != core.GoalLeadList {
		t.Fatalf("prospect discovery should map to lead_list, got %s", runner.specs[0].Goal)
	}

	// Last run was stamped and persisted.
	saved, err := profiles.LoadDailyPlan()
	if err != nil {
		t.Fatalf("reload plan: %v", err)
	}
	if saved.Tasks[0].LastRun == nil {
		t.Fatal("due task should have last_run stamped")
	}
	if saved.Tasks[1].LastRun != nil {
		t.Fatal("disabled task should not have run")
	}

	// The run landed in the archive.
	if _, err := archive.GetRun(context.Background(), "sched-run-1"); err != nil {
		t.Fatalf("scheduled run not archived: %v", err)
	}

	// A second tick in the same window fires nothing.
	sched.Tick(context.Background())
	if len(runner.specs) != 1 {
		t.Fatalf("task re-fired within the same window: %d runs", len(runner.specs))
	}
}

func TestSchedulerTickWithoutProfileIsNoop(t *testing.T) {
	sched := NewScheduler(profile.NewStore(t.TempDir()), &fakeRunner{}, nil, nil, nil)
	sched.Tick(context.Background())
}
