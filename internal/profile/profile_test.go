package profile

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func sampleProfile() *BusinessProfile {
	return &BusinessProfile{
		CompanyName:        "Acme Data",
		Industry:           "fintech",
		ProductDescription: "Fraud scoring API for payment processors",
		TargetCustomer:     "Series A-C fintech companies",
		ValueProposition:   "Cuts chargebacks in half",
		Competitors:        []string{"Sift", "Ravelin"},
		TargetTitles:       []string{"VP Sales", "CRO"},
		TargetIndustries:   []string{"fintech", "payments"},
		TargetRegions:      []string{"US", "UK"},
		PainPoints:         []string{"chargeback losses"},
		OnboardedAt:        time.Now(),
	}
}

func TestProfileSummary(t *testing.T) {
	p := sampleProfile()
	s := p.Summary()
	for _, want := range []string{
		"Acme Data is a fintech company.",
		"Product: Fraud scoring API for payment processors.",
		"Target: Series A-C fintech companies.",
		"Value prop: Cuts chargebacks in half.",
		"Competitors: Sift, Ravelin.",
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestProfileSummaryNoCompetitors(t *testing.T) {
	p := sampleProfile()
	p.Competitors = nil
	if !strings.Contains(p.Summary(), "Competitors: Not specified.") {
		t.Fatalf("expected placeholder for empty competitors: %s", p.Summary())
	}
}

func TestProfileValidate(t *testing.T) {
	p := sampleProfile()
	if err := p.Validate(); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}
	p.Industry = "  "
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for blank industry")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	if _, err := s.LoadProfile(); err != ErrNotOnboarded {
		t.Fatalf("expected ErrNotOnboarded, got %v", err)
	}

	p := sampleProfile()
	p.Website = "https://acme.example"
	p.Differentiators = []string{"real-time scoring"}
	p.CurrentClients = []string{"PayCo"}
	p.Notes = "met at Money20/20"
	if err := s.SaveProfile(p); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	loaded, err := s.LoadProfile()
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if !loaded.OnboardedAt.Equal(p.OnboardedAt) {
		t.Fatalf("onboarded_at drifted: %v vs %v", loaded.OnboardedAt, p.OnboardedAt)
	}
	// DeepEqual field for field; the timestamp is compared above since the
	// decoded time loses the monotonic clock reading.
	loaded.OnboardedAt = p.OnboardedAt
	if !reflect.DeepEqual(loaded, p) {
		t.Fatalf("profile did not round-trip:\nsaved  %+v\nloaded %+v", p, loaded)
	}

	plan := DefaultDailyPlan(p)
	if err := s.SaveDailyPlan(plan); err != nil {
		t.Fatalf("save plan: %v", err)
	}
	loadedPlan, err := s.LoadDailyPlan()
	if err != nil {
		t.Fatalf("load plan: %v", err)
	}
	if len(loadedPlan.Tasks) != len(plan.Tasks) {
		t.Fatalf("plan did not round-trip: %d tasks", len(loadedPlan.Tasks))
	}
}

func TestDefaultDailyPlanShape(t *testing.T) {
	plan := DefaultDailyPlan(sampleProfile())
	if len(plan.Tasks) != 6 {
		t.Fatalf("expected 6 tasks, got %d", len(plan.Tasks))
	}

	wantTypes := map[DailyTaskType]string{
		TaskProspectDiscovery:   ScheduleDaily,
		TaskCompetitorWatch:     ScheduleDaily,
		TaskProductInsights:     ScheduleDaily,
		TaskMarketSignals:       ScheduleDaily,
		TaskPartnershipScouting: ScheduleWeekly,
		TaskOutreachPrep:        ScheduleWeekdays,
	}
	seen := map[DailyTaskType]bool{}
	for _, task := range plan.Tasks {
		sched, ok := wantTypes[task.Type]
		if !ok {
			t.Fatalf("unexpected task type %s", task.Type)
		}
		if task.Schedule != sched {
			t.Fatalf("%s: expected schedule %s, got %s", task.Type, sched, task.Schedule)
		}
		if !task.Enabled {
			t.Fatalf("%s should be enabled by default", task.Type)
		}
		if task.Description == "" || task.Name == "" {
			t.Fatalf("%s missing name or description", task.Type)
		}
		seen[task.Type] = true
	}
	if len(seen) != 6 {
		t.Fatalf("expected all 6 task types, saw %d", len(seen))
	}
	if !strings.Contains(plan.Reasoning, "Acme Data") {
		t.Fatalf("reasoning should mention the company: %s", plan.Reasoning)
	}
}

func TestDefaultPlanFallsBackToIndustryWhenNoCompetitors(t *testing.T) {
	p := sampleProfile()
	p.Competitors = nil
	plan := DefaultDailyPlan(p)
	for _, task := range plan.Tasks {
		if task.Type == TaskCompetitorWatch {
			if !strings.Contains(task.Description, "key players in fintech") {
				t.Fatalf("competitor watch should scope to industry: %s", task.Description)
			}
			return
		}
	}
	t.Fatal("competitor watch task missing")
}

func TestIsDue(t *testing.T) {
	// Wednesday 2026-09-02 10:00.
	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)

	if !IsDue(ScheduleDaily, nil, now) {
		t.Fatal("never-run task should be due")
	}

	ranToday := time.Date(2026, 9, 2, 9, 5, 0, 0, time.UTC)
	if IsDue(ScheduleDaily, &ranToday, now) {
		t.Fatal("daily task already run after 9am should not be due")
	}

	ranYesterday := time.Date(2026, 9, 1, 9, 5, 0, 0, time.UTC)
	if !IsDue(ScheduleDaily, &ranYesterday, now) {
		t.Fatal("daily task run yesterday should be due after 9am")
	}

	// Weekly fires Mondays; last run Monday morning, now Wednesday.
	ranMonday := time.Date(2026, 8, 31, 9, 5, 0, 0, time.UTC)
	if IsDue(ScheduleWeekly, &ranMonday, now) {
		t.Fatal("weekly task run Monday should not be due Wednesday")
	}
	ranLastWeek := time.Date(2026, 8, 24, 9, 5, 0, 0, time.UTC)
	if !IsDue(ScheduleWeekly, &ranLastWeek, now) {
		t.Fatal("weekly task run last week should be due")
	}

	// Weekdays skip the weekend.
	saturday := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	ranFriday := time.Date(2026, 9, 4, 9, 5, 0, 0, time.UTC)
	if IsDue(ScheduleWeekdays, &ranFriday, saturday) {
		t.Fatal("weekday task should not fire on Saturday")
	}
}

func TestDueTasksSkipsDisabled(t *testing.T) {
	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	plan := &DailyPlan{Tasks: []DailyTask{
		{Type: TaskProspectDiscovery, Name: "a", Enabled: true, Schedule: ScheduleDaily},
		{Type: TaskCompetitorWatch, Name: "b", Enabled: false, Schedule: ScheduleDaily},
	}}
	due := DueTasks(plan, now)
	if len(due) != 1 || due[0] != 0 {
		t.Fatalf("expected only the enabled task to be due, got %v", due)
	}
}

func TestMarkRun(t *testing.T) {
	plan := &DailyPlan{Tasks: []DailyTask{
		{Type: TaskProspectDiscovery, Name: "a", Enabled: true, Schedule: ScheduleDaily},
	}}
	at := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	plan.MarkRun(0, at)
	if plan.Tasks[0].LastRun == nil || !plan.Tasks[0].LastRun.Equal(at) {
		t.Fatalf("last run not recorded: %+v", plan.Tasks[0].LastRun)
	}
	plan.MarkRun(5, at) // out of range is a no-op
}
