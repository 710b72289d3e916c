package profile

import (
	"bytes"
	"strings"
	"testing"
)

func TestOnboardingFlow(t *testing.T) {
	// Answers in prompt order: company, website, industry, product, value
	// prop, target customer, industries, regions (default), titles (default),
	// competitors, pain points, differentiators, clients.
	answers := strings.Join([]string{
		"Acme Data",
		"https://acme.example",
		"fintech",
		"Fraud scoring API",
		"Cuts chargebacks in half",
		"Series A-C fintech",
		"fintech, payments",
		"",
		"",
		"Sift, Ravelin",
		"chargeback losses",
		"real-time scoring",
		"skip",
	}, "\n") + "\n"

	var out bytes.Buffer
	p, err := NewOnboarder(strings.NewReader(answers), &out).Run()
	if err != nil {
		t.Fatalf("onboarding: %v", err)
	}
	if p.CompanyName != "Acme Data" || p.Industry != "fintech" {
		t.Fatalf("basics not captured: %+v", p)
	}
	if len(p.TargetRegions) != 1 || p.TargetRegions[0] != "US" {
		t.Fatalf("expected default region US, got %v", p.TargetRegions)
	}
	if len(p.TargetTitles) != 4 {
		t.Fatalf("expected default titles, got %v", p.TargetTitles)
	}
	if len(p.Competitors) != 2 || p.Competitors[1] != "Ravelin" {
		t.Fatalf("competitors not parsed: %v", p.Competitors)
	}
	if len(p.CurrentClients) != 0 {
		t.Fatalf("skip should leave clients empty: %v", p.CurrentClients)
	}
	if p.OnboardedAt.IsZero() {
		t.Fatal("onboarded_at not stamped")
	}
	if !strings.Contains(out.String(), "Target Market") {
		t.Fatalf("prompts not written to output")
	}
}

func TestOnboardingNoneCompetitors(t *testing.T) {
	answers := strings.Join([]string{
		"Acme", "", "SaaS", "CRM", "Faster", "SMBs",
		"", "", "", "none", "", "", "skip",
	}, "\n") + "\n"
	p, err := NewOnboarder(strings.NewReader(answers), &bytes.Buffer{}).Run()
	if err != nil {
		t.Fatalf("onboarding: %v", err)
	}
	if len(p.Competitors) != 0 {
		t.Fatalf("'none' should leave competitors empty: %v", p.Competitors)
	}
}

func TestRenderDailyPlanListsTasks(t *testing.T) {
	var out bytes.Buffer
	RenderDailyPlan(&out, DefaultDailyPlan(sampleProfile()))
	s := out.String()
	if !strings.Contains(s, "Monitor competitor activity") {
		t.Fatalf("plan rendering missing task names:\n%s", s)
	}
	if !strings.Contains(s, "Strategy:") {
		t.Fatalf("plan rendering missing reasoning:\n%s", s)
	}
}
