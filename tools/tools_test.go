package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pepo-gtm/pepo/tools/web_search/models"
)

type fakeSearcher struct {
	lastQuery string
	results   []models.Result
	err       error
}

func (f *fakeSearcher) Search(ctx context.Context, query string, k int) ([]models.Result, error) {
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	if len(f.results) > k {
		return f.results[:k], nil
	}
	return f.results, nil
}

func TestRegistryNames(t *testing.T) {
	reg := NewRegistry(Deps{Searcher: &fakeSearcher{}})
	want := []string{
		"deep_research",
		"search_companies_by_criteria",
		"find_hiring_signals",
		"find_funding_signals",
		"find_company_contacts",
		"verify_email",
		"enrich_company",
		"search_news",
		"find_competitors",
		"find_product_insights",
		"find_partnership_opportunities",
	}
	got := reg.Names()
	if len(got) != len(want) {
		t.Fatalf("expected %d tools, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tool %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestRegistryGetUnknownEnumeratesValidNames(t *testing.T) {
	reg := NewRegistry(Deps{Searcher: &fakeSearcher{}})
	_, err := reg.Get("hack_the_planet")
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}
	for _, name := range reg.Names() {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error should enumerate %q: %v", name, err)
		}
	}
}

func TestSearchToolPayloadShape(t *testing.T) {
	fs := &fakeSearcher{results: []models.Result{
		{Title: "Acme raises Series B", URL: "https://news.example.com/acme", Snippet: "Acme announced $30M"},
	}}
	reg := NewRegistry(Deps{Searcher: fs})

	out, err := reg.Invoke(context.Background(), "find_funding_signals", map[string]interface{}{
		"company_name": "Acme",
	})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	var payload struct {
		Query      string          `json:"query"`
		NumResults int             `json:"num_results"`
		Results    []models.Result `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output should be JSON: %v", err)
	}
	if payload.NumResults != 1 || len(payload.Results) != 1 {
		t.Fatalf("expected one result, got %+v", payload)
	}
	if !strings.Contains(fs.lastQuery, "Acme") || !strings.Contains(fs.lastQuery, "funding") {
		t.Fatalf("unexpected query: %q", fs.lastQuery)
	}
	if !strings.Contains(fs.lastQuery, "after:") {
		t.Fatalf("funding query should constrain recency: %q", fs.lastQuery)
	}
}

func TestHiringSignalsQueryTargetsJobBoards(t *testing.T) {
	fs := &fakeSearcher{}
	reg := NewRegistry(Deps{Searcher: fs})
	if _, err := reg.Invoke(context.Background(), "find_hiring_signals", map[string]interface{}{
		"company_name": "Globex",
	}); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	for _, site := range []string{"linkedin.com", "greenhouse.io", "lever.co"} {
		if !strings.Contains(fs.lastQuery, site) {
			t.Fatalf("query should target %s: %q", site, fs.lastQuery)
		}
	}
	if !strings.Contains(fs.lastQuery, "SDR") {
		t.Fatalf("query should include default role keywords: %q", fs.lastQuery)
	}
}

func TestDegradedModeWithoutSearcher(t *testing.T) {
	reg := NewRegistry(Deps{})
	out, err := reg.Invoke(context.Background(), "search_companies_by_criteria", map[string]interface{}{
		"industry": "fintech",
	})
	if err != nil {
		t.Fatalf("degraded mode should not error: %v", err)
	}
	var payload struct {
		Error   string          `json:"error"`
		Results []models.Result `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("degraded output should be JSON: %v", err)
	}
	if payload.Error == "" {
		t.Fatal("degraded payload should carry an error field")
	}
	if payload.Results == nil || len(payload.Results) != 0 {
		t.Fatalf("degraded payload should carry an empty results array, got %v", payload.Results)
	}
}

func TestVerifyEmail(t *testing.T) {
	reg := NewRegistry(Deps{})
	cases := []struct {
		email  string
		valid  bool
		status string
	}{
		{"jane@acme.com", true, "unverified"},
		{"not-an-email", false, "invalid"},
		{"user@tempmail.com", false, "invalid"},
		{"user@10minutemail.com", false, "invalid"},
		{"first.last+tag@sub.domain.io", true, "unverified"},
	}
	for _, tc := range cases {
		out, err := reg.Invoke(context.Background(), "verify_email", map[string]interface{}{"email": tc.email})
		if err != nil {
			t.Fatalf("%s: %v", tc.email, err)
		}
		var v struct {
			Valid  bool   `json:"valid"`
			Status string `json:"status"`
		}
		if err := json.Unmarshal([]byte(out), &v); err != nil {
			t.Fatalf("%s: %v", tc.email, err)
		}
		if v.Valid != tc.valid || v.Status != tc.status {
			t.Fatalf("%s: expected valid=%v status=%s, got %+v", tc.email, tc.valid, tc.status, v)
		}
	}
}

func TestVerifyEmailRequiresArgument(t *testing.T) {
	reg := NewRegistry(Deps{})
	if _, err := reg.Invoke(context.Background(), "verify_email", nil); err == nil {
		t.Fatal("expected error for missing email")
	}
}

func TestDeepResearchFallsBackToWebSearch(t *testing.T) {
	fs := &fakeSearcher{results: []models.Result{{Title: "r", URL: "https://example.com"}}}
	reg := NewRegistry(Deps{Searcher: fs})
	out, err := reg.Invoke(context.Background(), "deep_research", map[string]interface{}{"query": "fintech trends"})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if fs.lastQuery != "fintech trends" {
		t.Fatalf("fallback should pass the query through, got %q", fs.lastQuery)
	}
	if !strings.Contains(out, "https://example.com") {
		t.Fatalf("fallback output should carry result URLs: %s", out)
	}
}

func TestDescriptionsListEveryTool(t *testing.T) {
	reg := NewRegistry(Deps{})
	desc := reg.Descriptions()
	for _, name := range reg.Names() {
		if !strings.Contains(desc, "- "+name+":") {
			t.Fatalf("descriptions missing %s:\n%s", name, desc)
		}
	}
}
