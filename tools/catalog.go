package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/pepo-gtm/pepo/tools/research"
	"github.com/pepo-gtm/pepo/tools/web_search"
	"github.com/pepo-gtm/pepo/tools/web_search/models"
)

// Deps carries the external clients the tool catalog is built from. A nil
// Searcher or Research client puts the affected tools into degraded mode:
// they return a JSON error payload instead of failing the run.
type Deps struct {
	Searcher   web_search.WebSearcher
	Research   *research.Client
	MaxResults int
	Logger     *log.Logger
}

// NewRegistry builds the full tool catalog.
func NewRegistry(deps Deps) *Registry {
	if deps.MaxResults <= 0 {
		deps.MaxResults = 10
	}
	if deps.Logger == nil {
		deps.Logger = log.New(log.Writer(), "[TOOLS] ", log.LstdFlags)
	}
	c := &catalog{deps: deps}
	return newRegistry([]Tool{
		{
			Name:        "deep_research",
			Description: "Answer a research question with cited sources. Best for open-ended questions about markets, companies, or trends. Args: query (string)",
			Run:         c.deepResearch,
		},
		{
			Name:        "search_companies_by_criteria",
			Description: "Find companies matching an ideal customer profile. Args: industry (string), location (string), stage (string), min_employees (int), max_employees (int)",
			Run:         c.searchCompanies,
		},
		{
			Name:        "find_hiring_signals",
			Description: "Find job postings that indicate a company is hiring for relevant roles. Args: company_name (string), role_keywords (string, comma-separated)",
			Run:         c.findHiringSignals,
		},
		{
			Name:        "find_funding_signals",
			Description: "Find recent funding or investment announcements for a company. Args: company_name (string), within_days (int)",
			Run:         c.findFundingSignals,
		},
		{
			Name:        "find_company_contacts",
			Description: "Find people holding a given title at a company. Args: company_name (string), title (string)",
			Run:         c.findContacts,
		},
		{
			Name:        "verify_email",
			Description: "Check an email address for syntactic validity and disposable domains. Args: email (string)",
			Run:         c.verifyEmail,
		},
		{
			Name:        "enrich_company",
			Description: "Gather firmographic details about a company from its domain. Args: domain (string)",
			Run:         c.enrichCompany,
		},
		{
			Name:        "search_news",
			Description: "Find recent news coverage about a company or topic. Args: company_name (string), topic (string), within_days (int)",
			Run:         c.searchNews,
		},
		{
			Name:        "find_competitors",
			Description: "Identify competitors and alternatives to a company. Args: company_name (string), industry (string)",
			Run:         c.findCompetitors,
		},
		{
			Name:        "find_product_insights",
			Description: "Surface customer pain points and product trends in an industry. Args: industry (string), topic (string)",
			Run:         c.findProductInsights,
		},
		{
			Name:        "find_partnership_opportunities",
			Description: "Find potential integration or channel partners for a company. Args: company_name (string), industry (string)",
			Run:         c.findPartnerships,
		},
	})
}

type catalog struct {
	deps Deps
}

// searchPayload is the JSON shape every search-backed tool returns.
type searchPayload struct {
	Query      string          `json:"query"`
	NumResults int             `json:"num_results"`
	Results    []models.Result `json:"results"`
}

type degradedPayload struct {
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Results []models.Result `json:"results"`
}

func marshal(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (c *catalog) degraded() (string, error) {
	return marshal(degradedPayload{
		Error:   "search provider not configured",
		Message: "set PEPO_SEARCH_SERPER_API_KEY (free key at https://serper.dev) or PEPO_SEARCH_BRAVE_API_KEY to enable live search",
		Results: []models.Result{},
	})
}

func (c *catalog) webSearch(ctx context.Context, query string, k int) (string, error) {
	if c.deps.Searcher == nil {
		return c.degraded()
	}
	if k <= 0 {
		k = c.deps.MaxResults
	}
	results, err := c.deps.Searcher.Search(ctx, query, k)
	if err != nil {
		return "", err
	}
	if results == nil {
		results = []models.Result{}
	}
	return marshal(searchPayload{Query: query, NumResults: len(results), Results: results})
}

func strArg(args map[string]interface{}, key string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func intArg(args map[string]interface{}, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return fallback
}

func (c *catalog) deepResearch(ctx context.Context, args map[string]interface{}) (string, error) {
	query := strArg(args, "query")
	if query == "" {
		return "", fmt.Errorf("deep_research requires a query argument")
	}
	if c.deps.Research == nil {
		// No research backend; plain web search still yields citable URLs.
		return c.webSearch(ctx, query, c.deps.MaxResults)
	}
	ans, err := c.deps.Research.Query(ctx, query)
	if err != nil {
		c.deps.Logger.Printf("deep_research failed (%v), falling back to web search", err)
		return c.webSearch(ctx, query, c.deps.MaxResults)
	}
	return marshal(map[string]interface{}{
		"query":     query,
		"answer":    ans.Answer,
		"citations": ans.Citations,
	})
}

func (c *catalog) searchCompanies(ctx context.Context, args map[string]interface{}) (string, error) {
	industry := strArg(args, "industry")
	location := strArg(args, "location")
	stage := strArg(args, "stage")
	minEmp := intArg(args, "min_employees", 0)
	maxEmp := intArg(args, "max_employees", 0)

	query := fmt.Sprintf("%s companies", industry)
	if location != "" {
		query += fmt.Sprintf(" in %s", location)
	}
	if stage != "" {
		query += fmt.Sprintf(" %s stage", stage)
	}
	if minEmp > 0 || maxEmp > 0 {
		query += fmt.Sprintf(" %d-%d employees", minEmp, maxEmp)
	}
	return c.webSearch(ctx, query, 15)
}

func (c *catalog) findHiringSignals(ctx context.Context, args map[string]interface{}) (string, error) {
	company := strArg(args, "company_name")
	roles := strArg(args, "role_keywords")
	if roles == "" {
		roles = "SDR, sales, growth"
	}
	query := fmt.Sprintf("%s hiring %s site:linkedin.com OR site:greenhouse.io OR site:lever.co", company, roles)
	return c.webSearch(ctx, query, c.deps.MaxResults)
}

func (c *catalog) findFundingSignals(ctx context.Context, args map[string]interface{}) (string, error) {
	company := strArg(args, "company_name")
	withinDays := intArg(args, "within_days", 365)
	since := time.Now().AddDate(0, 0, -withinDays).Format("2006-01-02")
	query := fmt.Sprintf("%s funding OR investment OR raised after:%s", company, since)
	return c.webSearch(ctx, query, c.deps.MaxResults)
}

func (c *catalog) findContacts(ctx context.Context, args map[string]interface{}) (string, error) {
	company := strArg(args, "company_name")
	title := strArg(args, "title")
	if title == "" {
		title = "founder OR CEO OR VP"
	}
	query := fmt.Sprintf("%s at %s site:linkedin.com/in", title, company)
	return c.webSearch(ctx, query, c.deps.MaxResults)
}

func (c *catalog) enrichCompany(ctx context.Context, args map[string]interface{}) (string, error) {
	domain := strArg(args, "domain")
	if domain == "" {
		return "", fmt.Errorf("enrich_company requires a domain argument")
	}
	query := fmt.Sprintf("site:%s OR %s company information employees funding", domain, domain)
	return c.webSearch(ctx, query, c.deps.MaxResults)
}

func (c *catalog) searchNews(ctx context.Context, args map[string]interface{}) (string, error) {
	company := strArg(args, "company_name")
	topic := strArg(args, "topic")
	withinDays := intArg(args, "within_days", 90)
	since := time.Now().AddDate(0, 0, -withinDays).Format("2006-01-02")
	query := fmt.Sprintf("%s %s news after:%s", company, topic, since)
	return c.webSearch(ctx, query, c.deps.MaxResults)
}

func (c *catalog) findCompetitors(ctx context.Context, args map[string]interface{}) (string, error) {
	company := strArg(args, "company_name")
	industry := strArg(args, "industry")
	query := fmt.Sprintf("%s competitors alternatives %s", company, industry)
	return c.webSearch(ctx, query, c.deps.MaxResults)
}

func (c *catalog) findProductInsights(ctx context.Context, args map[string]interface{}) (string, error) {
	industry := strArg(args, "industry")
	topic := strArg(args, "topic")
	query := fmt.Sprintf("%s %s customer pain points reviews trends", industry, topic)
	return c.webSearch(ctx, query, c.deps.MaxResults)
}

func (c *catalog) findPartnerships(ctx context.Context, args map[string]interface{}) (string, error) {
	company := strArg(args, "company_name")
	industry := strArg(args, "industry")
	query := fmt.Sprintf("%s integration partners OR channel partners %s", company, industry)
	return c.webSearch(ctx, query, c.deps.MaxResults)
}
