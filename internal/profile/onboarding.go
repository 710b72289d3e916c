package profile

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(1, 2)
	sectionStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	labelStyle   = lipgloss.NewStyle().Bold(true).Width(16)
)

// Onboarder runs the interactive setup conversation. Input and output are
// injected so the flow is testable without a terminal.
type Onboarder struct {
	in  *bufio.Reader
	out io.Writer
}

func NewOnboarder(in io.Reader, out io.Writer) *Onboarder {
	return &Onboarder{in: bufio.NewReader(in), out: out}
}

func (o *Onboarder) ask(prompt, fallback string) string {
	if fallback != "" {
		fmt.Fprintf(o.out, "   %s [%s]: ", prompt, fallback)
	} else {
		fmt.Fprintf(o.out, "   %s: ", prompt)
	}
	line, err := o.in.ReadString('\n')
	if err != nil && line == "" {
		return fallback
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Run walks the operator through the setup questions and returns the
// resulting profile.
func (o *Onboarder) Run() (*BusinessProfile, error) {
	fmt.Fprintln(o.out, panelStyle.Render(
		"Let's set up Pepo\n\n"+
			"I need to understand your business so I can find the right\n"+
			"prospects, track competitors, and surface insights for you.\n\n"+
			dimStyle.Render("This takes about 2 minutes. Your answers are saved locally.")))
	fmt.Fprintln(o.out)

	fmt.Fprintln(o.out, sectionStyle.Render("1. Your Company"))
	companyName := o.ask("Company name", "")
	website := o.ask("Website", "")
	industry := o.ask("Your industry (e.g., SaaS, fintech, health tech)", "")
	fmt.Fprintln(o.out)

	fmt.Fprintln(o.out, sectionStyle.Render("2. Your Product"))
	product := o.ask("What does your product/service do? (one sentence)", "")
	valueProp := o.ask("Your key value prop (why customers choose you)", "")
	fmt.Fprintln(o.out)

	fmt.Fprintln(o.out, sectionStyle.Render("3. Target Market"))
	targetCustomer := o.ask("Who do you sell to? (e.g., 'Series A-C SaaS companies')", "")
	targetIndustries := splitList(o.ask("Target industries (comma-separated)", industry))
	targetRegions := splitList(o.ask("Target regions (comma-separated)", "US"))
	targetTitles := splitList(o.ask("Decision-maker titles you target (comma-separated)",
		"VP Sales, Head of Growth, CRO, CEO"))
	fmt.Fprintln(o.out)

	fmt.Fprintln(o.out, sectionStyle.Render("4. Competitive Landscape"))
	competitorsRaw := o.ask("Known competitors (comma-separated, or 'none')", "none")
	var competitors []string
	if !strings.EqualFold(competitorsRaw, "none") {
		competitors = splitList(competitorsRaw)
	}
	fmt.Fprintln(o.out)

	fmt.Fprintln(o.out, sectionStyle.Render("5. Positioning"))
	painPoints := splitList(o.ask("Problems your product solves (comma-separated)", ""))
	differentiators := splitList(o.ask("What makes you different? (comma-separated)", ""))
	fmt.Fprintln(o.out)

	fmt.Fprintln(o.out, sectionStyle.Render("6. Current Clients (optional, helps find lookalikes)"))
	clientsRaw := o.ask("Example clients (comma-separated, or 'skip')", "skip")
	var clients []string
	if !strings.EqualFold(clientsRaw, "skip") {
		clients = splitList(clientsRaw)
	}

	p := &BusinessProfile{
		CompanyName:        companyName,
		Website:            website,
		Industry:           industry,
		ProductDescription: product,
		TargetCustomer:     targetCustomer,
		ValueProposition:   valueProp,
		Competitors:        competitors,
		TargetTitles:       targetTitles,
		TargetIndustries:   targetIndustries,
		TargetRegions:      targetRegions,
		PainPoints:         painPoints,
		Differentiators:    differentiators,
		CurrentClients:     clients,
		OnboardedAt:        time.Now(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// RenderProfile prints the saved profile as a labeled field list.
func RenderProfile(out io.Writer, p *BusinessProfile) {
	dash := func(vals []string) string {
		if len(vals) == 0 {
			return "-"
		}
		return strings.Join(vals, ", ")
	}
	website := p.Website
	if website == "" {
		website = "-"
	}

	fmt.Fprintln(out, sectionStyle.Render("Your Business Profile"))
	rows := []struct{ label, value string }{
		{"Company", p.CompanyName},
		{"Website", website},
		{"Industry", p.Industry},
		{"Product", p.ProductDescription},
		{"Value Prop", p.ValueProposition},
		{"Target", p.TargetCustomer},
		{"Industries", dash(p.TargetIndustries)},
		{"Regions", dash(p.TargetRegions)},
		{"Titles", dash(p.TargetTitles)},
		{"Competitors", dash(p.Competitors)},
		{"Pain Points", dash(p.PainPoints)},
		{"Differentiators", dash(p.Differentiators)},
		{"Clients", dash(p.CurrentClients)},
	}
	for _, r := range rows {
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render(r.label), r.value)
	}
	fmt.Fprintln(out)
}

// RenderDailyPlan prints the plan overview plus per-task details.
func RenderDailyPlan(out io.Writer, plan *DailyPlan) {
	fmt.Fprintln(out, panelStyle.Render(
		"Your Daily Pepo Plan\n\n"+
			"Here's what I'll be doing for you on a daily basis:"))
	fmt.Fprintln(out)

	for i, task := range plan.Tasks {
		status := "on"
		if !task.Enabled {
			status = "off"
		}
		fmt.Fprintf(out, "%2d. %s (%s, %s)\n", i+1, sectionStyle.Render(task.Name), task.Schedule, status)
		fmt.Fprintf(out, "    %s\n", dimStyle.Render(task.Description))
	}
	if plan.Reasoning != "" {
		fmt.Fprintf(out, "\n%s\n", dimStyle.Render("Strategy: "+plan.Reasoning))
	}
	fmt.Fprintln(out)
}
