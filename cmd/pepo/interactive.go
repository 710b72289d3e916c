package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pepo-gtm/pepo/internal/agent/core"
	"github.com/pepo-gtm/pepo/internal/profile"
	"github.com/pepo-gtm/pepo/internal/store"
)

var (
	introStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("14")).Padding(1, 2)
	headingStyle = lipgloss.NewStyle().Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func printIntro(out io.Writer) {
	intro := strings.TrimSpace(`
Pepo - Autonomous Business Development Research

What I do:
- Find companies matching your ICP with evidence
- Discover buying signals (hiring, funding, launches)
- Identify decision-makers with verified contact info
- Everything cited with source URLs

Core principle: Evidence first. No hallucinations.`)
	fmt.Fprintln(out, introStyle.Render(intro))
}

func displayExamples(out io.Writer, examples []core.WorkflowSpec) {
	fmt.Fprintln(out, headingStyle.Render("Example Workflows"))
	for i, ex := range examples {
		industries := strings.Join(ex.ICP.Industries, ", ")
		var signals []string
		for _, s := range ex.Signals {
			signals = append(signals, string(s.Type))
		}
		fmt.Fprintf(out, "%d. %-16s %-28s %s\n", i+1, ex.Goal, industries, strings.Join(signals, ", "))
	}
}

// interactive runs the prompt-driven menu loop.
func interactive(a *app) error {
	in := bufio.NewReader(os.Stdin)
	out := os.Stdout

	printIntro(out)
	examples := exampleWorkflows()

	fmt.Fprintln(out, headingStyle.Render("\nQuick Start:"))
	fmt.Fprintln(out, "1-3: Run example workflow")
	fmt.Fprintln(out, "4: Build custom workflow")
	fmt.Fprintln(out, "5: Load from JSON file")
	fmt.Fprintln(out, "6: Run daily plan")
	fmt.Fprintln(out, "7: View business profile")
	fmt.Fprintln(out, "8: Re-run onboarding")
	fmt.Fprintln(out, "q: Quit")
	fmt.Fprintln(out)
	displayExamples(out, examples)

	for {
		choice := prompt(in, out, "\nChoose option", "1")

		switch {
		case choice == "q" || choice == "quit" || choice == "exit":
			if spend := a.tele.TotalCost(); spend > 0 {
				fmt.Fprintf(out, "\nSession spend: $%.4f\n", spend)
			}
			fmt.Fprintln(out, "Thanks for using Pepo!")
			return nil
		case choice == "1" || choice == "2" || choice == "3":
			idx, _ := strconv.Atoi(choice)
			runWorkflow(a, examples[idx-1])
		case choice == "4":
			if spec, ok := customWorkflowBuilder(in, out); ok {
				runWorkflow(a, spec)
			}
		case choice == "5":
			path := prompt(in, out, "Path to JSON workflow file", "")
			spec, err := loadWorkflowFile(path)
			if err != nil {
				fmt.Fprintln(out, errStyle.Render("Error loading file: "+err.Error()))
				continue
			}
			runWorkflow(a, spec)
		case choice == "6":
			if err := runDailyPlan(a, out); err != nil {
				fmt.Fprintln(out, errStyle.Render(err.Error()))
			}
		case choice == "7":
			p, err := a.profiles.LoadProfile()
			if err != nil {
				fmt.Fprintln(out, warnStyle.Render("No profile yet, choose 8 to onboard."))
				continue
			}
			profile.RenderProfile(out, p)
		case choice == "8":
			if err := runOnboarding(a, in, out); err != nil {
				fmt.Fprintln(out, errStyle.Render(err.Error()))
			}
		default:
			fmt.Fprintln(out, warnStyle.Render("Invalid choice"))
			continue
		}

		if !confirm(in, out, "\nRun another workflow?") {
			return nil
		}
	}
}

func prompt(in *bufio.Reader, out io.Writer, label, fallback string) string {
	if fallback != "" {
		fmt.Fprintf(out, "%s [%s]: ", label, fallback)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return fallback
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

func confirm(in *bufio.Reader, out io.Writer, label string) bool {
	ans := prompt(in, out, label+" (y/n)", "y")
	return strings.HasPrefix(strings.ToLower(ans), "y")
}

func customWorkflowBuilder(in *bufio.Reader, out io.Writer) (core.WorkflowSpec, bool) {
	fmt.Fprintln(out, headingStyle.Render("\nBuild Custom Workflow"))

	goalMap := map[string]core.WorkflowGoal{
		"1": core.GoalLeadList,
		"2": core.GoalAccountBriefs,
		"3": core.GoalCompetitorMoves,
		"4": core.GoalOutreach,
	}
	fmt.Fprintln(out, "Select goal:")
	fmt.Fprintln(out, "1. Lead List")
	fmt.Fprintln(out, "2. Account Briefs")
	fmt.Fprintln(out, "3. Competitor Moves")
	fmt.Fprintln(out, "4. Outreach Drafts")

	goal, ok := goalMap[prompt(in, out, "Choice", "1")]
	if !ok {
		fmt.Fprintln(out, warnStyle.Render("Invalid choice"))
		return core.WorkflowSpec{}, false
	}

	industry := prompt(in, out, "\nIndustry/vertical (e.g., fintech, SaaS, health tech)", "")
	geo := prompt(in, out, "Geography (e.g., US, NYC, UK)", "US")
	maxAccounts, err := strconv.Atoi(prompt(in, out, "Max accounts to find", "30"))
	if err != nil || maxAccounts <= 0 {
		maxAccounts = 30
	}

	spec := core.WorkflowSpec{
		Goal: goal,
		ICP: core.ICP{
			Industries: []string{industry},
			Geo:        []string{geo},
		},
		Signals: []core.Signal{
			{Type: core.SignalHiring, Query: "sales OR growth"},
			{Type: core.SignalFunding, WithinDays: 365},
		},
		Constraints: core.Constraints{MaxAccounts: maxAccounts, MinSignalConfidence: 0.5},
		Deliverable: core.Deliverable{Format: "csv"},
	}
	fmt.Fprintln(out, okStyle.Render("\nWorkflow created!"))

	if confirm(in, out, "Run now?") {
		return spec, true
	}
	return core.WorkflowSpec{}, false
}

func loadWorkflowFile(path string) (core.WorkflowSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return core.WorkflowSpec{}, err
	}
	var spec core.WorkflowSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return core.WorkflowSpec{}, err
	}
	return spec, nil
}

// runWorkflow executes a spec, archives the result, and prints the summary.
func runWorkflow(a *app, spec core.WorkflowSpec) {
	out := os.Stdout
	ctx := context.Background()

	fmt.Fprintf(out, "\n%s %s\n\n", headingStyle.Render("Running workflow:"), spec.Goal)

	result, err := a.agent.Run(ctx, spec)
	if err != nil {
		fmt.Fprintln(out, errStyle.Render("Error: "+err.Error()))
		return
	}

	archiveRun(ctx, a, &result)

	fmt.Fprintln(out, okStyle.Render("\nWorkflow complete!"))
	fmt.Fprintf(out, "Run ID: %s\n", result.RunID)
	fmt.Fprintf(out, "Cost: $%.4f  Duration: %s\n", result.Cost, result.Duration.Round(time.Second))
	fmt.Fprintf(out, "Check scratchpad: %s\n\n", result.ScratchpadFile)
	fmt.Fprintln(out, result.Summary)
}

func archiveRun(ctx context.Context, a *app, result *core.WorkflowResult) {
	archive, err := openArchive(ctx, a.cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, warnStyle.Render("archive unavailable: "+err.Error()))
		return
	}
	defer archive.Close()

	rec, err := store.RecordFromResult(result)
	if err != nil {
		return
	}
	if err := archive.SaveRun(ctx, rec); err != nil {
		fmt.Fprintln(os.Stderr, warnStyle.Render("archiving run: "+err.Error()))
		return
	}
	if ix, err := openIndex(a.cfg); err == nil {
		_ = ix.IndexRun(rec)
		_ = ix.Close()
	}
}

// runDailyPlan executes every enabled, due task in the persisted plan.
func runDailyPlan(a *app, out io.Writer) error {
	p, err := a.profiles.LoadProfile()
	if err != nil {
		return fmt.Errorf("no business profile, run onboarding first")
	}
	plan, err := a.profiles.LoadDailyPlan()
	if err != nil {
		fmt.Fprintln(out, faintStyle.Render("No daily plan yet, generating one..."))
		plan, _ = a.planner.GeneratePlan(context.Background(), p)
		if err := a.profiles.SaveDailyPlan(plan); err != nil {
			return err
		}
	}

	profile.RenderDailyPlan(out, plan)

	now := time.Now()
	due := profile.DueTasks(plan, now)
	if len(due) == 0 {
		fmt.Fprintln(out, faintStyle.Render("Nothing due right now."))
		return nil
	}

	for _, i := range due {
		task := plan.Tasks[i]
		fmt.Fprintf(out, "%s %s\n", headingStyle.Render("Running:"), task.Name)
		runWorkflow(a, profile.WorkflowSpecFor(task, p))
		plan.MarkRun(i, now)
		if err := a.profiles.SaveDailyPlan(plan); err != nil {
			return err
		}
	}
	return nil
}

// runOnboarding collects the profile, saves it, and generates a daily plan.
func runOnboarding(a *app, in *bufio.Reader, out io.Writer) error {
	p, err := profile.NewOnboarder(in, out).Run()
	if err != nil {
		return err
	}
	if err := a.profiles.SaveProfile(p); err != nil {
		return err
	}
	profile.RenderProfile(out, p)

	fmt.Fprintln(out, faintStyle.Render("Generating your personalized daily plan..."))
	plan, _ := a.planner.GeneratePlan(context.Background(), p)
	if err := a.profiles.SaveDailyPlan(plan); err != nil {
		return err
	}
	profile.RenderDailyPlan(out, plan)
	return nil
}
